package runner

// scriptedKeypad feeds a fixed key sequence to a machine. Every key that was
// fed stays held until the next one is fed, key state queries see only the
// held key.
type scriptedKeypad struct {
	keys []uint8
	held uint8
	down bool
}

func newScriptedKeypad(keys []uint8) *scriptedKeypad {
	return &scriptedKeypad{
		keys: keys,
	}
}

// Pressed returns whether the given key is currently held.
func (k *scriptedKeypad) Pressed(key uint8) bool {
	return k.down && k.held == key
}

// next returns the next key of the sequence and holds it. It returns false
// if no keypad is attached or the sequence is exhausted.
func (k *scriptedKeypad) next() (uint8, bool) {
	if k == nil || len(k.keys) == 0 {
		return 0, false
	}
	key := k.keys[0] & 0xF
	k.keys = k.keys[1:]
	k.held = key
	k.down = true
	return key, true
}
