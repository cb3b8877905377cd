// Package random implements the pseudo-random generator of the CHIP-8 machine.
// It is deterministic for a given seed and not suitable for cryptographic use.
package random

import "time"

const (
	multiplier = 747796405
	increment  = 2891336453
	mixer      = 277803737
)

// Random is a pseudo-random generator with 64 bits of state.
type Random struct {
	state uint64
}

// New returns a generator seeded with the given value.
func New(seed uint64) *Random {
	return &Random{state: seed}
}

// NewFromTime returns a generator seeded from the wall-clock time in seconds.
func NewFromTime() *Random {
	return New(uint64(time.Now().Unix()))
}

// Next mixes the state, stores the result as the new state and returns it.
// The data dependent shift amount is taken modulo 64.
func (r *Random) Next() uint64 {
	state := r.state*multiplier + increment
	shift := ((state >> 28) + 4) & 63
	word := ((state >> shift) ^ state) * mixer
	result := (word >> 22) ^ word
	r.state = result
	return result
}

// Byte returns the low byte of the next value.
func (r *Random) Byte() uint8 {
	return uint8(r.Next())
}
