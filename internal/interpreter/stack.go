package interpreter

// StackSize is the fixed capacity of the call stack.
const StackSize = 48

// stack is a fixed capacity LIFO of return addresses.
type stack struct {
	data  [StackSize]uint16
	depth int
}

func (s *stack) push(address uint16) error {
	if s.depth == StackSize {
		return ErrStackOverflow
	}
	s.data[s.depth] = address
	s.depth++
	return nil
}

func (s *stack) pop() (uint16, error) {
	if s.depth == 0 {
		return 0, ErrStackUnderflow
	}
	s.depth--
	return s.data[s.depth], nil
}

// StackSnapshot is a read-only copy of the call stack.
type StackSnapshot struct {
	Data  [StackSize]uint16
	Depth int
}

// Entries returns the return addresses currently on the stack, oldest first.
func (s StackSnapshot) Entries() []uint16 {
	entries := make([]uint16, s.Depth)
	copy(entries, s.Data[:s.Depth])
	return entries
}
