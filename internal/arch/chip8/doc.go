// Package chip8 decodes CHIP-8 instruction words into typed instructions.
//
// # Instruction Words
//
// Every CHIP-8 instruction is a 16-bit word. The word is described by four
// nibbles w1 w2 w3 w4, most significant first. The top nibble w1 selects the
// instruction group, the remaining nibbles either refine the identity or
// carry the operands:
//   - nnn: 12-bit address (word & 0x0FFF)
//   - x:   register index (w2)
//   - y:   register index (w3)
//   - n:   4-bit constant (w4)
//   - kk:  8-bit constant (low byte)
//
// # Decoding
//
// Decode is a pure function of the word. It runs once per program line at
// load time, the interpreter only ever sees decoded instructions:
//
//	ins, err := chip8.Decode(0xDAB4)
//	if err != nil {
//		return fmt.Errorf("decoding: %w", err)
//	}
//	fmt.Println(ins) // drw VA, VB, $4
//
// Words that match no known pattern return a *DecodeError.
//
// # Supported Operations
//
// All standard CHIP-8 operations are recognized:
//   - Flow control: JP, CALL, RET, SYS
//   - Conditionals: SE, SNE, SKP, SKNP
//   - Arithmetic and logic: ADD, SUB, SUBN, OR, AND, XOR, SHR, SHL
//   - Memory: LD (registers, index, timers, BCD, register dump and load)
//   - Graphics: CLS, DRW
//   - Random numbers: RND
package chip8
