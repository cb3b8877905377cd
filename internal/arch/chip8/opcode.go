package chip8

// Identity is the identity of a decoded CHIP-8 instruction.
type Identity uint8

// All instruction identities, the set is closed.
const (
	CallMachineRoutine Identity = iota
	ClearDisplay
	ReturnFromSubroutine
	Jump
	CallSubroutine
	SkipIfRegEqualsConst
	SkipIfRegNotEqualsConst
	SkipIfRegEqualsReg
	SetRegConst
	AddConstNoFlag
	SetRegReg
	Or
	And
	Xor
	AddReg
	SubReg
	ShiftRight
	SubRegReversed
	ShiftLeft
	SkipIfRegNotEqualsReg
	SetIndexConst
	JumpIndexed
	RandomMasked
	DrawSprite
	SkipIfKeyPressed
	SkipIfKeyNotPressed
	GetDelayTimer
	AwaitKeyThenStore
	SetDelayTimer
	SetSoundTimer
	AddIndexReg
	SetIndexToSpriteGlyph
	StoreBCD
	DumpRegistersToMemory
	LoadRegistersFromMemory

	identityCount
)

// Category groups instruction identities by the machine resource they use.
type Category uint8

// Instruction categories.
const (
	CategoryCall    Category = iota // machine code routines
	CategoryDisplay                 // framebuffer
	CategoryFlow                    // jumps, calls and returns
	CategoryCond                    // conditional skips
	CategoryConst                   // constant loads
	CategoryAssign                  // register to register
	CategoryBitOp                   // bit operations
	CategoryMath                    // arithmetic with flags
	CategoryMem                     // memory and index register
	CategoryRand                    // random numbers
	CategoryKeyOp                   // keypad input
	CategoryTimer                   // delay timer
	CategorySound                   // sound timer
	CategoryBCD                     // binary coded decimal
)

type opcodeInfo struct {
	name     string
	category Category
	shape    Shape
}

var opcodes = [identityCount]opcodeInfo{
	CallMachineRoutine:      {"CallMachineRoutine", CategoryCall, ShapeAddress},
	ClearDisplay:            {"ClearDisplay", CategoryDisplay, ShapeNone},
	ReturnFromSubroutine:    {"ReturnFromSubroutine", CategoryFlow, ShapeNone},
	Jump:                    {"Jump", CategoryFlow, ShapeAddress},
	CallSubroutine:          {"CallSubroutine", CategoryFlow, ShapeAddress},
	SkipIfRegEqualsConst:    {"SkipIfRegEqualsConst", CategoryCond, ShapeRegConst},
	SkipIfRegNotEqualsConst: {"SkipIfRegNotEqualsConst", CategoryCond, ShapeRegConst},
	SkipIfRegEqualsReg:      {"SkipIfRegEqualsReg", CategoryCond, ShapeRegReg},
	SetRegConst:             {"SetRegConst", CategoryConst, ShapeRegConst},
	AddConstNoFlag:          {"AddConstNoFlag", CategoryConst, ShapeRegConst},
	SetRegReg:               {"SetRegReg", CategoryAssign, ShapeRegReg},
	Or:                      {"Or", CategoryBitOp, ShapeRegReg},
	And:                     {"And", CategoryBitOp, ShapeRegReg},
	Xor:                     {"Xor", CategoryBitOp, ShapeRegReg},
	AddReg:                  {"AddReg", CategoryMath, ShapeRegReg},
	SubReg:                  {"SubReg", CategoryMath, ShapeRegReg},
	ShiftRight:              {"ShiftRight", CategoryBitOp, ShapeReg},
	SubRegReversed:          {"SubRegReversed", CategoryMath, ShapeRegReg},
	ShiftLeft:               {"ShiftLeft", CategoryBitOp, ShapeReg},
	SkipIfRegNotEqualsReg:   {"SkipIfRegNotEqualsReg", CategoryCond, ShapeRegReg},
	SetIndexConst:           {"SetIndexConst", CategoryMem, ShapeAddress},
	JumpIndexed:             {"JumpIndexed", CategoryFlow, ShapeAddress},
	RandomMasked:            {"RandomMasked", CategoryRand, ShapeRegConst},
	DrawSprite:              {"DrawSprite", CategoryDisplay, ShapeRegRegNibble},
	SkipIfKeyPressed:        {"SkipIfKeyPressed", CategoryKeyOp, ShapeReg},
	SkipIfKeyNotPressed:     {"SkipIfKeyNotPressed", CategoryKeyOp, ShapeReg},
	GetDelayTimer:           {"GetDelayTimer", CategoryTimer, ShapeReg},
	AwaitKeyThenStore:       {"AwaitKeyThenStore", CategoryKeyOp, ShapeReg},
	SetDelayTimer:           {"SetDelayTimer", CategoryTimer, ShapeReg},
	SetSoundTimer:           {"SetSoundTimer", CategorySound, ShapeReg},
	AddIndexReg:             {"AddIndexReg", CategoryMem, ShapeReg},
	SetIndexToSpriteGlyph:   {"SetIndexToSpriteGlyph", CategoryMem, ShapeReg},
	StoreBCD:                {"StoreBCD", CategoryBCD, ShapeReg},
	DumpRegistersToMemory:   {"DumpRegistersToMemory", CategoryMem, ShapeReg},
	LoadRegistersFromMemory: {"LoadRegistersFromMemory", CategoryMem, ShapeReg},
}

// String returns the name of the identity.
func (id Identity) String() string {
	if id >= identityCount {
		return "Unknown"
	}
	return opcodes[id].name
}

// Category returns the category of the identity.
func (id Identity) Category() Category {
	return opcodes[id].category
}

// Shape returns the operand layout of the identity.
func (id Identity) Shape() Shape {
	return opcodes[id].shape
}

var categoryNames = [...]string{
	CategoryCall:    "call",
	CategoryDisplay: "display",
	CategoryFlow:    "flow",
	CategoryCond:    "cond",
	CategoryConst:   "const",
	CategoryAssign:  "assign",
	CategoryBitOp:   "bitop",
	CategoryMath:    "math",
	CategoryMem:     "mem",
	CategoryRand:    "rand",
	CategoryKeyOp:   "keyop",
	CategoryTimer:   "timer",
	CategorySound:   "sound",
	CategoryBCD:     "bcd",
}

func (c Category) String() string {
	if int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}
