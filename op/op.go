// Package op defines the opcodes of the compiled bytecode format analyzed
// by refstats.
package op

// Code is an integer opcode that identifies a bytecode instruction.
type Code uint16

const (
	Invalid Code = 0

	// Execution
	Pop   Code = 1
	Ret   Code = 2
	Abort Code = 3
	Nop   Code = 4

	// Branching
	Branch  Code = 10
	BrTrue  Code = 11
	BrFalse Code = 12

	// Constants
	LdConst Code = 20
	LdTrue  Code = 21
	LdFalse Code = 22

	// Locals
	CopyLoc Code = 30
	MoveLoc Code = 31
	StLoc   Code = 32

	// Calls
	Call        Code = 40
	CallGeneric Code = 41

	// Struct construction
	Pack          Code = 50
	PackGeneric   Code = 51
	Unpack        Code = 52
	UnpackGeneric Code = 53

	// References
	ReadRef   Code = 60
	WriteRef  Code = 61
	FreezeRef Code = 62

	// Local borrows
	ImmBorrowLoc Code = 70
	MutBorrowLoc Code = 71

	// Field borrows
	ImmBorrowField        Code = 80
	MutBorrowField        Code = 81
	ImmBorrowFieldGeneric Code = 82
	MutBorrowFieldGeneric Code = 83

	// Global resource borrows
	ImmBorrowGlobal        Code = 90
	MutBorrowGlobal        Code = 91
	ImmBorrowGlobalGeneric Code = 92
	MutBorrowGlobalGeneric Code = 93

	// Global resource operations
	Exists          Code = 100
	ExistsGeneric   Code = 101
	MoveFrom        Code = 102
	MoveFromGeneric Code = 103
	MoveTo          Code = 104
	MoveToGeneric   Code = 105

	// Arithmetic
	Add Code = 110
	Sub Code = 111
	Mul Code = 112
	Div Code = 113
	Mod Code = 114

	// Bitwise
	BitOr  Code = 120
	BitAnd Code = 121
	Xor    Code = 122
	Shl    Code = 123
	Shr    Code = 124

	// Boolean
	And Code = 130
	Or  Code = 131
	Not Code = 132

	// Comparison
	Eq  Code = 140
	Neq Code = 141
	Lt  Code = 142
	Gt  Code = 143
	Le  Code = 144
	Ge  Code = 145
)

// Info contains information about an opcode.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op    Code
		name  string
		count int
	}
	ops := []opInfo{
		{Abort, "ABORT", 0},
		{Add, "ADD", 0},
		{And, "AND", 0},
		{BitAnd, "BIT_AND", 0},
		{BitOr, "BIT_OR", 0},
		{BrFalse, "BR_FALSE", 1},
		{BrTrue, "BR_TRUE", 1},
		{Branch, "BRANCH", 1},
		{Call, "CALL", 1},
		{CallGeneric, "CALL_GENERIC", 1},
		{CopyLoc, "COPY_LOC", 1},
		{Div, "DIV", 0},
		{Eq, "EQ", 0},
		{Exists, "EXISTS", 1},
		{ExistsGeneric, "EXISTS_GENERIC", 1},
		{FreezeRef, "FREEZE_REF", 0},
		{Ge, "GE", 0},
		{Gt, "GT", 0},
		{ImmBorrowField, "IMM_BORROW_FIELD", 1},
		{ImmBorrowFieldGeneric, "IMM_BORROW_FIELD_GENERIC", 1},
		{ImmBorrowGlobal, "IMM_BORROW_GLOBAL", 1},
		{ImmBorrowGlobalGeneric, "IMM_BORROW_GLOBAL_GENERIC", 1},
		{ImmBorrowLoc, "IMM_BORROW_LOC", 1},
		{LdConst, "LD_CONST", 1},
		{LdFalse, "LD_FALSE", 0},
		{LdTrue, "LD_TRUE", 0},
		{Le, "LE", 0},
		{Lt, "LT", 0},
		{Mod, "MOD", 0},
		{MoveFrom, "MOVE_FROM", 1},
		{MoveFromGeneric, "MOVE_FROM_GENERIC", 1},
		{MoveLoc, "MOVE_LOC", 1},
		{MoveTo, "MOVE_TO", 1},
		{MoveToGeneric, "MOVE_TO_GENERIC", 1},
		{Mul, "MUL", 0},
		{MutBorrowField, "MUT_BORROW_FIELD", 1},
		{MutBorrowFieldGeneric, "MUT_BORROW_FIELD_GENERIC", 1},
		{MutBorrowGlobal, "MUT_BORROW_GLOBAL", 1},
		{MutBorrowGlobalGeneric, "MUT_BORROW_GLOBAL_GENERIC", 1},
		{MutBorrowLoc, "MUT_BORROW_LOC", 1},
		{Neq, "NEQ", 0},
		{Nop, "NOP", 0},
		{Not, "NOT", 0},
		{Or, "OR", 0},
		{Pack, "PACK", 1},
		{PackGeneric, "PACK_GENERIC", 1},
		{Pop, "POP", 0},
		{ReadRef, "READ_REF", 0},
		{Ret, "RET", 0},
		{Shl, "SHL", 0},
		{Shr, "SHR", 0},
		{StLoc, "ST_LOC", 1},
		{Sub, "SUB", 0},
		{Unpack, "UNPACK", 1},
		{UnpackGeneric, "UNPACK_GENERIC", 1},
		{WriteRef, "WRITE_REF", 0},
		{Xor, "XOR", 0},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Name:         o.name,
			Code:         o.op,
			OperandCount: o.count,
		}
	}
}

// GetInfo returns information about the given opcode. Unknown opcodes,
// including values past the end of the table, return a zero Info with an
// empty Name.
func GetInfo(op Code) Info {
	if int(op) >= len(infos) {
		return Info{}
	}
	return infos[op]
}
