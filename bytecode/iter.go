package bytecode

import "github.com/deepnoodle-ai/refstats/op"

// InstructionIter iterates over an instruction stream. Operands are inlined
// in the stream after each opcode; the iterator uses the operand counts
// from the op package to step over them.
type InstructionIter struct {
	code []op.Code
	pos  int
}

// NewInstructionIter creates a new iterator for the given instruction stream.
func NewInstructionIter(code []op.Code) *InstructionIter {
	return &InstructionIter{code: code}
}

// Next returns the next instruction and its operands.
// Returns false when there are no more instructions.
func (i *InstructionIter) Next() ([]op.Code, bool) {
	if i.pos >= len(i.code) {
		return nil, false
	}
	opcode := i.code[i.pos]
	i.pos++

	info := op.GetInfo(opcode)
	if info.OperandCount == 0 {
		return []op.Code{opcode}, true
	}
	instr := make([]op.Code, info.OperandCount+1)
	instr[0] = opcode

	for j := 0; j < info.OperandCount; j++ {
		// A truncated stream ends mid-instruction; return what is there
		// rather than reading past the end.
		if i.pos >= len(i.code) {
			return instr[:j+1], true
		}
		instr[j+1] = i.code[i.pos]
		i.pos++
	}
	return instr, true
}

// All returns all instructions as a newly allocated slice.
// This is a convenience method that collects all results from Next().
func (i *InstructionIter) All() [][]op.Code {
	var results [][]op.Code
	for {
		instr, ok := i.Next()
		if !ok {
			break
		}
		results = append(results, instr)
	}
	return results
}
