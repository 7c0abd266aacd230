// Package dis supports inspection of compiled units by disassembling
// function bodies. This works with the opcodes defined in the `op` package
// and the InstructionIter type from the `bytecode` package.
package dis

import (
	"fmt"
	"io"
	"strings"

	"github.com/deepnoodle-ai/refstats/bytecode"
	"github.com/deepnoodle-ai/refstats/internal/table"
	"github.com/deepnoodle-ai/refstats/op"
	"github.com/deepnoodle-ai/wonton/color"
)

// Instruction represents a single bytecode instruction and its operands.
type Instruction struct {
	Offset   int
	Name     string
	Opcode   op.Code
	Operands []op.Code
}

// Disassemble returns a parsed representation of the given instruction
// stream.
func Disassemble(code []op.Code) ([]Instruction, error) {
	var instructions []Instruction
	var offset int
	iter := bytecode.NewInstructionIter(code)
	for {
		val, ok := iter.Next()
		if !ok {
			break
		}
		info := op.GetInfo(val[0])
		if info.Name == "" {
			return nil, fmt.Errorf("unknown opcode %d at offset %d", val[0], offset)
		}
		instructions = append(instructions, Instruction{
			Offset:   offset,
			Name:     info.Name,
			Opcode:   val[0],
			Operands: val[1:],
		})
		offset += len(val)
	}
	return instructions, nil
}

// bold applies bold formatting if colors are enabled.
func bold(s string) string {
	if !color.Enabled {
		return s
	}
	return color.ApplyBold(s)
}

// Print a string representation of the given instructions to the given writer.
func Print(instructions []Instruction, writer io.Writer) {
	var lines [][]string
	for _, instr := range instructions {
		name := instr.Name
		if isReferenceOperation(instr.Opcode) {
			name = color.Colorize(color.BrightCyan, name)
		} else {
			name = bold(name)
		}
		lines = append(lines, []string{
			fmt.Sprintf("%d", instr.Offset),
			name,
			formatOperands(instr.Operands),
		})
	}

	table.NewTable(writer).
		WithHeader([]string{"OFFSET", "OPCODE", "OPERANDS"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignLeft,
			table.AlignRight,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

func formatOperands(ops []op.Code) string {
	var sb strings.Builder
	for i, operand := range ops {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%d", operand))
	}
	return sb.String()
}

func isReferenceOperation(opcode op.Code) bool {
	switch opcode {
	case op.ImmBorrowLoc, op.MutBorrowLoc,
		op.ImmBorrowField, op.MutBorrowField,
		op.ImmBorrowFieldGeneric, op.MutBorrowFieldGeneric,
		op.ImmBorrowGlobal, op.MutBorrowGlobal,
		op.ImmBorrowGlobalGeneric, op.MutBorrowGlobalGeneric,
		op.FreezeRef:
		return true
	}
	return false
}
