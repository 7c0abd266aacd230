package stats

import (
	"fmt"

	"github.com/deepnoodle-ai/refstats/bytecode"
	"github.com/deepnoodle-ai/refstats/op"
)

// Analyze walks every unit in the corpus and returns the accumulated
// counts. The units must already be verified; analyzing unverified units
// has undefined results. The final counts are independent of unit order.
func Analyze(units []bytecode.Unit) (Counts, error) {
	var counts Counts
	for _, unit := range units {
		if err := counts.CountUnit(unit); err != nil {
			return Counts{}, err
		}
	}
	return counts, nil
}

// CountUnit dispatches to CountModule or CountScript based on the unit
// variant.
func (c *Counts) CountUnit(unit bytecode.Unit) error {
	switch u := unit.(type) {
	case *bytecode.Module:
		c.CountModule(u)
	case *bytecode.Script:
		c.CountScript(u)
	default:
		return fmt.Errorf("unknown unit type: %T", unit)
	}
	return nil
}

// CountModule walks every function definition in the module, resolving each
// definition's handle to its parameter and return signatures. Native
// functions have no body and contribute only signature counts. The module
// is classified as acquire-bearing if any of its functions added acquire
// annotations.
func (c *Counts) CountModule(m *bytecode.Module) {
	c.TotalModules++
	beforeAcquires := c.AcquiresAnnotations
	for i := 0; i < m.FunctionDefCount(); i++ {
		def := m.FunctionDefAt(i)
		handle := m.FunctionHandleAt(def.Handle)
		c.CountSignature(
			m.SignatureAt(handle.Parameters),
			m.SignatureAt(handle.Return),
			def.Acquires,
		)
		if def.Code != nil {
			c.CountInstructions(def.Code)
		}
	}
	if c.AcquiresAnnotations > beforeAcquires {
		c.ModulesWithAcquires++
	}
}

// CountScript counts the script's single function. Scripts have no return
// signature and cannot declare acquires, and they do not count as modules.
func (c *Counts) CountScript(s *bytecode.Script) {
	c.CountSignature(s.SignatureAt(s.Parameters()), nil, nil)
	c.CountInstructions(s.Code())
}

// CountSignature counts one function's signature: reference-typed
// parameters and return values, and acquire annotations. A function is
// classified as reference-bearing at most once no matter how many
// reference tokens its signature contains.
func (c *Counts) CountSignature(parameters, returns bytecode.Signature, acquires []bytecode.StructDefIndex) {
	c.TotalFunctions++
	hasReference := false
	for _, parameter := range parameters {
		if parameter.IsReference() {
			hasReference = true
			c.ReferenceParameters++
		}
	}
	for _, returnType := range returns {
		if returnType.IsReference() {
			hasReference = true
			c.ReferenceReturnValues++
		}
	}
	if hasReference {
		c.FunctionsWithReferenceSignatures++
	}
	if len(acquires) > 0 {
		c.FunctionsWithAcquires++
	}
	c.AcquiresAnnotations += len(acquires)
}

// CountInstructions classifies every instruction in one function body. The
// function is classified as containing reference operations if any of the
// reference counters advanced while walking its body.
func (c *Counts) CountInstructions(code []op.Code) {
	before := c.TotalReferenceOperations()
	iter := bytecode.NewInstructionIter(code)
	for {
		instr, ok := iter.Next()
		if !ok {
			break
		}
		c.CountInstruction(instr[0])
	}
	if c.TotalReferenceOperations() > before {
		c.FunctionsWithReferenceOperations++
	}
}

// CountInstruction classifies a single instruction into exactly one of
// eight buckets: the seven reference-operation kinds, or "other", which
// affects only the instruction total.
func (c *Counts) CountInstruction(opcode op.Code) {
	c.TotalInstructions++
	switch opcode {
	case op.ImmBorrowLoc:
		c.ImmBorrowLoc++
	case op.MutBorrowLoc:
		c.MutBorrowLoc++

	case op.ImmBorrowField, op.ImmBorrowFieldGeneric:
		c.ImmBorrowField++
	case op.MutBorrowField, op.MutBorrowFieldGeneric:
		c.MutBorrowField++

	case op.ImmBorrowGlobal, op.ImmBorrowGlobalGeneric:
		c.ImmBorrowGlobal++
	case op.MutBorrowGlobal, op.MutBorrowGlobalGeneric:
		c.MutBorrowGlobal++

	case op.FreezeRef:
		c.Freeze++
	}
}
