package stats

import (
	"testing"

	"github.com/deepnoodle-ai/refstats/bytecode"
	"github.com/deepnoodle-ai/refstats/op"
	"github.com/deepnoodle-ai/wonton/assert"
)

// refModule builds a module with a single function whose signature has one
// reference parameter and whose body contains one borrow of each shape.
func refModule() *bytecode.Module {
	return bytecode.NewModule(bytecode.ModuleParams{
		Name: "m",
		Signatures: []bytecode.Signature{
			{bytecode.Reference(bytecode.U64())},
			{},
		},
		FunctionHandles: []bytecode.FunctionHandle{
			{Name: "f", Parameters: 0, Return: 1},
		},
		FunctionDefs: []bytecode.FunctionDef{
			{Handle: 0, Code: []op.Code{
				op.ImmBorrowLoc, 0,
				op.MutBorrowField, 0,
				op.FreezeRef,
			}},
		},
	})
}

func TestCountModuleWithReferenceFunction(t *testing.T) {
	var counts Counts
	counts.CountModule(refModule())

	assert.Equal(t, counts.ImmBorrowLoc, 1)
	assert.Equal(t, counts.MutBorrowField, 1)
	assert.Equal(t, counts.Freeze, 1)
	assert.Equal(t, counts.TotalInstructions, 3)
	assert.Equal(t, counts.ReferenceParameters, 1)
	assert.Equal(t, counts.ReferenceReturnValues, 0)
	assert.Equal(t, counts.FunctionsWithReferenceSignatures, 1)
	assert.Equal(t, counts.FunctionsWithReferenceOperations, 1)
	assert.Equal(t, counts.FunctionsWithAcquires, 0)
	assert.Equal(t, counts.TotalFunctions, 1)
	assert.Equal(t, counts.TotalModules, 1)
	assert.Equal(t, counts.ModulesWithAcquires, 0)
}

func TestCountScript(t *testing.T) {
	script := bytecode.NewScript(bytecode.ScriptParams{
		Name:       "main",
		Signatures: []bytecode.Signature{{bytecode.U64()}},
		Parameters: 0,
		Code:       []op.Code{op.MutBorrowGlobal, 0},
	})

	var counts Counts
	counts.CountScript(script)

	assert.Equal(t, counts.MutBorrowGlobal, 1)
	assert.Equal(t, counts.TotalInstructions, 1)
	assert.Equal(t, counts.ReferenceParameters, 0)
	assert.Equal(t, counts.FunctionsWithReferenceSignatures, 0)
	assert.Equal(t, counts.FunctionsWithReferenceOperations, 1)
	assert.Equal(t, counts.TotalFunctions, 1)
	// Scripts are not modules
	assert.Equal(t, counts.TotalModules, 0)
	assert.Equal(t, counts.ModulesWithAcquires, 0)
}

func TestCountModuleAcquires(t *testing.T) {
	mod := bytecode.NewModule(bytecode.ModuleParams{
		Name:       "m",
		Signatures: []bytecode.Signature{{}},
		FunctionHandles: []bytecode.FunctionHandle{
			{Name: "with_acquires", Parameters: 0, Return: 0},
			{Name: "without", Parameters: 0, Return: 0},
		},
		FunctionDefs: []bytecode.FunctionDef{
			{Handle: 0, Acquires: []bytecode.StructDefIndex{0, 1}, Code: []op.Code{op.Ret}},
			{Handle: 1, Code: []op.Code{op.Ret}},
		},
	})

	var counts Counts
	counts.CountModule(mod)

	assert.Equal(t, counts.AcquiresAnnotations, 2)
	assert.Equal(t, counts.FunctionsWithAcquires, 1)
	assert.Equal(t, counts.ModulesWithAcquires, 1)
	assert.Equal(t, counts.TotalFunctions, 2)
}

func TestCountModuleWithoutAcquires(t *testing.T) {
	var counts Counts
	counts.CountModule(refModule())
	assert.Equal(t, counts.AcquiresAnnotations, 0)
	assert.Equal(t, counts.ModulesWithAcquires, 0)
}

func TestAnalyzeEmptyCorpus(t *testing.T) {
	counts, err := Analyze(nil)
	assert.Nil(t, err)
	assert.Equal(t, counts, Counts{})

	// Report generation on an empty corpus must not fail
	report := counts.String()
	assert.True(t, len(report) > 0)
}

func TestCountUnitDispatch(t *testing.T) {
	var counts Counts
	assert.Nil(t, counts.CountUnit(refModule()))
	assert.Equal(t, counts.TotalModules, 1)

	script := bytecode.NewScript(bytecode.ScriptParams{
		Name:       "main",
		Signatures: []bytecode.Signature{{}},
		Code:       []op.Code{op.Ret},
	})
	assert.Nil(t, counts.CountUnit(script))
	assert.Equal(t, counts.TotalFunctions, 2)

	err := counts.CountUnit(nil)
	assert.NotNil(t, err)
}

func TestNativeFunctionsHaveNoBody(t *testing.T) {
	mod := bytecode.NewModule(bytecode.ModuleParams{
		Name: "hash",
		Signatures: []bytecode.Signature{
			{bytecode.Reference(bytecode.Vector(bytecode.U8()))},
			{},
		},
		FunctionHandles: []bytecode.FunctionHandle{
			{Name: "sha3", Parameters: 0, Return: 1},
		},
		FunctionDefs: []bytecode.FunctionDef{
			{Handle: 0, Code: nil},
		},
	})

	var counts Counts
	counts.CountModule(mod)

	// The signature is still counted, but no instructions are visited
	assert.Equal(t, counts.TotalFunctions, 1)
	assert.Equal(t, counts.ReferenceParameters, 1)
	assert.Equal(t, counts.FunctionsWithReferenceSignatures, 1)
	assert.Equal(t, counts.TotalInstructions, 0)
	assert.Equal(t, counts.FunctionsWithReferenceOperations, 0)
}

func TestGenericVariantsCountIdentically(t *testing.T) {
	var plain Counts
	plain.CountInstructions([]op.Code{
		op.ImmBorrowField, 0,
		op.MutBorrowField, 0,
		op.ImmBorrowGlobal, 0,
		op.MutBorrowGlobal, 0,
	})

	var generic Counts
	generic.CountInstructions([]op.Code{
		op.ImmBorrowFieldGeneric, 0,
		op.MutBorrowFieldGeneric, 0,
		op.ImmBorrowGlobalGeneric, 0,
		op.MutBorrowGlobalGeneric, 0,
	})

	assert.Equal(t, generic, plain)
}

func TestTotalInstructionIdentity(t *testing.T) {
	// A stream mixing reference and non-reference instructions
	code := []op.Code{
		op.CopyLoc, 0,
		op.ImmBorrowLoc, 1,
		op.ReadRef,
		op.LdConst, 0,
		op.Add,
		op.MutBorrowGlobal, 0,
		op.WriteRef,
		op.Ret,
	}

	var counts Counts
	counts.CountInstructions(code)

	nonReference := 6 // CopyLoc, ReadRef, LdConst, Add, WriteRef, Ret
	assert.Equal(t, counts.TotalInstructions, counts.TotalReferenceOperations()+nonReference)
	assert.Equal(t, counts.TotalInstructions, 8)
}

func TestFunctionWithoutReferenceOperations(t *testing.T) {
	var counts Counts
	counts.CountInstructions([]op.Code{op.LdTrue, op.Pop, op.Ret})
	assert.Equal(t, counts.TotalInstructions, 3)
	assert.Equal(t, counts.TotalReferenceOperations(), 0)
	assert.Equal(t, counts.FunctionsWithReferenceOperations, 0)
}

func TestCountInstructionsMalformedStream(t *testing.T) {
	// Streams built outside the unmarshal boundary may be malformed; an
	// out-of-table opcode and a truncated final instruction must both be
	// counted without reading past the stream.
	var counts Counts
	counts.CountInstructions([]op.Code{op.Code(300), op.ImmBorrowLoc})
	assert.Equal(t, counts.TotalInstructions, 2)
	assert.Equal(t, counts.ImmBorrowLoc, 1)
	assert.Equal(t, counts.TotalReferenceOperations(), 1)
}

func TestOrderIndependence(t *testing.T) {
	defs := []bytecode.FunctionDef{
		{Handle: 0, Acquires: []bytecode.StructDefIndex{0}, Code: []op.Code{op.ImmBorrowLoc, 0, op.Ret}},
		{Handle: 1, Code: []op.Code{op.Ret}},
		{Handle: 2, Code: []op.Code{op.FreezeRef, op.Ret}},
	}
	handles := []bytecode.FunctionHandle{
		{Name: "a", Parameters: 0, Return: 1},
		{Name: "b", Parameters: 1, Return: 1},
		{Name: "c", Parameters: 0, Return: 0},
	}
	signatures := []bytecode.Signature{
		{bytecode.MutableReference(bytecode.Struct())},
		{},
	}

	build := func(order []int) *bytecode.Module {
		ordered := make([]bytecode.FunctionDef, len(order))
		for i, j := range order {
			ordered[i] = defs[j]
		}
		return bytecode.NewModule(bytecode.ModuleParams{
			Name:            "m",
			Signatures:      signatures,
			FunctionHandles: handles,
			FunctionDefs:    ordered,
		})
	}

	first, err := Analyze([]bytecode.Unit{build([]int{0, 1, 2})})
	assert.Nil(t, err)
	second, err := Analyze([]bytecode.Unit{build([]int{2, 0, 1})})
	assert.Nil(t, err)
	assert.Equal(t, first, second)

	// Corpus order is also irrelevant
	script := bytecode.NewScript(bytecode.ScriptParams{
		Name:       "main",
		Signatures: []bytecode.Signature{{}},
		Code:       []op.Code{op.MutBorrowLoc, 0, op.Ret},
	})
	forward, err := Analyze([]bytecode.Unit{build([]int{0, 1, 2}), script})
	assert.Nil(t, err)
	reverse, err := Analyze([]bytecode.Unit{script, build([]int{0, 1, 2})})
	assert.Nil(t, err)
	assert.Equal(t, forward, reverse)
}

func TestIdempotence(t *testing.T) {
	mod := refModule()

	first, err := Analyze([]bytecode.Unit{mod})
	assert.Nil(t, err)
	second, err := Analyze([]bytecode.Unit{mod})
	assert.Nil(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.String(), second.String())
}

func TestClassificationBounds(t *testing.T) {
	script := bytecode.NewScript(bytecode.ScriptParams{
		Name:       "main",
		Signatures: []bytecode.Signature{{bytecode.Reference(bytecode.U64())}},
		Code:       []op.Code{op.ImmBorrowLoc, 0, op.FreezeRef, op.Ret},
	})
	counts, err := Analyze([]bytecode.Unit{refModule(), script})
	assert.Nil(t, err)

	assert.True(t, counts.FunctionsWithReferenceOperations <= counts.TotalFunctions)
	assert.True(t, counts.FunctionsWithReferenceSignatures <= counts.TotalFunctions)
	assert.True(t, counts.FunctionsWithAcquires <= counts.TotalFunctions)
	assert.True(t, counts.ModulesWithAcquires <= counts.TotalModules)
	assert.True(t, counts.TotalInstructions >= counts.TotalReferenceOperations())
}

func TestMultipleReferenceTokensCountOncePerFunction(t *testing.T) {
	var counts Counts
	counts.CountSignature(
		bytecode.Signature{
			bytecode.Reference(bytecode.U64()),
			bytecode.MutableReference(bytecode.Struct()),
		},
		bytecode.Signature{bytecode.Reference(bytecode.Struct())},
		nil,
	)
	assert.Equal(t, counts.ReferenceParameters, 2)
	assert.Equal(t, counts.ReferenceReturnValues, 1)
	// Reference-bearing classification is per-function, not per-token
	assert.Equal(t, counts.FunctionsWithReferenceSignatures, 1)
}
