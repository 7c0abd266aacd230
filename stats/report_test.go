package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
)

func TestRender(t *testing.T) {
	c := Counts{
		ImmBorrowLoc:                     1,
		MutBorrowField:                   1,
		Freeze:                           1,
		TotalInstructions:                3,
		ReferenceParameters:              1,
		TotalFunctions:                   1,
		FunctionsWithReferenceOperations: 1,
		FunctionsWithReferenceSignatures: 1,
		TotalModules:                     1,
	}

	var buf bytes.Buffer
	c.Render(&buf)

	expected := strings.TrimSpace(`
Total reference operations (not including move/copy/pop): 3
  Total borrow local: 1
    Imm borrow local: 1
    Mut borrow local: 0
  Total borrow field: 1
    Imm borrow field: 0
    Mut borrow field: 1
  Total borrow global: 0
    Imm borrow global: 0
    Mut borrow global: 0
  Freeze: 1
Fraction of instructions that are reference instructions: 3/3 (100.00%)

Total reference related annotations: 1
  Total reference function type annotations: 1
    Reference parameters: 1
    Reference return values: 0
  Acquire annotations: 0

Functions with reference operations: 1/1 (100.00%)
Functions with reference signatures: 1/1 (100.00%)
Functions with acquires: 0/1 (0.00%)
Modules with acquires: 0/1 (0.00%)
`)
	assert.Equal(t, buf.String(), expected+"\n")
}

func TestRenderEmptyCorpus(t *testing.T) {
	var buf bytes.Buffer
	Counts{}.Render(&buf)

	report := buf.String()
	// Zero denominators must render as 0.00%, not NaN
	assert.True(t, strings.Contains(report, "Fraction of instructions that are reference instructions: 0/0 (0.00%)"))
	assert.True(t, strings.Contains(report, "Modules with acquires: 0/0 (0.00%)"))
	assert.False(t, strings.Contains(report, "NaN"))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, percent(1, 4), "1/4 (25.00%)")
	assert.Equal(t, percent(2, 3), "2/3 (66.67%)")
	assert.Equal(t, percent(0, 10), "0/10 (0.00%)")
	assert.Equal(t, percent(5, 5), "5/5 (100.00%)")
	assert.Equal(t, percent(0, 0), "0/0 (0.00%)")
}

func TestRenderDeterministic(t *testing.T) {
	c := Counts{MutBorrowGlobal: 2, TotalInstructions: 10, TotalFunctions: 4, TotalModules: 2}
	assert.Equal(t, c.String(), c.String())
}
