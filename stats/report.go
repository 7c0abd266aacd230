package stats

import (
	"fmt"
	"io"
	"strings"
)

// percent formats x over y as "x/y (p.pp%)". An empty corpus makes some
// denominators zero; that case renders as "0.00%" rather than propagating
// a non-finite float into the report.
func percent(x, y int) string {
	if y == 0 {
		return fmt.Sprintf("%d/%d (0.00%%)", x, y)
	}
	return fmt.Sprintf("%d/%d (%.2f%%)", x, y, float64(x)/float64(y)*100)
}

// Render writes the fixed-format report for the accumulated counts. The
// output is deterministic: equal counts always render byte-identically.
func (c Counts) Render(w io.Writer) {
	totalReferenceOperations := c.TotalReferenceOperations()

	fmt.Fprintf(w, "Total reference operations (not including move/copy/pop): %d\n",
		totalReferenceOperations)
	fmt.Fprintf(w, "  Total borrow local: %d\n", c.ImmBorrowLoc+c.MutBorrowLoc)
	fmt.Fprintf(w, "    Imm borrow local: %d\n", c.ImmBorrowLoc)
	fmt.Fprintf(w, "    Mut borrow local: %d\n", c.MutBorrowLoc)
	fmt.Fprintf(w, "  Total borrow field: %d\n", c.ImmBorrowField+c.MutBorrowField)
	fmt.Fprintf(w, "    Imm borrow field: %d\n", c.ImmBorrowField)
	fmt.Fprintf(w, "    Mut borrow field: %d\n", c.MutBorrowField)
	fmt.Fprintf(w, "  Total borrow global: %d\n", c.ImmBorrowGlobal+c.MutBorrowGlobal)
	fmt.Fprintf(w, "    Imm borrow global: %d\n", c.ImmBorrowGlobal)
	fmt.Fprintf(w, "    Mut borrow global: %d\n", c.MutBorrowGlobal)
	fmt.Fprintf(w, "  Freeze: %d\n", c.Freeze)
	fmt.Fprintf(w, "Fraction of instructions that are reference instructions: %s\n",
		percent(totalReferenceOperations, c.TotalInstructions))
	fmt.Fprintln(w)

	totalAnnotations := c.ReferenceParameters + c.ReferenceReturnValues + c.AcquiresAnnotations
	fmt.Fprintf(w, "Total reference related annotations: %d\n", totalAnnotations)
	fmt.Fprintf(w, "  Total reference function type annotations: %d\n",
		c.ReferenceParameters+c.ReferenceReturnValues)
	fmt.Fprintf(w, "    Reference parameters: %d\n", c.ReferenceParameters)
	fmt.Fprintf(w, "    Reference return values: %d\n", c.ReferenceReturnValues)
	fmt.Fprintf(w, "  Acquire annotations: %d\n", c.AcquiresAnnotations)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Functions with reference operations: %s\n",
		percent(c.FunctionsWithReferenceOperations, c.TotalFunctions))
	fmt.Fprintf(w, "Functions with reference signatures: %s\n",
		percent(c.FunctionsWithReferenceSignatures, c.TotalFunctions))
	fmt.Fprintf(w, "Functions with acquires: %s\n",
		percent(c.FunctionsWithAcquires, c.TotalFunctions))
	fmt.Fprintf(w, "Modules with acquires: %s\n",
		percent(c.ModulesWithAcquires, c.TotalModules))
}

// String returns the rendered report as a string.
func (c Counts) String() string {
	var sb strings.Builder
	c.Render(&sb)
	return sb.String()
}
