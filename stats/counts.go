// Package stats computes aggregate reference-operation statistics over a
// corpus of compiled, verified bytecode units.
//
// A single Counts accumulator is threaded through every classifier call for
// the duration of one run. Every field is a simple additive counter, so
// partial Counts produced by independent walks can be combined with Merge
// in any order without changing the result.
package stats

// Counts accumulates the statistics for one analysis run. All counters are
// monotonically non-decreasing while a corpus is walked.
type Counts struct {
	// Reference operations by instruction kind. Generic field and global
	// borrow variants count toward the same fields as their non-generic
	// counterparts.
	ImmBorrowLoc    int `json:"imm_borrow_loc"`
	MutBorrowLoc    int `json:"mut_borrow_loc"`
	ImmBorrowField  int `json:"imm_borrow_field"`
	MutBorrowField  int `json:"mut_borrow_field"`
	ImmBorrowGlobal int `json:"imm_borrow_global"`
	MutBorrowGlobal int `json:"mut_borrow_global"`
	Freeze          int `json:"freeze"`

	// TotalInstructions counts every instruction visited, reference
	// related or not.
	TotalInstructions int `json:"total_instructions"`

	// Signature and acquire annotations, summed across all functions.
	ReferenceParameters   int `json:"reference_parameters"`
	ReferenceReturnValues int `json:"reference_return_values"`
	AcquiresAnnotations   int `json:"acquires_annotations"`

	// Per-function classification.
	TotalFunctions                   int `json:"total_functions"`
	FunctionsWithReferenceOperations int `json:"functions_with_reference_operations"`
	FunctionsWithReferenceSignatures int `json:"functions_with_reference_signatures"`
	FunctionsWithAcquires            int `json:"functions_with_acquires"`

	// Per-module classification. Scripts are not modules and never
	// contribute here.
	TotalModules        int `json:"total_modules"`
	ModulesWithAcquires int `json:"modules_with_acquires"`
}

// TotalReferenceOperations returns the sum of the seven reference-operation
// counters. Move, copy, and pop instructions are not reference operations.
func (c *Counts) TotalReferenceOperations() int {
	return c.ImmBorrowLoc +
		c.MutBorrowLoc +
		c.ImmBorrowField +
		c.MutBorrowField +
		c.ImmBorrowGlobal +
		c.MutBorrowGlobal +
		c.Freeze
}

// Merge adds the counters from other into c field-wise. Merging is
// associative and commutative, so partial counts accumulated over disjoint
// subsets of a corpus can be combined in any order.
func (c *Counts) Merge(other Counts) {
	c.ImmBorrowLoc += other.ImmBorrowLoc
	c.MutBorrowLoc += other.MutBorrowLoc
	c.ImmBorrowField += other.ImmBorrowField
	c.MutBorrowField += other.MutBorrowField
	c.ImmBorrowGlobal += other.ImmBorrowGlobal
	c.MutBorrowGlobal += other.MutBorrowGlobal
	c.Freeze += other.Freeze
	c.TotalInstructions += other.TotalInstructions
	c.ReferenceParameters += other.ReferenceParameters
	c.ReferenceReturnValues += other.ReferenceReturnValues
	c.AcquiresAnnotations += other.AcquiresAnnotations
	c.TotalFunctions += other.TotalFunctions
	c.FunctionsWithReferenceOperations += other.FunctionsWithReferenceOperations
	c.FunctionsWithReferenceSignatures += other.FunctionsWithReferenceSignatures
	c.FunctionsWithAcquires += other.FunctionsWithAcquires
	c.TotalModules += other.TotalModules
	c.ModulesWithAcquires += other.ModulesWithAcquires
}
