// Package bytecode provides immutable representations of compiled program
// units.
//
// This package defines the input to analysis: pure data structures that
// represent compiled modules and scripts, their function signatures, and
// their instruction streams. These types are produced by an external
// compiler+verifier toolchain and are created once, then shared safely
// across readers.
//
// # Key Types
//
//   - [Unit]: A compiled program unit, either a [Module] or a [Script]
//   - [Module]: A named collection of function definitions with signature
//     and handle pools
//   - [Script]: A single top-level function body with its parameter
//     signature
//   - [SignatureToken]: One type token in a function signature
//
// # Immutability Guarantees
//
// Module and Script are immutable after construction:
//
//   - No mutation methods exist on either type
//   - All fields are unexported
//   - Constructors copy input slices to prevent caller mutation
//   - Accessors return values or copies, never internal slices
//
// # Usage
//
// Units typically arrive from the compiler service boundary:
//
//	units, err := bytecode.UnmarshalUnits(data)
//	if err != nil {
//	    return err
//	}
//	for _, unit := range units {
//	    fmt.Printf("unit: %s\n", unit.Name())
//	}
package bytecode
