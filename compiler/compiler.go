// Package compiler defines the boundary to the external compiler+verifier
// toolchain. The analysis core consumes compiled units as an opaque input;
// it never parses source text or verifies bytecode itself.
package compiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/refstats/bytecode"
)

// Service compiles source files into program units and verifies compiled
// units. Implementations wrap an external toolchain; tests use synthetic
// units instead.
type Service interface {
	// Compile builds the given source files against the given dependency
	// files. A Result with a non-empty Errors list indicates compilation
	// failure.
	Compile(ctx context.Context, sources, dependencies []string) (*Result, error)

	// Verify runs bytecode verification over the given units. The returned
	// units may be reordered or filtered. A Result with a non-empty Errors
	// list indicates verification failure.
	Verify(ctx context.Context, units []bytecode.Unit) (*Result, error)
}

// Result is the outcome of one Compile or Verify call: either units, or a
// non-empty list of diagnostics.
type Result struct {
	Units  []bytecode.Unit
	Errors []Diagnostic
}

// Diagnostic is one error or warning reported by the toolchain.
type Diagnostic struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

// String returns a single-line representation of the diagnostic.
func (d Diagnostic) String() string {
	if d.Location != "" {
		return fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// DiagnosticsError is returned when a toolchain stage reports diagnostics.
// Analysis must not proceed past it: a verify-stage DiagnosticsError is a
// precondition violation for the statistics core.
type DiagnosticsError struct {
	Stage       string // "compile" or "verify"
	Diagnostics []Diagnostic
}

// Error implements the error interface.
func (e *DiagnosticsError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s failed with %d error(s)", e.Stage, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		sb.WriteString("\n  ")
		sb.WriteString(d.String())
	}
	return sb.String()
}

// CompileAndVerify runs both toolchain stages and returns the verified
// units, failing fast if either stage reports diagnostics.
func CompileAndVerify(ctx context.Context, svc Service, sources, dependencies []string) ([]bytecode.Unit, error) {
	compiled, err := svc.Compile(ctx, sources, dependencies)
	if err != nil {
		return nil, err
	}
	if len(compiled.Errors) > 0 {
		return nil, &DiagnosticsError{Stage: "compile", Diagnostics: compiled.Errors}
	}
	verified, err := svc.Verify(ctx, compiled.Units)
	if err != nil {
		return nil, err
	}
	if len(verified.Errors) > 0 {
		return nil, &DiagnosticsError{Stage: "verify", Diagnostics: verified.Errors}
	}
	return verified.Units, nil
}
