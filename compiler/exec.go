package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"github.com/deepnoodle-ai/refstats/bytecode"
)

// ExecService invokes an external toolchain binary. The binary is expected
// to support:
//
//	<binary> build --emit-json [--dependency FILE]... SOURCE...
//	<binary> verify --emit-json -
//
// Both commands write a JSON document to stdout containing either a "units"
// array in the bytecode wire format or an "errors" array of diagnostics.
// The verify command reads a units document from stdin.
type ExecService struct {
	binary string
}

// NewExecService creates a Service that shells out to the given binary.
func NewExecService(binary string) *ExecService {
	return &ExecService{binary: binary}
}

// toolOutput is the envelope emitted by the toolchain on stdout.
type toolOutput struct {
	Errors []Diagnostic `json:"errors,omitempty"`
}

// Compile implements Service.
func (s *ExecService) Compile(ctx context.Context, sources, dependencies []string) (*Result, error) {
	args := compileArgs(sources, dependencies)
	cmd := exec.CommandContext(ctx, s.binary, args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, commandError("compile", err)
	}
	return parseToolOutput(out)
}

// Verify implements Service.
func (s *ExecService) Verify(ctx context.Context, units []bytecode.Unit) (*Result, error) {
	input, err := bytecode.MarshalUnits(units)
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, s.binary, "verify", "--emit-json", "-")
	cmd.Stdin = bytes.NewReader(input)
	out, err := cmd.Output()
	if err != nil {
		return nil, commandError("verify", err)
	}
	return parseToolOutput(out)
}

func compileArgs(sources, dependencies []string) []string {
	args := []string{"build", "--emit-json"}
	for _, dep := range dependencies {
		args = append(args, "--dependency", dep)
	}
	args = append(args, sources...)
	return args
}

func parseToolOutput(out []byte) (*Result, error) {
	var envelope toolOutput
	if err := json.Unmarshal(out, &envelope); err != nil {
		return nil, fmt.Errorf("invalid toolchain output: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return &Result{Errors: envelope.Errors}, nil
	}
	units, err := bytecode.UnmarshalUnits(out)
	if err != nil {
		return nil, fmt.Errorf("invalid toolchain output: %w", err)
	}
	return &Result{Units: units}, nil
}

func commandError(stage string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return fmt.Errorf("%s command failed: %w: %s", stage, err, bytes.TrimSpace(exitErr.Stderr))
	}
	return fmt.Errorf("%s command failed: %w", stage, err)
}
