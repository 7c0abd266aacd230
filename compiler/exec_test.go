package compiler

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/refstats/bytecode"
	"github.com/stretchr/testify/require"
)

func TestCompileArgs(t *testing.T) {
	args := compileArgs(
		[]string{"a.src", "b.src"},
		[]string{"dep1.src", "dep2.src"},
	)
	require.Equal(t, []string{
		"build", "--emit-json",
		"--dependency", "dep1.src",
		"--dependency", "dep2.src",
		"a.src", "b.src",
	}, args)
}

func TestCompileArgsNoDependencies(t *testing.T) {
	args := compileArgs([]string{"a.src"}, nil)
	require.Equal(t, []string{"build", "--emit-json", "a.src"}, args)
}

func TestParseToolOutputUnits(t *testing.T) {
	data, err := bytecode.MarshalUnits(testUnits())
	require.NoError(t, err)

	result, err := parseToolOutput(data)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, result.Units, 1)
}

func TestParseToolOutputErrors(t *testing.T) {
	out := []byte(`{"errors": [{"severity": "error", "message": "boom", "location": "x.src:1:1"}]}`)
	result, err := parseToolOutput(out)
	require.NoError(t, err)
	require.Nil(t, result.Units)
	require.Len(t, result.Errors, 1)
	require.Equal(t, "boom", result.Errors[0].Message)
}

func TestParseToolOutputInvalid(t *testing.T) {
	_, err := parseToolOutput([]byte("garbage"))
	require.Error(t, err)
}

func TestExecServiceMissingBinary(t *testing.T) {
	svc := NewExecService("refstats-toolchain-does-not-exist")
	_, err := svc.Compile(context.Background(), []string{"a.src"}, nil)
	require.Error(t, err)

	_, err = svc.Verify(context.Background(), testUnits())
	require.Error(t, err)
}
