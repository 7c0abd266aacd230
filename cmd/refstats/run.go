package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/deepnoodle-ai/refstats/compiler"
	"github.com/deepnoodle-ai/refstats/stats"
	"github.com/deepnoodle-ai/wonton/cli"
)

func runHandler(ctx *cli.Context) error {
	processGlobalFlags(ctx)

	if len(ctx.Args()) == 0 {
		return fmt.Errorf("no input files provided")
	}
	sources, err := expandPaths(ctx.Args())
	if err != nil {
		return err
	}
	var deps []string
	if value := ctx.String("deps"); value != "" {
		if deps, err = expandPaths(splitDeps(value)); err != nil {
			return err
		}
	}

	svc := getService(ctx)

	// The two toolchain stages are run separately here, rather than via
	// compiler.CompileAndVerify, so that each stage can be timed.
	compileStart := time.Now()
	compiled, err := svc.Compile(ctx.Context(), sources, deps)
	compileElapsed := time.Since(compileStart)
	if err != nil {
		return err
	}
	if len(compiled.Errors) > 0 {
		return &compiler.DiagnosticsError{Stage: "compile", Diagnostics: compiled.Errors}
	}
	verifyStart := time.Now()
	verified, err := svc.Verify(ctx.Context(), compiled.Units)
	verifyElapsed := time.Since(verifyStart)
	if err != nil {
		return err
	}
	if len(verified.Errors) > 0 {
		return &compiler.DiagnosticsError{Stage: "verify", Diagnostics: verified.Errors}
	}
	if ctx.Bool("timing") {
		fmt.Fprintf(os.Stderr, "Milliseconds to compile units: %d\n",
			compileElapsed.Milliseconds())
		fmt.Fprintf(os.Stderr, "Milliseconds to verify compiled units: %d\n",
			verifyElapsed.Milliseconds())
	}

	counts, err := stats.Analyze(verified.Units)
	if err != nil {
		return err
	}

	switch strings.ToLower(ctx.String("output")) {
	case "", "text":
		counts.Render(os.Stdout)
	case "json":
		out, err := getOutputJSON(counts, ctx.Bool("no-color"))
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		return fmt.Errorf("unknown output format: %s", ctx.String("output"))
	}
	return nil
}

func getService(ctx *cli.Context) compiler.Service {
	if ctx.Bool("precompiled") {
		return compiler.NewFileService()
	}
	return compiler.NewExecService(resolveCompiler(ctx))
}
