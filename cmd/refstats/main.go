package main

import (
	"os"

	"github.com/deepnoodle-ai/wonton/cli"
	"github.com/deepnoodle-ai/wonton/color"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	initConfig()

	app := cli.New("refstats").
		Description("Reference operation statistics for compiled bytecode units").
		Version(version).
		AddCompletionCommand()

	// Global flags
	app.GlobalFlags(
		cli.Bool("no-color", "").Env("NO_COLOR").Help("Disable colored output"),
	)

	// Root command: compile, verify, and analyze a corpus
	app.Main().
		Args("files...").
		Flags(
			cli.String("deps", "d").Help("Comma-separated dependency files"),
			cli.String("compiler", "").Env("REFSTATS_COMPILER").Help("Toolchain binary used to compile and verify"),
			cli.Bool("precompiled", "p").Help("Treat inputs as precompiled unit files"),
			cli.Bool("timing", "").Help("Show time spent in the toolchain"),
			cli.String("output", "o").Enum("json", "text").Help("Output format"),
		).
		Run(runHandler)

	// Disassemble command
	app.Command("dis").
		Description("Disassemble functions in a precompiled unit file").
		Args("file").
		Flags(
			cli.String("func", "").Help("Function to disassemble"),
		).
		Run(disHandler)

	// Version command with JSON support
	app.Command("version").
		Description("Print version information").
		Flags(
			cli.String("output", "o").Enum("json", "text").Help("Output format"),
		).
		Run(versionHandler)

	if err := app.Execute(); err != nil {
		if cli.IsHelpRequested(err) {
			return
		}
		printError(err.Error())
		os.Exit(cli.GetExitCode(err))
	}
}

func printError(msg string) {
	if color.ShouldColorize(os.Stderr) {
		msg = color.Red.Apply(msg)
	}
	os.Stderr.WriteString(msg + "\n")
}
