package main

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/refstats/bytecode"
	"github.com/deepnoodle-ai/refstats/dis"
	"github.com/deepnoodle-ai/refstats/op"
	"github.com/deepnoodle-ai/wonton/cli"
	"github.com/fatih/color"
)

func disHandler(ctx *cli.Context) error {
	processGlobalFlags(ctx)

	path := ctx.Arg(0)
	if path == "" {
		return fmt.Errorf("no unit file provided")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	units, err := bytecode.UnmarshalUnits(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	filter := ctx.String("func")
	var found bool
	for _, unit := range units {
		switch u := unit.(type) {
		case *bytecode.Module:
			for i := 0; i < u.FunctionDefCount(); i++ {
				def := u.FunctionDefAt(i)
				handle := u.FunctionHandleAt(def.Handle)
				if filter != "" && handle.Name != filter {
					continue
				}
				found = true
				if err := printFunction(u.Name()+"::"+handle.Name, def.Code); err != nil {
					return err
				}
			}
		case *bytecode.Script:
			if filter != "" && u.Name() != filter {
				continue
			}
			found = true
			if err := printFunction(u.Name(), u.Code()); err != nil {
				return err
			}
		}
	}
	if filter != "" && !found {
		return fmt.Errorf("function not found: %s", filter)
	}
	return nil
}

func printFunction(name string, code []op.Code) error {
	fmt.Println(color.New(color.FgGreen, color.Bold).Sprintf("func %s", name))
	if code == nil {
		fmt.Println("(native)")
		fmt.Println()
		return nil
	}
	instructions, err := dis.Disassemble(code)
	if err != nil {
		return err
	}
	dis.Print(instructions, os.Stdout)
	fmt.Println()
	return nil
}
