package main

import (
	"fmt"
	"runtime"

	"github.com/deepnoodle-ai/wonton/cli"
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

func versionHandler(ctx *cli.Context) error {
	processGlobalFlags(ctx)

	info := versionInfo{
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
	if ctx.String("output") == "json" {
		out, err := getOutputJSON(info, ctx.Bool("no-color"))
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	fmt.Printf("refstats %s (commit %s, built %s, %s)\n",
		info.Version, info.Commit, info.Date, info.GoVersion)
	return nil
}
