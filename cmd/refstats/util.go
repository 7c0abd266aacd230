package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/deepnoodle-ai/wonton/cli"
	wcolor "github.com/deepnoodle-ai/wonton/color"
	"github.com/fatih/color"
	"github.com/gobwas/glob"
	"github.com/mattn/go-isatty"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const defaultCompiler = "unitc"

// initConfig wires up the optional config file and environment overrides.
// Settings may come from ~/.refstats.yaml or REFSTATS_* variables.
func initConfig() {
	viper.SetConfigName(".refstats")
	viper.SetConfigType("yaml")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("refstats")
	viper.AutomaticEnv()
	viper.SetDefault("compiler", defaultCompiler)
	_ = viper.ReadInConfig()
}

// processGlobalFlags applies flags that affect all commands.
func processGlobalFlags(ctx *cli.Context) {
	if ctx.Bool("no-color") {
		color.NoColor = true
		wcolor.Enabled = false
	}
}

func isTerminalIO() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// resolveCompiler returns the toolchain binary to invoke. The flag wins
// over the config file and environment.
func resolveCompiler(ctx *cli.Context) string {
	if bin := ctx.String("compiler"); bin != "" {
		return bin
	}
	return viper.GetString("compiler")
}

func splitDeps(value string) []string {
	var deps []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			deps = append(deps, item)
		}
	}
	return deps
}

// expandPaths resolves glob patterns in the given paths. Paths without
// glob metacharacters pass through untouched. A pattern that matches no
// files is an error, since silently analyzing an empty corpus would be
// misleading.
func expandPaths(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			paths = append(paths, pattern)
			continue
		}
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		var matched []string
		root := patternRoot(pattern)
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if g.Match(filepath.ToSlash(path)) {
				matched = append(matched, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if len(matched) == 0 {
			return nil, fmt.Errorf("no files match pattern %q", pattern)
		}
		sort.Strings(matched)
		paths = append(paths, matched...)
	}
	return paths, nil
}

// patternRoot returns the longest leading directory of a pattern that
// contains no glob metacharacters.
func patternRoot(pattern string) string {
	dir := pattern
	for strings.ContainsAny(dir, "*?[{") {
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
	if dir == "" {
		return "."
	}
	return dir
}
