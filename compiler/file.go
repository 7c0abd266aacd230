package compiler

import (
	"context"
	"fmt"
	"os"

	"github.com/deepnoodle-ai/refstats/bytecode"
)

// FileService loads precompiled unit documents from disk instead of
// invoking the toolchain. Each "source" path must contain a units document
// in the bytecode wire format, as written by the toolchain's --emit-json
// mode. Dependency paths are ignored: precompiled units are already linked.
type FileService struct{}

// NewFileService creates a Service that reads precompiled unit files.
func NewFileService() *FileService {
	return &FileService{}
}

// Compile implements Service by deserializing the given unit files.
func (s *FileService) Compile(ctx context.Context, sources, dependencies []string) (*Result, error) {
	var all []bytecode.Unit
	for _, path := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		units, err := bytecode.UnmarshalUnits(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		all = append(all, units...)
	}
	return &Result{Units: all}, nil
}

// Verify implements Service. Precompiled units were verified by the
// toolchain that produced them, so this is a pass-through.
func (s *FileService) Verify(ctx context.Context, units []bytecode.Unit) (*Result, error) {
	return &Result{Units: units}, nil
}
