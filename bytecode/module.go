package bytecode

import "github.com/deepnoodle-ai/refstats/op"

// FunctionHandle declares a function's name and the indices of its
// parameter and return signatures in the module's signature pool.
type FunctionHandle struct {
	Name       string
	Parameters SignatureIndex
	Return     SignatureIndex
}

// FunctionDef is one function definition in a module. Code is nil for
// native functions, which have no bytecode body to walk. Acquires lists
// the struct definitions the function may access as global resources.
type FunctionDef struct {
	Handle   FunctionHandleIndex
	Acquires []StructDefIndex
	Code     []op.Code
}

// Module is a named collection of function definitions.
// It is immutable after creation and safe for concurrent use.
type Module struct {
	name       string
	signatures []Signature
	handles    []FunctionHandle
	defs       []FunctionDef
}

// ModuleParams contains parameters for creating a new Module.
type ModuleParams struct {
	Name            string
	Signatures      []Signature
	FunctionHandles []FunctionHandle
	FunctionDefs    []FunctionDef
}

// NewModule creates a new immutable Module from the given parameters.
// Input slices are copied to ensure immutability.
func NewModule(params ModuleParams) *Module {
	return &Module{
		name:       params.Name,
		signatures: copySignatures(params.Signatures),
		handles:    copyHandles(params.FunctionHandles),
		defs:       copyDefs(params.FunctionDefs),
	}
}

// Name returns the module's name.
func (m *Module) Name() string {
	return m.name
}

// SignatureCount returns the number of signatures in the module's pool.
func (m *Module) SignatureCount() int {
	return len(m.signatures)
}

// SignatureAt returns a copy of the signature at the given pool index.
func (m *Module) SignatureAt(index SignatureIndex) Signature {
	return copySignature(m.signatures[index])
}

// FunctionHandleCount returns the number of function handles.
func (m *Module) FunctionHandleCount() int {
	return len(m.handles)
}

// FunctionHandleAt returns the function handle at the given index.
func (m *Module) FunctionHandleAt(index FunctionHandleIndex) FunctionHandle {
	return m.handles[index]
}

// FunctionDefCount returns the number of function definitions.
func (m *Module) FunctionDefCount() int {
	return len(m.defs)
}

// FunctionDefAt returns a copy of the function definition at the given
// index. The returned definition's slices are detached from the module.
func (m *Module) FunctionDefAt(index int) FunctionDef {
	return copyDef(m.defs[index])
}

func (m *Module) isUnit() {}
