package bytecode

import "github.com/deepnoodle-ai/refstats/op"

// copyInstructions returns a copy of the given instruction slice.
func copyInstructions(src []op.Code) []op.Code {
	if src == nil {
		return nil
	}
	dst := make([]op.Code, len(src))
	copy(dst, src)
	return dst
}

// copySignature returns a copy of the given signature.
func copySignature(src Signature) Signature {
	if src == nil {
		return nil
	}
	dst := make(Signature, len(src))
	copy(dst, src)
	return dst
}

// copySignatures returns a deep copy of the given signature pool.
func copySignatures(src []Signature) []Signature {
	if src == nil {
		return nil
	}
	dst := make([]Signature, len(src))
	for i, sig := range src {
		dst[i] = copySignature(sig)
	}
	return dst
}

// copyHandles returns a copy of the given function handle slice.
func copyHandles(src []FunctionHandle) []FunctionHandle {
	if src == nil {
		return nil
	}
	dst := make([]FunctionHandle, len(src))
	copy(dst, src)
	return dst
}

// copyAcquires returns a copy of the given acquires list.
func copyAcquires(src []StructDefIndex) []StructDefIndex {
	if src == nil {
		return nil
	}
	dst := make([]StructDefIndex, len(src))
	copy(dst, src)
	return dst
}

// copyDef returns a deep copy of the given function definition.
func copyDef(src FunctionDef) FunctionDef {
	return FunctionDef{
		Handle:   src.Handle,
		Acquires: copyAcquires(src.Acquires),
		Code:     copyInstructions(src.Code),
	}
}

// copyDefs returns a deep copy of the given function definition slice.
func copyDefs(src []FunctionDef) []FunctionDef {
	if src == nil {
		return nil
	}
	dst := make([]FunctionDef, len(src))
	for i, def := range src {
		dst[i] = copyDef(def)
	}
	return dst
}
