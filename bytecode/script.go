package bytecode

import "github.com/deepnoodle-ai/refstats/op"

// Script is a single top-level executable function. Scripts carry no
// return signature and cannot declare acquires.
// It is immutable after creation and safe for concurrent use.
type Script struct {
	name       string
	signatures []Signature
	parameters SignatureIndex
	code       []op.Code
}

// ScriptParams contains parameters for creating a new Script.
type ScriptParams struct {
	Name       string
	Signatures []Signature
	Parameters SignatureIndex
	Code       []op.Code
}

// NewScript creates a new immutable Script from the given parameters.
// Input slices are copied to ensure immutability.
func NewScript(params ScriptParams) *Script {
	return &Script{
		name:       params.Name,
		signatures: copySignatures(params.Signatures),
		parameters: params.Parameters,
		code:       copyInstructions(params.Code),
	}
}

// Name returns the script's name.
func (s *Script) Name() string {
	return s.name
}

// SignatureCount returns the number of signatures in the script's pool.
func (s *Script) SignatureCount() int {
	return len(s.signatures)
}

// SignatureAt returns a copy of the signature at the given pool index.
func (s *Script) SignatureAt(index SignatureIndex) Signature {
	return copySignature(s.signatures[index])
}

// Parameters returns the pool index of the script's parameter signature.
func (s *Script) Parameters() SignatureIndex {
	return s.parameters
}

// Code returns a copy of the script's instruction stream.
func (s *Script) Code() []op.Code {
	return copyInstructions(s.code)
}

func (s *Script) isUnit() {}
