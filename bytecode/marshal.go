package bytecode

import (
	"encoding/json"
	"fmt"

	"github.com/deepnoodle-ai/refstats/op"
)

// Marshal converts a Unit into a JSON representation.
func Marshal(unit Unit) ([]byte, error) {
	def, err := defFromUnit(unit)
	if err != nil {
		return nil, err
	}
	return json.Marshal(def)
}

// Unmarshal converts a JSON representation into a Unit.
func Unmarshal(data []byte) (Unit, error) {
	var def unitDef
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	return unitFromDef(&def)
}

// MarshalUnits converts a list of Units into a JSON representation. This is
// the wire format emitted by the compiler toolchain.
func MarshalUnits(units []Unit) ([]byte, error) {
	state := &unitsState{Units: make([]*unitDef, len(units))}
	for i, unit := range units {
		def, err := defFromUnit(unit)
		if err != nil {
			return nil, err
		}
		state.Units[i] = def
	}
	return json.Marshal(state)
}

// UnmarshalUnits converts a JSON representation into a list of Units.
func UnmarshalUnits(data []byte) ([]Unit, error) {
	var state unitsState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	units := make([]Unit, len(state.Units))
	for i, def := range state.Units {
		unit, err := unitFromDef(def)
		if err != nil {
			return nil, err
		}
		units[i] = unit
	}
	return units, nil
}

// Serialization types

type tokenDef struct {
	Type string    `json:"type"`
	Elem *tokenDef `json:"elem,omitempty"`
}

type handleDef struct {
	Name       string `json:"name"`
	Parameters uint16 `json:"parameters"`
	Return     uint16 `json:"return"`
}

type functionDef struct {
	Handle   uint16    `json:"handle"`
	Acquires []uint16  `json:"acquires,omitempty"`
	Native   bool      `json:"native,omitempty"`
	Code     []op.Code `json:"code,omitempty"`
}

type moduleDef struct {
	Name            string        `json:"name"`
	Signatures      [][]tokenDef  `json:"signatures"`
	FunctionHandles []handleDef   `json:"function_handles"`
	FunctionDefs    []functionDef `json:"function_defs"`
}

type scriptDef struct {
	Name       string       `json:"name"`
	Signatures [][]tokenDef `json:"signatures"`
	Parameters uint16       `json:"parameters"`
	Code       []op.Code    `json:"code"`
}

type unitDef struct {
	Type   string     `json:"type"`
	Module *moduleDef `json:"module,omitempty"`
	Script *scriptDef `json:"script,omitempty"`
}

type unitsState struct {
	Units []*unitDef `json:"units"`
}

func defFromUnit(unit Unit) (*unitDef, error) {
	switch u := unit.(type) {
	case *Module:
		def, err := defFromModule(u)
		if err != nil {
			return nil, err
		}
		return &unitDef{Type: "module", Module: def}, nil
	case *Script:
		def, err := defFromScript(u)
		if err != nil {
			return nil, err
		}
		return &unitDef{Type: "script", Script: def}, nil
	default:
		return nil, fmt.Errorf("unknown unit type: %T", unit)
	}
}

func unitFromDef(def *unitDef) (Unit, error) {
	switch def.Type {
	case "module":
		if def.Module == nil {
			return nil, fmt.Errorf("module unit missing module body")
		}
		return moduleFromDef(def.Module)
	case "script":
		if def.Script == nil {
			return nil, fmt.Errorf("script unit missing script body")
		}
		return scriptFromDef(def.Script)
	default:
		return nil, fmt.Errorf("unknown unit type: %q", def.Type)
	}
}

func defFromModule(m *Module) (*moduleDef, error) {
	signatures, err := defsFromSignatures(m.signatures)
	if err != nil {
		return nil, err
	}
	handles := make([]handleDef, len(m.handles))
	for i, h := range m.handles {
		handles[i] = handleDef{
			Name:       h.Name,
			Parameters: uint16(h.Parameters),
			Return:     uint16(h.Return),
		}
	}
	defs := make([]functionDef, len(m.defs))
	for i, d := range m.defs {
		acquires := make([]uint16, len(d.Acquires))
		for j, a := range d.Acquires {
			acquires[j] = uint16(a)
		}
		defs[i] = functionDef{
			Handle:   uint16(d.Handle),
			Acquires: acquires,
			Native:   d.Code == nil,
			Code:     copyInstructions(d.Code),
		}
	}
	return &moduleDef{
		Name:            m.name,
		Signatures:      signatures,
		FunctionHandles: handles,
		FunctionDefs:    defs,
	}, nil
}

func moduleFromDef(def *moduleDef) (*Module, error) {
	signatures, err := signaturesFromDefs(def.Signatures)
	if err != nil {
		return nil, err
	}
	handles := make([]FunctionHandle, len(def.FunctionHandles))
	for i, h := range def.FunctionHandles {
		if int(h.Parameters) >= len(signatures) || int(h.Return) >= len(signatures) {
			return nil, fmt.Errorf("function handle %q: signature index out of range", h.Name)
		}
		handles[i] = FunctionHandle{
			Name:       h.Name,
			Parameters: SignatureIndex(h.Parameters),
			Return:     SignatureIndex(h.Return),
		}
	}
	defs := make([]FunctionDef, len(def.FunctionDefs))
	for i, d := range def.FunctionDefs {
		if int(d.Handle) >= len(handles) {
			return nil, fmt.Errorf("function definition %d: handle index %d out of range", i, d.Handle)
		}
		acquires := make([]StructDefIndex, len(d.Acquires))
		for j, a := range d.Acquires {
			acquires[j] = StructDefIndex(a)
		}
		code := d.Code
		if d.Native {
			code = nil
		} else if code == nil {
			code = []op.Code{}
		}
		if err := validateInstructions(code); err != nil {
			return nil, fmt.Errorf("function definition %d: %w", i, err)
		}
		defs[i] = FunctionDef{
			Handle:   FunctionHandleIndex(d.Handle),
			Acquires: acquires,
			Code:     code,
		}
	}
	return NewModule(ModuleParams{
		Name:            def.Name,
		Signatures:      signatures,
		FunctionHandles: handles,
		FunctionDefs:    defs,
	}), nil
}

func defFromScript(s *Script) (*scriptDef, error) {
	signatures, err := defsFromSignatures(s.signatures)
	if err != nil {
		return nil, err
	}
	return &scriptDef{
		Name:       s.name,
		Signatures: signatures,
		Parameters: uint16(s.parameters),
		Code:       copyInstructions(s.code),
	}, nil
}

func scriptFromDef(def *scriptDef) (*Script, error) {
	signatures, err := signaturesFromDefs(def.Signatures)
	if err != nil {
		return nil, err
	}
	if int(def.Parameters) >= len(signatures) {
		return nil, fmt.Errorf("script %q: parameter signature index %d out of range", def.Name, def.Parameters)
	}
	if err := validateInstructions(def.Code); err != nil {
		return nil, fmt.Errorf("script %q: %w", def.Name, err)
	}
	return NewScript(ScriptParams{
		Name:       def.Name,
		Signatures: signatures,
		Parameters: SignatureIndex(def.Parameters),
		Code:       def.Code,
	}), nil
}

// validateInstructions walks an instruction stream checking that every
// opcode is known and that the stream does not end mid-instruction. Unit
// documents come from outside the process, so malformed streams must be
// rejected here rather than discovered while counting.
func validateInstructions(code []op.Code) error {
	for pos := 0; pos < len(code); {
		opcode := code[pos]
		info := op.GetInfo(opcode)
		if info.Name == "" {
			return fmt.Errorf("unknown opcode %d at offset %d", opcode, pos)
		}
		end := pos + 1 + info.OperandCount
		if end > len(code) {
			return fmt.Errorf("truncated instruction stream at offset %d", pos)
		}
		pos = end
	}
	return nil
}

func defsFromSignatures(signatures []Signature) ([][]tokenDef, error) {
	defs := make([][]tokenDef, len(signatures))
	for i, sig := range signatures {
		tokens := make([]tokenDef, len(sig))
		for j, tok := range sig {
			def, err := defFromToken(tok)
			if err != nil {
				return nil, err
			}
			tokens[j] = def
		}
		defs[i] = tokens
	}
	return defs, nil
}

func signaturesFromDefs(defs [][]tokenDef) ([]Signature, error) {
	signatures := make([]Signature, len(defs))
	for i, tokens := range defs {
		sig := make(Signature, len(tokens))
		for j, def := range tokens {
			tok, err := tokenFromDef(def)
			if err != nil {
				return nil, err
			}
			sig[j] = tok
		}
		signatures[i] = sig
	}
	return signatures, nil
}

func defFromToken(tok SignatureToken) (tokenDef, error) {
	name := tok.Tag.String()
	if name == "" {
		return tokenDef{}, fmt.Errorf("unknown signature token tag: %d", tok.Tag)
	}
	def := tokenDef{Type: name}
	if tok.Elem != nil {
		elem, err := defFromToken(*tok.Elem)
		if err != nil {
			return tokenDef{}, err
		}
		def.Elem = &elem
	}
	return def, nil
}

var tokenTags = map[string]TypeTag{
	"bool":              TagBool,
	"u8":                TagU8,
	"u64":               TagU64,
	"u128":              TagU128,
	"address":           TagAddress,
	"signer":            TagSigner,
	"vector":            TagVector,
	"struct":            TagStruct,
	"struct_generic":    TagStructGeneric,
	"type_param":        TagTypeParam,
	"reference":         TagReference,
	"mutable_reference": TagMutableReference,
}

func tokenFromDef(def tokenDef) (SignatureToken, error) {
	tag, ok := tokenTags[def.Type]
	if !ok {
		return SignatureToken{}, fmt.Errorf("unknown signature token type: %q", def.Type)
	}
	tok := SignatureToken{Tag: tag}
	if def.Elem != nil {
		elem, err := tokenFromDef(*def.Elem)
		if err != nil {
			return SignatureToken{}, err
		}
		tok.Elem = &elem
	}
	return tok, nil
}
