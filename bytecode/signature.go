package bytecode

// TypeTag identifies the variant of a SignatureToken.
type TypeTag uint8

const (
	TagInvalid          TypeTag = 0
	TagBool             TypeTag = 1
	TagU8               TypeTag = 2
	TagU64              TypeTag = 3
	TagU128             TypeTag = 4
	TagAddress          TypeTag = 5
	TagSigner           TypeTag = 6
	TagVector           TypeTag = 7
	TagStruct           TypeTag = 8
	TagStructGeneric    TypeTag = 9
	TagTypeParam        TypeTag = 10
	TagReference        TypeTag = 11
	TagMutableReference TypeTag = 12
)

// String returns the serialized name of the type tag.
func (t TypeTag) String() string {
	switch t {
	case TagBool:
		return "bool"
	case TagU8:
		return "u8"
	case TagU64:
		return "u64"
	case TagU128:
		return "u128"
	case TagAddress:
		return "address"
	case TagSigner:
		return "signer"
	case TagVector:
		return "vector"
	case TagStruct:
		return "struct"
	case TagStructGeneric:
		return "struct_generic"
	case TagTypeParam:
		return "type_param"
	case TagReference:
		return "reference"
	case TagMutableReference:
		return "mutable_reference"
	default:
		return ""
	}
}

// SignatureToken is one type token in a function signature. Vector and
// reference tokens carry an element type; all other variants stand alone.
type SignatureToken struct {
	Tag  TypeTag
	Elem *SignatureToken
}

// IsReference returns true for immutable and mutable reference tokens.
func (t SignatureToken) IsReference() bool {
	return t.Tag == TagReference || t.Tag == TagMutableReference
}

// Signature is the ordered list of type tokens for a function's parameters
// or return values.
type Signature []SignatureToken

// SignatureIndex is an index into a unit's signature pool.
type SignatureIndex uint16

// FunctionHandleIndex is an index into a module's function handle pool.
type FunctionHandleIndex uint16

// StructDefIndex identifies a struct definition named by an acquires
// annotation.
type StructDefIndex uint16

// Token constructors, mainly useful for building units in tests and tools.

// Bool returns a bool signature token.
func Bool() SignatureToken { return SignatureToken{Tag: TagBool} }

// U8 returns a u8 signature token.
func U8() SignatureToken { return SignatureToken{Tag: TagU8} }

// U64 returns a u64 signature token.
func U64() SignatureToken { return SignatureToken{Tag: TagU64} }

// U128 returns a u128 signature token.
func U128() SignatureToken { return SignatureToken{Tag: TagU128} }

// Address returns an address signature token.
func Address() SignatureToken { return SignatureToken{Tag: TagAddress} }

// Signer returns a signer signature token.
func Signer() SignatureToken { return SignatureToken{Tag: TagSigner} }

// Vector returns a vector signature token with the given element type.
func Vector(elem SignatureToken) SignatureToken {
	return SignatureToken{Tag: TagVector, Elem: &elem}
}

// Struct returns a struct signature token.
func Struct() SignatureToken { return SignatureToken{Tag: TagStruct} }

// TypeParam returns a type parameter signature token.
func TypeParam() SignatureToken { return SignatureToken{Tag: TagTypeParam} }

// Reference returns an immutable reference token to the given type.
func Reference(elem SignatureToken) SignatureToken {
	return SignatureToken{Tag: TagReference, Elem: &elem}
}

// MutableReference returns a mutable reference token to the given type.
func MutableReference(elem SignatureToken) SignatureToken {
	return SignatureToken{Tag: TagMutableReference, Elem: &elem}
}
