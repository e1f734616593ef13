// Package extract builds an FFI surface model from a parsed Rust AST.
//
// The extraction pipeline is: walk the tree once, classify each
// declaration with the active Policy, translate every source type into
// the FFI::Platypus type vocabulary, and accumulate the results into a
// Library. A second pass (Depointerize) rewrites pointer-to-opaque
// descriptors once the full set of opaque handles is known.
package extract

// Repr identifies the integer representation of an exported enum.
// The zero value ReprC is the C-like default.
type Repr string

const (
	// ReprC is the default C-like representation. It serializes as
	// "enum" because that is the FFI::Platypus type name.
	ReprC Repr = "enum"

	ReprU8  Repr = "u8"
	ReprU16 Repr = "u16"
	ReprU32 Repr = "u32"
	ReprU64 Repr = "u64"
	ReprI8  Repr = "i8"
	ReprI16 Repr = "i16"
	ReprI32 Repr = "i32"
	ReprI64 Repr = "i64"
)

// reprTokens maps repr attribute tokens to their Repr value.
var reprTokens = map[string]Repr{
	"C":   ReprC,
	"u8":  ReprU8,
	"u16": ReprU16,
	"u32": ReprU32,
	"u64": ReprU64,
	"i8":  ReprI8,
	"i16": ReprI16,
	"i32": ReprI32,
	"i64": ReprI64,
}

// ReprFromToken parses a repr attribute token into a Repr value.
// Returns false if the token is not a recognized representation.
func ReprFromToken(token string) (Repr, bool) {
	r, ok := reprTokens[token]
	return r, ok
}

// Function is an exported function of the FFI surface. Args and Ret
// hold FFI type descriptors; the synthetic descriptor "void" denotes
// the absence of a return value.
type Function struct {
	Name string   `yaml:"name" json:"name"`
	Args []string `yaml:"args" json:"args"`
	Ret  string   `yaml:"ret" json:"ret"`
}

// Variant is a single enum variant. Value is either the discriminant
// expression text from the source or the policy's fallback.
type Variant struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Enum is an exported C-style enum.
type Enum struct {
	Name     string    `yaml:"name" json:"name"`
	Repr     Repr      `yaml:"repr" json:"repr"`
	Variants []Variant `yaml:"variants" json:"variants"`
}

// Field is a single record field with its FFI type descriptor.
type Field struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// Record is a plain data type passed or returned by value.
type Record struct {
	Name   string  `yaml:"name" json:"name"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Opaque is a handle type whose layout is hidden from callers. It is
// always a pointer at the Rust level but appears in the FFI surface as
// a bare named handle.
type Opaque struct {
	Name string `yaml:"name" json:"name"`
}

// Library is the extracted FFI surface of one compilation unit.
// All lists preserve declaration order; the renderer's output is
// order-sensitive, so the ordering is part of the contract.
type Library struct {
	Functions []Function `yaml:"functions" json:"functions"`
	Enums     []Enum     `yaml:"enums" json:"enums"`
	Records   []Record   `yaml:"records" json:"records"`
	Opaques   []Opaque   `yaml:"opaques" json:"opaques"`
}

// Merge appends the contents of other onto l, preserving order.
// When extraction runs over multiple files, each file produces an
// independent Library; the merged whole must be depointerized once,
// never per shard, because the opaque rewrite needs global knowledge.
func (l *Library) Merge(other *Library) {
	if other == nil {
		return
	}
	l.Functions = append(l.Functions, other.Functions...)
	l.Enums = append(l.Enums, other.Enums...)
	l.Records = append(l.Records, other.Records...)
	l.Opaques = append(l.Opaques, other.Opaques...)
}

// IsEmpty reports whether the library contains no declarations.
func (l *Library) IsEmpty() bool {
	return len(l.Functions) == 0 && len(l.Enums) == 0 &&
		len(l.Records) == 0 && len(l.Opaques) == 0
}
