package extract

import "fmt"

// StructClass is the outcome of classifying a struct declaration.
// Classification is mutually exclusive: a struct becomes at most one
// of record or opaque.
type StructClass int

const (
	// StructNone means the struct is not part of the FFI surface.
	StructNone StructClass = iota
	// StructRecord means the struct is a plain data type.
	StructRecord
	// StructOpaque means the struct is an opaque handle.
	StructOpaque
)

// Policy decides which declarations belong to the exported FFI
// surface. Two schemes exist and are never mixed on the same input:
// the attribute scheme keys off explicit marker attributes, the
// implicit scheme keys off visibility, ABI, and repr layout. The
// scheme also owns the enum discriminant fallback, since the two
// schemes historically disagree on it.
type Policy interface {
	// Name identifies the scheme ("attribute" or "implicit").
	Name() string

	// ExportsFunction reports whether the function is part of the
	// exported surface.
	ExportsFunction(fn FunctionDecl) bool

	// ClassifyStruct decides whether the struct is a record, an
	// opaque handle, or neither. Implementations must be mutually
	// exclusive; when a struct carries both markers, the record
	// marker wins.
	ClassifyStruct(st StructDecl) StructClass

	// AliasIsOpaque reports whether the type alias declares an
	// opaque handle.
	AliasIsOpaque(al AliasDecl) bool

	// IncludeEnum reports whether the enum is exported and, if so,
	// its representation. A repr marker with an unrecognized width
	// token yields a MalformedAttributeError.
	IncludeEnum(en EnumDecl) (Repr, bool, error)

	// VariantFallback produces the value of a variant that has no
	// explicit discriminant.
	VariantFallback(name string) string
}

// PolicyForScheme returns the policy implementing the named scheme.
func PolicyForScheme(scheme string) (Policy, error) {
	switch scheme {
	case "", SchemeAttribute:
		return AttributePolicy{}, nil
	case SchemeImplicit:
		return ImplicitPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown classification scheme %q (want %s or %s)",
			scheme, SchemeAttribute, SchemeImplicit)
	}
}

// Scheme names accepted by PolicyForScheme.
const (
	SchemeAttribute = "attribute"
	SchemeImplicit  = "implicit"
)

// AttributePolicy classifies declarations by explicit marker
// attributes: #[export] functions, #[opaque] structs and aliases,
// #[record] structs, #[repr(...)] enums. Variants without an explicit
// discriminant reuse their own name as the value, which the renderer
// resolves through the enum constant of the same name.
type AttributePolicy struct{}

// Name implements Policy.
func (AttributePolicy) Name() string { return SchemeAttribute }

// ExportsFunction implements Policy.
func (AttributePolicy) ExportsFunction(fn FunctionDecl) bool {
	return hasAttribute(fn.Attrs, "export")
}

// ClassifyStruct implements Policy. A public struct carrying both
// #[record] and #[opaque] is a record: the record marker wins.
func (AttributePolicy) ClassifyStruct(st StructDecl) StructClass {
	if !st.Public {
		return StructNone
	}
	if hasAttribute(st.Attrs, "record") {
		return StructRecord
	}
	if hasAttribute(st.Attrs, "opaque") {
		return StructOpaque
	}
	return StructNone
}

// AliasIsOpaque implements Policy.
func (AttributePolicy) AliasIsOpaque(al AliasDecl) bool {
	return hasAttribute(al.Attrs, "opaque")
}

// IncludeEnum implements Policy. Any recognized repr marker exports
// the enum regardless of variant shape.
func (AttributePolicy) IncludeEnum(en EnumDecl) (Repr, bool, error) {
	return reprOf(en.Attrs)
}

// VariantFallback implements Policy.
func (AttributePolicy) VariantFallback(name string) string {
	return name
}

// ImplicitPolicy classifies declarations the way a hand-written
// extern "C" crate reads: exported functions are pub extern "C" with a
// no-mangle marker, repr(C) structs are records, every other public
// struct is an opaque handle, and enums must be repr-marked and
// data-free. Variants without an explicit discriminant default to "0".
type ImplicitPolicy struct{}

// Name implements Policy.
func (ImplicitPolicy) Name() string { return SchemeImplicit }

// ExportsFunction implements Policy.
func (ImplicitPolicy) ExportsFunction(fn FunctionDecl) bool {
	return fn.Public && fn.ABI == "C" && hasNoMangle(fn.Attrs)
}

// ClassifyStruct implements Policy. The repr(C) record marker wins;
// a public struct without it is implicitly opaque.
func (ImplicitPolicy) ClassifyStruct(st StructDecl) StructClass {
	if isReprC(st.Attrs) {
		return StructRecord
	}
	if st.Public {
		return StructOpaque
	}
	return StructNone
}

// AliasIsOpaque implements Policy. The implicit scheme has no alias
// marker; an explicit #[opaque] attribute is still honored so handle
// aliases remain expressible.
func (ImplicitPolicy) AliasIsOpaque(al AliasDecl) bool {
	return hasAttribute(al.Attrs, "opaque")
}

// IncludeEnum implements Policy. Data-carrying variants disqualify the
// whole enum under this scheme.
func (ImplicitPolicy) IncludeEnum(en EnumDecl) (Repr, bool, error) {
	repr, ok, err := reprOf(en.Attrs)
	if err != nil || !ok {
		return repr, ok, err
	}
	if en.HasDataVariants {
		return repr, false, nil
	}
	return repr, true, nil
}

// VariantFallback implements Policy.
func (ImplicitPolicy) VariantFallback(string) string {
	return "0"
}
