package extract

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/anthropics/platy/internal/parser"
)

// charPrimitive is the C character element type. Fixed arrays and
// pointers of it collapse to the FFI::Platypus string descriptors:
// the target layer has no raw fixed-char-array concept.
const charPrimitive = "c_char"

// arrayWrapper is the one recognized generic wrapper. array<T>
// becomes the growable-array descriptor T[].
const arrayWrapper = "array"

// TranslateType converts a Rust type expression node into an FFI
// type descriptor in the closed FFI::Platypus vocabulary. Named path
// types pass through textually; everything else either maps to one of
// the descriptor forms (T*, T[n], T[], string, string(n)) or fails
// with an UnsupportedTypeError naming the construct. Node kinds not
// explicitly handled fail too: there is no default pass-through.
func TranslateType(r *parser.ParseResult, node *sitter.Node) (string, error) {
	if node == nil {
		return "", &UnsupportedTypeError{Construct: "missing type"}
	}

	switch node.Type() {
	case "type_identifier", "primitive_type", "scoped_type_identifier":
		return r.NodeText(node), nil
	case "generic_type":
		return translateGeneric(r, node)
	case "array_type":
		return translateArray(r, node)
	case "pointer_type":
		return translatePointer(r, node)
	case "function_type":
		return "", unsupported(r, node, "function pointer")
	case "reference_type":
		return "", unsupported(r, node, "reference")
	case "tuple_type", "unit_type":
		return "", unsupported(r, node, "tuple")
	case "dynamic_type":
		return "", unsupported(r, node, "trait object")
	case "abstract_type":
		return "", unsupported(r, node, "impl trait")
	case "never_type", "empty_type":
		return "", unsupported(r, node, "never type")
	case "macro_invocation":
		return "", unsupported(r, node, "macro type")
	case "bounded_type", "removed_trait_bound":
		return "", unsupported(r, node, "bounded type")
	case "metavariable":
		return "", unsupported(r, node, "metavariable")
	default:
		return "", unsupported(r, node, fmt.Sprintf("%s type", node.Type()))
	}
}

// unsupported builds an UnsupportedTypeError carrying the source text.
func unsupported(r *parser.ParseResult, node *sitter.Node, construct string) error {
	return &UnsupportedTypeError{
		Construct: construct,
		TypeText:  r.NodeText(node),
	}
}

// translateGeneric handles generic path types. The only accepted shape
// is the array<T> wrapper with a single type argument, which produces
// the growable-array descriptor T[].
func translateGeneric(r *parser.ParseResult, node *sitter.Node) (string, error) {
	base := node.ChildByFieldName("type")
	args := node.ChildByFieldName("type_arguments")
	if base != nil && args != nil && r.NodeText(base) == arrayWrapper {
		if inner := firstTypeArgument(args); inner != nil {
			elem, err := TranslateType(r, inner)
			if err != nil {
				return "", err
			}
			return elem + "[]", nil
		}
	}
	return "", unsupported(r, node, "generic type")
}

// firstTypeArgument returns the first type node of a type_arguments list.
func firstTypeArgument(args *sitter.Node) *sitter.Node {
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		switch child.Type() {
		case "lifetime", "line_comment", "block_comment":
			continue
		default:
			return child
		}
	}
	return nil
}

// translateArray handles [T; N]. A char element produces the
// fixed-length string descriptor string(N); any other element produces
// T[N] with the length expression reproduced verbatim. [T] without a
// length is a slice and is rejected.
func translateArray(r *parser.ParseResult, node *sitter.Node) (string, error) {
	length := node.ChildByFieldName("length")
	if length == nil {
		return "", unsupported(r, node, "slice")
	}

	elem, err := TranslateType(r, node.ChildByFieldName("element"))
	if err != nil {
		return "", err
	}

	n := r.NodeText(length)
	if isCharPrimitive(elem) {
		return fmt.Sprintf("string(%s)", n), nil
	}
	return fmt.Sprintf("%s[%s]", elem, n), nil
}

// translatePointer handles *const T and *mut T. A char element
// collapses to the plain string descriptor (the C null-terminated
// string convention); any other element produces T*.
func translatePointer(r *parser.ParseResult, node *sitter.Node) (string, error) {
	elem, err := TranslateType(r, pointeeNode(node))
	if err != nil {
		return "", err
	}

	if isCharPrimitive(elem) {
		return "string", nil
	}
	return elem + "*", nil
}

// pointeeNode returns the pointed-to type node of a pointer_type.
func pointeeNode(node *sitter.Node) *sitter.Node {
	if t := node.ChildByFieldName("type"); t != nil {
		return t
	}
	// Fall back to the last named child past the mutability specifier.
	for i := int(node.NamedChildCount()) - 1; i >= 0; i-- {
		child := node.NamedChild(i)
		if child.Type() != "mutable_specifier" {
			return child
		}
	}
	return nil
}

// isCharPrimitive reports whether a resolved element descriptor is the
// C character primitive, either bare or as a fully qualified path.
func isCharPrimitive(desc string) bool {
	return desc == charPrimitive || strings.HasSuffix(desc, "::"+charPrimitive)
}
