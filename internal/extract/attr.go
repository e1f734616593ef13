package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/anthropics/platy/internal/parser"
)

// Attribute is one outer attribute of a declaration: its path and the
// arguments of its token tree, if any. `#[repr(C, align(4))]` parses
// to {Path: "repr", Args: ["C", "align(4)"]}.
type Attribute struct {
	Path string
	Args []string
}

// Is reports whether the attribute path matches name.
func (a Attribute) Is(name string) bool {
	return a.Path == name
}

// leadingAttributes collects the outer attributes of a declaration.
// tree-sitter parses `#[foo]` as an attribute_item sibling preceding
// the item node, so the attributes of a declaration are the contiguous
// run of attribute_item siblings directly above it. Comments between
// attributes and the item do not break the run.
func leadingAttributes(r *parser.ParseResult, node *sitter.Node) []Attribute {
	var attrs []Attribute

	for prev := node.PrevNamedSibling(); prev != nil; prev = prev.PrevNamedSibling() {
		switch prev.Type() {
		case "attribute_item":
			if attr, ok := parseAttributeItem(r, prev); ok {
				attrs = append(attrs, attr)
			}
		case "line_comment", "block_comment":
			continue
		default:
			return attrs
		}
	}

	return attrs
}

// parseAttributeItem parses a single attribute_item node.
func parseAttributeItem(r *parser.ParseResult, node *sitter.Node) (Attribute, bool) {
	// The content between the brackets is the item's single named child.
	inner := node.NamedChild(0)
	if inner == nil {
		return Attribute{}, false
	}

	// The attribute path is the first named child; the optional token
	// tree lives in the "arguments" field.
	pathNode := inner.NamedChild(0)
	if pathNode == nil {
		return Attribute{}, false
	}

	attr := Attribute{Path: r.NodeText(pathNode)}
	argsNode := inner.ChildByFieldName("arguments")
	if argsNode == nil {
		for i := 0; i < int(inner.NamedChildCount()); i++ {
			if child := inner.NamedChild(i); child.Type() == "token_tree" {
				argsNode = child
				break
			}
		}
	}
	if argsNode != nil {
		attr.Args = splitTokenTree(r.NodeText(argsNode))
	}

	return attr, true
}

// splitTokenTree splits a token tree like "(C, align(4))" into its
// top-level comma-separated arguments.
func splitTokenTree(text string) []string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "(")
	text = strings.TrimSuffix(text, ")")

	var (
		args  []string
		depth int
		start int
	)
	for i, c := range text {
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(text[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(text[start:]); last != "" {
		args = append(args, last)
	}

	return args
}

// hasAttribute reports whether any attribute in attrs has the given path.
func hasAttribute(attrs []Attribute, name string) bool {
	for _, a := range attrs {
		if a.Is(name) {
			return true
		}
	}
	return false
}

// hasNoMangle reports whether the declaration carries a no-mangle
// marker, either `#[no_mangle]` or the 2024-edition `#[unsafe(no_mangle)]`.
func hasNoMangle(attrs []Attribute) bool {
	for _, a := range attrs {
		if a.Is("no_mangle") {
			return true
		}
		if a.Is("unsafe") {
			for _, arg := range a.Args {
				if arg == "no_mangle" {
					return true
				}
			}
		}
	}
	return false
}

// reprLayoutModifiers are repr tokens that are valid Rust but carry no
// FFI width information. They are skipped, not rejected.
var reprLayoutModifiers = map[string]bool{
	"packed":      true,
	"transparent": true,
	"Rust":        true,
}

// reprOf scans attrs for a repr marker and returns its representation.
// The second result is false when no repr attribute names a recognized
// representation. An unrecognized width token is a MalformedAttributeError:
// the attribute was recognized by name but its arguments do not parse.
func reprOf(attrs []Attribute) (Repr, bool, error) {
	var (
		repr  Repr
		found bool
	)
	for _, a := range attrs {
		if !a.Is("repr") {
			continue
		}
		for _, arg := range a.Args {
			if r, ok := ReprFromToken(arg); ok {
				repr = r
				found = true
				continue
			}
			if reprLayoutModifiers[arg] || strings.HasPrefix(arg, "align(") || strings.HasPrefix(arg, "packed(") {
				continue
			}
			return repr, false, &MalformedAttributeError{Attribute: "repr", Token: arg}
		}
	}
	return repr, found, nil
}

// isReprC reports whether attrs carry the C-layout representation marker.
func isReprC(attrs []Attribute) bool {
	for _, a := range attrs {
		if !a.Is("repr") {
			continue
		}
		for _, arg := range a.Args {
			if arg == "C" {
				return true
			}
		}
	}
	return false
}
