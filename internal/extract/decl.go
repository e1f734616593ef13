package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/anthropics/platy/internal/parser"
)

// The declaration views below are what classification policies see.
// They carry only visibility, attributes, ABI, and shape; policies
// never touch the syntax tree, which keeps them independent of the
// front end and trivially testable.

// FunctionDecl is the classification view of a function item.
type FunctionDecl struct {
	Name   string
	Public bool
	ABI    string
	Attrs  []Attribute
}

// StructDecl is the classification view of a struct item.
type StructDecl struct {
	Name   string
	Public bool
	Attrs  []Attribute
}

// AliasDecl is the classification view of a type alias.
type AliasDecl struct {
	Name  string
	Attrs []Attribute
}

// EnumDecl is the classification view of an enum item.
type EnumDecl struct {
	Name   string
	Public bool
	Attrs  []Attribute
	// HasDataVariants is true when any variant carries tuple or
	// struct fields, disqualifying the enum under the strict scheme.
	HasDataVariants bool
}

// isPublic reports whether the declaration carries a bare `pub`
// visibility modifier. Restricted visibility (pub(crate), pub(super))
// does not expose an item outside the crate, so it does not count.
func isPublic(r *parser.ParseResult, node *sitter.Node) bool {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "visibility_modifier" {
			return r.NodeText(child) == "pub"
		}
	}
	return false
}

// externABI returns the ABI string of an extern function, or "" when
// the function has no extern modifier. `extern fn` without an explicit
// ABI string defaults to "C", matching Rust semantics.
func externABI(r *parser.ParseResult, node *sitter.Node) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "function_modifiers" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			mod := child.NamedChild(j)
			if mod.Type() != "extern_modifier" {
				continue
			}
			for k := 0; k < int(mod.NamedChildCount()); k++ {
				if lit := mod.NamedChild(k); lit.Type() == "string_literal" {
					return stripQuotes(r.NodeText(lit))
				}
			}
			return "C"
		}
	}
	return ""
}

// stripQuotes removes the surrounding double quotes of a string literal.
func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// declName returns the text of the node's name field.
func declName(r *parser.ParseResult, node *sitter.Node) string {
	return r.NodeText(node.ChildByFieldName("name"))
}

// functionDecl builds the classification view of a function_item node.
func functionDecl(r *parser.ParseResult, node *sitter.Node) FunctionDecl {
	return FunctionDecl{
		Name:   declName(r, node),
		Public: isPublic(r, node),
		ABI:    externABI(r, node),
		Attrs:  leadingAttributes(r, node),
	}
}

// structDecl builds the classification view of a struct_item node.
func structDecl(r *parser.ParseResult, node *sitter.Node) StructDecl {
	return StructDecl{
		Name:   declName(r, node),
		Public: isPublic(r, node),
		Attrs:  leadingAttributes(r, node),
	}
}

// aliasDecl builds the classification view of a type_item node.
func aliasDecl(r *parser.ParseResult, node *sitter.Node) AliasDecl {
	return AliasDecl{
		Name:  declName(r, node),
		Attrs: leadingAttributes(r, node),
	}
}

// enumDecl builds the classification view of an enum_item node.
func enumDecl(r *parser.ParseResult, node *sitter.Node) EnumDecl {
	decl := EnumDecl{
		Name:   declName(r, node),
		Public: isPublic(r, node),
		Attrs:  leadingAttributes(r, node),
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			variant := body.NamedChild(i)
			if variant.Type() != "enum_variant" {
				continue
			}
			// Tuple and struct variants carry a body field.
			if variant.ChildByFieldName("body") != nil {
				decl.HasDataVariants = true
				break
			}
		}
	}

	return decl
}
