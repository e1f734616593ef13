package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// newRustParser creates a tree-sitter parser configured for Rust.
func newRustParser() (*sitter.Parser, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())
	return parser, nil
}

// RustNodeTypes maps tree-sitter node types to semantic declaration kinds.
// These are the item kinds the extraction layer inspects when walking
// a compilation unit.
var RustNodeTypes = map[string]string{
	"function_item":  "function",
	"struct_item":    "struct",
	"enum_item":      "enum",
	"type_item":      "type",
	"attribute_item": "attribute",
	"mod_item":       "module",
}

// IsRustDeclarationNode checks if a tree-sitter node represents a
// declaration the extraction layer cares about.
func IsRustDeclarationNode(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	_, ok := RustNodeTypes[node.Type()]
	return ok
}

// GetRustDeclarationKind returns the semantic declaration kind for a
// tree-sitter node, or an empty string if the node is not recognized.
func GetRustDeclarationKind(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return RustNodeTypes[node.Type()]
}
