package extract

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/anthropics/platy/internal/parser"
)

// Extractor walks one parsed compilation unit and builds the Library
// of its FFI surface. A single preorder traversal visits every
// declaration, including those nested in modules and function bodies,
// so Library order matches declaration order in the source.
type Extractor struct {
	result *parser.ParseResult
	policy Policy
}

// New creates an extractor over the given parse result using the
// given classification policy.
func New(result *parser.ParseResult, policy Policy) *Extractor {
	return &Extractor{
		result: result,
		policy: policy,
	}
}

// Extract walks the tree once and returns the raw Library. The first
// translation or attribute failure aborts the whole run: a partially
// typed surface is unusable, so there is no skip-and-continue. The
// returned Library has not been depointerized; callers run
// Library.Depointerize once the full declaration set is known.
func (e *Extractor) Extract() (*Library, error) {
	lib := &Library{}

	var walkErr error
	e.result.WalkNodes(func(node *sitter.Node) bool {
		switch node.Type() {
		case "function_item":
			walkErr = e.addFunction(lib, node)
		case "struct_item":
			walkErr = e.addStruct(lib, node)
		case "enum_item":
			walkErr = e.addEnum(lib, node)
		case "type_item":
			e.addAlias(lib, node)
		}
		// Keep descending unless something failed; nested scopes may
		// hold further declarations.
		return walkErr == nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return lib, nil
}

// addFunction appends a function entry when the policy exports it.
func (e *Extractor) addFunction(lib *Library, node *sitter.Node) error {
	// Methods in impl blocks are not free functions and never form
	// part of the C surface.
	if insideImplBlock(node) {
		return nil
	}

	decl := functionDecl(e.result, node)
	if !e.policy.ExportsFunction(decl) {
		return nil
	}

	fn := Function{Name: decl.Name, Ret: "void"}

	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			param := params.NamedChild(i)
			if param.Type() != "parameter" {
				continue
			}
			desc, err := TranslateType(e.result, param.ChildByFieldName("type"))
			if err != nil {
				return declError(decl.Name, err)
			}
			fn.Args = append(fn.Args, desc)
		}
	}

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		desc, err := TranslateType(e.result, ret)
		if err != nil {
			return declError(decl.Name, err)
		}
		fn.Ret = desc
	}

	lib.Functions = append(lib.Functions, fn)
	return nil
}

// addStruct appends a record or opaque entry per the policy's
// classification. Structs that match neither rule are skipped.
func (e *Extractor) addStruct(lib *Library, node *sitter.Node) error {
	decl := structDecl(e.result, node)

	switch e.policy.ClassifyStruct(decl) {
	case StructOpaque:
		lib.Opaques = append(lib.Opaques, Opaque{Name: decl.Name})
	case StructRecord:
		rec := Record{Name: decl.Name}
		if body := node.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				fieldNode := body.NamedChild(i)
				if fieldNode.Type() != "field_declaration" {
					continue
				}
				desc, err := TranslateType(e.result, fieldNode.ChildByFieldName("type"))
				if err != nil {
					return declError(decl.Name, err)
				}
				rec.Fields = append(rec.Fields, Field{
					Name: e.result.NodeText(fieldNode.ChildByFieldName("name")),
					Type: desc,
				})
			}
		}
		lib.Records = append(lib.Records, rec)
	}

	return nil
}

// addEnum appends an enum entry when the policy includes it. Variants
// keep their discriminant expression text verbatim; variants without
// one take the policy's fallback value.
func (e *Extractor) addEnum(lib *Library, node *sitter.Node) error {
	decl := enumDecl(e.result, node)

	repr, ok, err := e.policy.IncludeEnum(decl)
	if err != nil {
		return declError(decl.Name, err)
	}
	if !ok {
		return nil
	}

	en := Enum{Name: decl.Name, Repr: repr}
	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			variantNode := body.NamedChild(i)
			if variantNode.Type() != "enum_variant" {
				continue
			}
			name := e.result.NodeText(variantNode.ChildByFieldName("name"))
			value := e.policy.VariantFallback(name)
			if discriminant := variantNode.ChildByFieldName("value"); discriminant != nil {
				value = e.result.NodeText(discriminant)
			}
			en.Variants = append(en.Variants, Variant{Name: name, Value: value})
		}
	}

	lib.Enums = append(lib.Enums, en)
	return nil
}

// addAlias appends an opaque entry for #[opaque] type aliases.
func (e *Extractor) addAlias(lib *Library, node *sitter.Node) {
	decl := aliasDecl(e.result, node)
	if e.policy.AliasIsOpaque(decl) {
		lib.Opaques = append(lib.Opaques, Opaque{Name: decl.Name})
	}
}

// insideImplBlock reports whether a function node is a method of an
// impl or trait block rather than a free function.
func insideImplBlock(node *sitter.Node) bool {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Type() {
		case "impl_item", "trait_item":
			return true
		}
	}
	return false
}

// declError attaches the declaration name to a typed extraction error
// so the failure can be located in the source.
func declError(decl string, err error) error {
	switch e := err.(type) {
	case *UnsupportedTypeError:
		if e.Decl == "" {
			e.Decl = decl
		}
		return e
	case *MalformedAttributeError:
		if e.Decl == "" {
			e.Decl = decl
		}
		return e
	default:
		return fmt.Errorf("%s: %w", decl, err)
	}
}
