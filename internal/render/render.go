// Package render turns a finalized Library into Perl source artifacts.
//
// The renderer fills embedded templates with the extracted FFI surface
// plus crate metadata and produces a FFI::Platypus module. It never
// mutates the Library; enum substitution happens on a render-time view.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/anthropics/platy/internal/extract"
	"github.com/anthropics/platy/internal/manifest"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Options configures a render run.
type Options struct {
	// Package is the Perl package name, e.g. "Acme::MyLib".
	Package string
	// DistName is the distribution name; defaults to Package with
	// "::" replaced by "-".
	DistName string
}

// Renderer renders Library models into Perl source files.
type Renderer struct {
	templates *template.Template
}

// templateContext is the data handed to the module template.
type templateContext struct {
	Package     string
	DistName    string
	LibName     string
	Version     string
	Description string
	Enums       []extract.Enum
	Opaques     []extract.Opaque
	Records     []extract.Record
	Functions   []extract.Function
}

// New creates a renderer with the embedded templates parsed.
func New() (*Renderer, error) {
	tmpl, err := template.New("render").Funcs(template.FuncMap{
		"perlQuote": perlQuote,
		"argList":   argList,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Files renders the library into a map of relative output path to
// file contents. The caller owns writing them to disk.
func (r *Renderer) Files(lib *extract.Library, m *manifest.Manifest, opts Options) (map[string]string, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("render: package name is required")
	}

	ctx := templateContext{
		Package:   opts.Package,
		DistName:  opts.DistName,
		Enums:     lib.Enums,
		Opaques:   lib.Opaques,
		Records:   lib.Records,
		Functions: substituteEnums(lib),
	}
	if ctx.DistName == "" {
		ctx.DistName = strings.ReplaceAll(opts.Package, "::", "-")
	}
	if m != nil {
		ctx.LibName = m.Package.Name
		ctx.Version = m.Package.Version
		ctx.Description = m.Package.Description
	}
	if ctx.Version == "" {
		ctx.Version = "0.01"
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "module.pm.tmpl", ctx); err != nil {
		return nil, fmt.Errorf("rendering module: %w", err)
	}

	return map[string]string{
		ModulePath(opts.Package): buf.String(),
	}, nil
}

// ModulePath returns the conventional lib/ path for a Perl package
// name: "Acme::MyLib" becomes "lib/Acme/MyLib.pm".
func ModulePath(pkg string) string {
	return path.Join("lib", strings.ReplaceAll(pkg, "::", "/")+".pm")
}

// substituteEnums returns a copy of the library's functions with enum
// type names replaced by the 'enum' platypus type. The Library itself
// is finalized and never mutated here.
func substituteEnums(lib *extract.Library) []extract.Function {
	typemap := make(map[string]string, len(lib.Enums))
	for _, en := range lib.Enums {
		typemap[en.Name] = "enum"
	}

	functions := make([]extract.Function, len(lib.Functions))
	for i, fn := range lib.Functions {
		mapped := extract.Function{Name: fn.Name, Ret: fn.Ret}
		if t, ok := typemap[fn.Ret]; ok {
			mapped.Ret = t
		}
		mapped.Args = make([]string, len(fn.Args))
		for j, arg := range fn.Args {
			if t, ok := typemap[arg]; ok {
				mapped.Args[j] = t
			} else {
				mapped.Args[j] = arg
			}
		}
		functions[i] = mapped
	}
	return functions
}

// argList renders a function's argument descriptors as a quoted,
// comma-separated Perl list.
func argList(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = perlQuote(arg)
	}
	return strings.Join(quoted, ", ")
}

// perlQuote single-quotes a string for Perl source, escaping
// backslashes and embedded single quotes.
func perlQuote(s string) string {
	var quoted strings.Builder
	for _, c := range s {
		switch c {
		case '\\':
			quoted.WriteString(`\\`)
		case '\'':
			quoted.WriteString(`\'`)
		default:
			quoted.WriteRune(c)
		}
	}
	return "'" + quoted.String() + "'"
}
