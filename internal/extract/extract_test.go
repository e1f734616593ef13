package extract

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/anthropics/platy/internal/parser"
)

// extractSource parses src and runs extraction with the given policy.
// Depointerization is left to the caller so the raw library can be
// inspected too.
func extractSource(t *testing.T, src string, policy Policy) (*Library, error) {
	t.Helper()

	p, err := parser.NewParser(parser.Rust)
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer p.Close()

	result, err := p.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer result.Close()

	return New(result, policy).Extract()
}

const attributeSource = `
use std::os::raw::c_char;

#[opaque]
pub struct Handle {
    inner: u64,
}

#[record]
pub struct Point {
    pub x: i32,
    pub y: i32,
}

#[repr(u8)]
pub enum Color {
    Red = 1,
    Green,
    Blue = 4,
}

#[export]
fn add(a: i32, b: i32) -> i32 {
    a + b
}

#[export]
fn make() -> *mut Handle {
    Box::into_raw(Box::new(Handle { inner: 0 }))
}

#[export]
fn label(name: *const c_char, out: [c_char; 64]) {
}

fn not_exported(a: i32) -> i32 {
    a
}
`

func TestExtract_AttributeScheme(t *testing.T) {
	lib, err := extractSource(t, attributeSource, AttributePolicy{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	lib.Depointerize()

	wantFunctions := []Function{
		{Name: "add", Args: []string{"i32", "i32"}, Ret: "i32"},
		{Name: "make", Args: nil, Ret: "Handle"},
		{Name: "label", Args: []string{"string", "string(64)"}, Ret: "void"},
	}
	if !reflect.DeepEqual(lib.Functions, wantFunctions) {
		t.Errorf("Functions = %+v, want %+v", lib.Functions, wantFunctions)
	}

	wantOpaques := []Opaque{{Name: "Handle"}}
	if !reflect.DeepEqual(lib.Opaques, wantOpaques) {
		t.Errorf("Opaques = %+v, want %+v", lib.Opaques, wantOpaques)
	}

	wantRecords := []Record{{
		Name: "Point",
		Fields: []Field{
			{Name: "x", Type: "i32"},
			{Name: "y", Type: "i32"},
		},
	}}
	if !reflect.DeepEqual(lib.Records, wantRecords) {
		t.Errorf("Records = %+v, want %+v", lib.Records, wantRecords)
	}

	// The attribute scheme reuses the variant name as the fallback
	// value for missing discriminants.
	wantEnums := []Enum{{
		Name: "Color",
		Repr: ReprU8,
		Variants: []Variant{
			{Name: "Red", Value: "1"},
			{Name: "Green", Value: "Green"},
			{Name: "Blue", Value: "4"},
		},
	}}
	if !reflect.DeepEqual(lib.Enums, wantEnums) {
		t.Errorf("Enums = %+v, want %+v", lib.Enums, wantEnums)
	}
}

const implicitSource = `
#[repr(C)]
pub struct Vec2 {
    pub x: f32,
    pub y: f32,
}

pub struct Context {
    state: u64,
}

#[repr(C)]
pub enum Mode {
    Fast = 1,
    Slow,
}

#[repr(C)]
pub enum Message {
    Quit,
    Move { x: i32, y: i32 },
}

#[no_mangle]
pub extern "C" fn context_new() -> *mut Context {
    Box::into_raw(Box::new(Context { state: 0 }))
}

#[no_mangle]
pub extern "C" fn context_free(ctx: *mut Context) {
}

#[no_mangle]
extern "C" fn not_public() {}

pub extern "C" fn not_mangled() {}

pub fn plain_rust(v: Vec2) -> f32 {
    v.x
}
`

func TestExtract_ImplicitScheme(t *testing.T) {
	lib, err := extractSource(t, implicitSource, ImplicitPolicy{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	lib.Depointerize()

	wantFunctions := []Function{
		{Name: "context_new", Args: nil, Ret: "Context"},
		{Name: "context_free", Args: []string{"Context"}, Ret: "void"},
	}
	if !reflect.DeepEqual(lib.Functions, wantFunctions) {
		t.Errorf("Functions = %+v, want %+v", lib.Functions, wantFunctions)
	}

	wantOpaques := []Opaque{{Name: "Context"}}
	if !reflect.DeepEqual(lib.Opaques, wantOpaques) {
		t.Errorf("Opaques = %+v, want %+v", lib.Opaques, wantOpaques)
	}

	wantRecords := []Record{{
		Name: "Vec2",
		Fields: []Field{
			{Name: "x", Type: "f32"},
			{Name: "y", Type: "f32"},
		},
	}}
	if !reflect.DeepEqual(lib.Records, wantRecords) {
		t.Errorf("Records = %+v, want %+v", lib.Records, wantRecords)
	}

	// Message carries a data variant, which disqualifies the whole
	// enum under the strict scheme. Mode's missing discriminant
	// defaults to "0".
	wantEnums := []Enum{{
		Name: "Mode",
		Repr: ReprC,
		Variants: []Variant{
			{Name: "Fast", Value: "1"},
			{Name: "Slow", Value: "0"},
		},
	}}
	if !reflect.DeepEqual(lib.Enums, wantEnums) {
		t.Errorf("Enums = %+v, want %+v", lib.Enums, wantEnums)
	}
}

func TestExtract_EndToEndScenario(t *testing.T) {
	src := `
#[opaque]
pub struct Handle {
    inner: u64,
}

#[export]
fn add(a: i32, b: i32) -> i32 {
    a + b
}

#[export]
fn make() -> *mut Handle {
    Box::into_raw(Box::new(Handle { inner: 0 }))
}
`
	lib, err := extractSource(t, src, AttributePolicy{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	lib.Depointerize()

	want := &Library{
		Functions: []Function{
			{Name: "add", Args: []string{"i32", "i32"}, Ret: "i32"},
			{Name: "make", Args: nil, Ret: "Handle"},
		},
		Opaques: []Opaque{{Name: "Handle"}},
	}
	if !reflect.DeepEqual(lib, want) {
		t.Errorf("Library = %+v, want %+v", lib, want)
	}
}

func TestExtract_NestedModules(t *testing.T) {
	src := `
mod inner {
    #[export]
    fn nested(a: u8) -> u8 {
        a
    }

    mod deeper {
        #[opaque]
        pub struct Buried {
            v: u8,
        }
    }
}
`
	lib, err := extractSource(t, src, AttributePolicy{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(lib.Functions) != 1 || lib.Functions[0].Name != "nested" {
		t.Errorf("expected nested function to be discovered, got %+v", lib.Functions)
	}
	if len(lib.Opaques) != 1 || lib.Opaques[0].Name != "Buried" {
		t.Errorf("expected nested opaque to be discovered, got %+v", lib.Opaques)
	}
}

func TestExtract_MethodsAreNotSurface(t *testing.T) {
	src := `
#[opaque]
pub struct Handle {
    inner: u64,
}

impl Handle {
    #[export]
    fn leak(&self) -> u64 {
        self.inner
    }
}
`
	lib, err := extractSource(t, src, AttributePolicy{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(lib.Functions) != 0 {
		t.Errorf("impl methods must not be extracted, got %+v", lib.Functions)
	}
}

func TestExtract_OpaqueTypeAlias(t *testing.T) {
	src := `
#[opaque]
type Token = u64;
`
	lib, err := extractSource(t, src, AttributePolicy{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := []Opaque{{Name: "Token"}}
	if !reflect.DeepEqual(lib.Opaques, want) {
		t.Errorf("Opaques = %+v, want %+v", lib.Opaques, want)
	}
}

func TestExtract_FailFast(t *testing.T) {
	src := `
#[export]
fn good(a: i32) -> i32 {
    a
}

#[export]
fn bad(callback: fn(i32) -> i32) {
}
`
	_, err := extractSource(t, src, AttributePolicy{})
	if err == nil {
		t.Fatal("expected extraction to fail on function pointer argument")
	}

	var unsupported *UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error = %T, want *UnsupportedTypeError", err)
	}
	if unsupported.Construct != "function pointer" {
		t.Errorf("construct = %q, want %q", unsupported.Construct, "function pointer")
	}
	if unsupported.Decl != "bad" {
		t.Errorf("decl = %q, want %q", unsupported.Decl, "bad")
	}
}

func TestExtract_MalformedRepr(t *testing.T) {
	src := `
#[repr(banana)]
pub enum Broken {
    A,
}
`
	_, err := extractSource(t, src, AttributePolicy{})
	if err == nil {
		t.Fatal("expected extraction to fail on unrecognized repr token")
	}

	var malformed *MalformedAttributeError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %T, want *MalformedAttributeError", err)
	}
	if malformed.Token != "banana" {
		t.Errorf("token = %q, want %q", malformed.Token, "banana")
	}
	if !strings.Contains(err.Error(), "Broken") {
		t.Errorf("error %q does not name the declaration", err)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	first, err := extractSource(t, attributeSource, AttributePolicy{})
	if err != nil {
		t.Fatalf("first Extract failed: %v", err)
	}
	second, err := extractSource(t, attributeSource, AttributePolicy{})
	if err != nil {
		t.Fatalf("second Extract failed: %v", err)
	}

	first.Depointerize()
	second.Depointerize()

	if !reflect.DeepEqual(first, second) {
		t.Error("extraction is not deterministic across identical runs")
	}
}

func TestExtract_DeclarationOrderPreserved(t *testing.T) {
	src := `
#[export]
fn first() {}

#[export]
fn second() {}

#[export]
fn third() {}
`
	lib, err := extractSource(t, src, AttributePolicy{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(lib.Functions) != len(want) {
		t.Fatalf("expected %d functions, got %d", len(want), len(lib.Functions))
	}
	for i, name := range want {
		if lib.Functions[i].Name != name {
			t.Errorf("Functions[%d].Name = %q, want %q", i, lib.Functions[i].Name, name)
		}
	}
}
