package extract

import (
	"reflect"
	"testing"
)

func TestDepointerize_RewritesArgsAndRet(t *testing.T) {
	lib := &Library{
		Functions: []Function{
			{Name: "make", Args: nil, Ret: "Handle*"},
			{Name: "use_it", Args: []string{"Handle*", "i32"}, Ret: "void"},
		},
		Opaques: []Opaque{{Name: "Handle"}},
	}

	lib.Depointerize()

	if lib.Functions[0].Ret != "Handle" {
		t.Errorf("ret = %q, want %q", lib.Functions[0].Ret, "Handle")
	}
	want := []string{"Handle", "i32"}
	if !reflect.DeepEqual(lib.Functions[1].Args, want) {
		t.Errorf("args = %v, want %v", lib.Functions[1].Args, want)
	}
}

func TestDepointerize_ExactMatchOnly(t *testing.T) {
	// "Handle*[]" and "Handle**" contain "Handle*" as a prefix but
	// are different descriptors; the rewrite must not touch them.
	lib := &Library{
		Functions: []Function{
			{Name: "many", Args: []string{"Handle*[]", "Handle**"}, Ret: "Handle*"},
		},
		Opaques: []Opaque{{Name: "Handle"}},
	}

	lib.Depointerize()

	want := []string{"Handle*[]", "Handle**"}
	if !reflect.DeepEqual(lib.Functions[0].Args, want) {
		t.Errorf("args = %v, want %v (substring rewriting occurred)", lib.Functions[0].Args, want)
	}
	if lib.Functions[0].Ret != "Handle" {
		t.Errorf("ret = %q, want %q", lib.Functions[0].Ret, "Handle")
	}
}

func TestDepointerize_Idempotent(t *testing.T) {
	lib := &Library{
		Functions: []Function{
			{Name: "make", Ret: "Handle*"},
			{Name: "free", Args: []string{"Handle*"}, Ret: "void"},
		},
		Opaques: []Opaque{{Name: "Handle"}},
	}

	lib.Depointerize()
	once := &Library{}
	once.Merge(lib)

	lib.Depointerize()
	if !reflect.DeepEqual(lib, once) {
		t.Errorf("second Depointerize changed the library: %+v != %+v", lib, once)
	}

	// No descriptor may keep the raw pointer-to-opaque form.
	for _, fn := range lib.Functions {
		for _, arg := range fn.Args {
			if arg == "Handle*" {
				t.Errorf("%s still has raw pointer descriptor %q", fn.Name, arg)
			}
		}
		if fn.Ret == "Handle*" {
			t.Errorf("%s still returns raw pointer descriptor", fn.Name)
		}
	}
}

func TestDepointerize_UnknownPointersUntouched(t *testing.T) {
	lib := &Library{
		Functions: []Function{
			{Name: "raw", Args: []string{"u8*", "Other*"}, Ret: "f64*"},
		},
		Opaques: []Opaque{{Name: "Handle"}},
	}

	lib.Depointerize()

	want := []string{"u8*", "Other*"}
	if !reflect.DeepEqual(lib.Functions[0].Args, want) {
		t.Errorf("args = %v, want %v", lib.Functions[0].Args, want)
	}
	if lib.Functions[0].Ret != "f64*" {
		t.Errorf("ret = %q, want %q", lib.Functions[0].Ret, "f64*")
	}
}

func TestMerge_ThenDepointerize(t *testing.T) {
	// The opaque rewrite needs global knowledge: a function in one
	// shard may return an opaque declared in another, so the merge
	// happens before the single Depointerize pass.
	shard1 := &Library{
		Functions: []Function{{Name: "make", Ret: "Handle*"}},
	}
	shard2 := &Library{
		Opaques: []Opaque{{Name: "Handle"}},
	}

	merged := &Library{}
	merged.Merge(shard1)
	merged.Merge(shard2)
	merged.Depointerize()

	if merged.Functions[0].Ret != "Handle" {
		t.Errorf("ret = %q, want %q", merged.Functions[0].Ret, "Handle")
	}
}
