package extract

// Depointerize rewrites pointer-to-opaque descriptors in function
// signatures to the bare opaque name. At the Rust level an opaque
// handle is always passed as Name*, but the FFI layer wants the named
// handle itself. Matching is exact full-string only: "Foo*[]" and
// "Foo**" are never touched by the "Foo*" rule. Running it a second
// time is a no-op, since after the first pass no descriptor has the
// raw pointer form anymore.
//
// This must run once over the complete Library: the mapping needs
// every opaque name, so merged multi-file extractions depointerize
// after the merge, never per file.
func (l *Library) Depointerize() {
	depoint := make(map[string]string, len(l.Opaques))
	for _, opaque := range l.Opaques {
		depoint[opaque.Name+"*"] = opaque.Name
	}

	for i := range l.Functions {
		fn := &l.Functions[i]
		for j, arg := range fn.Args {
			if name, ok := depoint[arg]; ok {
				fn.Args[j] = name
			}
		}
		if name, ok := depoint[fn.Ret]; ok {
			fn.Ret = name
		}
	}
}
