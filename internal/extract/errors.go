package extract

import "fmt"

// UnsupportedTypeError is returned when a type expression uses a
// construct outside the closed FFI vocabulary. Construct names the
// rejected construct ("function pointer", "reference", ...); TypeText
// is the offending source text; Decl is the declaration being
// translated when the failure occurred.
type UnsupportedTypeError struct {
	Construct string
	TypeText  string
	Decl      string
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	msg := fmt.Sprintf("unsupported type: %s", e.Construct)
	if e.TypeText != "" {
		msg = fmt.Sprintf("%s (%q)", msg, e.TypeText)
	}
	if e.Decl != "" {
		msg = fmt.Sprintf("%s: %s", e.Decl, msg)
	}
	return msg
}

// MalformedAttributeError is returned when an attribute recognized by
// name carries arguments that do not parse into the expected shape,
// such as a repr marker with an unrecognized width token.
type MalformedAttributeError struct {
	Attribute string
	Token     string
	Decl      string
}

// Error implements the error interface.
func (e *MalformedAttributeError) Error() string {
	msg := fmt.Sprintf("malformed %s attribute: unrecognized token %q", e.Attribute, e.Token)
	if e.Decl != "" {
		msg = fmt.Sprintf("%s: %s", e.Decl, msg)
	}
	return msg
}
