package sylph

import "math/big"

type ValueKind int

const (
	KindUnit ValueKind = iota
	KindBool
	KindInt
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindString:
		return "string"
	}
	return "unknown"
}

// Value is an immutable runtime value. Integers carry their width tag and a
// magnitude shared as *big.Int; operations allocate fresh magnitudes rather
// than mutating.
type Value struct {
	kind ValueKind
	data any
}

type intData struct {
	width Width
	mag   *big.Int
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsUnit() bool { return v.kind == KindUnit }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

// Width reports an integer's width tag, or WidthUnset for non-integers.
func (v Value) Width() Width {
	if v.kind == KindInt {
		return v.data.(intData).width
	}
	return WidthUnset
}

// Int returns an integer's magnitude. Callers must not mutate the result.
func (v Value) Int() *big.Int {
	if v.kind == KindInt {
		return v.data.(intData).mag
	}
	return nil
}

func (v Value) Str() string {
	if v.kind == KindString {
		return v.data.(string)
	}
	return ""
}

// Render produces the external textual form used by out: base-10 integers,
// true/false, strings without quotes.
func (v Value) Render() string {
	switch v.kind {
	case KindInt:
		return v.data.(intData).mag.String()
	case KindBool:
		if v.data.(bool) {
			return "true"
		}
		return "false"
	case KindString:
		return v.data.(string)
	}
	return ""
}
