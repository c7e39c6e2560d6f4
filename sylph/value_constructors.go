package sylph

import "math/big"

func NewUnit() Value        { return Value{kind: KindUnit} }
func NewBool(b bool) Value  { return Value{kind: KindBool, data: b} }
func NewString(s string) Value {
	return Value{kind: KindString, data: s}
}

// NewInt builds an integer at the given width. The magnitude is not copied;
// callers hand over ownership. WidthUnset infers the narrowest fitting width.
func NewInt(width Width, mag *big.Int) Value {
	if width == WidthUnset {
		width = smallestWidth(mag)
	}
	return Value{kind: KindInt, data: intData{width: width, mag: mag}}
}

// NewInt64 is the convenience constructor hosts use when calling script
// functions with native integers.
func NewInt64(width Width, v int64) Value {
	return NewInt(width, big.NewInt(v))
}
