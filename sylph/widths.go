package sylph

import "math/big"

// Width is an integer's representation category. Fixed widths are checked on
// every arithmetic result; WidthBig is arbitrary precision and never
// overflows. The constant order is the promotion order.
type Width int

const (
	WidthUnset Width = iota
	WidthI8
	WidthI16
	WidthI32
	WidthI64
	WidthI128
	WidthBig
)

func (w Width) String() string {
	switch w {
	case WidthI8:
		return "i8"
	case WidthI16:
		return "i16"
	case WidthI32:
		return "i32"
	case WidthI64:
		return "i64"
	case WidthI128:
		return "i128"
	case WidthBig:
		return "bigint"
	}
	return "unset"
}

func widthForSuffix(suffix string) (Width, bool) {
	switch suffix {
	case "i8":
		return WidthI8, true
	case "i16":
		return WidthI16, true
	case "i32":
		return WidthI32, true
	case "i64":
		return WidthI64, true
	case "i128":
		return WidthI128, true
	case "bigint":
		return WidthBig, true
	}
	return WidthUnset, false
}

func (w Width) bits() int {
	switch w {
	case WidthI8:
		return 8
	case WidthI16:
		return 16
	case WidthI32:
		return 32
	case WidthI64:
		return 64
	case WidthI128:
		return 128
	}
	return 0
}

var (
	widthMin = map[Width]*big.Int{}
	widthMax = map[Width]*big.Int{}
)

func init() {
	one := big.NewInt(1)
	for _, w := range []Width{WidthI8, WidthI16, WidthI32, WidthI64, WidthI128} {
		bound := new(big.Int).Lsh(one, uint(w.bits()-1))
		widthMax[w] = new(big.Int).Sub(bound, one)
		widthMin[w] = new(big.Int).Neg(bound)
	}
}

// fits reports whether v is representable at this width. WidthBig holds
// everything.
func (w Width) fits(v *big.Int) bool {
	if w == WidthBig {
		return true
	}
	return v.Cmp(widthMin[w]) >= 0 && v.Cmp(widthMax[w]) <= 0
}

// smallestWidth picks the narrowest width whose signed range contains v,
// falling through to bigint past the i128 range.
func smallestWidth(v *big.Int) Width {
	for _, w := range []Width{WidthI8, WidthI16, WidthI32, WidthI64, WidthI128} {
		if w.fits(v) {
			return w
		}
	}
	return WidthBig
}

// widerWidth is the promotion rule: the wider operand's width wins.
func widerWidth(a, b Width) Width {
	if a >= b {
		return a
	}
	return b
}
