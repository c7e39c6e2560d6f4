package sylph

import (
	"math/big"
	"testing"
)

func bigFromString(t *testing.T, digits string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		t.Fatalf("bad test literal %q", digits)
	}
	return v
}

func TestSmallestWidth(t *testing.T) {
	tests := []struct {
		digits string
		want   Width
	}{
		{"0", WidthI8},
		{"127", WidthI8},
		{"128", WidthI16},
		{"-128", WidthI8},
		{"-129", WidthI16},
		{"32767", WidthI16},
		{"32768", WidthI32},
		{"2147483647", WidthI32},
		{"2147483648", WidthI64},
		{"9223372036854775807", WidthI64},
		{"9223372036854775808", WidthI128},
		{"1000000000000000000000", WidthI128},
		{"170141183460469231731687303715884105727", WidthI128},
		{"170141183460469231731687303715884105728", WidthBig},
	}

	for _, tc := range tests {
		if got := smallestWidth(bigFromString(t, tc.digits)); got != tc.want {
			t.Fatalf("smallestWidth(%s): got %s want %s", tc.digits, got, tc.want)
		}
	}
}

func TestWidthFits(t *testing.T) {
	if !WidthI8.fits(big.NewInt(-128)) {
		t.Fatalf("-128 should fit i8")
	}
	if WidthI8.fits(big.NewInt(-129)) {
		t.Fatalf("-129 should not fit i8")
	}
	if !WidthBig.fits(bigFromString(t, "10000000000000000000000000000000000000000")) {
		t.Fatalf("bigint should fit everything")
	}
}

func TestWiderWidth(t *testing.T) {
	tests := []struct {
		a, b, want Width
	}{
		{WidthI8, WidthI64, WidthI64},
		{WidthI64, WidthI8, WidthI64},
		{WidthI32, WidthI32, WidthI32},
		{WidthI128, WidthBig, WidthBig},
	}
	for _, tc := range tests {
		if got := widerWidth(tc.a, tc.b); got != tc.want {
			t.Fatalf("widerWidth(%s, %s): got %s want %s", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestWidthStrings(t *testing.T) {
	want := map[Width]string{
		WidthI8:   "i8",
		WidthI16:  "i16",
		WidthI32:  "i32",
		WidthI64:  "i64",
		WidthI128: "i128",
		WidthBig:  "bigint",
	}
	for w, s := range want {
		if w.String() != s {
			t.Fatalf("width %d renders as %q, want %q", w, w.String(), s)
		}
	}
}

func TestWidthForSuffix(t *testing.T) {
	for _, suffix := range []string{"i8", "i16", "i32", "i64", "i128", "bigint"} {
		w, ok := widthForSuffix(suffix)
		if !ok {
			t.Fatalf("suffix %q not recognized", suffix)
		}
		if w.String() != suffix {
			t.Fatalf("suffix %q maps to %s", suffix, w)
		}
	}
	if _, ok := widthForSuffix("i7"); ok {
		t.Fatalf("i7 should not be a width")
	}
}

func TestNewIntInfersWidth(t *testing.T) {
	v := NewInt(WidthUnset, big.NewInt(128))
	if v.Width() != WidthI16 {
		t.Fatalf("inferred width mismatch: got %s want i16", v.Width())
	}

	pinned := NewInt(WidthI64, big.NewInt(10))
	if pinned.Width() != WidthI64 {
		t.Fatalf("pinned width lost: got %s", pinned.Width())
	}
}

func TestValueRender(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{NewInt64(WidthUnset, 42), "42"},
		{NewInt64(WidthI128, -7), "-7"},
		{NewInt(WidthBig, bigFromString(t, "1000000000000000000000")), "1000000000000000000000"},
		{NewBool(true), "true"},
		{NewBool(false), "false"},
		{NewString("plain text"), "plain text"},
	}
	for _, tc := range tests {
		if got := tc.value.Render(); got != tc.want {
			t.Fatalf("render mismatch: got %q want %q", got, tc.want)
		}
	}
}
