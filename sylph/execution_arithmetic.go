package sylph

import (
	"math/big"
	"strings"
)

func applyBinaryOp(op TokenType, left, right Value) (Value, error) {
	switch op {
	case tokenPlus:
		return addValues(left, right)
	case tokenMinus:
		return subtractValues(left, right)
	case tokenAsterisk:
		return multiplyValues(left, right)
	case tokenSlash:
		return divideValues(left, right)
	case tokenPercent:
		return moduloValues(left, right)
	case tokenEQ, tokenNotEQ, tokenLT, tokenGT, tokenLTE, tokenGTE:
		return compareValues(op, left, right)
	default:
		return NewUnit(), newValueError(ErrKindType, "unsupported operator %s", op)
	}
}

// promoteInts applies the width promotion rule: both operands must be
// integers, and the result width is the wider operand's width. Magnitudes are
// untouched; fitting is re-checked on the result, not the inputs.
func promoteInts(op TokenType, left, right Value) (*big.Int, *big.Int, Width, error) {
	if left.Kind() != KindInt || right.Kind() != KindInt {
		return nil, nil, WidthUnset, newValueError(ErrKindType, "cannot apply %s to %s and %s", op, left.Kind(), right.Kind())
	}
	return left.Int(), right.Int(), widerWidth(left.Width(), right.Width()), nil
}

// checkedResult rejects a fixed-width result that falls outside its width's
// range. bigint results are never rejected.
func checkedResult(width Width, mag *big.Int) (Value, error) {
	if !width.fits(mag) {
		return NewUnit(), newValueError(ErrKindOverflow, "value %s overflows %s", mag, width)
	}
	return NewInt(width, mag), nil
}

func addValues(left, right Value) (Value, error) {
	l, r, width, err := promoteInts(tokenPlus, left, right)
	if err != nil {
		return NewUnit(), err
	}
	return checkedResult(width, new(big.Int).Add(l, r))
}

func subtractValues(left, right Value) (Value, error) {
	l, r, width, err := promoteInts(tokenMinus, left, right)
	if err != nil {
		return NewUnit(), err
	}
	return checkedResult(width, new(big.Int).Sub(l, r))
}

func multiplyValues(left, right Value) (Value, error) {
	l, r, width, err := promoteInts(tokenAsterisk, left, right)
	if err != nil {
		return NewUnit(), err
	}
	return checkedResult(width, new(big.Int).Mul(l, r))
}

func divideValues(left, right Value) (Value, error) {
	l, r, width, err := promoteInts(tokenSlash, left, right)
	if err != nil {
		return NewUnit(), err
	}
	if r.Sign() == 0 {
		return NewUnit(), newValueError(ErrKindDivisionByZero, "division by zero")
	}
	// Quo truncates toward zero.
	return checkedResult(width, new(big.Int).Quo(l, r))
}

func moduloValues(left, right Value) (Value, error) {
	l, r, width, err := promoteInts(tokenPercent, left, right)
	if err != nil {
		return NewUnit(), err
	}
	if r.Sign() == 0 {
		return NewUnit(), newValueError(ErrKindDivisionByZero, "modulo by zero")
	}
	// Rem truncates toward zero; the sign follows the dividend.
	return checkedResult(width, new(big.Int).Rem(l, r))
}

func negateValue(val Value) (Value, error) {
	if val.Kind() != KindInt {
		return NewUnit(), newValueError(ErrKindType, "cannot negate %s", val.Kind())
	}
	return checkedResult(val.Width(), new(big.Int).Neg(val.Int()))
}

// compareValues accepts two integers (width-promoted, unchecked) or two
// strings (lexicographic). Everything else, bools included, is a type error.
func compareValues(op TokenType, left, right Value) (Value, error) {
	var cmp int
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		cmp = left.Int().Cmp(right.Int())
	case left.Kind() == KindString && right.Kind() == KindString:
		cmp = strings.Compare(left.Str(), right.Str())
	default:
		return NewUnit(), newValueError(ErrKindType, "cannot compare %s and %s", left.Kind(), right.Kind())
	}

	switch op {
	case tokenEQ:
		return NewBool(cmp == 0), nil
	case tokenNotEQ:
		return NewBool(cmp != 0), nil
	case tokenLT:
		return NewBool(cmp < 0), nil
	case tokenGT:
		return NewBool(cmp > 0), nil
	case tokenLTE:
		return NewBool(cmp <= 0), nil
	case tokenGTE:
		return NewBool(cmp >= 0), nil
	default:
		return NewUnit(), newValueError(ErrKindType, "unsupported comparison %s", op)
	}
}
