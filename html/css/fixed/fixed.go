// Package fixed implements the 24.8 signed fixed-point numeric type used
// throughout the CSS engine for lengths, angles, frequencies, and
// percentages.
package fixed

// Int is a 32-bit signed 24.8 fixed-point number: the low 8 bits are the
// fractional part, the remaining 24 bits (plus sign) are the integer part.
type Int int32

const (
	shift = 8
	one   = 1 << shift
	// HalfOne is 0.5 in 24.8, used for round-to-nearest conversions.
	HalfOne = one / 2
)

// FromInt converts a whole number to its 24.8 representation.
func FromInt(n int) Int { return Int(n << shift) }

// ToInt truncates toward zero.
func (x Int) ToInt() int {
	if x < 0 {
		return -int((-x) >> shift)
	}
	return int(x >> shift)
}

// Round returns x rounded to the nearest integer (ties away from zero).
func (x Int) Round() int {
	if x >= 0 {
		return int((x + HalfOne) >> shift)
	}
	return -int((-x + HalfOne) >> shift)
}

// Float64 converts to a float64, useful at the boundary with host callbacks.
func (x Int) Float64() float64 { return float64(x) / float64(one) }

// FromFloat64 converts a float64 to 24.8, saturating on overflow rather
// than panicking.
func FromFloat64(f float64) Int {
	v := f * one
	if v > float64(maxInt32) {
		return Int(maxInt32)
	}
	if v < float64(minInt32) {
		return Int(minInt32)
	}
	return Int(v)
}

const (
	maxInt32 = 1<<31 - 1
	minInt32 = -1 << 31
)

// Add returns x+y, saturating on overflow.
func Add(x, y Int) Int {
	r := int64(x) + int64(y)
	return saturate(r)
}

// Sub returns x-y, saturating on overflow.
func Sub(x, y Int) Int {
	r := int64(x) - int64(y)
	return saturate(r)
}

// Neg returns -x.
func Neg(x Int) Int {
	if x == Int(minInt32) {
		return Int(maxInt32)
	}
	return -x
}

// Mul returns x*y using a 64-bit intermediate, saturating on overflow.
func Mul(x, y Int) Int {
	r := (int64(x) * int64(y)) >> shift
	return saturate(r)
}

// Div returns x/y using a 64-bit intermediate. Division by zero returns
// the saturated value of the correct sign rather than panicking.
func Div(x, y Int) Int {
	if y == 0 {
		if x < 0 {
			return Int(minInt32)
		}
		return Int(maxInt32)
	}
	r := (int64(x) << shift) / int64(y)
	return saturate(r)
}

// MulInt multiplies a fixed value by a plain integer scalar.
func MulInt(x Int, n int) Int {
	r := int64(x) * int64(n)
	return saturate(r)
}

// DivInt divides a fixed value by a plain integer scalar.
func DivInt(x Int, n int) Int {
	if n == 0 {
		if x < 0 {
			return Int(minInt32)
		}
		return Int(maxInt32)
	}
	return Int(int64(x) / int64(n))
}

func saturate(r int64) Int {
	if r > maxInt32 {
		return Int(maxInt32)
	}
	if r < minInt32 {
		return Int(minInt32)
	}
	return Int(r)
}

// Parse parses an optional sign, integer part, and optional ".fraction"
// with no exponent. It returns the parsed value and the
// number of bytes consumed; the caller treats the value as invalid when
// consumed != len(s).
func Parse(s []byte) (value Int, consumed int) {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	start := i
	var whole int64
	for i < len(s) && isDigit(s[i]) {
		whole = whole*10 + int64(s[i]-'0')
		i++
	}
	hadInt := i > start

	var frac int64
	fracDigits := 0
	hadFrac := false
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			frac = frac*10 + int64(s[j]-'0')
			fracDigits++
			j++
		}
		if fracDigits > 0 {
			hadFrac = true
			i = j
		}
	}

	if !hadInt && !hadFrac {
		return 0, 0
	}

	v := whole << shift
	if hadFrac {
		// frac/10^fracDigits * 256, rounded.
		num := frac << shift
		den := int64(1)
		for k := 0; k < fracDigits; k++ {
			den *= 10
		}
		v += (num + den/2) / den
	}
	if neg {
		v = -v
	}
	return saturate(v), i
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
