// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fixed provides the fixed-point numeric core of the rasterizer.
//
// Each Q-format is its own named type so that mixing formats without an
// explicit conversion does not compile:
//
//   - FDot6:  26.6 (int32), sub-pixel geometry inside the scan converter
//   - FDot16: 16.16 (int32), slopes and trigonometry
//   - FDot12: 52.12 (int64), wide intermediates
//
// Rounding is always (x + half) >> shift. Multiplication uses a wider
// intermediate. Division by zero never panics: it saturates to the
// largest representable magnitude with the sign of the numerator.
package fixed

import (
	"errors"
	"math"
	"math/bits"

	xfixed "golang.org/x/image/math/fixed"
)

// ErrDivisionByZero is reported by the DivChecked methods. The quotient
// returned alongside it is the saturated sentinel.
var ErrDivisionByZero = errors.New("fixed: division by zero")

// FDot6 is a 26.6 fixed-point number (1/64 pixel precision).
type FDot6 int32

// FDot16 is a 16.16 fixed-point number.
type FDot16 int32

// FDot12 is a 52.12 fixed-point number.
type FDot12 int64

// FDot6 constants.
const (
	FDot6Shift       = 6
	FDot6One   FDot6 = 1 << FDot6Shift
	FDot6Half  FDot6 = FDot6One >> 1
	FDot6Mask  FDot6 = FDot6One - 1
	FDot6Max   FDot6 = math.MaxInt32
)

// FDot16 constants.
const (
	FDot16Shift        = 16
	FDot16One   FDot16 = 1 << FDot16Shift
	FDot16Half  FDot16 = FDot16One >> 1
	FDot16Mask  FDot16 = FDot16One - 1
	FDot16Max   FDot16 = math.MaxInt32
)

// FDot12 constants.
const (
	FDot12Shift        = 12
	FDot12One   FDot12 = 1 << FDot12Shift
	FDot12Half  FDot12 = FDot12One >> 1
	FDot12Mask  FDot12 = FDot12One - 1
	FDot12Max   FDot12 = math.MaxInt64
)

// ---- FDot6 ----

// FDot6FromInt converts an integer to FDot6.
func FDot6FromInt(n int32) FDot6 { return FDot6(n << FDot6Shift) }

// FDot6FromFloat64 converts f to the nearest FDot6, saturating out of
// range values.
func FDot6FromFloat64(f float64) FDot6 {
	return FDot6(saturate32(math.Round(f * float64(FDot6One))))
}

// FDot6FromInt26_6 converts an x/image fixed.Int26_6, which shares the layout.
func FDot6FromInt26_6(v xfixed.Int26_6) FDot6 { return FDot6(v) }

// Int26_6 returns v as an x/image fixed.Int26_6.
func (v FDot6) Int26_6() xfixed.Int26_6 { return xfixed.Int26_6(v) }

// Float64 converts v to float64.
func (v FDot6) Float64() float64 { return float64(v) / float64(FDot6One) }

// Floor returns the largest integer <= v.
func (v FDot6) Floor() int32 { return int32(v >> FDot6Shift) }

// Ceil returns the smallest integer >= v.
func (v FDot6) Ceil() int32 { return int32((v + FDot6Mask) >> FDot6Shift) }

// Round returns the nearest integer, halves rounding up.
func (v FDot6) Round() int32 { return int32((v + FDot6Half) >> FDot6Shift) }

// Frac returns the fractional part of v in [0, FDot6One).
func (v FDot6) Frac() FDot6 { return v & FDot6Mask }

// Add returns v + w.
func (v FDot6) Add(w FDot6) FDot6 { return v + w }

// Sub returns v - w.
func (v FDot6) Sub(w FDot6) FDot6 { return v - w }

// Mul returns v * w rounded toward negative infinity.
func (v FDot6) Mul(w FDot6) FDot6 {
	return FDot6(clamp32(int64(v) * int64(w) >> FDot6Shift))
}

// Div returns v / w truncated toward zero. A zero divisor or an
// overflowing quotient saturates.
func (v FDot6) Div(w FDot6) FDot6 {
	q, _ := v.DivChecked(w)
	return q
}

// DivChecked is Div that also reports ErrDivisionByZero.
func (v FDot6) DivChecked(w FDot6) (FDot6, error) {
	if w == 0 {
		return FDot6(sentinel32(int64(v))), ErrDivisionByZero
	}
	return FDot6(clamp32((int64(v) << FDot6Shift) / int64(w))), nil
}

// ToFDot16 widens v to 16.16, saturating on overflow.
func (v FDot6) ToFDot16() FDot16 {
	return FDot16(clamp32(int64(v) << (FDot16Shift - FDot6Shift)))
}

// ToFDot12 widens v to 52.12.
func (v FDot6) ToFDot12() FDot12 {
	return FDot12(int64(v) << (FDot12Shift - FDot6Shift))
}

// FDot6Div divides two FDot6 values yielding an FDot16 ratio, the
// slope form used by edge walkers.
func FDot6Div(a, b FDot6) FDot16 {
	if b == 0 {
		return FDot16(sentinel32(int64(a)))
	}
	if a == FDot6(int16(a)) {
		return FDot16((int32(a) << FDot16Shift) / int32(b))
	}
	return FDot16(clamp32((int64(a) << FDot16Shift) / int64(b)))
}

// ---- FDot16 ----

// FDot16FromInt converts an integer to FDot16.
func FDot16FromInt(n int32) FDot16 { return FDot16(n << FDot16Shift) }

// FDot16FromFloat64 converts f to the nearest FDot16, saturating out of
// range values.
func FDot16FromFloat64(f float64) FDot16 {
	return FDot16(saturate32(math.Round(f * float64(FDot16One))))
}

// Float64 converts v to float64.
func (v FDot16) Float64() float64 { return float64(v) / float64(FDot16One) }

// Floor returns the largest integer <= v.
func (v FDot16) Floor() int32 { return int32(v >> FDot16Shift) }

// Ceil returns the smallest integer >= v.
func (v FDot16) Ceil() int32 { return int32((int64(v) + int64(FDot16Mask)) >> FDot16Shift) }

// Round returns the nearest integer, halves rounding up.
func (v FDot16) Round() int32 { return int32((int64(v) + int64(FDot16Half)) >> FDot16Shift) }

// Add returns v + w.
func (v FDot16) Add(w FDot16) FDot16 { return v + w }

// Sub returns v - w.
func (v FDot16) Sub(w FDot16) FDot16 { return v - w }

// Mul returns v * w rounded toward negative infinity.
func (v FDot16) Mul(w FDot16) FDot16 {
	return FDot16(clamp32(int64(v) * int64(w) >> FDot16Shift))
}

// Div returns v / w truncated toward zero. A zero divisor or an
// overflowing quotient saturates.
func (v FDot16) Div(w FDot16) FDot16 {
	q, _ := v.DivChecked(w)
	return q
}

// DivChecked is Div that also reports ErrDivisionByZero.
func (v FDot16) DivChecked(w FDot16) (FDot16, error) {
	if w == 0 {
		return FDot16(sentinel32(int64(v))), ErrDivisionByZero
	}
	return FDot16(clamp32((int64(v) << FDot16Shift) / int64(w))), nil
}

// ToFDot6 narrows v to 26.6 with rounding.
func (v FDot16) ToFDot6() FDot6 {
	const d = FDot16Shift - FDot6Shift
	return FDot6((int64(v) + 1<<(d-1)) >> d)
}

// ToFDot12 converts v to 52.12 with rounding.
func (v FDot16) ToFDot12() FDot12 {
	const d = FDot16Shift - FDot12Shift
	return FDot12((int64(v) + 1<<(d-1)) >> d)
}

// FDot8FromFDot16 narrows a 16.16 value to 24.8, the form used for
// per-pixel alpha interpolation.
func FDot8FromFDot16(v FDot16) int32 {
	return (int32(v) + 0x80) >> 8
}

// ---- FDot12 ----

// FDot12FromInt converts an integer to FDot12.
func FDot12FromInt(n int64) FDot12 { return FDot12(n << FDot12Shift) }

// FDot12FromFloat64 converts f to the nearest FDot12, saturating out of
// range values.
func FDot12FromFloat64(f float64) FDot12 {
	r := math.Round(f * float64(FDot12One))
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt64:
		return FDot12Max
	case r <= math.MinInt64:
		return -FDot12Max
	}
	return FDot12(r)
}

// FDot12FromInt52_12 converts an x/image fixed.Int52_12, which shares the layout.
func FDot12FromInt52_12(v xfixed.Int52_12) FDot12 { return FDot12(v) }

// Int52_12 returns v as an x/image fixed.Int52_12.
func (v FDot12) Int52_12() xfixed.Int52_12 { return xfixed.Int52_12(v) }

// Float64 converts v to float64.
func (v FDot12) Float64() float64 { return float64(v) / float64(FDot12One) }

// Floor returns the largest integer <= v.
func (v FDot12) Floor() int64 { return int64(v >> FDot12Shift) }

// Ceil returns the smallest integer >= v.
func (v FDot12) Ceil() int64 { return int64((v + FDot12Mask) >> FDot12Shift) }

// Round returns the nearest integer, halves rounding up.
func (v FDot12) Round() int64 { return int64((v + FDot12Half) >> FDot12Shift) }

// Add returns v + w.
func (v FDot12) Add(w FDot12) FDot12 { return v + w }

// Sub returns v - w.
func (v FDot12) Sub(w FDot12) FDot12 { return v - w }

// Mul returns v * w rounded toward negative infinity, computed with a
// 128-bit intermediate.
func (v FDot12) Mul(w FDot12) FDot12 {
	neg := (v < 0) != (w < 0)
	hi, lo := bits.Mul64(abs64(int64(v)), abs64(int64(w)))
	if neg {
		lo = ^lo + 1
		hi = ^hi
		if lo == 0 {
			hi++
		}
	}
	return FDot12(int64(hi<<(64-FDot12Shift) | lo>>FDot12Shift))
}

// Div returns v / w truncated toward zero. A zero divisor or an
// overflowing quotient saturates.
func (v FDot12) Div(w FDot12) FDot12 {
	q, _ := v.DivChecked(w)
	return q
}

// DivChecked is Div that also reports ErrDivisionByZero.
func (v FDot12) DivChecked(w FDot12) (FDot12, error) {
	neg := (v < 0) != (w < 0)
	if w == 0 {
		if v < 0 {
			return -FDot12Max, ErrDivisionByZero
		}
		return FDot12Max, ErrDivisionByZero
	}
	a, b := abs64(int64(v)), abs64(int64(w))
	hi, lo := a>>(64-FDot12Shift), a<<FDot12Shift
	if hi >= b {
		if neg {
			return -FDot12Max, nil
		}
		return FDot12Max, nil
	}
	q, _ := bits.Div64(hi, lo, b)
	if q > math.MaxInt64 {
		q = math.MaxInt64
	}
	if neg {
		return -FDot12(q), nil
	}
	return FDot12(q), nil
}

// ToFDot6 narrows v to 26.6 with rounding, saturating on overflow.
func (v FDot12) ToFDot6() FDot6 {
	const d = FDot12Shift - FDot6Shift
	return FDot6(clamp32((int64(v) + 1<<(d-1)) >> d))
}

// ToFDot16 widens v to 16.16, saturating on overflow.
func (v FDot12) ToFDot16() FDot16 {
	const d = FDot16Shift - FDot12Shift
	x := int64(v)
	if x > math.MaxInt32>>d {
		return FDot16Max
	}
	if x < -(math.MaxInt32 >> d) {
		return -FDot16Max
	}
	return FDot16(x << d)
}

// ---- helpers ----

func sentinel32(numerator int64) int32 {
	if numerator < 0 {
		return -math.MaxInt32
	}
	return math.MaxInt32
}

func clamp32(x int64) int32 {
	if x > math.MaxInt32 {
		return math.MaxInt32
	}
	if x < -math.MaxInt32 {
		return -math.MaxInt32
	}
	return int32(x)
}

func saturate32(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= -math.MaxInt32:
		return -math.MaxInt32
	}
	return int32(f)
}

func abs64(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}
