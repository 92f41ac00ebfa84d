// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fixed

import "math/bits"

// CORDIC trigonometry in the FreeType (fttrigon) formulation. Angles are
// 16.16 degrees and results are bit-identical across platforms because
// only integer shifts and adds are used.

// Angle is an angle in 16.16 fixed-point degrees.
type Angle int32

// Angle constants.
const (
	AnglePi  Angle = 180 << 16
	Angle2Pi Angle = AnglePi * 2
	AnglePi2 Angle = AnglePi / 2
	AnglePi4 Angle = AnglePi / 4
)

// AngleFromDegrees converts degrees to an Angle.
func AngleFromDegrees(deg float64) Angle {
	return Angle(FDot16FromFloat64(deg))
}

// Degrees converts a to float64 degrees.
func (a Angle) Degrees() float64 { return FDot16(a).Float64() }

const (
	// trigScale is the CORDIC shrink factor 0.858785336480436 * 2^32.
	trigScale = 0xDBD95B16

	// trigSafeMSB is the highest bit allowed in prenormalized vector
	// components so the iterations cannot overflow.
	trigSafeMSB = 29

	trigMaxIters = 23
)

// trigArctanTable holds atan(2^-i) in 16.16 degrees for i = 1..22.
var trigArctanTable = [trigMaxIters - 1]int32{
	1740967, 919879, 466945, 234379, 117304, 58666, 29335, 14668,
	7334, 3667, 1833, 917, 458, 229, 115, 57,
	29, 14, 7, 4, 2, 1,
}

// Vector is a 2D vector of 16.16 components.
type Vector struct {
	X, Y FDot16
}

func trigDownscale(val int64) int64 {
	u := abs64(val)
	u = (u*trigScale + 0x100000000) >> 32
	if val < 0 {
		return -int64(u)
	}
	return int64(u)
}

// trigPrenorm scales (x, y) so the larger component has its MSB at
// trigSafeMSB. It returns the applied left shift (negative for right).
func trigPrenorm(x, y *int64) int {
	shift := bits.Len64(abs64(*x)|abs64(*y)) - 1
	if shift <= trigSafeMSB {
		shift = trigSafeMSB - shift
		*x <<= uint(shift)
		*y <<= uint(shift)
		return shift
	}
	shift -= trigSafeMSB
	*x >>= uint(shift)
	*y >>= uint(shift)
	return -shift
}

func trigPseudoRotate(x, y *int64, theta Angle) {
	vx, vy := *x, *y

	// Bring theta into [-pi/4, pi/4].
	for theta < -AnglePi4 {
		vx, vy = vy, -vx
		theta += AnglePi2
	}
	for theta > AnglePi4 {
		vx, vy = -vy, vx
		theta -= AnglePi2
	}

	t := int64(theta)
	b := int64(1)
	for i := 1; i < trigMaxIters; i++ {
		v1 := (vy + b) >> uint(i)
		v2 := (vx + b) >> uint(i)
		if t < 0 {
			vx, vy = vx+v1, vy-v2
			t += int64(trigArctanTable[i-1])
		} else {
			vx, vy = vx-v1, vy+v2
			t -= int64(trigArctanTable[i-1])
		}
		b <<= 1
	}
	*x, *y = vx, vy
}

// trigPseudoPolarize rotates (x, y) onto the positive x axis and returns
// the rotated length (still scaled by the CORDIC gain) and the angle.
func trigPseudoPolarize(x, y int64) (int64, Angle) {
	var theta int64
	switch {
	case y > x && y > -x:
		theta = int64(AnglePi2)
		x, y = y, -x
	case y > x:
		if y > 0 {
			theta = int64(AnglePi)
		} else {
			theta = -int64(AnglePi)
		}
		x, y = -x, -y
	case y < -x:
		theta = -int64(AnglePi2)
		x, y = -y, x
	}

	b := int64(1)
	for i := 1; i < trigMaxIters; i++ {
		v1 := (y + b) >> uint(i)
		v2 := (x + b) >> uint(i)
		if y > 0 {
			x, y = x+v1, y-v2
			theta += int64(trigArctanTable[i-1])
		} else {
			x, y = x-v1, y+v2
			theta -= int64(trigArctanTable[i-1])
		}
		b <<= 1
	}

	// Round theta to a multiple of 32 to hide the accumulated error.
	if theta >= 0 {
		theta = (theta + 16) &^ 31
	} else {
		theta = -((-theta + 16) &^ 31)
	}
	return x, Angle(theta)
}

// Cos returns the cosine of a.
func Cos(a Angle) FDot16 {
	x, y := int64(trigScale>>8), int64(0)
	trigPseudoRotate(&x, &y, a)
	return FDot16((x + 0x80) >> 8)
}

// Sin returns the sine of a.
func Sin(a Angle) FDot16 {
	return Cos(AnglePi2 - a)
}

// Tan returns the tangent of a.
func Tan(a Angle) FDot16 {
	x, y := int64(trigScale>>8), int64(0)
	trigPseudoRotate(&x, &y, a)
	return DivFix(FDot16(y), FDot16(x))
}

// Atan2 returns the angle of the vector (dx, dy). Atan2(0, 0) is 0.
func Atan2(dx, dy FDot16) Angle {
	if dx == 0 && dy == 0 {
		return 0
	}
	x, y := int64(dx), int64(dy)
	trigPrenorm(&x, &y)
	_, theta := trigPseudoPolarize(x, y)
	return theta
}

// UnitVector returns the unit vector pointing at angle a.
func UnitVector(a Angle) Vector {
	x, y := int64(trigScale>>8), int64(0)
	trigPseudoRotate(&x, &y, a)
	return Vector{X: FDot16((x + 0x80) >> 8), Y: FDot16((y + 0x80) >> 8)}
}

// Rotate returns v rotated by a.
func (v Vector) Rotate(a Angle) Vector {
	if v.X == 0 && v.Y == 0 {
		return v
	}
	x, y := int64(v.X), int64(v.Y)
	shift := trigPrenorm(&x, &y)
	trigPseudoRotate(&x, &y, a)
	x = trigDownscale(x)
	y = trigDownscale(y)

	if shift > 0 {
		half := int64(1) << uint(shift-1)
		x = (x + half - b2i(x < 0)) >> uint(shift)
		y = (y + half - b2i(y < 0)) >> uint(shift)
	} else {
		x <<= uint(-shift)
		y <<= uint(-shift)
	}
	return Vector{X: FDot16(x), Y: FDot16(y)}
}

// Length returns the Euclidean length of v.
func (v Vector) Length() FDot16 {
	switch {
	case v.X == 0:
		return absFDot16(v.Y)
	case v.Y == 0:
		return absFDot16(v.X)
	}
	x, y := int64(v.X), int64(v.Y)
	shift := trigPrenorm(&x, &y)
	x, _ = trigPseudoPolarize(x, y)
	x = trigDownscale(x)
	if shift > 0 {
		return FDot16((x + 1<<uint(shift-1)) >> uint(shift))
	}
	return FDot16(x << uint(-shift))
}

// Polarize returns the length and angle of v.
func (v Vector) Polarize() (FDot16, Angle) {
	if v.X == 0 && v.Y == 0 {
		return 0, 0
	}
	x, y := int64(v.X), int64(v.Y)
	shift := trigPrenorm(&x, &y)
	x, theta := trigPseudoPolarize(x, y)
	x = trigDownscale(x)
	if shift >= 0 {
		return FDot16(x >> uint(shift)), theta
	}
	return FDot16(x << uint(-shift)), theta
}

// FromPolar returns the vector with the given length and angle.
func FromPolar(length FDot16, a Angle) Vector {
	return Vector{X: length}.Rotate(a)
}

// AngleDiff returns a2 - a1 normalized to (-pi, pi].
func AngleDiff(a1, a2 Angle) Angle {
	delta := a2 - a1
	for delta <= -AnglePi {
		delta += Angle2Pi
	}
	for delta > AnglePi {
		delta -= Angle2Pi
	}
	return delta
}

// MulFix multiplies two 16.16 values rounding half away from zero.
func MulFix(a, b FDot16) FDot16 {
	neg := (a < 0) != (b < 0)
	c := (abs64(int64(a))*abs64(int64(b)) + 0x8000) >> 16
	if neg {
		return FDot16(clamp32(-int64(c)))
	}
	return FDot16(clamp32(int64(c)))
}

// DivFix divides two 16.16 values rounding half away from zero. A zero
// divisor saturates like Div.
func DivFix(a, b FDot16) FDot16 {
	if b == 0 {
		return FDot16(sentinel32(int64(a)))
	}
	neg := (a < 0) != (b < 0)
	ua, ub := abs64(int64(a)), abs64(int64(b))
	q := ((ua << 16) + ub>>1) / ub
	if neg {
		return FDot16(clamp32(-int64(q)))
	}
	return FDot16(clamp32(int64(q)))
}

func absFDot16(v FDot16) FDot16 {
	if v < 0 {
		return -v
	}
	return v
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
