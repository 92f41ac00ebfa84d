// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package blend

// div255 divides x by 255, truncating, without using division.
//
// Formula: ((x + 1) + ((x + 1) >> 8)) >> 8
//
// This is Alvy Ray Smith's formula. It equals x/255 for every product of
// two bytes, which keeps output bit-identical to integer division.
func div255(x uint16) uint16 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255, truncating.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// inv255 computes 255 - x (inverse alpha).
func inv255(x byte) byte {
	return 255 - x
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// Premultiply converts a straight-alpha color to premultiplied form,
// truncating each channel to c*a/255.
func Premultiply(r, g, b, a byte) (byte, byte, byte, byte) {
	return mulDiv255(r, a), mulDiv255(g, a), mulDiv255(b, a), a
}

// Unpremultiply converts a premultiplied color back to straight alpha,
// rounding to nearest. Fully transparent input yields zero.
func Unpremultiply(r, g, b, a byte) (byte, byte, byte, byte) {
	if a == 0 {
		return 0, 0, 0, 0
	}
	if a == 255 {
		return r, g, b, a
	}
	un := func(c byte) byte {
		v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
		if v > 255 {
			return 255
		}
		return byte(v)
	}
	return un(r), un(g), un(b), a
}
