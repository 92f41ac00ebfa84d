// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package blend implements the compositing operators used to paint
// coverage spans.
//
// All operators work on premultiplied RGBA8 values and take the coverage
// of the pixel being painted. Every division is a truncating division by
// 255, so results are bit-stable across platforms.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import (
	"fmt"
	"strings"
)

// Op is a compositing operator.
type Op uint8

const (
	// OpSrcOver composites the source over the destination [default].
	// Formula: S*c + D*(1 - Sa*c)
	OpSrcOver Op = iota
	// OpSrc writes the source scaled by coverage, discarding the destination.
	// Formula: S*c
	OpSrc
	// OpDstIn keeps the destination where the source is opaque.
	// Formula: D*(Sa*c + 1 - c)
	OpDstIn
	// OpDstOut keeps the destination where the source is transparent.
	// Formula: D*((1 - Sa)*c + 1 - c)
	OpDstOut
)

var opNames = [...]string{
	OpSrcOver: "src-over",
	OpSrc:     "src",
	OpDstIn:   "dst-in",
	OpDstOut:  "dst-out",
}

// String returns the operator name as accepted by ParseOp.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// ParseOp returns the operator with the given name. Matching ignores
// case, and underscores may replace hyphens.
func ParseOp(name string) (Op, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for op, s := range opNames {
		if s == n {
			return Op(op), nil
		}
	}
	return OpSrcOver, fmt.Errorf("blend: unknown operator %q", name)
}

// Func composites one premultiplied source pixel with coverage cov onto a
// premultiplied destination pixel.
type Func func(sr, sg, sb, sa, dr, dg, db, da, cov byte) (r, g, b, a byte)

// GetFunc returns the function for op. Unknown operators fall back to
// OpSrcOver.
func GetFunc(op Op) Func {
	switch op {
	case OpSrc:
		return blendSrc
	case OpDstIn:
		return blendDstIn
	case OpDstOut:
		return blendDstOut
	default:
		return blendSrcOver
	}
}

// blendSrc replaces the destination with the source scaled by coverage.
func blendSrc(sr, sg, sb, sa, _, _, _, _, cov byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, cov), mulDiv255(sg, cov), mulDiv255(sb, cov), mulDiv255(sa, cov)
}

// blendSrcOver composites the coverage-scaled source over the destination.
func blendSrcOver(sr, sg, sb, sa, dr, dg, db, da, cov byte) (byte, byte, byte, byte) {
	sr, sg, sb, sa = mulDiv255(sr, cov), mulDiv255(sg, cov), mulDiv255(sb, cov), mulDiv255(sa, cov)
	invSa := inv255(sa)
	return addClamp(sr, mulDiv255(dr, invSa)),
		addClamp(sg, mulDiv255(dg, invSa)),
		addClamp(sb, mulDiv255(db, invSa)),
		addClamp(sa, mulDiv255(da, invSa))
}

// blendDstIn scales the destination by the source alpha inside the
// covered part of the pixel.
func blendDstIn(_, _, _, sa, dr, dg, db, da, cov byte) (byte, byte, byte, byte) {
	f := mulDiv255(sa, cov) + inv255(cov)
	return mulDiv255(dr, f), mulDiv255(dg, f), mulDiv255(db, f), mulDiv255(da, f)
}

// blendDstOut scales the destination by the inverse source alpha inside
// the covered part of the pixel.
func blendDstOut(_, _, _, sa, dr, dg, db, da, cov byte) (byte, byte, byte, byte) {
	f := mulDiv255(inv255(sa), cov) + inv255(cov)
	return mulDiv255(dr, f), mulDiv255(dg, f), mulDiv255(db, f), mulDiv255(da, f)
}
