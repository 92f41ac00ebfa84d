// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package blend

// FillSpan composites a constant premultiplied color with coverage cov
// onto every pixel of dst, a run of premultiplied RGBA8 pixels. A
// trailing partial pixel is ignored.
func FillSpan(dst []byte, sr, sg, sb, sa, cov byte, op Op) {
	n := len(dst) / 4
	if n == 0 {
		return
	}

	switch op {
	case OpSrc:
		fillSolid(dst[:n*4], mulDiv255(sr, cov), mulDiv255(sg, cov), mulDiv255(sb, cov), mulDiv255(sa, cov))
		return
	case OpSrcOver:
		if cov == 0 || sa == 0 {
			return
		}
		if cov == 255 && sa == 255 {
			fillSolid(dst[:n*4], sr, sg, sb, sa)
			return
		}
	case OpDstIn:
		if cov == 0 || sa == 255 {
			return
		}
	case OpDstOut:
		if cov == 0 || sa == 0 {
			return
		}
	}

	fn := GetFunc(op)
	for i := 0; i < n*4; i += 4 {
		p := dst[i : i+4 : i+4]
		p[0], p[1], p[2], p[3] = fn(sr, sg, sb, sa, p[0], p[1], p[2], p[3], cov)
	}
}

// fillSolid writes one pixel value across dst, doubling the copied
// prefix on each pass.
func fillSolid(dst []byte, r, g, b, a byte) {
	if len(dst) < 4 {
		return
	}
	dst[0], dst[1], dst[2], dst[3] = r, g, b, a
	for filled := 4; filled < len(dst); filled *= 2 {
		copy(dst[filled:], dst[:filled])
	}
}
