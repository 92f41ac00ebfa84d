// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rast

import (
	"errors"

	"github.com/gogpu/rast/internal/fixed"
	"github.com/gogpu/rast/internal/path"
)

var (
	// ErrMalformedPath is returned when a path's verb and point streams
	// do not line up. It is wrapped by *MalformedPathError.
	ErrMalformedPath = path.ErrMalformedPath

	// ErrInvalidDimensions is returned for non-positive buffer sizes.
	ErrInvalidDimensions = errors.New("rast: invalid dimensions")

	// ErrDivisionByZero is reported by checked fixed-point division.
	ErrDivisionByZero = fixed.ErrDivisionByZero

	// ErrUnknownNode is returned by TransformTree for an ID it did not
	// create.
	ErrUnknownNode = errors.New("rast: unknown transform node")
)

// MalformedPathError describes where a verb stream ran out of points or
// left points unconsumed.
type MalformedPathError = path.MalformedPathError
