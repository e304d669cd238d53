// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "github.com/pkg/errors"

// Errors returned by chip and board operations. Returned errors may wrap
// these with context; use errors.Cause to compare.
//
var (
	ErrPositionTaken      = errors.New("position already taken by another component")
	ErrChipCycle          = errors.New("chip would contain itself")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrNotFound           = errors.New("not found")
)

func invariantf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvariantViolation, format, args...)
}
