// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"errors"
	"fmt"
)

// ErrMalformedDocComment is matched by every MalformedDocCommentError.
var ErrMalformedDocComment = errors.New("malformed doc comment")

// MalformedDocCommentError reports a documentation block whose markup could
// not be parsed.
type MalformedDocCommentError struct {
	// Unit is the source unit name
	Unit string

	// Line is the index of the block's first line within the classified lines
	Line int

	// Err is the underlying XML error
	Err error
}

func (e *MalformedDocCommentError) Error() string {
	return fmt.Sprintf("%s: %s at line %d: %v", e.Unit, ErrMalformedDocComment, e.Line, e.Err)
}

func (e *MalformedDocCommentError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformedDocComment) succeed.
func (e *MalformedDocCommentError) Is(target error) bool {
	return target == ErrMalformedDocComment
}
