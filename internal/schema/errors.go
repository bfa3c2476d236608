// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaNotFound is matched by every NotFoundError.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrRefLoop is returned when components only alias each other in a loop.
	ErrRefLoop = errors.New("reference loop")
)

// NotFoundError reports a $ref naming a component absent from the table.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrSchemaNotFound, e.Ref)
}

// Is makes errors.Is(err, ErrSchemaNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrSchemaNotFound
}
