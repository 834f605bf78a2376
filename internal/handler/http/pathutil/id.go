// Package pathutil provides helpers for route parameters and metric-safe path labels.
package pathutil

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses an entity ID taken from a route parameter.
// The nil UUID is rejected as well as anything uuid.Parse refuses.
//
// Example:
//
//	id, err := ParseID(r.PathValue("id"))
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
