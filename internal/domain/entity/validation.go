package entity

import (
	"fmt"
	"unicode/utf8"
)

// Magazine name bounds, counted in characters rather than bytes.
const (
	MinMagazineNameLength = 2
	MaxMagazineNameLength = 16
)

// ValidateMagazineName checks that a magazine name is between
// MinMagazineNameLength and MaxMagazineNameLength characters.
func ValidateMagazineName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinMagazineNameLength || n > MaxMagazineNameLength {
		return &ValidationError{
			Kind:    ValueKind,
			Field:   "name",
			Message: fmt.Sprintf("must be between %d and %d characters", MinMagazineNameLength, MaxMagazineNameLength),
		}
	}
	return nil
}

// ValidateCategory checks that a magazine category is not empty.
func ValidateCategory(category string) error {
	if category == "" {
		return &ValidationError{Kind: ValueKind, Field: "category", Message: "must not be empty"}
	}
	return nil
}

// StringField asserts that a loosely typed value (decoded YAML or JSON) is a string.
// It returns a TypeKind ValidationError naming field otherwise.
func StringField(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{
			Kind:    TypeKind,
			Field:   field,
			Message: fmt.Sprintf("must be a string, got %T", v),
		}
	}
	return s, nil
}
