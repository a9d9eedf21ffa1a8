package valueobject

import (
	"fmt"
	"strings"
)

// Email is an immutable value object for the customer identity key.
// It is trimmed but not case-folded: the CRM lookup is an exact match.
type Email struct {
	value string
}

// NewEmail creates a validated Email from a string.
func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Email{}, fmt.Errorf("email must not be empty")
	}
	if at := strings.LastIndex(trimmed, "@"); at <= 0 || at == len(trimmed)-1 {
		return Email{}, fmt.Errorf("email %q is malformed", trimmed)
	}
	return Email{value: trimmed}, nil
}

// String returns the string representation of the Email.
func (e Email) String() string {
	return e.value
}

// Equals checks equality with another Email.
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}
