package valueobject

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// Phone is a phone number as written to the CRM. Numbers libphonenumber can
// validate are stored in E.164; anything else is kept as typed.
type Phone struct {
	value      string
	normalized bool
}

// NewPhone normalises raw against the default region. An empty region only
// accepts numbers that carry their own country code.
func NewPhone(raw, defaultRegion string) Phone {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Phone{}
	}

	num, err := libphonenumber.Parse(trimmed, strings.ToUpper(defaultRegion))
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return Phone{value: trimmed}
	}

	return Phone{
		value:      libphonenumber.Format(num, libphonenumber.E164),
		normalized: true,
	}
}

// String returns the number to store.
func (p Phone) String() string {
	return p.value
}

// IsEmpty reports whether no number was supplied.
func (p Phone) IsEmpty() bool {
	return p.value == ""
}

// Normalized reports whether the number was rewritten to E.164.
func (p Phone) Normalized() bool {
	return p.normalized
}
