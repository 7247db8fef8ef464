package domain

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Require records msg under field when value is blank.
func (fe FieldErrors) Require(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		fe[field] = msg
	}
}
