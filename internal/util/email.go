package util

import (
	"fmt"
	"strings"

	"github.com/mcnijman/go-emailaddress"
)

// NormalizeEmail validates an address and returns its canonical stored form:
// surrounding whitespace trimmed, local part and domain lower-cased.
func NormalizeEmail(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("the email address is empty")
	}

	email, err := emailaddress.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("the email address is not valid: %w", err)
	}
	if email.LocalPart == "" || !strings.Contains(email.Domain, ".") {
		return "", fmt.Errorf("the email address is not valid: %s", trimmed)
	}
	return strings.ToLower(email.LocalPart) + "@" + strings.ToLower(email.Domain), nil
}
