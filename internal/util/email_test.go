package util

import (
	"testing"
)

func TestNormalizeEmail_Valid(t *testing.T) {
	testCases := map[string]string{
		"user@example.com":          "user@example.com",
		"  User@Example.COM  ":      "user@example.com",
		"first.last+tag@sub.io":     "first.last+tag@sub.io",
		"\tMIXED.Case@Domain.org\n": "mixed.case@domain.org",
	}

	for in, want := range testCases {
		got, err := NormalizeEmail(in)
		if err != nil {
			t.Errorf("NormalizeEmail(%q) error = %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeEmail_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"   ",
		"no-at-sign",
		"@example.com",
		"user@",
	}

	for _, in := range testCases {
		if _, err := NormalizeEmail(in); err == nil {
			t.Errorf("NormalizeEmail(%q) error = nil, want error", in)
		}
	}
}
