package util

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength bounds list and item names.
const MaxNameLength = 255

var (
	ErrNameEmpty   = errors.New("name is empty")
	ErrNameTooLong = fmt.Errorf("name too long, max %d characters", MaxNameLength)
)

// ValidateName requires a non-blank name of reasonable length.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// ValidateDistance checks a reminder radius in meters.
func ValidateDistance(meters int) error {
	if meters <= 0 {
		return fmt.Errorf("distance must be positive, got %d", meters)
	}
	if meters > 1_000_000 { // 1000 km
		return fmt.Errorf("distance too large, got %d", meters)
	}
	return nil
}

// ValidateFrequency checks a reminder interval in minutes.
func ValidateFrequency(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("frequency must be positive, got %d", minutes)
	}
	if minutes > 60*24*365 {
		return fmt.Errorf("frequency too large, got %d", minutes)
	}
	return nil
}
