package nationalid

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrInvalidLength   = errors.New("national id must be exactly 13 digits")
	ErrInvalidFormat   = errors.New("national id must contain only numbers")
	ErrInvalidChecksum = errors.New("invalid national id checksum")
)

// Normalize strips every non-digit character.
func Normalize(id string) string {
	var b strings.Builder
	for _, r := range id {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks the 13-digit weighted checksum: the first 12 digits are
// multiplied by descending weights 13..2, the check digit is (11 - sum mod 11) mod 10.
func Validate(id string) error {
	clean := Normalize(id)

	if len(clean) != 13 {
		return ErrInvalidLength
	}

	for _, r := range clean {
		if r < '0' || r > '9' {
			return ErrInvalidFormat
		}
	}

	sum := 0
	for i := 0; i < 12; i++ {
		sum += int(clean[i]-'0') * (13 - i)
	}

	checkDigit := (11 - sum%11) % 10
	if int(clean[12]-'0') != checkDigit {
		return ErrInvalidChecksum
	}

	return nil
}

// Format renders an id as 1-2345-67890-12-3 for display.
func Format(id string) string {
	clean := Normalize(id)
	if len(clean) != 13 {
		return clean
	}
	return clean[0:1] + "-" + clean[1:5] + "-" + clean[5:10] + "-" + clean[10:12] + "-" + clean[12:13]
}
