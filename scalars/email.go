package scalars

import (
	"regexp"
	"strings"
)

// Email addresses are compared case-insensitively, so the wrapper normalizes
// to lowercase (same normalization the original service applies).
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AWSEmail is the AWSEmail scalar: a syntactically valid, lowercased email
// address.
type AWSEmail struct{ s string }

// ParseAWSEmail validates s as an AWSEmail and normalizes it to lowercase.
func ParseAWSEmail(s string) (AWSEmail, error) {
	if !emailPattern.MatchString(s) {
		return AWSEmail{}, formatError("AWSEmail", s)
	}
	return AWSEmail{s: strings.ToLower(s)}, nil
}

func (e AWSEmail) String() string { return e.s }

func (e AWSEmail) MarshalText() ([]byte, error) { return []byte(e.s), nil }

func (e *AWSEmail) UnmarshalText(text []byte) error {
	parsed, err := ParseAWSEmail(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
