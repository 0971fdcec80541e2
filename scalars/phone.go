package scalars

import "regexp"

// E.164-style: an optional leading +, digits and common separators.
var phoneChars = regexp.MustCompile(`^\+?[0-9 ().-]+$`)

// AWSPhone is the AWSPhone scalar: a phone number in a format the downstream
// service accepts (E.164 recommended).
type AWSPhone struct{ s string }

// ParseAWSPhone validates s as an AWSPhone: 7 to 15 digits with separators
// tolerated.
func ParseAWSPhone(s string) (AWSPhone, error) {
	if !phoneChars.MatchString(s) {
		return AWSPhone{}, formatError("AWSPhone", s)
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 || digits > 15 {
		return AWSPhone{}, formatError("AWSPhone", s)
	}
	return AWSPhone{s: s}, nil
}

func (p AWSPhone) String() string { return p.s }

func (p AWSPhone) MarshalText() ([]byte, error) { return []byte(p.s), nil }

func (p *AWSPhone) UnmarshalText(text []byte) error {
	parsed, err := ParseAWSPhone(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
