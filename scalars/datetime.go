package scalars

import (
	"time"
)

// AWSDate is an extended ISO 8601 date (YYYY-MM-DD), optionally carrying a
// timezone offset. The original text is preserved so values round-trip
// byte-for-byte.
type AWSDate struct{ s string }

var dateLayouts = []string{"2006-01-02", "2006-01-02Z07:00", "2006-01-02-07:00"}

// ParseAWSDate validates s as an AWSDate.
func ParseAWSDate(s string) (AWSDate, error) {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return AWSDate{s: s}, nil
		}
	}
	return AWSDate{}, formatError("AWSDate", s)
}

func (d AWSDate) String() string { return d.s }

func (d AWSDate) MarshalText() ([]byte, error) { return []byte(d.s), nil }

func (d *AWSDate) UnmarshalText(text []byte) error {
	parsed, err := ParseAWSDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AWSTime is an extended ISO 8601 time (hh:mm:ss[.sss][offset]).
type AWSTime struct{ s string }

var timeLayouts = []string{
	"15:04:05", "15:04:05.999999999",
	"15:04:05Z07:00", "15:04:05.999999999Z07:00",
	"15:04", "15:04Z07:00",
}

// ParseAWSTime validates s as an AWSTime.
func ParseAWSTime(s string) (AWSTime, error) {
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return AWSTime{s: s}, nil
		}
	}
	return AWSTime{}, formatError("AWSTime", s)
}

func (t AWSTime) String() string { return t.s }

func (t AWSTime) MarshalText() ([]byte, error) { return []byte(t.s), nil }

func (t *AWSTime) UnmarshalText(text []byte) error {
	parsed, err := ParseAWSTime(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AWSDateTime is an extended ISO 8601 datetime with a mandatory timezone
// offset or Z.
type AWSDateTime struct{ s string }

var dateTimeLayouts = []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04Z07:00"}

// ParseAWSDateTime validates s as an AWSDateTime.
func ParseAWSDateTime(s string) (AWSDateTime, error) {
	for _, layout := range dateTimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return AWSDateTime{s: s}, nil
		}
	}
	return AWSDateTime{}, formatError("AWSDateTime", s)
}

// AWSDateTimeOf formats t as an AWSDateTime in UTC.
func AWSDateTimeOf(t time.Time) AWSDateTime {
	return AWSDateTime{s: t.UTC().Format(time.RFC3339)}
}

// Time parses the stored text back into a time.Time.
func (dt AWSDateTime) Time() time.Time {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, dt.s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (dt AWSDateTime) String() string { return dt.s }

func (dt AWSDateTime) MarshalText() ([]byte, error) { return []byte(dt.s), nil }

func (dt *AWSDateTime) UnmarshalText(text []byte) error {
	parsed, err := ParseAWSDateTime(string(text))
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}
