package scalars

import "net/url"

// AWSURL is the AWSURL scalar: an absolute URL with a scheme and host.
type AWSURL struct{ s string }

// ParseAWSURL validates s as an AWSURL.
func ParseAWSURL(s string) (AWSURL, error) {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return AWSURL{}, formatError("AWSURL", s)
	}
	return AWSURL{s: s}, nil
}

// URL parses the stored text into a *url.URL.
func (u AWSURL) URL() *url.URL {
	parsed, _ := url.Parse(u.s)
	return parsed
}

func (u AWSURL) String() string { return u.s }

func (u AWSURL) MarshalText() ([]byte, error) { return []byte(u.s), nil }

func (u *AWSURL) UnmarshalText(text []byte) error {
	parsed, err := ParseAWSURL(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
