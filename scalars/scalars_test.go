package scalars_test

import (
	"testing"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/graphsmith/appsync/scalars"
)

func TestNewID(t *testing.T) {
	t.Parallel()

	a, b := scalars.NewID(), scalars.NewID()
	if a == "" || b == "" {
		t.Fatal("NewID() returned an empty ID")
	}
	if a == b {
		t.Errorf("NewID() returned the same ID twice: %s", a)
	}
	// Any opaque string is a valid ID, not only UUIDs.
	if got := scalars.ID("7e5c2b").String(); got != "7e5c2b" {
		t.Errorf("ID.String() = %q", got)
	}
}

func TestAWSDate(t *testing.T) {
	t.Parallel()

	valid := []string{"2024-02-29", "1970-01-01", "2024-06-15+05:30", "2024-06-15Z"}
	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			d, err := scalars.ParseAWSDate(s)
			if err != nil {
				t.Fatalf("ParseAWSDate(%q) error = %v", s, err)
			}
			if d.String() != s {
				t.Errorf("String() = %q, want the original text %q", d.String(), s)
			}
		})
	}

	invalid := []string{"", "2024-13-01", "2024-2-1", "15/06/2024", "2023-02-29"}
	for _, s := range invalid {
		t.Run("invalid "+s, func(t *testing.T) {
			t.Parallel()
			if _, err := scalars.ParseAWSDate(s); err == nil {
				t.Errorf("ParseAWSDate(%q) succeeded, want error", s)
			}
		})
	}
}

func TestAWSTime(t *testing.T) {
	t.Parallel()

	valid := []string{"09:30:00", "09:30", "09:30:00.500", "09:30:00-07:00", "23:59:59Z"}
	for _, s := range valid {
		if _, err := scalars.ParseAWSTime(s); err != nil {
			t.Errorf("ParseAWSTime(%q) error = %v", s, err)
		}
	}
	invalid := []string{"", "25:00:00", "09:61:00", "noon"}
	for _, s := range invalid {
		if _, err := scalars.ParseAWSTime(s); err == nil {
			t.Errorf("ParseAWSTime(%q) succeeded, want error", s)
		}
	}
}

func TestAWSDateTime(t *testing.T) {
	t.Parallel()

	dt, err := scalars.ParseAWSDateTime("2024-06-15T09:30:00Z")
	if err != nil {
		t.Fatalf("ParseAWSDateTime() error = %v", err)
	}
	if got := dt.Time(); !got.Equal(time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("Time() = %v", got)
	}

	of := scalars.AWSDateTimeOf(time.Date(2024, 6, 15, 9, 30, 0, 0, time.FixedZone("X", 3600)))
	if of.String() != "2024-06-15T08:30:00Z" {
		t.Errorf("AWSDateTimeOf() = %q, want UTC text", of.String())
	}

	if _, err := scalars.ParseAWSDateTime("2024-06-15 09:30:00"); err == nil {
		t.Error("ParseAWSDateTime() accepted a missing offset")
	}
}

func TestAWSTimestamp(t *testing.T) {
	t.Parallel()

	ts := scalars.TimestampOf(time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC))
	if ts != 1718443800 {
		t.Fatalf("TimestampOf() = %d", ts)
	}
	if got := ts.Time(); !got.Equal(time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("Time() = %v", got)
	}
	if got := ts.Add(90 * time.Second); got != ts+90 {
		t.Errorf("Add(90s) = %d", got)
	}
	if got := ts.Add(90 * time.Second).Sub(ts); got != 90*time.Second {
		t.Errorf("Sub() = %v", got)
	}

	// Serializes as a JSON number, not a string.
	out, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != "1718443800" {
		t.Errorf("Marshal() = %s", out)
	}
}

func TestAWSEmail(t *testing.T) {
	t.Parallel()

	e, err := scalars.ParseAWSEmail("Alice@Example.COM")
	if err != nil {
		t.Fatalf("ParseAWSEmail() error = %v", err)
	}
	if e.String() != "alice@example.com" {
		t.Errorf("String() = %q, want lowercased", e.String())
	}

	for _, s := range []string{"", "alice", "alice@", "@example.com", "a b@example.com", "alice@example"} {
		if _, err := scalars.ParseAWSEmail(s); err == nil {
			t.Errorf("ParseAWSEmail(%q) succeeded, want error", s)
		}
	}
}

func TestAWSPhone(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"+14155552671", "+44 20 7946 0958", "(415) 555-2671"} {
		if _, err := scalars.ParseAWSPhone(s); err != nil {
			t.Errorf("ParseAWSPhone(%q) error = %v", s, err)
		}
	}
	for _, s := range []string{"", "12345", "call me", "+1415555267x"} {
		if _, err := scalars.ParseAWSPhone(s); err == nil {
			t.Errorf("ParseAWSPhone(%q) succeeded, want error", s)
		}
	}
}

func TestAWSURL(t *testing.T) {
	t.Parallel()

	u, err := scalars.ParseAWSURL("https://example.com/path?q=1")
	if err != nil {
		t.Fatalf("ParseAWSURL() error = %v", err)
	}
	if u.URL().Host != "example.com" {
		t.Errorf("URL().Host = %q", u.URL().Host)
	}

	for _, s := range []string{"", "example.com/path", "/relative", "mailto:"} {
		if _, err := scalars.ParseAWSURL(s); err == nil {
			t.Errorf("ParseAWSURL(%q) succeeded, want error", s)
		}
	}
}

func TestScalarJSONRoundTrip(t *testing.T) {
	t.Parallel()

	type record struct {
		When  scalars.AWSDateTime `json:"when"`
		Where scalars.AWSURL      `json:"where"`
	}

	in := []byte(`{"when":"2024-06-15T09:30:00Z","where":"https://example.com"}`)
	var r record
	if err := json.Unmarshal(in, &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != string(in) {
		t.Errorf("round trip changed the value: %s", out)
	}

	if err := json.Unmarshal([]byte(`{"when":"tomorrow","where":"https://example.com"}`), &r); err == nil {
		t.Error("Unmarshal() accepted a malformed AWSDateTime")
	}
}
