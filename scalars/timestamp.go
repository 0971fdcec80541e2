package scalars

import (
	"time"
)

// AWSTimestamp is the AWSTimestamp scalar: whole seconds since the UNIX
// epoch, serialized as a JSON number.
type AWSTimestamp int64

// TimestampNow returns the current time as an AWSTimestamp.
func TimestampNow() AWSTimestamp {
	return AWSTimestamp(time.Now().Unix())
}

// TimestampOf truncates t to whole seconds since the epoch.
func TimestampOf(t time.Time) AWSTimestamp {
	return AWSTimestamp(t.Unix())
}

// Time converts the timestamp back into a time.Time in UTC.
func (ts AWSTimestamp) Time() time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

// Add returns the timestamp shifted by d, truncated to whole seconds.
func (ts AWSTimestamp) Add(d time.Duration) AWSTimestamp {
	return ts + AWSTimestamp(d/time.Second)
}

// Sub returns the duration between two timestamps.
func (ts AWSTimestamp) Sub(other AWSTimestamp) time.Duration {
	return time.Duration(ts-other) * time.Second
}
