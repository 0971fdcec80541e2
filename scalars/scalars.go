// Package scalars implements the GraphQL scalar wrapper types used by
// generated models and handler signatures: the ID scalar and the
// AWS-flavored scalars (dates, times, timestamps, email, phone, URL).
//
// Every wrapper enforces its textual or numeric format on construction and
// on JSON decode, and round-trips losslessly through serialization. The
// remaining scalar mappings are plain Go types and need no wrapper:
//
//	String  -> string
//	Int     -> int32
//	Float   -> float64
//	Boolean -> bool
//	AWSJSON -> jsontext.Value
//	AWSIPAddress -> netip.Addr
package scalars

import "fmt"

func formatError(scalar, value string) error {
	return fmt.Errorf("%q is not a valid %s value", value, scalar)
}
