package dagjson

import "fmt"

// InvalidLinkEncodingError is returned when an object matches the link
// convention but its value is not valid base64.
type InvalidLinkEncodingError struct {
	Value string
	Cause error
}

func (e InvalidLinkEncodingError) Name() string {
	return "InvalidLinkEncoding"
}

func (e InvalidLinkEncodingError) Error() string {
	return fmt.Sprintf("invalid base64 encoding in link %q: %s", e.Value, e.Cause)
}

func (e InvalidLinkEncodingError) Unwrap() error {
	return e.Cause
}

// InvalidLinkCidError is returned when a link value base64 decodes but the
// bytes do not parse as a CID.
type InvalidLinkCidError struct {
	Value string
	Cause error
}

func (e InvalidLinkCidError) Name() string {
	return "InvalidLinkCid"
}

func (e InvalidLinkCidError) Error() string {
	return fmt.Sprintf("invalid cid in link %q: %s", e.Value, e.Cause)
}

func (e InvalidLinkCidError) Unwrap() error {
	return e.Cause
}

// NonFiniteFloatError is returned when encoding a NaN or infinite float,
// neither of which JSON can represent.
type NonFiniteFloatError struct {
	Value float64
}

func (e NonFiniteFloatError) Name() string {
	return "NonFiniteFloat"
}

func (e NonFiniteFloatError) Error() string {
	return fmt.Sprintf("cannot encode non-finite float %v as JSON", e.Value)
}
