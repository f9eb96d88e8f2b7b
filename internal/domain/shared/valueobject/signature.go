package valueobject

import "strings"

// Signature is a value object holding a captured signature image as an
// opaque payload (typically a base64 data URI produced on the device).
// The backend never interprets the image; it only requires presence.
type Signature struct {
	data string
}

// NewSignature creates a Signature from the raw captured payload.
// Surrounding whitespace is stripped; an all-whitespace payload is empty.
func NewSignature(data string) Signature {
	return Signature{data: strings.TrimSpace(data)}
}

// EmptySignature returns the zero signature
func EmptySignature() Signature {
	return Signature{}
}

// IsEmpty returns true if no signature was captured
func (s Signature) IsEmpty() bool {
	return s.data == ""
}

// Data returns the opaque signature payload
func (s Signature) Data() string {
	return s.data
}
