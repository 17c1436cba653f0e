package provider

import "fmt"

// Direction distinguishes decode (wire → IR) from encode (IR → wire) in
// conversion errors.
type Direction string

const (
	DirectionDecode Direction = "decode"
	DirectionEncode Direction = "encode"
)

// ConversionError reports an unrecoverable structural mismatch during
// decode, encode, tool conversion, or span import. It is surfaced to the
// caller and never retried internally.
type ConversionError struct {
	Provider  Format
	Direction Direction
	Cause     error
}

func (e *ConversionError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("conversion failed: %v", e.Cause)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Direction, e.Cause)
}

func (e *ConversionError) Unwrap() error { return e.Cause }

// DecodeErr wraps a cause as a decode-direction ConversionError.
func DecodeErr(p Format, cause error) *ConversionError {
	return &ConversionError{Provider: p, Direction: DirectionDecode, Cause: cause}
}

// EncodeErr wraps a cause as an encode-direction ConversionError.
func EncodeErr(p Format, cause error) *ConversionError {
	return &ConversionError{Provider: p, Direction: DirectionEncode, Cause: cause}
}
