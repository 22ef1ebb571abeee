package arpack

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArchiveSignature indicates that the data does not begin with the global header
	// "!<arch>\n" (including data shorter than the global header).
	ErrInvalidArchiveSignature = errors.New("ar: invalid archive signature")

	// ErrTruncatedHeader indicates that the data ends part way through a member header.
	ErrTruncatedHeader = errors.New("ar: truncated member header")

	// ErrInvalidMemberMagic indicates that a member header does not end with "`\n".
	ErrInvalidMemberMagic = errors.New("ar: invalid member header magic")

	// ErrMalformedField indicates that a numeric header field does not hold a number in the
	// field's radix.
	ErrMalformedField = errors.New("ar: malformed header field")

	// ErrTruncatedContent indicates that a member declares more content than the data holds.
	ErrTruncatedContent = errors.New("ar: truncated member content")

	// ErrTruncatedPadding indicates that an odd-sized member is not followed by its pad byte.
	ErrTruncatedPadding = errors.New("ar: truncated member padding")

	// ErrFilenameTooLong indicates that a member name does not fit the name field.
	ErrFilenameTooLong = errors.New("ar: file name too long")

	// ErrFieldOverflow indicates that a numeric value cannot be represented in its field.
	ErrFieldOverflow = errors.New("ar: field overflow")

	// ErrSizeMismatch indicates that a member's Size disagrees with the length of its content.
	ErrSizeMismatch = errors.New("ar: size does not match content length")

	ErrWriteTooLong  = errors.New("ar: write too long")
	ErrWriteTooShort = errors.New("ar: member content incomplete")
	ErrWriterClosed  = errors.New("ar: writer closed")
)

// DecodeError reports where in an archive decoding failed.
type DecodeError struct {
	// Offset is the byte offset of the member header being decoded, or 0 for the global header.
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s (at offset %d)", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports which member could not be encoded.
type EncodeError struct {
	Index int
	Name  string
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("ar: archive member %d '%s': %s", e.Index, e.Name, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
