// Package errs defines the error taxonomy shared by the gpx and legacy
// decoders: truncated/unreadable input, structural format violations, and
// text that could not be decoded under any supported codepage.
package errs

import (
	"fmt"
)

// Io wraps an underlying read failure (truncated stream, unreadable
// source). The caller should treat it the same as io.ErrUnexpectedEOF.
type Io struct {
	Context string
	Err     error
}

func (e *Io) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("io: %v", e.Err)
	}
	return fmt.Sprintf("io: %s: %v", e.Context, e.Err)
}

func (e *Io) Unwrap() error { return e.Err }

// NewIo wraps err as an Io error, naming the field or section that was
// being read when it occurred.
func NewIo(context string, err error) error {
	if err == nil {
		return nil
	}
	return &Io{Context: context, Err: err}
}

// FormatError reports a structural violation: an unknown version tag, a
// malformed flag byte, an out-of-range sector index, an invalid tuplet
// code, a BCFZ back-reference offset past the decoded prefix, or an
// oversize string length prefix. A BCFS entry whose declared file size
// exceeds its accumulated data is dropped, not reported as an error.
type FormatError struct {
	Context string
	Msg     string
}

func (e *FormatError) Error() string {
	if e.Context == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Context, e.Msg)
}

// NewFormat reports a FormatError, naming the field or sector that
// triggered it.
func NewFormat(context, format string, args ...interface{}) error {
	return &FormatError{Context: context, Msg: fmt.Sprintf(format, args...)}
}

// StringEncoding reports that a text field could not be decoded under any
// supported codepage.
type StringEncoding struct {
	Context string
	Err     error
}

func (e *StringEncoding) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("string encoding: %v", e.Err)
	}
	return fmt.Sprintf("string encoding: %s: %v", e.Context, e.Err)
}

func (e *StringEncoding) Unwrap() error { return e.Err }

// NewStringEncoding reports a StringEncoding error for the named field.
func NewStringEncoding(context string, err error) error {
	return &StringEncoding{Context: context, Err: err}
}
