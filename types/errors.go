package types

import "errors"

// Sentinel errors shared across services and handlers. Wrap these with
// fmt.Errorf("%w: ...") so callers can classify failures with errors.Is.
var (
	// ErrConfiguration marks invalid or missing configuration, such as a
	// malformed Redis URL or an empty API key.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNotFound marks a missing record, file, or empty index.
	ErrNotFound = errors.New("not found")

	// ErrParse marks input that could not be decoded: a stream event with
	// missing fields, an unextractable PDF, or a malformed model response.
	ErrParse = errors.New("parse error")

	// ErrTransient marks failures that are likely to succeed on retry,
	// such as a fetch timeout or an unavailable upstream.
	ErrTransient = errors.New("transient error")
)
