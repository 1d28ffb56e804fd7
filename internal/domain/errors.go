package domain

import "errors"

// ErrCarNotFound is returned by single-record lookups that miss. It is an
// expected outcome, not a transport or backend failure.
var ErrCarNotFound = errors.New("car not found")

// ErrConsentRequired is returned when an enquiry is submitted without PDPA
// consent. The check runs before any network call.
var ErrConsentRequired = errors.New("pdpa consent not given")

// FetchError covers the read path: transport failures, non-2xx responses and
// success=false envelopes are all reported the same way. Message carries the
// backend-provided text when there is one.
type FetchError struct {
	Op      string
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return e.Op + ": " + e.Message
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SubmissionError covers the write path. A failed submission must reach the
// end user; callers must not treat it as a success of any kind.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return "enquiry submission failed: " + e.Message
	}
	return "enquiry submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
