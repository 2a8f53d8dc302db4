package judge

import "errors"

var (
	// ErrUnavailable means the judge provider could not be reached or refused
	// the request (missing credentials, connection failure, upstream error).
	// The submission can be retried later.
	ErrUnavailable = errors.New("judge service unavailable")

	// ErrTimeout means the judge call exceeded its bounded wait
	ErrTimeout = errors.New("judge call timed out")

	// ErrMalformedVerdict means the judge responded but its output could not
	// be parsed into a decision. Callers must treat this as a rejection, never
	// as an award.
	ErrMalformedVerdict = errors.New("malformed verdict from judge")
)
