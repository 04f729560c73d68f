package domain

import "errors"

var (
	// Collection errors
	ErrUnknownKind     = errors.New("unknown account kind")
	ErrUnknownCategory = errors.New("unknown flow category")
	ErrHoldingNotFound = errors.New("holding not found")
	ErrFlowNotFound    = errors.New("flow not found")

	// Field update errors
	ErrFieldNotApplicable = errors.New("field does not apply to this account kind")

	// Submission errors
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrNoResult           = errors.New("no simulation result available")
)
