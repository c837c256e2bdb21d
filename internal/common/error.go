// Package common defines shared constants and sentinel errors used across
// the transport, workflow and front-end layers of docforge. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors. The message is shown to the user verbatim.
	//nolint:staticcheck // user-facing text
	ErrNoFile = errors.New("Please select a file first")

	// Workflow errors.
	ErrBusy   = errors.New("upload in progress")
	ErrClosed = errors.New("workflow closed")
)
