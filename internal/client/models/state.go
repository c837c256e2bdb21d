package models

import "fmt"

// UploadState is the visible phase of the upload workflow.
type UploadState string

const (
	StateIdle      UploadState = "idle"
	StateUploading UploadState = "uploading"
	StateSucceeded UploadState = "succeeded"
	StateFailed    UploadState = "failed"
)

// ValidTransitions lists the allowed state changes. Reset may return to Idle
// from every state; a failed or finished run can be resubmitted directly.
var ValidTransitions = map[UploadState][]UploadState{
	StateIdle:      {StateIdle, StateUploading, StateFailed},
	StateUploading: {StateIdle, StateSucceeded, StateFailed},
	StateSucceeded: {StateIdle, StateUploading},
	StateFailed:    {StateIdle, StateUploading, StateFailed},
}

func CanTransition(from, to UploadState) bool {
	allowed, exists := ValidTransitions[from]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

func ValidateTransition(from, to UploadState) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("invalid transition from %s to %s", from, to)
	}
	return nil
}

// Settled reports whether no transport call is pending in this state.
func (s UploadState) Settled() bool {
	return s != StateUploading
}
