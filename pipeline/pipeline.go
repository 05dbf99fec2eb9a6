// Package pipeline orchestrates extraction and update of documents: the
// per-document update state machine with automatic rollback, single
// document extraction and sequential batch processing.
package pipeline

import "time"

// ProgressEvent reports progress during a batch operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Sections  int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

func (f ProgressFunc) emit(event ProgressEvent) {
	if f != nil {
		f(event)
	}
}

// clock returns now, or time.Now when now is nil.
func clock(now func() time.Time) time.Time {
	if now != nil {
		return now().UTC()
	}
	return time.Now().UTC()
}
