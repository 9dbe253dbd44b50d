package domain

import "fmt"

// UploadFile is one local file queued for indexing.
type UploadFile struct {
	// Name is the display name, usually the base file name.
	Name string

	// ContentType is the client-reported MIME type, if any. Resolved
	// against the extension table by ResolveMIME before submission.
	ContentType string

	// Data is the raw file content.
	Data []byte
}

// MIMEType resolves the type to submit for this file.
func (f *UploadFile) MIMEType() string {
	return ResolveMIME(f.Name, f.ContentType)
}

// UploadPhase identifies a stage of the per-file indexing state machine.
type UploadPhase int

const (
	// PhaseSubmitted means the file bytes were sent and an operation
	// handle was returned.
	PhaseSubmitted UploadPhase = iota

	// PhasePolling means the operation status is being checked.
	PhasePolling

	// PhaseDone means the operation completed without error.
	PhaseDone

	// PhaseFailed means the operation reported an error or the polling
	// ceiling was reached.
	PhaseFailed
)

// String returns the phase name for progress messages.
func (p UploadPhase) String() string {
	switch p {
	case PhaseSubmitted:
		return "submitted"
	case PhasePolling:
		return "polling"
	case PhaseDone:
		return "done"
	default:
		return "failed"
	}
}

// UploadState is the tagged per-file state: Submitted, Polling{Attempt},
// Done, or Failed{Reason, TimedOut}. Transitions go through Next, a pure
// function, so the state machine is testable without real timers.
type UploadState struct {
	// Phase is the current stage.
	Phase UploadPhase

	// Attempt counts status polls performed so far. Meaningful while
	// Phase is PhasePolling.
	Attempt int

	// Reason is the failure detail when Phase is PhaseFailed.
	Reason string

	// TimedOut distinguishes a polling-ceiling expiry from a
	// provider-reported error. A timed-out job may still finish
	// server-side; a reported error will not.
	TimedOut bool
}

// PollResult is one observation of a long-running indexing operation.
type PollResult struct {
	// Done reports whether the provider considers the operation finished.
	Done bool

	// ErrMessage is the provider-reported error payload, if any.
	ErrMessage string

	// PollErr is a failure of the status check itself. Counted toward
	// the ceiling but never terminal on its own.
	PollErr error
}

// Next returns the state after observing res, given a ceiling of maxPolls.
// Poll failures are tolerated: they advance the attempt counter and keep
// polling until the ceiling.
func (s UploadState) Next(res PollResult, maxPolls int) UploadState {
	if s.Phase == PhaseDone || s.Phase == PhaseFailed {
		return s
	}

	attempt := s.Attempt + 1

	if res.PollErr == nil && res.Done {
		if res.ErrMessage != "" {
			return UploadState{Phase: PhaseFailed, Attempt: attempt, Reason: res.ErrMessage}
		}
		return UploadState{Phase: PhaseDone, Attempt: attempt}
	}

	if attempt >= maxPolls {
		return UploadState{
			Phase:    PhaseFailed,
			Attempt:  attempt,
			Reason:   fmt.Sprintf("indexing did not finish within %d status checks", maxPolls),
			TimedOut: true,
		}
	}

	return UploadState{Phase: PhasePolling, Attempt: attempt}
}

// UploadProgress is one progress report for a file in a batch.
type UploadProgress struct {
	// Index is the 1-based position of the current file.
	Index int

	// Total is the number of files in the batch.
	Total int

	// FileName is the current file's display name.
	FileName string

	// SizeBytes is the current file's size.
	SizeBytes int64

	// Message is a human-readable status line.
	Message string
}

// Answer is a grounded response to a question against one module.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Citations reference the indexed passages the answer drew on.
	Citations []Citation
}

// Citation is one grounding reference in an Answer.
type Citation struct {
	// Source is the document display name the passage came from.
	Source string

	// Snippet is the cited passage text, possibly truncated.
	Snippet string
}
