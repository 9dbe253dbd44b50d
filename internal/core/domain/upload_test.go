package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadState_Next(t *testing.T) {
	const maxPolls = 3

	t.Run("done without error", func(t *testing.T) {
		s := UploadState{Phase: PhasePolling}
		next := s.Next(PollResult{Done: true}, maxPolls)
		assert.Equal(t, PhaseDone, next.Phase)
	})

	t.Run("done with error payload fails", func(t *testing.T) {
		s := UploadState{Phase: PhasePolling}
		next := s.Next(PollResult{Done: true, ErrMessage: "file too large"}, maxPolls)
		assert.Equal(t, PhaseFailed, next.Phase)
		assert.Equal(t, "file too large", next.Reason)
		assert.False(t, next.TimedOut)
	})

	t.Run("not done keeps polling", func(t *testing.T) {
		s := UploadState{Phase: PhaseSubmitted}
		next := s.Next(PollResult{Done: false}, maxPolls)
		assert.Equal(t, PhasePolling, next.Phase)
		assert.Equal(t, 1, next.Attempt)
	})

	t.Run("poll error counts but does not abort", func(t *testing.T) {
		s := UploadState{Phase: PhasePolling, Attempt: 1}
		next := s.Next(PollResult{PollErr: errors.New("503")}, maxPolls)
		assert.Equal(t, PhasePolling, next.Phase)
		assert.Equal(t, 2, next.Attempt)
	})

	t.Run("ceiling yields timeout failure", func(t *testing.T) {
		s := UploadState{Phase: PhasePolling, Attempt: maxPolls - 1}
		next := s.Next(PollResult{Done: false}, maxPolls)
		assert.Equal(t, PhaseFailed, next.Phase)
		assert.True(t, next.TimedOut)
		assert.Contains(t, next.Reason, "did not finish")
	})

	t.Run("terminal states are absorbing", func(t *testing.T) {
		done := UploadState{Phase: PhaseDone, Attempt: 2}
		assert.Equal(t, done, done.Next(PollResult{Done: true, ErrMessage: "late error"}, maxPolls))

		failed := UploadState{Phase: PhaseFailed, Reason: "x"}
		assert.Equal(t, failed, failed.Next(PollResult{Done: true}, maxPolls))
	})

	t.Run("exhaustive run without completion times out", func(t *testing.T) {
		s := UploadState{Phase: PhaseSubmitted}
		for i := 0; i < 150; i++ {
			s = s.Next(PollResult{Done: false}, 150)
		}
		assert.Equal(t, PhaseFailed, s.Phase)
		assert.True(t, s.TimedOut)
		assert.Equal(t, 150, s.Attempt)
	})
}

func TestUploadPhase_String(t *testing.T) {
	assert.Equal(t, "submitted", PhaseSubmitted.String())
	assert.Equal(t, "polling", PhasePolling.String())
	assert.Equal(t, "done", PhaseDone.String())
	assert.Equal(t, "failed", PhaseFailed.String())
}
