package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// FailureKind classifies a provider failure for retry decisions.
type FailureKind int

const (
	// FailurePermanent will not succeed without a request change
	// (bad auth, malformed input). Never retried.
	FailurePermanent FailureKind = iota

	// FailureTransient is likely to succeed if retried later
	// (overload, rate limit, temporary unavailability).
	FailureTransient

	// FailureTimeout means a bounded wait elapsed. The remote operation
	// may still complete server-side, so callers should word guidance
	// differently from a provider-reported error.
	FailureTimeout
)

// String returns the machine-checkable kind prefix.
func (k FailureKind) String() string {
	switch k {
	case FailureTransient:
		return "transient"
	case FailureTimeout:
		return "timeout"
	default:
		return "permanent"
	}
}

// Failure is a typed error carrying a failure kind, the operation that
// failed and human-readable detail. The Error string always starts with
// the kind prefix so callers (and tests) can check it without unwrapping.
type Failure struct {
	// Kind is the retry classification.
	Kind FailureKind

	// Op names the operation that failed (e.g. "list stores").
	Op string

	// Detail is the human-readable failure reason.
	Detail string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	msg := f.Detail
	if msg == "" && f.Err != nil {
		msg = f.Err.Error()
	}
	if f.Op != "" {
		return fmt.Sprintf("%s: %s: %s", f.Kind, f.Op, msg)
	}
	return fmt.Sprintf("%s: %s", f.Kind, msg)
}

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure builds a Failure wrapping err.
func NewFailure(kind FailureKind, op string, err error) *Failure {
	return &Failure{Kind: kind, Op: op, Err: err}
}

// FailureKindOf returns the kind of err. A *Failure reports its own kind;
// anything else goes through Classify.
func FailureKindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return Classify(err)
}

// IsTransient reports whether err should be retried.
func IsTransient(err error) bool {
	return FailureKindOf(err) == FailureTransient
}

// IsTimeout reports whether err is a bounded-wait expiry.
func IsTimeout(err error) bool {
	return FailureKindOf(err) == FailureTimeout
}

// transientMarkers are substrings that mark an error as transient.
// The upstream error vocabulary is not controlled by this system, so this
// is a heuristic, not an exact contract: it covers HTTP-style status codes
// and the overload/quota phrases the provider is known to emit.
var transientMarkers = []string{
	"500",
	"503",
	"429",
	"overloaded",
	"unavailable",
	"quota",
	"resource_exhausted",
	"rate limit",
	"too many requests",
	"internal error",
	"try again",
}

// Classify decides the retry classification of an arbitrary error by
// inspecting its message. Context expiry classifies as timeout; known
// overload markers classify as transient; everything else is permanent.
func Classify(err error) FailureKind {
	if err == nil {
		return FailurePermanent
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "deadline") {
		return FailureTimeout
	}
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return FailureTransient
		}
	}
	return FailurePermanent
}
