package services

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrMissingCredential = errors.New("model API credential is not configured")
	ErrAuthFailure       = errors.New("model API rejected the credential")
	ErrAllModelsFailed   = errors.New("all models failed")
	ErrUnparsableOutput  = errors.New("model output is not parseable JSON")
	ErrInputTooShort     = errors.New("input text is too short to analyze")
	ErrProfileAnalysis   = errors.New("profile analysis failed")
	ErrNoCandidates      = errors.New("no model candidates configured")
	ErrUnsupportedFile   = errors.New("unsupported file type")
	ErrInvalidRequest    = errors.New("invalid request")
)

// AttemptRecord is one failed model attempt.
type AttemptRecord struct {
	Model   string
	Attempt int
	Reason  string
}

func (a AttemptRecord) String() string {
	return fmt.Sprintf("%s attempt %d: %s", a.Model, a.Attempt, a.Reason)
}

// ExhaustedError is returned when every model candidate failed.
type ExhaustedError struct {
	Attempts []AttemptRecord
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.String())
	}
	return fmt.Sprintf("%s after %d attempts: %s", ErrAllModelsFailed, len(e.Attempts), strings.Join(parts, "; "))
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrAllModelsFailed
}

// JSONRecoveryError is returned when no recovery strategy yields a JSON object.
type JSONRecoveryError struct {
	Original string
	Cause    error
}

func (e *JSONRecoveryError) Error() string {
	return fmt.Sprintf("%s (%v): %q", ErrUnparsableOutput, e.Cause, truncateRunes(e.Original, 200))
}

func (e *JSONRecoveryError) Is(target error) bool {
	return target == ErrUnparsableOutput
}

func (e *JSONRecoveryError) Unwrap() error {
	return e.Cause
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
