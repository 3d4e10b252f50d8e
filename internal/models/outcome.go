package models

import "fmt"

// OutcomeKind classifies a single model call.
type OutcomeKind string

const (
	OutcomeSuccess            OutcomeKind = "success"
	OutcomeRateLimited        OutcomeKind = "rate_limited"
	OutcomeServiceUnavailable OutcomeKind = "service_unavailable"
	OutcomeHTTPError          OutcomeKind = "http_error"
	OutcomeTimeout            OutcomeKind = "timeout"
	OutcomeConnectionFailure  OutcomeKind = "connection_failure"
	OutcomeInvalidStructure   OutcomeKind = "invalid_structure"
	OutcomeTooShort           OutcomeKind = "too_short"
	OutcomeAuthFailure        OutcomeKind = "auth_failure"
)

// AttemptOutcome is the classified result of one model call.
type AttemptOutcome struct {
	Kind          OutcomeKind
	Content       string
	TokenEstimate int
	StatusCode    int
	Detail        string
}

func (o AttemptOutcome) IsSuccess() bool {
	return o.Kind == OutcomeSuccess
}

// Reason renders the outcome for logs and aggregate error messages.
func (o AttemptOutcome) Reason() string {
	var reason string
	switch o.Kind {
	case OutcomeSuccess:
		return "success"
	case OutcomeRateLimited:
		reason = "rate limited (429)"
	case OutcomeServiceUnavailable:
		reason = "service unavailable (503)"
	case OutcomeHTTPError:
		reason = fmt.Sprintf("http error %d", o.StatusCode)
	case OutcomeTimeout:
		reason = "timeout"
	case OutcomeConnectionFailure:
		reason = "connection failure"
	case OutcomeInvalidStructure:
		reason = "invalid response structure"
	case OutcomeTooShort:
		reason = "response too short"
	case OutcomeAuthFailure:
		reason = "authentication failed (401)"
	default:
		reason = string(o.Kind)
	}

	if o.Detail != "" {
		reason += ": " + o.Detail
	}
	return reason
}

// Verdict is the advisory result of document content validation.
type Verdict struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}
