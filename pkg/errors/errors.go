package errors

import (
	"errors"
	"fmt"
)

// Kind classifies where in the pipeline an operation failed. Every stage
// converts its own failures into a *PipelineError so orchestrators can
// short-circuit and the bot can present a single human-readable reason.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingCredential
	KindTransportFailure
	KindMalformedResponse
	KindNoJSON
	KindFileSystemFailure
)

var kindNames = map[Kind]string{
	KindUnknown:           "unknown",
	KindMissingCredential: "missing_credential",
	KindTransportFailure:  "transport_failure",
	KindMalformedResponse: "malformed_response",
	KindNoJSON:            "no_json",
	KindFileSystemFailure: "filesystem_failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

type PipelineError struct {
	Kind   Kind
	Stage  string
	Reason string
	Err    error
}

func New(kind Kind, stage, reason string) *PipelineError {
	return &PipelineError{Kind: kind, Stage: stage, Reason: reason}
}

func Wrap(kind Kind, stage string, err error) *PipelineError {
	return &PipelineError{Kind: kind, Stage: stage, Err: err}
}

func (e *PipelineError) Error() string {
	switch {
	case e.Err != nil && e.Reason != "":
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Reason, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
	}
}

func (e *PipelineError) Unwrap() error { return e.Err }

// Is lets errors.Is match on the Kind through sentinel errors below.
func (e *PipelineError) Is(target error) bool {
	var pe *PipelineError
	if errors.As(target, &pe) {
		return pe.Kind == e.Kind && (pe.Stage == "" || pe.Stage == e.Stage)
	}
	return false
}

// Sentinels for errors.Is checks on error categories.
var (
	ErrMissingCredential = &PipelineError{Kind: KindMissingCredential}
	ErrTransportFailure  = &PipelineError{Kind: KindTransportFailure}
	ErrMalformedResponse = &PipelineError{Kind: KindMalformedResponse}
	ErrNoJSON            = &PipelineError{Kind: KindNoJSON}
	ErrFileSystem        = &PipelineError{Kind: KindFileSystemFailure}
)

// KindOf reports the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}
