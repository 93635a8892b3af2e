// Package result holds the failure taxonomy shared by every mutation and the
// tagged Result returned to callers.
package result

import (
	"errors"

	"github.com/google/uuid"
)

// Kind classifies a failure.
type Kind string

const (
	KindUnauthorized        Kind = "UNAUTHORIZED"
	KindInvalidTitle        Kind = "INVALID_TITLE"
	KindInvalidStatus       Kind = "INVALID_STATUS"
	KindInvalidPriority     Kind = "INVALID_PRIORITY"
	KindInvalidContent      Kind = "INVALID_CONTENT"
	KindNotFoundOrForbidden Kind = "NOT_FOUND_OR_FORBIDDEN"
	KindPersistence         Kind = "PERSISTENCE_ERROR"
	KindEnrichmentFailed    Kind = "ENRICHMENT_FAILED"
)

var defaultMessages = map[Kind]string{
	KindUnauthorized:        "Unauthorized",
	KindInvalidTitle:        "Title is required",
	KindInvalidStatus:       "Invalid status",
	KindInvalidPriority:     "Invalid priority",
	KindInvalidContent:      "Content is required",
	KindNotFoundOrForbidden: "Not found",
	KindPersistence:         "Failed to save changes",
	KindEnrichmentFailed:    "Failed to generate task summary",
}

// IsValidation reports whether the kind is raised by input validation.
func (k Kind) IsValidation() bool {
	switch k {
	case KindInvalidTitle, KindInvalidStatus, KindInvalidPriority, KindInvalidContent:
		return true
	}
	return false
}

// Failure is the error type every operation boundary reports.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Message + ": " + f.Err.Error()
	}
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// New returns a Failure with the kind's default message.
func New(kind Kind) *Failure {
	return &Failure{Kind: kind, Message: defaultMessages[kind]}
}

// Wrap returns a Failure of kind that keeps cause for logging.
func Wrap(kind Kind, cause error) *Failure {
	return &Failure{Kind: kind, Message: defaultMessages[kind], Err: cause}
}

// Predefined failures
var (
	ErrUnauthorized        = New(KindUnauthorized)
	ErrInvalidTitle        = New(KindInvalidTitle)
	ErrInvalidStatus       = New(KindInvalidStatus)
	ErrInvalidPriority     = New(KindInvalidPriority)
	ErrInvalidContent      = New(KindInvalidContent)
	ErrNotFoundOrForbidden = New(KindNotFoundOrForbidden)
)

// KindOf extracts the failure kind from err. Errors that are not Failures are
// classified as persistence errors.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindPersistence
}

// Result is the tagged outcome of a mutation: a success optionally carrying
// the affected entity id, or a failure.
type Result struct {
	ID      uuid.UUID
	Failure *Failure
}

func Success(id uuid.UUID) Result {
	return Result{ID: id}
}

// Fail converts any error into a failed Result.
func Fail(err error) Result {
	var f *Failure
	if errors.As(err, &f) {
		return Result{Failure: f}
	}
	return Result{Failure: Wrap(KindPersistence, err)}
}

func (r Result) OK() bool {
	return r.Failure == nil
}

// Kind returns "" on success.
func (r Result) Kind() Kind {
	if r.Failure == nil {
		return ""
	}
	return r.Failure.Kind
}

// Message returns the user-facing message, "" on success.
func (r Result) Message() string {
	if r.Failure == nil {
		return ""
	}
	return r.Failure.Message
}

// Err returns the failure as an error, or nil on success.
func (r Result) Err() error {
	if r.Failure == nil {
		return nil
	}
	return r.Failure
}
