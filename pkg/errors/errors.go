package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a run error so callers can decide whether a failure is
// item-level (skip and continue) or fatal to the whole run.
type Kind string

const (
	// KindConfig represents invalid or missing process configuration.
	KindConfig Kind = "config"
	// KindFetch represents browser/page fetch failures.
	KindFetch Kind = "fetch"
	// KindParse represents a malformed listing or page.
	KindParse Kind = "parse"
	// KindPersistence represents snapshot or notified-set file failures.
	KindPersistence Kind = "persistence"
	// KindSend represents a failed notification delivery.
	KindSend Kind = "send"
)

// RunError is a classified error raised by one of the pipeline components.
type RunError struct {
	Kind    Kind
	Subject string // page, listing title, file path, etc.
	Message string
	Err     error
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Kind, e.Subject, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Subject, e.Message)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// ItemLevel reports whether the error affects a single item and should be
// skipped rather than aborting the run.
func (e *RunError) ItemLevel() bool {
	return e.Kind == KindParse || e.Kind == KindSend
}

// New creates a classified RunError.
func New(kind Kind, subject, message string, err error) *RunError {
	return &RunError{Kind: kind, Subject: subject, Message: message, Err: err}
}

// NewFetch creates a fetch error.
func NewFetch(subject, message string, err error) *RunError {
	return New(KindFetch, subject, message, err)
}

// NewParse creates a parse error.
func NewParse(subject, message string, err error) *RunError {
	return New(KindParse, subject, message, err)
}

// NewPersistence creates a persistence error.
func NewPersistence(subject, message string, err error) *RunError {
	return New(KindPersistence, subject, message, err)
}

// NewSend creates a send error.
func NewSend(subject, message string, err error) *RunError {
	return New(KindSend, subject, message, err)
}

// IsKind reports whether err is (or wraps) a RunError of the given kind.
func IsKind(err error, kind Kind) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}
