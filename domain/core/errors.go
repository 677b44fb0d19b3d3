package core

import (
	"errors"
	"fmt"
)

// Error kinds from the error handling design. Callers dispatch on Kind,
// not on the concrete error type.
type Kind string

const (
	KindConfigInvalid        Kind = "ConfigInvalid"
	KindUnknownModel         Kind = "UnknownModel"
	KindAmbiguousModel       Kind = "AmbiguousModel"
	KindLengthMismatch       Kind = "LengthMismatch"
	KindInvalidKernelInput   Kind = "InvalidKernelInput"
	KindIOError              Kind = "IOError"
	KindWiderByMismatch      Kind = "WiderByMismatch"
	KindResampleSizeExceeded Kind = "ResampleSizeExceeded"
	KindEmptyResults         Kind = "EmptyResults"
	KindCatalogUnavailable   Kind = "CatalogUnavailable"
	KindReportExportFailed   Kind = "ReportExportFailed"
)

// Error is the library's uniform error envelope: a dispatchable Kind plus
// a human message and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, core.New(core.KindX, "")) match any *Error of
// the same Kind; callers more commonly use core.KindOf(err) == core.KindX.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the dispatchable Kind from an error, or "" if err is
// not (or does not wrap) a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// LengthMismatch builds the length-mismatch error for a named binding.
func LengthMismatch(name string, k, n int) *Error {
	return New(KindLengthMismatch, fmt.Sprintf("binding %q has length %d, not compatible with n=%d", name, k, n))
}

func ResampleSizeExceeded(nSamples, n int) *Error {
	return New(KindResampleSizeExceeded, fmt.Sprintf("n_samples=%d exceeds pool size=%d without replacement", nSamples, n))
}
