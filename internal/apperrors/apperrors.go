package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind string

const (
	// KindInvalidInput marks caller mistakes: missing files, bad mode
	// tokens, unreadable images.
	KindInvalidInput Kind = "invalid_input"
	// KindDetection marks detection misses: no body or missing keypoints.
	// These are expected outcomes, not system faults.
	KindDetection Kind = "detection_miss"
	// KindVideoOpen marks an unopenable video source. Fatal for the whole
	// video-analysis request.
	KindVideoOpen Kind = "video_open_failed"
	// KindInternal marks unexpected internal failures.
	KindInternal Kind = "internal_error"
)

// AppError carries an error kind and message through the pipeline. The
// user-facing string is produced only at the response boundary.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError of the given kind.
func New(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind carried by err, or KindInternal if err is not an
// AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message carried by err, falling back to
// err.Error() for plain errors.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
