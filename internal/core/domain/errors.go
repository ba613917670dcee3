package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrMissingCredential  = errors.New("API_KEY environment variable is not set")
	ErrUnexpectedResponse = errors.New("the API response did not contain an image")
	ErrBusy               = errors.New("a transformation is already running")
	ErrNoImage            = errors.New("no image uploaded")
)

// ReadError reports that the source image could not be read.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "failed to read image: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ContentBlockedError reports that the remote service declined to produce an image for policy
// reasons. Categories lists every rating that was not negligible.
type ContentBlockedError struct {
	Categories []string
}

func (e *ContentBlockedError) Error() string {
	return fmt.Sprintf("image generation blocked due to safety concerns: %s", strings.Join(e.Categories, ", "))
}

// TransformFailedError wraps transport and service level failures.
type TransformFailedError struct {
	Err error
}

func (e *TransformFailedError) Error() string {
	return "failed to transform image: " + e.Err.Error()
}

func (e *TransformFailedError) Unwrap() error {
	return e.Err
}

const (
	OutcomeSuccess    = "success"
	OutcomeReadError  = "read_error"
	OutcomeBlocked    = "blocked"
	OutcomeUnexpected = "unexpected"
	OutcomeFailed     = "failed"
)

// Outcome classifies the result of a transform request for logs and metrics.
func Outcome(err error) string {
	var readErr *ReadError
	var blockedErr *ContentBlockedError

	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &readErr), errors.Is(err, ErrNoImage):
		return OutcomeReadError
	case errors.As(err, &blockedErr):
		return OutcomeBlocked
	case errors.Is(err, ErrUnexpectedResponse):
		return OutcomeUnexpected
	default:
		return OutcomeFailed
	}
}

// UserMessage normalises a transform error into the text shown to the user.
func UserMessage(err error) string {
	var readErr *ReadError
	var blockedErr *ContentBlockedError
	var failedErr *TransformFailedError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &readErr), errors.Is(err, ErrNoImage):
		return "Please upload an image first."
	case errors.Is(err, ErrBusy):
		return "A transformation is already running, please wait for it to finish."
	case errors.As(err, &blockedErr):
		return fmt.Sprintf("Image generation blocked due to safety concerns: %s.",
			strings.Join(blockedErr.Categories, ", "))
	case errors.Is(err, ErrUnexpectedResponse):
		return "The API response did not contain an image. Please try again."
	case errors.As(err, &failedErr):
		return "Failed to transform image: " + failedErr.Err.Error()
	default:
		return "An unknown error occurred during transformation: " + err.Error()
	}
}
