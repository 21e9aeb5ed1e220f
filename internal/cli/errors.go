package cli

import (
	"fmt"

	"github.com/jacksmith/barkly/internal/model"
)

// InvalidURLError indicates a command argument is not a usable image URL.
type InvalidURLError struct {
	Input  string // what the user typed
	Reason string // what is wrong with it
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url %q: %s", e.Input, e.Reason)
}

// FetchError indicates the last fetch ended in the Failed state.
type FetchError struct {
	Err *model.AppError
}

func (e *FetchError) Error() string {
	return "couldn't load a dog: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
