package model

import "errors"

// ErrorKind identifies one variant of AppError.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindInvalidResponse
	KindDecoding
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindInvalidResponse:
		return "invalid_response"
	case KindDecoding:
		return "decoding"
	default:
		return "unknown"
	}
}

// AppError is the only error type that crosses from a dog service into the
// view-model. The set of kinds is closed.
type AppError struct {
	Kind    ErrorKind
	Message string // only set for KindNetwork
}

// Sentinel values for use with errors.Is. Matching is by kind only, so
// errors.Is(NetworkError("x"), ErrNetwork) is true.
var (
	ErrNetwork         = &AppError{Kind: KindNetwork}
	ErrInvalidResponse = &AppError{Kind: KindInvalidResponse}
	ErrDecoding        = &AppError{Kind: KindDecoding}
	ErrUnknown         = &AppError{Kind: KindUnknown}
)

// NetworkError returns a network AppError carrying the transport's message.
func NetworkError(message string) *AppError {
	return &AppError{Kind: KindNetwork, Message: message}
}

func (e *AppError) Error() string {
	switch e.Kind {
	case KindNetwork:
		return e.Message
	case KindInvalidResponse:
		return "Invalid server response."
	case KindDecoding:
		return "Failed to decode data."
	default:
		return "Something went wrong."
	}
}

// Is matches any AppError of the same kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Equal reports whether two AppErrors have the same kind and message.
func (e *AppError) Equal(other *AppError) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Kind == other.Kind && e.Message == other.Message
}

// AsAppError returns err as an *AppError. Errors that are not AppErrors
// (anywhere in their chain) become ErrUnknown. A nil err returns nil.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrUnknown
}
