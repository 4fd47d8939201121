package usecase

import "fmt"

type ErrorCode string

const (
	// ErrorInvalidInput is a ValidationError: the caller sent a bad payload.
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrorConfig is a ConfigError: the resolved provider has no usable credentials.
	ErrorConfig ErrorCode = "CONFIG_ERROR"
	// ErrorUpstream is an UpstreamError: the vendor failed or replied with garbage.
	ErrorUpstream ErrorCode = "UPSTREAM_ERROR"
	ErrorInternal ErrorCode = "INTERNAL_ERROR"
)

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error

	// Set for ErrorUpstream only. UpstreamStatus is 0 when no response arrived.
	UpstreamStatus int
	UpstreamBody   string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

func newUpstreamError(reason string, status int, body string, err error) *Error {
	return &Error{
		Code:           ErrorUpstream,
		Reason:         reason,
		Err:            err,
		UpstreamStatus: status,
		UpstreamBody:   body,
	}
}
