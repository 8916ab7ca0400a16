package apiclient

import (
	"encoding/json"
	"errors"

	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
)

const unknownErrorMessage = "Unknown error occurred"

// Result is the outcome of one remote call: either a success carrying data,
// or a failure carrying a displayable message. Exactly one holds; the zero
// value reads as a failure.
type Result[T any] struct {
	ok      bool
	data    T
	failure *Failure
}

// Success wraps data as a successful result.
func Success[T any](data T) Result[T] {
	return Result[T]{ok: true, data: data}
}

// Fail wraps f as a failed result.
func Fail[T any](f *Failure) Result[T] {
	if f == nil {
		f = &Failure{Code: pkgerrors.CodeInternal, Message: unknownErrorMessage}
	}
	return Result[T]{failure: f}
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.ok
}

// Data returns the payload and true on success, or the zero value and false.
func (r Result[T]) Data() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}
	return r.data, true
}

// Failure returns the failure details, or nil on success.
func (r Result[T]) Failure() *Failure {
	if r.ok {
		return nil
	}
	if r.failure == nil {
		return &Failure{Code: pkgerrors.CodeInternal, Message: unknownErrorMessage}
	}
	return r.failure
}

// ErrorMessage returns the displayable failure message, or "" on success.
func (r Result[T]) ErrorMessage() string {
	if f := r.Failure(); f != nil {
		return f.Message
	}
	return ""
}

// Err returns the failure as an error, or nil on success.
func (r Result[T]) Err() error {
	if f := r.Failure(); f != nil {
		return f
	}
	return nil
}

type resultJSON struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Code    pkgerrors.Code `json:"code,omitempty"`
	Status  int            `json:"status,omitempty"`
}

// MarshalJSON renders the envelope as {success, data} or {success, error, code, status, data}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.ok {
		return json.Marshal(resultJSON{Success: true, Data: r.data})
	}
	f := r.Failure()
	return json.Marshal(resultJSON{
		Success: false,
		Data:    f.Body,
		Error:   f.Message,
		Code:    f.Code,
		Status:  f.Status,
	})
}

// Failure describes why a call did not succeed.
type Failure struct {
	Code    pkgerrors.Code
	Message string
	// Status is the HTTP status for application failures, 0 otherwise.
	Status int
	// Body is the parsed response body of an application failure when it was valid JSON.
	Body any

	raw   []byte
	cause error
}

func (f *Failure) Error() string {
	if f == nil {
		return ""
	}
	return f.Message
}

func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.cause
}

// Timeout reports whether the call was aborted by the request timer.
func (f *Failure) Timeout() bool {
	return f != nil && f.Code == pkgerrors.CodeTimeout
}

// Retryable reports whether repeating the call may succeed.
func (f *Failure) Retryable() bool {
	if f == nil {
		return false
	}
	return pkgerrors.MetadataFor(f.Code).Retryable
}

// DecodeBody unmarshals the raw failure body into dst.
func (f *Failure) DecodeBody(dst any) error {
	if f == nil || len(f.raw) == 0 {
		return errors.New("failure has no body")
	}
	return json.Unmarshal(f.raw, dst)
}
