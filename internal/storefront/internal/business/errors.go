package business

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidLogin = errors.New("invalid credentials")
)

// FieldError describes one rejected input field. Param follows the JSON field name.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Param+": "+f.Msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(param, msg string) {
	e.Fields = append(e.Fields, FieldError{Param: param, Msg: msg})
}

// orNil keeps the typed-nil trap out of callers.
func (e *ValidationError) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Invalid builds a single-field ValidationError.
func Invalid(param, msg string) error {
	return invalid(param, msg)
}

func invalid(param, msg string) error {
	return &ValidationError{Fields: []FieldError{{Param: param, Msg: msg}}}
}

// UpstreamError wraps a failure of the store or a third-party integration.
// Its message is safe to log; callers must not expose Err to clients.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}
