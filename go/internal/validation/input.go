package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Input is the decoded request body moving through a pipeline, together with
// the field errors collected so far.
type Input struct {
	Body   map[string]any
	errors []FieldError
}

// NewInput wraps an already decoded body.
func NewInput(body map[string]any) *Input {
	if body == nil {
		body = map[string]any{}
	}
	return &Input{Body: body}
}

// DecodeInput reads a JSON object body. Numbers are kept as json.Number so
// integer checks see the literal the client sent. An empty body is an empty
// object.
func DecodeInput(r *http.Request) (*Input, error) {
	body := map[string]any{}
	if r.Body == nil {
		return NewInput(body), nil
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return NewInput(map[string]any{}), nil
		}
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return NewInput(body), nil
}

// Value returns the field value. Missing keys and JSON null are absent.
func (in *Input) Value(field string) (any, bool) {
	v, ok := in.Body[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Set replaces a field value.
func (in *Input) Set(field string, v any) {
	in.Body[field] = v
}

// AddError records a failed check.
func (in *Input) AddError(e FieldError) {
	in.errors = append(in.errors, e)
}

// Errors returns the collected field errors.
func (in *Input) Errors() []FieldError {
	return in.errors
}

// String returns a string field.
func (in *Input) String(field string) (string, bool) {
	v, ok := in.Value(field)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringPtr returns a string field or nil when absent.
func (in *Input) StringPtr(field string) *string {
	s, ok := in.String(field)
	if !ok {
		return nil
	}
	return &s
}

// Int returns an integer field. Only values already normalized by a
// validator (or integral JSON numbers) are accepted.
func (in *Input) Int(field string) (int, bool) {
	v, ok := in.Value(field)
	if !ok {
		return 0, false
	}
	return toInt(v)
}

// IntPtr returns an integer field or nil when absent or not an integer.
func (in *Input) IntPtr(field string) *int {
	n, ok := in.Int(field)
	if !ok {
		return nil
	}
	return &n
}

// Time returns a timestamp field normalized by DateValidator.
func (in *Input) Time(field string) (time.Time, bool) {
	v, ok := in.Value(field)
	if !ok {
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	return t, ok
}

// TimePtr returns a timestamp field or nil.
func (in *Input) TimePtr(field string) *time.Time {
	t, ok := in.Time(field)
	if !ok {
		return nil
	}
	return &t
}
