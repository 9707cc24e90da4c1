package validation

import "net/http"

// Kind classifies a field error and selects the response status.
type Kind int

const (
	KindInvalid Kind = iota
	KindNotFound
	KindInternal
)

// Messages that carry a status meaning on their own.
const (
	MsgServerError = "server error"
	MsgNotFound    = "not found"
)

// KindFromMessage maps the reserved messages to their kind. Any other
// message is a plain validation failure.
func KindFromMessage(msg string) Kind {
	switch msg {
	case MsgServerError:
		return KindInternal
	case MsgNotFound:
		return KindNotFound
	default:
		return KindInvalid
	}
}

// FieldError is a single failed check on a request field.
type FieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
	Kind     Kind   `json:"-"`
}

func newFieldError(field string, value any, msg string) FieldError {
	return FieldError{
		Type:     "field",
		Value:    value,
		Msg:      msg,
		Path:     field,
		Location: "body",
		Kind:     KindFromMessage(msg),
	}
}

// Status picks the response status for errs: any internal error wins, then
// not found, else bad request.
func Status(errs []FieldError) int {
	status := http.StatusBadRequest
	for _, e := range errs {
		switch e.Kind {
		case KindInternal:
			return http.StatusInternalServerError
		case KindNotFound:
			status = http.StatusNotFound
		}
	}
	return status
}
