package validation

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mcdev12/scoreboard/go/internal/respond"
)

// Stage is one step of a request pipeline. Returning false ends the request;
// the stage is then responsible for having written a response.
type Stage func(w http.ResponseWriter, r *http.Request, in *Input) bool

// Handler is the final step of a pipeline.
type Handler func(w http.ResponseWriter, r *http.Request, in *Input)

// Then adapts a handler into the last stage of a chain.
func Then(h Handler) Stage {
	return func(w http.ResponseWriter, r *http.Request, in *Input) bool {
		h(w, r, in)
		return false
	}
}

// Chain decodes the JSON body and runs stages in order until one stops.
func Chain(stages ...Stage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := DecodeInput(r)
		if err != nil {
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("rejecting malformed body")
			respond.JSON(w, r, http.StatusBadRequest, errorResponse{
				Errors: []FieldError{{Type: "field", Msg: "invalid JSON body", Location: "body"}},
			})
			return
		}

		for _, stage := range stages {
			if !stage(w, r, in) {
				return
			}
		}
	}
}

type errorResponse struct {
	Errors []FieldError `json:"errors"`
}

// Check is the terminal validation stage. Without errors it passes control on;
// otherwise it responds with every collected error.
func Check(w http.ResponseWriter, r *http.Request, in *Input) bool {
	errs := in.Errors()
	if len(errs) == 0 {
		return true
	}

	status := Status(errs)
	zerolog.Ctx(r.Context()).Debug().
		Int("status", status).
		Int("errors", len(errs)).
		Msg("validation failed")

	respond.JSON(w, r, status, errorResponse{Errors: errs})
	return false
}

// Join flattens groups of stages into one pipeline.
func Join(groups ...[]Stage) []Stage {
	var out []Stage
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
