package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/slug"
	"github.com/mcdev12/scoreboard/go/internal/store"
)

// Options configures a field validator.
type Options struct {
	Field     string
	Optional  bool
	MinLength int
	MaxLength int
}

// TeamChecker answers whether a team id is registered.
type TeamChecker interface {
	CheckTeamExists(ctx context.Context, id int) (bool, error)
}

// TeamFinder looks a team up by slug. A missing team is store.ErrNotFound.
type TeamFinder interface {
	GetTeamBySlug(ctx context.Context, slug string) (*models.Team, error)
}

// check builds a stage that records errors and always continues.
func check(fn func(ctx context.Context, in *Input)) Stage {
	return func(w http.ResponseWriter, r *http.Request, in *Input) bool {
		fn(r.Context(), in)
		return true
	}
}

// intRe matches canonical decimal integers: no sign other than a leading
// minus and no leading zeros.
var intRe = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)

// toInt accepts integers, integral JSON numbers and integer strings.
func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int32:
		return int(val), true
	case int64:
		return int(val), true
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return int(val), true
	case json.Number:
		return parseInt(string(val))
	case string:
		return parseInt(val)
	default:
		return 0, false
	}
}

func parseInt(s string) (int, bool) {
	if !intRe.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// isEmpty mirrors a "not empty" check: absent values and empty strings.
func isEmpty(v any, ok bool) bool {
	if !ok {
		return true
	}
	s, isString := v.(string)
	return isString && s == ""
}

// StringValidator requires a string whose trimmed length is within bounds and
// stores the trimmed value.
func StringValidator(opts Options) Stage {
	parts := []string{opts.Field}
	if opts.MinLength > 0 {
		parts = append(parts, "required")
	}
	if opts.MaxLength > 0 {
		parts = append(parts, fmt.Sprintf("max %d characters", opts.MaxLength))
	}
	msg := strings.Join(parts, " ")

	return check(func(ctx context.Context, in *Input) {
		v, ok := in.Value(opts.Field)
		if !ok && opts.Optional {
			return
		}

		s, isString := v.(string)
		if !isString {
			in.AddError(newFieldError(opts.Field, v, msg))
			return
		}

		trimmed := strings.TrimSpace(s)
		n := utf8.RuneCountInString(trimmed)
		if n < opts.MinLength || (opts.MaxLength > 0 && n > opts.MaxLength) {
			in.AddError(newFieldError(opts.Field, v, msg))
			return
		}
		in.Set(opts.Field, trimmed)
	})
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses the ISO-8601 forms accepted for game dates. Dates without
// a zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateValidator requires an ISO-8601 date no later than now and no earlier
// than two calendar months ago, and stores the parsed time.
func DateValidator(clock clockwork.Clock, opts Options) Stage {
	return check(func(ctx context.Context, in *Input) {
		v, ok := in.Value(opts.Field)
		if !ok && opts.Optional {
			return
		}

		s, _ := v.(string)
		date, parsed := ParseDate(s)
		if !parsed {
			in.AddError(newFieldError(opts.Field, v, "invalid date"))
			return
		}

		now := clock.Now()
		if date.After(now) {
			in.AddError(newFieldError(opts.Field, v, "games cannot be registered in the future"))
			return
		}
		// AddDate normalizes overflow: April 30 minus two months is March 2.
		if date.Before(now.AddDate(0, -2, 0)) {
			in.AddError(newFieldError(opts.Field, v, "games older than two months cannot be registered"))
			return
		}
		in.Set(opts.Field, date)
	})
}

// ScoreValidator requires an integer score in [0, models.MaxScore] and
// stores it as int.
func ScoreValidator(opts Options) Stage {
	return check(func(ctx context.Context, in *Input) {
		v, ok := in.Value(opts.Field)
		if !ok && opts.Optional {
			return
		}
		if isEmpty(v, ok) {
			in.AddError(newFieldError(opts.Field, v, fmt.Sprintf("%s is required", opts.Field)))
			return
		}

		score, isInt := toInt(v)
		if !isInt || score < 0 || score > models.MaxScore {
			in.AddError(newFieldError(opts.Field, v,
				fmt.Sprintf("%s must be an integer from 0 to %d", opts.Field, models.MaxScore)))
			return
		}
		in.Set(opts.Field, score)
	})
}

// IDValidator requires the id of a registered team and stores it as int.
// Malformed and unknown ids are both plain validation errors.
func IDValidator(teams TeamChecker, opts Options) Stage {
	return check(func(ctx context.Context, in *Input) {
		v, ok := in.Value(opts.Field)
		if !ok && opts.Optional {
			return
		}
		if isEmpty(v, ok) {
			in.AddError(newFieldError(opts.Field, v, fmt.Sprintf("%s is required", opts.Field)))
			return
		}

		id, isInt := toInt(v)
		if !isInt {
			in.AddError(newFieldError(opts.Field, v, fmt.Sprintf("%s must be a team id", opts.Field)))
			return
		}

		exists, err := teams.CheckTeamExists(ctx, id)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("field", opts.Field).Msg("team lookup failed")
			in.AddError(newFieldError(opts.Field, v, MsgServerError))
			return
		}
		if !exists {
			in.AddError(newFieldError(opts.Field, v, fmt.Sprintf("%s is not a registered team id", opts.Field)))
			return
		}
		in.Set(opts.Field, id)
	})
}

// NotSameTeamValidator fails when fieldA and fieldB are both present and hold
// the same value.
func NotSameTeamValidator(fieldA, fieldB, message string) Stage {
	return check(func(ctx context.Context, in *Input) {
		a, okA := in.Value(fieldA)
		b, okB := in.Value(fieldB)
		if !okA || !okB {
			return
		}

		ia, intA := toInt(a)
		ib, intB := toInt(b)
		same := intA && intB && ia == ib
		if !intA || !intB {
			same = fmt.Sprint(a) == fmt.Sprint(b)
		}
		if same {
			in.AddError(newFieldError(fieldA, a, message))
		}
	})
}

// AtLeastOneBodyValueValidator passes when at least one of fields is present
// and not null.
func AtLeastOneBodyValueValidator(fields []string) Stage {
	msg := "require at least one value of: " + strings.Join(fields, ", ")
	return check(func(ctx context.Context, in *Input) {
		for _, field := range fields {
			if _, ok := in.Value(field); ok {
				return
			}
		}
		in.AddError(newFieldError("", nil, msg))
	})
}

// SlugValidator requires that field yields a non-empty slug.
func SlugValidator(field string) Stage {
	return check(func(ctx context.Context, in *Input) {
		name, ok := in.String(field)
		if !ok {
			return
		}
		if slug.Make(name) == "" {
			in.AddError(newFieldError(field, name, fmt.Sprintf("%s must contain letters or digits", field)))
		}
	})
}

// TeamDoesNotExistValidator fails when the slug derived from name is taken.
func TeamDoesNotExistValidator(teams TeamFinder) Stage {
	return check(func(ctx context.Context, in *Input) {
		name, ok := in.String("name")
		if !ok {
			return
		}
		s := slug.Make(name)
		if s == "" {
			return
		}

		_, err := teams.GetTeamBySlug(ctx, s)
		switch {
		case err == nil:
			in.AddError(newFieldError("name", name, "team with name already exists"))
		case errors.Is(err, store.ErrNotFound):
		default:
			zerolog.Ctx(ctx).Error().Err(err).Str("slug", s).Msg("team lookup failed")
			in.AddError(newFieldError("name", name, MsgServerError))
		}
	})
}
