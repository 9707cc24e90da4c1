package validation

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizers rewrite string fields. They only run after Check, so errors from
// the stages before it carry the raw input.

var xssPolicy = bluemonday.UGCPolicy()

// maxSanitizePasses bounds stripMarkup on input that keeps decoding into
// new markup.
const maxSanitizePasses = 4

// XSSSanitizer strips markup that is not safe user generated content. Plain
// text such as "Tom & Jerry" is left as sent.
func XSSSanitizer(field string) Stage {
	return check(func(ctx context.Context, in *Input) {
		if s, ok := in.String(field); ok {
			in.Set(field, stripMarkup(s))
		}
	})
}

// stripMarkup runs the policy until its decoded output stops changing, so
// escaped markup cannot come back to life once the entities are undone.
func stripMarkup(s string) string {
	for range maxSanitizePasses {
		next := html.UnescapeString(xssPolicy.Sanitize(s))
		if next == s {
			return s
		}
		s = next
	}
	return xssPolicy.Sanitize(s)
}

// XSSSanitizerMany applies XSSSanitizer to each field.
func XSSSanitizerMany(fields ...string) []Stage {
	stages := make([]Stage, len(fields))
	for i, field := range fields {
		stages[i] = XSSSanitizer(field)
	}
	return stages
}

// GenericSanitizer trims and HTML escapes a field.
func GenericSanitizer(field string) Stage {
	return check(func(ctx context.Context, in *Input) {
		if s, ok := in.String(field); ok {
			in.Set(field, html.EscapeString(strings.TrimSpace(s)))
		}
	})
}

// GenericSanitizerMany applies GenericSanitizer to each field.
func GenericSanitizerMany(fields ...string) []Stage {
	stages := make([]Stage, len(fields))
	for i, field := range fields {
		stages[i] = GenericSanitizer(field)
	}
	return stages
}
