package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Field is one column assignment of a conditional update.
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered list of column assignments. Order is kept in the
// generated SET clause.
type Fields []Field

// Set appends name=value and returns the extended list. Nil values and nil
// pointers are accepted here and dropped when the update is built.
func (f Fields) Set(name string, value any) Fields {
	return append(f, Field{Name: name, Value: value})
}

// Names lists the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

var (
	identifierRe    = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	updatableTables = map[string]bool{"teams": true, "games": true}
)

// present resolves pointers and reports whether v is a string, number or
// timestamp that may be written.
func present(v any) (any, bool) {
	switch val := v.(type) {
	case string, int, int32, int64, float64, time.Time:
		return val, true
	case *string:
		if val == nil {
			return nil, false
		}
		return *val, true
	case *int:
		if val == nil {
			return nil, false
		}
		return *val, true
	case *time.Time:
		if val == nil {
			return nil, false
		}
		return *val, true
	default:
		return nil, false
	}
}

// Filter drops every field whose value is not a string, number or timestamp.
func (f Fields) Filter() Fields {
	out := make(Fields, 0, len(f))
	for _, field := range f {
		if v, ok := present(field.Value); ok {
			out = append(out, Field{Name: field.Name, Value: v})
		}
	}
	return out
}

// BuildUpdate returns the UPDATE statement and its arguments for the filtered
// fields. The row id is always $1. It panics on an unknown table or a field
// name that is not a plain identifier; both are programming errors.
func BuildUpdate(table string, id int, fields Fields) (string, []any, error) {
	if !updatableTables[table] {
		panic(fmt.Sprintf("store: conditional update on unknown table %q", table))
	}

	filtered := fields.Filter()
	if len(filtered) == 0 {
		return "", nil, ErrNoFields
	}

	updates := make([]string, len(filtered))
	args := make([]any, 0, len(filtered)+1)
	args = append(args, id)
	for i, field := range filtered {
		if !identifierRe.MatchString(field.Name) {
			panic(fmt.Sprintf("store: invalid field name %q", field.Name))
		}
		updates[i] = fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(field.Name), i+2)
		args = append(args, field.Value)
	}

	q := fmt.Sprintf(`
    UPDATE %s
      SET %s
    WHERE
      id = $1
    RETURNING *`, pq.QuoteIdentifier(table), strings.Join(updates, ", "))

	return q, args, nil
}

// ConditionalUpdate updates only the supplied fields of row id in table and
// returns the updated row. It returns ErrNoFields without issuing SQL when
// nothing survives filtering, and ErrNotFound when no row matched.
func (s *Store) ConditionalUpdate(ctx context.Context, table string, id int, fields Fields) ([]map[string]any, error) {
	q, args, err := BuildUpdate(table, id, fields)
	if err != nil {
		return nil, err
	}

	rows, err := s.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("conditional update %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("conditional update %s %d: %w", table, id, ErrNotFound)
	}
	return rows, nil
}
