// Package filter turns caller-supplied key/value criteria into a parameterised
// predicate over the bugs table.
//
// Only allow-listed keys are recognised; everything else is dropped silently.
// Values are always bound as parameters and never appear in the SQL text.
package filter

import (
	"fmt"
	"net/url"
	"strings"
)

// Criterion is one key/value pair in the order the caller supplied it. Keys may
// repeat.
type Criterion struct {
	Key   string
	Value string
}

// column describes how an external key maps onto the bugs table.
type column struct {
	name string
	op   string
}

var allowed = map[string]column{
	"status":     {name: "status", op: "="},
	"severity":   {name: "severity", op: "="},
	"project_id": {name: "project_id", op: "="},
}

// Predicate is a WHERE fragment plus its bound values, in placeholder order.
type Predicate struct {
	SQL  string
	Args []any
}

// Empty reports whether the predicate selects every row.
func (p Predicate) Empty() bool { return p.SQL == "" }

// Apply appends the predicate to a base SELECT statement.
func (p Predicate) Apply(base string) string {
	if p.Empty() {
		return base
	}
	return base + " WHERE " + p.SQL
}

// Build combines every recognised criterion with AND, in input order.
func Build(criteria []Criterion) Predicate {
	var (
		parts []string
		args  []any
	)
	for _, c := range criteria {
		col, ok := allowed[c.Key]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", col.name, col.op))
		args = append(args, c.Value)
	}
	if len(parts) == 0 {
		return Predicate{}
	}
	return Predicate{SQL: strings.Join(parts, " AND "), Args: args}
}

// ParseQuery splits a raw query string into criteria, keeping the caller's
// ordering and duplicates. url.Values cannot be used since it is a map.
func ParseQuery(raw string) ([]Criterion, error) {
	var out []Criterion
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, fmt.Errorf("invalid query key %q: %w", k, err)
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			return nil, fmt.Errorf("invalid query value for %q: %w", key, err)
		}
		out = append(out, Criterion{Key: key, Value: val})
	}
	return out, nil
}
