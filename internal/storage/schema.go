package storage

import (
	"context"
	_ "embed"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// ApplySchema creates the bugs, projects and users tables if they are missing.
// It is idempotent and safe to run on every start.
func ApplySchema(ctx context.Context, gw Gateway) error {
	for _, stmt := range SchemaStatements() {
		if _, err := gw.Execute(ctx, stmt); err != nil {
			return Wrap("apply schema", err)
		}
	}
	return nil
}

// SchemaStatements splits the embedded schema into individual statements.
func SchemaStatements() []string {
	parts := strings.Split(schemaSQL, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
