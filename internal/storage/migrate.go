package storage

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func MigrateUp(ctx context.Context, g *Gateway) error {
	stmts, err := schemaStatements(".up.sql", false)
	if err != nil {
		return err
	}
	return g.EnsureSchema(ctx, stmts)
}

func MigrateDown(ctx context.Context, g *Gateway) error {
	stmts, err := schemaStatements(".down.sql", true)
	if err != nil {
		return err
	}
	return g.EnsureSchema(ctx, stmts)
}

// schemaStatements returns one statement per migration file. Down migrations
// run in reverse so dependent tables are dropped first.
func schemaStatements(suffix string, reverse bool) ([]string, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(entries)))
	}
	out := make([]string, 0, len(entries))
	for _, name := range entries {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, readErr)
		}
		out = append(out, string(sqlBytes))
	}
	return out, nil
}
