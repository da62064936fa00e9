package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const insertTaskSQL = `INSERT INTO tasks (Name, Date, Time, Completed, Expanded, Editmode) VALUES (?, ?, ?, ?, ?, ?)`

func setupGateway(t *testing.T) *Gateway {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "planday-test.db")
	g, err := Open(dbPath, zap.NewNop())
	if err != nil {
		t.Fatalf("open gateway: %v", err)
	}
	t.Cleanup(func() { _ = g.Close() })

	if err := MigrateUp(testContext(t), g); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	return g
}

func countRows(t *testing.T, g *Gateway, stmt string, args ...any) int {
	t.Helper()
	var n int
	err := g.Query(testContext(t), stmt, func(rows Rows) error {
		if rows.Next() {
			return rows.Scan(&n)
		}
		return nil
	}, args...)
	if err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func TestInsertReturnsGeneratedIDs(t *testing.T) {
	g := setupGateway(t)
	ctx := context.Background()

	first, err := g.Insert(ctx, insertTaskSQL, "Dentist", "2024-06-13", "09:30", "false", "false", "false")
	if err != nil {
		t.Fatalf("insert first: %v", err)
	}
	second, err := g.Insert(ctx, insertTaskSQL, "Groceries", "2024-06-13", nil, "false", "false", "false")
	if err != nil {
		t.Fatalf("insert second: %v", err)
	}
	if first <= 0 || second <= first {
		t.Fatalf("unexpected generated ids: first=%d second=%d", first, second)
	}
}

func TestQueryConsumerReadsRows(t *testing.T) {
	g := setupGateway(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if _, err := g.Insert(ctx, insertTaskSQL, name, "2024-06-13", nil, "false", "false", "false"); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}
	if _, err := g.Insert(ctx, insertTaskSQL, "other day", "2024-06-14", nil, "false", "false", "false"); err != nil {
		t.Fatalf("insert other: %v", err)
	}

	var names []string
	err := g.Query(ctx, `SELECT Name FROM tasks WHERE Date = ? ORDER BY ID`, func(rows Rows) error {
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return err
			}
			names = append(names, name)
		}
		return nil
	}, "2024-06-13")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(names) != 3 || names[0] != "a" || names[2] != "c" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestQueryWithNoRowsIsNotAnError(t *testing.T) {
	g := setupGateway(t)
	called := false
	err := g.Query(testContext(t), `SELECT ID FROM tasks WHERE Date = ?`, func(rows Rows) error {
		called = true
		if rows.Next() {
			t.Fatal("expected no rows")
		}
		return nil
	}, "1999-01-01")
	if err != nil {
		t.Fatalf("query empty: %v", err)
	}
	if !called {
		t.Fatal("expected consumer to be called")
	}
}

func TestUpdateMissingRowReturnsNotFound(t *testing.T) {
	g := setupGateway(t)
	err := g.Update(testContext(t), `UPDATE tasks SET Name = ? WHERE ID = ?`, "ghost", 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Op != "update" {
		t.Fatalf("expected update OpError, got %#v", err)
	}
}

func TestDeleteBindsArguments(t *testing.T) {
	g := setupGateway(t)
	ctx := context.Background()

	hostile := "x'); DROP TABLE tasks; --"
	id, err := g.Insert(ctx, insertTaskSQL, hostile, "2024-06-13", nil, "false", "false", "false")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := g.Delete(ctx, `DELETE FROM tasks WHERE Name = ?`, hostile); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := countRows(t, g, `SELECT COUNT(*) FROM tasks WHERE ID = ?`, id); n != 0 {
		t.Fatalf("expected row deleted, still have %d", n)
	}
	if n := countRows(t, g, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`); n != 1 {
		t.Fatal("tasks table should still exist")
	}
}

func TestDeleteOfMissingRowSucceeds(t *testing.T) {
	g := setupGateway(t)
	if err := g.Delete(testContext(t), `DELETE FROM tasks WHERE ID = ?`, 999); err != nil {
		t.Fatalf("delete missing row: %v", err)
	}
}

func TestEnsureSchemaContinuesAfterFailure(t *testing.T) {
	g := setupGateway(t)
	err := g.EnsureSchema(testContext(t), []string{
		`CREATE TABLE broken (`,
		`CREATE TABLE IF NOT EXISTS after_broken (id INTEGER)`,
	})
	if err == nil {
		t.Fatal("expected joined error for broken statement")
	}
	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Op != "ensure schema" {
		t.Fatalf("expected ensure schema OpError, got %v", err)
	}
	if n := countRows(t, g, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'after_broken'`); n != 1 {
		t.Fatal("statement after the failing one was not executed")
	}
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	g := setupGateway(t)
	if err := MigrateUp(testContext(t), g); err != nil {
		t.Fatalf("second migrate up: %v", err)
	}
}

func TestAtomicRollsBackOnError(t *testing.T) {
	g := setupGateway(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := g.Atomic(ctx, func(ex Executor) error {
		if _, err := ex.Insert(ctx, insertTaskSQL, "rolled back", "2024-06-13", nil, "false", "false", "false"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if n := countRows(t, g, `SELECT COUNT(*) FROM tasks`); n != 0 {
		t.Fatalf("expected rollback, found %d rows", n)
	}
}

func TestAtomicCommits(t *testing.T) {
	g := setupGateway(t)
	ctx := context.Background()

	var taskID int64
	err := g.Atomic(ctx, func(ex Executor) error {
		id, err := ex.Insert(ctx, insertTaskSQL, "parent", "2024-06-13", nil, "false", "false", "false")
		if err != nil {
			return err
		}
		taskID = id
		_, err = ex.Insert(ctx, `INSERT INTO subtasks (Name, MainTaskID, Completed) VALUES (?, ?, ?)`, "child", id, "false")
		return err
	})
	if err != nil {
		t.Fatalf("atomic: %v", err)
	}
	if n := countRows(t, g, `SELECT COUNT(*) FROM subtasks WHERE MainTaskID = ?`, taskID); n != 1 {
		t.Fatalf("expected committed subtask, got %d", n)
	}
}

func TestForeignKeyRejectsOrphanSubtask(t *testing.T) {
	g := setupGateway(t)
	_, err := g.Insert(testContext(t), `INSERT INTO subtasks (Name, MainTaskID, Completed) VALUES (?, ?, ?)`, "orphan", 999, "false")
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open("  ", zap.NewNop()); err == nil {
		t.Fatal("expected error for empty path")
	}
}
