package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var (
	ErrNotFound = errors.New("storage: not found")
	ErrNilDB    = errors.New("storage: nil db")
)

// OpError reports which gateway operation failed. Callers use errors.As to
// tell storage failures apart from validation errors.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Rows is the cursor handed to Query consumers. It is only valid until the
// consumer returns.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// Executor runs single parameterized statements. Gateway and the transaction
// passed to Atomic both implement it.
type Executor interface {
	Insert(ctx context.Context, stmt string, values ...any) (int64, error)
	Update(ctx context.Context, stmt string, values ...any) error
	Delete(ctx context.Context, stmt string, args ...any) error
	Query(ctx context.Context, stmt string, consume func(Rows) error, args ...any) error
	Atomic(ctx context.Context, fn func(Executor) error) error
}

type Gateway struct {
	db  *sql.DB
	log *zap.Logger
}

var _ Executor = (*Gateway)(nil)

func NewGateway(db *sql.DB, log *zap.Logger) (*Gateway, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{db: db, log: log.With(zap.String("component", "storage"))}, nil
}

// Open opens (creating if needed) the SQLite file at path.
func Open(path string, log *zap.Logger) (*Gateway, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: db path is empty")
	}
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	g, err := NewGateway(db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return g, nil
}

func (g *Gateway) Close() error {
	return g.db.Close()
}

// EnsureSchema runs every statement even when an earlier one fails. Failures
// are logged and returned joined.
func (g *Gateway) EnsureSchema(ctx context.Context, stmts []string) error {
	conn, err := g.conn(ctx, "ensure schema")
	if err != nil {
		return err
	}
	defer conn.Close()

	var errs []error
	for _, stmt := range stmts {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, execErr := conn.ExecContext(ctx, stmt); execErr != nil {
			errs = append(errs, g.fail("ensure schema", stmt, execErr))
		}
	}
	return errors.Join(errs...)
}

func (g *Gateway) Insert(ctx context.Context, stmt string, values ...any) (int64, error) {
	conn, err := g.conn(ctx, "insert")
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return insert(ctx, conn, stmt, values, g.fail)
}

func (g *Gateway) Update(ctx context.Context, stmt string, values ...any) error {
	conn, err := g.conn(ctx, "update")
	if err != nil {
		return err
	}
	defer conn.Close()
	return exec(ctx, conn, "update", stmt, values, true, g.fail)
}

func (g *Gateway) Delete(ctx context.Context, stmt string, args ...any) error {
	conn, err := g.conn(ctx, "delete")
	if err != nil {
		return err
	}
	defer conn.Close()
	return exec(ctx, conn, "delete", stmt, args, false, g.fail)
}

func (g *Gateway) Query(ctx context.Context, stmt string, consume func(Rows) error, args ...any) error {
	conn, err := g.conn(ctx, "query")
	if err != nil {
		return err
	}
	defer conn.Close()
	return query(ctx, conn, stmt, consume, args, g.fail)
}

// Atomic runs fn in a single transaction on one scoped connection. The
// transaction is committed when fn returns nil and rolled back otherwise.
func (g *Gateway) Atomic(ctx context.Context, fn func(Executor) error) error {
	conn, err := g.conn(ctx, "begin")
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return g.fail("begin", "", err)
	}
	if err := fn(&txExecutor{tx: tx, fail: g.fail}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			g.log.Error("rollback failed", zap.Error(rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return g.fail("commit", "", err)
	}
	return nil
}

func (g *Gateway) conn(ctx context.Context, op string) (*sql.Conn, error) {
	conn, err := g.db.Conn(ctx)
	if err != nil {
		return nil, g.fail(op, "", err)
	}
	return conn, nil
}

func (g *Gateway) fail(op, stmt string, err error) error {
	if errors.Is(err, ErrNotFound) {
		g.log.Debug("no rows matched", zap.String("op", op), zap.String("stmt", stmt))
	} else {
		g.log.Error("statement failed", zap.String("op", op), zap.String("stmt", stmt), zap.Error(err))
	}
	return &OpError{Op: op, Err: err}
}

type txExecutor struct {
	tx   *sql.Tx
	fail func(op, stmt string, err error) error
}

func (t *txExecutor) Insert(ctx context.Context, stmt string, values ...any) (int64, error) {
	return insert(ctx, t.tx, stmt, values, t.fail)
}

func (t *txExecutor) Update(ctx context.Context, stmt string, values ...any) error {
	return exec(ctx, t.tx, "update", stmt, values, true, t.fail)
}

func (t *txExecutor) Delete(ctx context.Context, stmt string, args ...any) error {
	return exec(ctx, t.tx, "delete", stmt, args, false, t.fail)
}

func (t *txExecutor) Query(ctx context.Context, stmt string, consume func(Rows) error, args ...any) error {
	return query(ctx, t.tx, stmt, consume, args, t.fail)
}

// Atomic on an open transaction joins it.
func (t *txExecutor) Atomic(_ context.Context, fn func(Executor) error) error {
	return fn(t)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type failFunc func(op, stmt string, err error) error

func insert(ctx context.Context, db execer, stmt string, values []any, fail failFunc) (int64, error) {
	res, err := db.ExecContext(ctx, stmt, values...)
	if err != nil {
		return 0, fail("insert", stmt, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fail("insert", stmt, err)
	}
	return id, nil
}

func exec(ctx context.Context, db execer, op, stmt string, args []any, mustMatch bool, fail failFunc) error {
	res, err := db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return fail(op, stmt, err)
	}
	if !mustMatch {
		return nil
	}
	if err := checkRowsAffected(res); err != nil {
		return fail(op, stmt, err)
	}
	return nil
}

func query(ctx context.Context, db execer, stmt string, consume func(Rows) error, args []any, fail failFunc) error {
	rows, err := db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return fail("query", stmt, err)
	}
	defer rows.Close()
	if err := consume(rows); err != nil {
		return fail("query", stmt, err)
	}
	if err := rows.Err(); err != nil {
		return fail("query", stmt, err)
	}
	return nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") || path == ":memory:" {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: path}
	q := u.Query()
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", "5000")
	u.RawQuery = q.Encode()
	return u.String()
}
