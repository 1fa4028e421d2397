// Package introspect reads physical naming metadata from a live MySQL
// database and diffs it against a resolved model to produce a rename plan.
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/XSAM/otelsql"
	_ "github.com/go-sql-driver/mysql"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Queryer is the subset of *sql.DB the reader needs.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Table is one physical table with its column names and secondary index
// names. The implicit PRIMARY index is excluded.
type Table struct {
	Name    string
	Columns []string
	Indexes []string
}

// Database is a snapshot of one database's naming surface.
type Database struct {
	Name   string
	Tables []Table
}

// Open opens an instrumented MySQL connection pool for the given DSN.
func Open(dsn string) (*sql.DB, error) {
	db, err := otelsql.Open("mysql", dsn, otelsql.WithAttributes(semconv.DBSystemMySQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// Reader loads naming metadata from INFORMATION_SCHEMA.
type Reader struct {
	db     Queryer
	logger *slog.Logger
}

// NewReader returns a reader over the given connection. A nil logger falls
// back to slog.Default().
func NewReader(db Queryer, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{db: db, logger: logger}
}

// Read snapshots the named database: base tables with their columns and
// secondary indexes.
func (r *Reader) Read(ctx context.Context, database string) (*Database, error) {
	names, err := r.tableNames(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	out := &Database{Name: database}
	for _, name := range names {
		columns, err := r.columnNames(ctx, database, name)
		if err != nil {
			return nil, fmt.Errorf("failed to list columns of %s: %w", name, err)
		}
		indexes, err := r.indexNames(ctx, database, name)
		if err != nil {
			return nil, fmt.Errorf("failed to list indexes of %s: %w", name, err)
		}
		out.Tables = append(out.Tables, Table{Name: name, Columns: columns, Indexes: indexes})
	}

	r.logger.Debug("introspected database",
		slog.String("database", database),
		slog.Int("tables", len(out.Tables)))
	return out, nil
}

func (r *Reader) tableNames(ctx context.Context, database string) ([]string, error) {
	query, args, err := sq.Select("TABLE_NAME").
		From("INFORMATION_SCHEMA.TABLES").
		Where(sq.Eq{"TABLE_SCHEMA": database}).
		Where(sq.Eq{"TABLE_TYPE": "BASE TABLE"}).
		OrderBy("TABLE_NAME").
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryStrings(ctx, query, args...)
}

func (r *Reader) columnNames(ctx context.Context, database, table string) ([]string, error) {
	query, args, err := sq.Select("COLUMN_NAME").
		From("INFORMATION_SCHEMA.COLUMNS").
		Where(sq.Eq{"TABLE_SCHEMA": database}).
		Where(sq.Eq{"TABLE_NAME": table}).
		OrderBy("ORDINAL_POSITION").
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryStrings(ctx, query, args...)
}

func (r *Reader) indexNames(ctx context.Context, database, table string) ([]string, error) {
	query, args, err := sq.Select("INDEX_NAME").
		Distinct().
		From("INFORMATION_SCHEMA.STATISTICS").
		Where(sq.Eq{"TABLE_SCHEMA": database}).
		Where(sq.Eq{"TABLE_NAME": table}).
		Where(sq.NotEq{"INDEX_NAME": "PRIMARY"}).
		OrderBy("INDEX_NAME").
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryStrings(ctx, query, args...)
}

func (r *Reader) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
