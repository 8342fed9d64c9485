// Package storage implements the record store on uptrace/bun: point lookups,
// inserts, updates, deletes and the transaction-scoped row lock the salary
// increment path relies on. SQLite and Postgres are supported; tests and the
// example run on in-memory SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-employee-cache/employee"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the configured database and returns a bun handle.
func Open(cfg Config) (*bun.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case DriverSQLite:
		sqldb, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite db: %w", err)
		}
		// A single connection makes SQLite write transactions queue behind
		// each other instead of erroring with SQLITE_BUSY.
		if cfg.MaxOpenConns > 0 {
			sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		} else {
			sqldb.SetMaxOpenConns(1)
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil

	case DriverPostgres:
		sqldb, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres db: %w", err)
		}
		if cfg.MaxOpenConns > 0 {
			sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil

	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

// InitSchema creates the employee and salary account tables if they do not
// exist yet.
func InitSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*employee.Employee)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create employees table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*employee.SalaryAccount)(nil)).
		IfNotExists().
		ForeignKey(`("employee_id") REFERENCES "employees" ("id")`).
		Exec(ctx); err != nil {
		return fmt.Errorf("create salary_accounts table: %w", err)
	}

	if _, err := db.NewCreateIndex().
		Model((*employee.Employee)(nil)).
		Index("employees_email_idx").
		Unique().
		Column("email").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create employees email index: %w", err)
	}

	return nil
}

// Runner draws bun transaction boundaries for the services.
type Runner struct {
	db *bun.DB
}

// NewRunner creates a transaction runner on db.
func NewRunner(db *bun.DB) *Runner {
	return &Runner{db: db}
}

var _ employee.TxRunner = (*Runner)(nil)

// RunInTx executes fn inside a single database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
func (r *Runner) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.IDB) error) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}
