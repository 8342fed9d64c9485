package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/goliatone/go-employee-cache/employee"
)

// SalaryAccountRepo persists salary accounts through bun.
type SalaryAccountRepo struct {
	db *bun.DB
}

// NewSalaryAccountRepo creates a salary account repository on db.
func NewSalaryAccountRepo(db *bun.DB) *SalaryAccountRepo {
	return &SalaryAccountRepo{db: db}
}

var _ employee.SalaryAccountRepository = (*SalaryAccountRepo)(nil)

// FindByID returns the account with the given id, or nil when absent.
func (r *SalaryAccountRepo) FindByID(ctx context.Context, id int64) (*employee.SalaryAccount, error) {
	account := new(employee.SalaryAccount)
	err := r.db.NewSelect().Model(account).Where("sa.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select salary account %d: %w", id, err)
	}
	return account, nil
}

// FindByEmployee returns the account owned by employeeID, or nil when the
// employee has none.
func (r *SalaryAccountRepo) FindByEmployee(ctx context.Context, employeeID int64) (*employee.SalaryAccount, error) {
	account := new(employee.SalaryAccount)
	err := r.db.NewSelect().Model(account).Where("sa.employee_id = ?", employeeID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select salary account for employee %d: %w", employeeID, err)
	}
	return account, nil
}

// InsertTx inserts account inside the caller's transaction and fills the
// store-assigned ID.
func (r *SalaryAccountRepo) InsertTx(ctx context.Context, tx bun.IDB, account *employee.SalaryAccount) error {
	if _, err := tx.NewInsert().Model(account).Exec(ctx); err != nil {
		return fmt.Errorf("insert salary account: %w", err)
	}
	return nil
}

// LockForUpdateTx reads the account under an exclusive row lock scoped to tx.
// On Postgres this issues SELECT ... FOR UPDATE. SQLite has no row locks;
// there the transaction's database write lock serializes increments instead,
// which preserves the same no-lost-update guarantee.
func (r *SalaryAccountRepo) LockForUpdateTx(ctx context.Context, tx bun.IDB, id int64) (*employee.SalaryAccount, error) {
	account := new(employee.SalaryAccount)
	q := tx.NewSelect().Model(account).Where("sa.id = ?", id)
	if r.db.Dialect().Name() == dialect.PG {
		q = q.For("UPDATE")
	}

	err := q.Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock salary account %d: %w", id, err)
	}
	return account, nil
}

// UpdateBalanceTx writes the account's balance inside the caller's
// transaction. Only the balance column changes; employee_id is immutable.
func (r *SalaryAccountRepo) UpdateBalanceTx(ctx context.Context, tx bun.IDB, account *employee.SalaryAccount) error {
	if _, err := tx.NewUpdate().
		Model(account).
		Column("balance").
		WherePK().
		Exec(ctx); err != nil {
		return fmt.Errorf("update salary account %d: %w", account.ID, err)
	}
	return nil
}

// DeleteByEmployeeTx removes the account owned by employeeID inside the
// caller's transaction. Deleting when no account exists is a no-op.
func (r *SalaryAccountRepo) DeleteByEmployeeTx(ctx context.Context, tx bun.IDB, employeeID int64) error {
	if _, err := tx.NewDelete().
		Model((*employee.SalaryAccount)(nil)).
		Where("employee_id = ?", employeeID).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete salary account for employee %d: %w", employeeID, err)
	}
	return nil
}
