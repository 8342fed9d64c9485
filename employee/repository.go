package employee

import (
	"context"

	"github.com/uptrace/bun"
)

// EmployeeRepository is the record-store contract the employee service
// consumes. Lookups return (nil, nil) when no row matches; errors indicate
// the store itself failed.
//
// Tx variants run against the caller's transaction so cross-entity writes
// can commit or roll back as one unit.
type EmployeeRepository interface {
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindByEmail(ctx context.Context, email string) ([]*Employee, error)
	InsertTx(ctx context.Context, tx bun.IDB, emp *Employee) error
	Update(ctx context.Context, emp *Employee) error
	DeleteTx(ctx context.Context, tx bun.IDB, id int64) (bool, error)
}

// SalaryAccountRepository is the record-store contract for salary accounts.
// LockForUpdateTx acquires an exclusive row lock scoped to tx; the lock is
// released when the transaction commits or rolls back.
type SalaryAccountRepository interface {
	FindByID(ctx context.Context, id int64) (*SalaryAccount, error)
	FindByEmployee(ctx context.Context, employeeID int64) (*SalaryAccount, error)
	InsertTx(ctx context.Context, tx bun.IDB, account *SalaryAccount) error
	LockForUpdateTx(ctx context.Context, tx bun.IDB, id int64) (*SalaryAccount, error)
	UpdateBalanceTx(ctx context.Context, tx bun.IDB, account *SalaryAccount) error
	DeleteByEmployeeTx(ctx context.Context, tx bun.IDB, employeeID int64) error
}

// TxRunner draws a transaction boundary around fn. The services use it for
// the employee+account creation, cascading deletes and the locked increment.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.IDB) error) error
}
