package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-employee-cache/employee"
)

// EmployeeRepo persists employees through bun. Absent rows are reported as
// (nil, nil), not as errors.
type EmployeeRepo struct {
	db *bun.DB
}

// NewEmployeeRepo creates an employee repository on db.
func NewEmployeeRepo(db *bun.DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

var _ employee.EmployeeRepository = (*EmployeeRepo)(nil)

// FindByID returns the employee with the given id, or nil when absent.
func (r *EmployeeRepo) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	emp := new(employee.Employee)
	err := r.db.NewSelect().Model(emp).Where("e.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select employee %d: %w", id, err)
	}
	return emp, nil
}

// FindByEmail returns all employees with the given email. The email column
// is unique, so the result has at most one element; the create path only
// cares whether it is empty.
func (r *EmployeeRepo) FindByEmail(ctx context.Context, email string) ([]*employee.Employee, error) {
	var emps []*employee.Employee
	err := r.db.NewSelect().Model(&emps).Where("e.email = ?", email).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select employees by email: %w", err)
	}
	return emps, nil
}

// List returns all employees. Uncached: list results would go stale on every
// create or delete, and nothing in the read path invalidates them.
func (r *EmployeeRepo) List(ctx context.Context) ([]*employee.Employee, error) {
	var emps []*employee.Employee
	err := r.db.NewSelect().Model(&emps).Order("e.id ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return emps, nil
}

// InsertTx inserts emp inside the caller's transaction and fills the
// store-assigned ID.
func (r *EmployeeRepo) InsertTx(ctx context.Context, tx bun.IDB, emp *employee.Employee) error {
	if _, err := tx.NewInsert().Model(emp).Exec(ctx); err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// Update persists the mutable fields of emp by primary key.
func (r *EmployeeRepo) Update(ctx context.Context, emp *employee.Employee) error {
	if _, err := r.db.NewUpdate().Model(emp).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("update employee %d: %w", emp.ID, err)
	}
	return nil
}

// DeleteTx removes the employee with the given id inside the caller's
// transaction, reporting whether a row was actually deleted.
func (r *EmployeeRepo) DeleteTx(ctx context.Context, tx bun.IDB, id int64) (bool, error) {
	res, err := tx.NewDelete().
		Model((*employee.Employee)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("delete employee %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete employee %d: rows affected: %w", id, err)
	}
	return affected > 0, nil
}
