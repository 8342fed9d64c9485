package employee

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/uptrace/bun"
)

// Employee is the record-store entity. The record store owns it; the cache
// holds only disposable snapshots keyed by ID.
//
// Email is unique and immutable after creation.
type Employee struct {
	bun.BaseModel `bun:"table:employees,alias:e" msgpack:"-"`

	ID    int64  `bun:"id,pk,autoincrement" json:"id"`
	Name  string `bun:"name,notnull" json:"name"`
	Email string `bun:"email,notnull,unique" json:"email"`
	Role  string `bun:"role" json:"role"`
}

// SalaryAccount tracks the balance for a single employee. One account is
// created per employee at employee-creation time with a zero balance. The
// balance only changes through the locked increment path and is never cached.
type SalaryAccount struct {
	bun.BaseModel `bun:"table:salary_accounts,alias:sa" msgpack:"-"`

	ID         int64 `bun:"id,pk,autoincrement" json:"id"`
	EmployeeID int64 `bun:"employee_id,notnull" json:"employee_id"`
	Balance    int64 `bun:"balance,notnull,default:0" json:"balance"`
}

// Input carries the caller-supplied employee attributes for create and
// update operations.
type Input struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Validate checks the input attributes before they reach the record store.
func (in Input) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
		validation.Field(&in.Role, validation.Length(0, 100)),
	)
}
