package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
)

// SalaryService implements the salary account operations. It never touches
// the cache store; balances are read from and written to the record store
// only.
type SalaryService struct {
	accounts SalaryAccountRepository
	tx       TxRunner
	log      *slog.Logger
}

// NewSalaryService wires the salary account service. A nil logger falls back
// to slog.Default().
func NewSalaryService(accounts SalaryAccountRepository, tx TxRunner, log *slog.Logger) *SalaryService {
	if log == nil {
		log = slog.Default()
	}
	return &SalaryService{accounts: accounts, tx: tx, log: log}
}

var _ AccountService = (*SalaryService)(nil)

// CreateAccountTx inserts a zero-balance account for emp inside the caller's
// transaction, so the employee insert and the account insert commit or roll
// back together.
func (s *SalaryService) CreateAccountTx(ctx context.Context, tx bun.IDB, emp *Employee) error {
	account := &SalaryAccount{EmployeeID: emp.ID}
	if err := s.accounts.InsertTx(ctx, tx, account); err != nil {
		return fmt.Errorf("insert salary account for employee %d: %w", emp.ID, err)
	}
	s.log.Info("created salary account", "account_id", account.ID, "employee_id", emp.ID)
	return nil
}

// DeleteForEmployeeTx removes the account owned by employeeID inside the
// caller's transaction. Removing a non-existent account is a no-op so the
// cascade stays idempotent.
func (s *SalaryService) DeleteForEmployeeTx(ctx context.Context, tx bun.IDB, employeeID int64) error {
	if err := s.accounts.DeleteByEmployeeTx(ctx, tx, employeeID); err != nil {
		return fmt.Errorf("delete salary account for employee %d: %w", employeeID, err)
	}
	return nil
}

// GetByID returns the account with the given id straight from the record
// store.
func (s *SalaryService) GetByID(ctx context.Context, id int64) (*SalaryAccount, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find salary account %d: %w", id, err)
	}
	if account == nil {
		return nil, &NotFoundError{Entity: "salary account", ID: id}
	}
	return account, nil
}

// GetByEmployee returns the account owned by the given employee.
func (s *SalaryService) GetByEmployee(ctx context.Context, employeeID int64) (*SalaryAccount, error) {
	account, err := s.accounts.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("find salary account for employee %d: %w", employeeID, err)
	}
	if account == nil {
		return nil, &NotFoundError{Entity: "salary account", ID: employeeID}
	}
	return account, nil
}

// IncrementBalance adds amount to the account's balance under an exclusive
// row lock scoped to a single transaction. Concurrent increments for the
// same account serialize on that lock, so no read-modify-write is lost;
// increments on other accounts are unaffected.
//
// Lock acquisition may block until another holder commits or rolls back.
// Bounded-latency callers should pass a context with a deadline; the service
// applies no timeout of its own.
func (s *SalaryService) IncrementBalance(ctx context.Context, accountID, amount int64) (*SalaryAccount, error) {
	var result *SalaryAccount

	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		account, err := s.accounts.LockForUpdateTx(ctx, tx, accountID)
		if err != nil {
			return &LockError{AccountID: accountID, Err: err}
		}
		if account == nil {
			s.log.Error("salary account not found", "account_id", accountID)
			return &NotFoundError{Entity: "salary account", ID: accountID}
		}

		account.Balance += amount
		if err := s.accounts.UpdateBalanceTx(ctx, tx, account); err != nil {
			return fmt.Errorf("update balance for account %d: %w", accountID, err)
		}

		result = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("incremented balance", "account_id", accountID, "amount", amount, "balance", result.Balance)
	return result, nil
}
