package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-employee-cache/cache"
	"github.com/uptrace/bun"
)

// AccountService is the slice of the salary side the employee service needs:
// account creation inside the employee-creation transaction, and teardown
// inside the deletion transaction.
type AccountService interface {
	CreateAccountTx(ctx context.Context, tx bun.IDB, emp *Employee) error
	DeleteForEmployeeTx(ctx context.Context, tx bun.IDB, employeeID int64) error
}

// Service implements the cached employee operations: cache-aside reads,
// write-through creates and updates, eviction on delete.
//
// Cache failures are never fatal. The record store stays authoritative and a
// stale or missing entry self-heals on the next read, so every cache error is
// logged and swallowed.
type Service struct {
	employees EmployeeRepository
	accounts  AccountService
	tx        TxRunner
	store     cache.Store
	keys      cache.Keys
	log       *slog.Logger
}

// NewService wires the employee service. A nil logger falls back to
// slog.Default().
func NewService(employees EmployeeRepository, accounts AccountService, tx TxRunner, store cache.Store, keys cache.Keys, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		employees: employees,
		accounts:  accounts,
		tx:        tx,
		store:     store,
		keys:      keys,
		log:       log,
	}
}

// GetByID returns the employee with the given id, serving from the cache when
// a snapshot is present. On a miss the record store is consulted and the
// fetched value written back under the employee key.
//
// No lock is taken: concurrent misses may both read through and both write
// the same entry. The overwrite is idempotent, so that race is benign.
func (s *Service) GetByID(ctx context.Context, id int64) (*Employee, error) {
	key := s.keys.Employee(id)

	if data, ok, err := s.store.Get(ctx, key); err != nil {
		s.log.Warn("employee cache read failed", "id", id, "error", err)
	} else if ok {
		var emp Employee
		if err := cache.Decode(data, &emp); err != nil {
			s.log.Warn("discarding undecodable employee snapshot", "id", id, "error", err)
		} else {
			return &emp, nil
		}
	}

	s.log.Info("fetching employee", "id", id)
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find employee %d: %w", id, err)
	}
	if emp == nil {
		s.log.Error("employee not found", "id", id)
		return nil, &NotFoundError{Entity: "employee", ID: id}
	}

	s.writeSnapshot(ctx, emp)
	return emp, nil
}

// Create validates the input, rejects duplicate emails, then inserts the
// employee together with its zero-balance salary account in one transaction.
// If the account insert fails the employee insert rolls back with it. The
// created snapshot is written through to the cache unconditionally.
func (s *Service) Create(ctx context.Context, input Input) (*Employee, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("validate employee input: %w", err)
	}

	s.log.Info("creating employee", "email", input.Email)
	existing, err := s.employees.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("find employee by email: %w", err)
	}
	if len(existing) > 0 {
		s.log.Error("employee already exists", "email", input.Email)
		return nil, &ConflictError{Field: "email", Value: input.Email}
	}

	emp := &Employee{
		Name:  input.Name,
		Email: input.Email,
		Role:  input.Role,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		if err := s.employees.InsertTx(ctx, tx, emp); err != nil {
			return fmt.Errorf("insert employee: %w", err)
		}
		if err := s.accounts.CreateAccountTx(ctx, tx, emp); err != nil {
			return fmt.Errorf("create salary account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("created employee", "id", emp.ID)
	s.writeSnapshot(ctx, emp)
	return emp, nil
}

// Update applies the mutable fields of input to the stored record. The email
// is immutable after creation: any attempt to change it fails rather than
// being silently ignored. On success the cache entry is overwritten with the
// fresh snapshot regardless of prior cache state.
func (s *Service) Update(ctx context.Context, id int64, input Input) (*Employee, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("validate employee input: %w", err)
	}

	s.log.Info("updating employee", "id", id)
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find employee %d: %w", id, err)
	}
	if emp == nil {
		s.log.Error("employee not found", "id", id)
		return nil, &NotFoundError{Entity: "employee", ID: id}
	}

	if input.Email != emp.Email {
		s.log.Error("attempted to update employee email", "id", id)
		return nil, &ImmutableFieldError{Field: "email"}
	}

	emp.Name = input.Name
	emp.Role = input.Role

	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, fmt.Errorf("update employee %d: %w", id, err)
	}

	s.log.Info("updated employee", "id", id)
	s.writeSnapshot(ctx, emp)
	return emp, nil
}

// Delete removes the employee and its salary account in one transaction and
// evicts the cache entry. Evicting a key that was never cached is a no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.log.Info("deleting employee", "id", id)

	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		// Account first: it references the employee row.
		if err := s.accounts.DeleteForEmployeeTx(ctx, tx, id); err != nil {
			return err
		}
		deleted, err := s.employees.DeleteTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("delete employee %d: %w", id, err)
		}
		if !deleted {
			s.log.Error("employee not found", "id", id)
			return &NotFoundError{Entity: "employee", ID: id}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, s.keys.Employee(id)); err != nil {
		s.log.Warn("employee cache evict failed", "id", id, "error", err)
	}

	s.log.Info("deleted employee", "id", id)
	return nil
}

// writeSnapshot is the write-through half of every successful read and write.
// Failures are logged and dropped: the record state is authoritative.
func (s *Service) writeSnapshot(ctx context.Context, emp *Employee) {
	data, err := cache.Encode(emp)
	if err != nil {
		s.log.Warn("employee snapshot encode failed", "id", emp.ID, "error", err)
		return
	}
	if err := s.store.Set(ctx, s.keys.Employee(emp.ID), data); err != nil {
		s.log.Warn("employee cache write failed", "id", emp.ID, "error", err)
	}
}
