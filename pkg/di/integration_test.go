package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-employee-cache/employee"
)

func newTestContainer(t *testing.T, mutate func(*Config)) *Container {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Storage.DSN = ":memory:"
	if mutate != nil {
		mutate(&cfg)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	container, err := NewContainer(context.Background(), cfg, log)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	t.Cleanup(func() { container.Close() })
	return container
}

// TestEndToEndEmployeeLifecycle walks the whole flow: create with its salary
// account, cached read, concurrent locked increments, delete with eviction.
func TestEndToEndEmployeeLifecycle(t *testing.T) {
	c := newTestContainer(t, nil)
	ctx := context.Background()

	created, err := c.EmployeeService().Create(ctx, employee.Input{
		Name:  "Ada Lovelace",
		Email: "a@x.com",
		Role:  "engineer",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected store-assigned id")
	}

	account, err := c.SalaryService().GetByEmployee(ctx, created.ID)
	if err != nil {
		t.Fatalf("find account for employee %d: %v", created.ID, err)
	}
	if account.Balance != 0 {
		t.Fatalf("new account must start at zero, got %d", account.Balance)
	}

	got, err := c.EmployeeService().GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != created.Email || got.Name != created.Name {
		t.Fatalf("read back mismatch: %+v vs %+v", got, created)
	}

	var group errgroup.Group
	for i := 0; i < 3; i++ {
		group.Go(func() error {
			_, err := c.SalaryService().IncrementBalance(ctx, account.ID, 1)
			return err
		})
	}
	if err := group.Wait(); err != nil {
		t.Fatalf("concurrent increments: %v", err)
	}

	final, err := c.SalaryService().GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if final.Balance != 3 {
		t.Errorf("expected balance 3, got %d", final.Balance)
	}

	if err := c.EmployeeService().Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.EmployeeService().GetByID(ctx, created.ID); !employee.IsNotFound(err) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
	if _, err := c.SalaryService().GetByID(ctx, account.ID); !employee.IsNotFound(err) {
		t.Fatalf("expected account cascade on delete, got %v", err)
	}
}

// TestCacheServesReadsWithoutRecordStore deletes the row behind the
// service's back: while the snapshot lives, reads keep succeeding; once it
// is evicted they miss and fail.
func TestCacheServesReadsWithoutRecordStore(t *testing.T) {
	c := newTestContainer(t, nil)
	ctx := context.Background()

	created, err := c.EmployeeService().Create(ctx, employee.Input{Name: "Ada", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := c.DB().NewDelete().
		Model((*employee.Employee)(nil)).
		Where("id = ?", created.ID).
		Exec(ctx); err != nil {
		t.Fatalf("backdoor delete: %v", err)
	}

	cached, err := c.EmployeeService().GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected cached read to survive the backdoor delete: %v", err)
	}
	if cached.Email != "a@x.com" {
		t.Fatalf("unexpected snapshot: %+v", cached)
	}

	if err := c.CacheStore().Delete(ctx, c.Keys().Employee(created.ID)); err != nil {
		t.Fatalf("evict: %v", err)
	}
	if _, err := c.EmployeeService().GetByID(ctx, created.ID); !employee.IsNotFound(err) {
		t.Fatalf("expected NotFound once the snapshot is gone, got %v", err)
	}
}

// TestSnapshotExpiresAfterTTL verifies snapshots die on their own once the
// TTL elapses without access.
func TestSnapshotExpiresAfterTTL(t *testing.T) {
	c := newTestContainer(t, func(cfg *Config) {
		cfg.Cache.TTL = 50 * time.Millisecond
		cfg.Cache.EvictionInterval = 10 * time.Millisecond
		cfg.Cache.IdleReset = false
	})
	ctx := context.Background()

	created, err := c.EmployeeService().Create(ctx, employee.Input{Name: "Ada", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := c.DB().NewDelete().
		Model((*employee.Employee)(nil)).
		Where("id = ?", created.ID).
		Exec(ctx); err != nil {
		t.Fatalf("backdoor delete: %v", err)
	}

	time.Sleep(150 * time.Millisecond)

	if _, err := c.EmployeeService().GetByID(ctx, created.ID); !employee.IsNotFound(err) {
		t.Fatalf("expected NotFound after TTL expiry, got %v", err)
	}
}

func TestDuplicateEmailAcrossStack(t *testing.T) {
	c := newTestContainer(t, nil)
	ctx := context.Background()

	if _, err := c.EmployeeService().Create(ctx, employee.Input{Name: "Ada", Email: "dup@x.com"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := c.EmployeeService().Create(ctx, employee.Input{Name: "Eve", Email: "dup@x.com"}); !employee.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	count, err := c.DB().NewSelect().Model((*employee.Employee)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one record, got %d", count)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CACHE_PREFIX", "payroll")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", ":memory:")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("config from env: %v", err)
	}
	if cfg.Cache.Prefix != "payroll" {
		t.Errorf("cache prefix = %q, want payroll", cfg.Cache.Prefix)
	}
	if cfg.Storage.DSN != ":memory:" {
		t.Errorf("dsn = %q, want :memory:", cfg.Storage.DSN)
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Driver = "mysql"
	if _, err := NewContainer(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unsupported driver")
	}

	cfg = DefaultConfig()
	cfg.Storage.DSN = ":memory:"
	cfg.Cache.Backend = "bogus"
	if _, err := NewContainer(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown cache backend")
	}
}
