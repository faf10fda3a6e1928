package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/hisably/pos-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmployeeRepo is an in-memory EmployeeRepository.
type fakeEmployeeRepo struct {
	employees map[uuid.UUID]*entity.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[uuid.UUID]*entity.Employee)}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, employee *entity.Employee) error {
	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}
	f.employees[employee.ID] = employee
	return nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Employee, error) {
	return f.employees[id], nil
}

func (f *fakeEmployeeRepo) GetByUsername(_ context.Context, username string) (*entity.Employee, error) {
	for _, e := range f.employees {
		if e.Username == username {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, employee *entity.Employee) error {
	f.employees[employee.ID] = employee
	return nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ *repository.EmployeeFilterParams) ([]entity.Employee, int64, error) {
	out := make([]entity.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) StoreIDForEmployee(_ context.Context, employeeID uuid.UUID) (*uuid.UUID, error) {
	e := f.employees[employeeID]
	if e == nil {
		return nil, nil
	}
	return e.StoreID, nil
}

func (f *fakeEmployeeRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID) error {
	return nil
}

// fakeTxnRepo is an in-memory EmployeeTransactionRepository.
type fakeTxnRepo struct {
	txns []entity.EmployeeTransaction
}

func (f *fakeTxnRepo) Create(_ context.Context, txn *entity.EmployeeTransaction) error {
	f.txns = append(f.txns, *txn)
	return nil
}

func (f *fakeTxnRepo) CreateBatch(_ context.Context, txns []entity.EmployeeTransaction) error {
	f.txns = append(f.txns, txns...)
	return nil
}

func (f *fakeTxnRepo) ListByEmployee(_ context.Context, employeeID uuid.UUID, _ *repository.TransactionFilterParams) ([]entity.EmployeeTransaction, int64, error) {
	var out []entity.EmployeeTransaction
	for _, t := range f.txns {
		if t.EmployeeID == employeeID {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTxnRepo) Balance(_ context.Context, employeeID uuid.UUID) (int64, error) {
	var sum int64
	for _, t := range f.txns {
		if t.EmployeeID == employeeID {
			sum += t.Amount
		}
	}
	return sum, nil
}

func (f *fakeTxnRepo) GetByCommissionIDs(_ context.Context, _ []uuid.UUID) ([]entity.EmployeeTransaction, error) {
	return nil, nil
}

// fakeCommissionRepo is an in-memory CommissionRepository.
type fakeCommissionRepo struct {
	commissions []entity.Commission
}

func (f *fakeCommissionRepo) Create(_ context.Context, c *entity.Commission) error {
	f.commissions = append(f.commissions, *c)
	return nil
}

func (f *fakeCommissionRepo) CreateBatch(_ context.Context, cs []entity.Commission) error {
	f.commissions = append(f.commissions, cs...)
	return nil
}

func (f *fakeCommissionRepo) GetBySource(_ context.Context, sourceID uuid.UUID, sourceType enum.SourceType) ([]entity.Commission, error) {
	var out []entity.Commission
	for _, c := range f.commissions {
		if c.SourceID == sourceID && c.SourceType == sourceType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommissionRepo) DeleteBySource(_ context.Context, sourceID uuid.UUID, sourceType enum.SourceType) error {
	kept := f.commissions[:0]
	for _, c := range f.commissions {
		if c.SourceID != sourceID || c.SourceType != sourceType {
			kept = append(kept, c)
		}
	}
	f.commissions = kept
	return nil
}

func (f *fakeCommissionRepo) ListByEmployee(_ context.Context, employeeID uuid.UUID, _ *repository.CommissionFilterParams) ([]entity.Commission, int64, error) {
	var out []entity.Commission
	for _, c := range f.commissions {
		if c.EmployeeID == employeeID {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCommissionRepo) TotalByEmployee(_ context.Context, employeeID uuid.UUID, _, _ time.Time) (int64, error) {
	var sum int64
	for _, c := range f.commissions {
		if c.EmployeeID == employeeID {
			sum += c.Amount
		}
	}
	return sum, nil
}

// fakeStoreRepo is an in-memory StoreRepository.
type fakeStoreRepo struct {
	stores map[uuid.UUID]*entity.Store
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: make(map[uuid.UUID]*entity.Store)}
}

func (f *fakeStoreRepo) Create(_ context.Context, store *entity.Store) error {
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	f.stores[store.ID] = store
	return nil
}

func (f *fakeStoreRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Store, error) {
	return f.stores[id], nil
}

func (f *fakeStoreRepo) Update(_ context.Context, store *entity.Store) error {
	f.stores[store.ID] = store
	return nil
}

func (f *fakeStoreRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.stores, id)
	return nil
}

func (f *fakeStoreRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Store, int64, error) {
	out := make([]entity.Store, 0, len(f.stores))
	for _, s := range f.stores {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStoreRepo) GetDefault(_ context.Context) (*entity.Store, error) {
	for _, s := range f.stores {
		if s.IsActive {
			return s, nil
		}
	}
	return nil, nil
}

func newEmployeeServiceForTest() (*EmployeeService, *fakeEmployeeRepo, *fakeTxnRepo) {
	employeeRepo := newFakeEmployeeRepo()
	txnRepo := &fakeTxnRepo{}
	svc := NewEmployeeService(employeeRepo, txnRepo, &fakeCommissionRepo{}, newFakeStoreRepo())
	return svc, employeeRepo, txnRepo
}

func seedEmployee(repo *fakeEmployeeRepo, role string) *entity.Employee {
	employee := &entity.Employee{
		ID:       uuid.New(),
		FullName: "Test Employee",
		Username: "test-" + uuid.NewString()[:8],
		Role:     role,
		IsActive: true,
	}
	repo.employees[employee.ID] = employee
	return employee
}

func TestCreateEmployeeRejectsDuplicateUsername(t *testing.T) {
	svc, repo, _ := newEmployeeServiceForTest()
	existing := seedEmployee(repo, entity.RoleSeller)

	_, err := svc.CreateEmployee(context.Background(), &CreateEmployeeInput{
		FullName: "Another",
		Username: existing.Username,
		Password: "secret-password",
		Role:     entity.RoleSeller,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCreateEmployeeRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newEmployeeServiceForTest()

	_, err := svc.CreateEmployee(context.Background(), &CreateEmployeeInput{
		FullName: "Someone",
		Username: "someone",
		Password: "secret-password",
		Role:     "janitor",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestAddTransactionSignFollowsType(t *testing.T) {
	svc, repo, txnRepo := newEmployeeServiceForTest()
	employee := seedEmployee(repo, entity.RoleSeller)
	admin := seedEmployee(repo, entity.RoleAdmin)

	cases := []struct {
		txnType enum.TransactionType
		want    int64
	}{
		{enum.TransactionSalary, 150000},
		{enum.TransactionBonus, 5000},
		{enum.TransactionDeduction, -2500},
		{enum.TransactionAdvance, -10000},
		{enum.TransactionWithdrawal, -7500},
	}

	for _, tc := range cases {
		txn, err := svc.AddTransaction(context.Background(), &AddTransactionInput{
			EmployeeID:  employee.ID,
			CreatedByID: admin.ID,
			Type:        tc.txnType,
			Amount:      float64(abs64(tc.want)) / 100,
		})
		require.NoError(t, err, "type %s", tc.txnType)
		assert.Equal(t, tc.want, txn.Amount, "type %s", tc.txnType)
	}

	balance, err := svc.Balance(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1350.00, balance, 0.001)
	assert.Len(t, txnRepo.txns, len(cases))
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestAddTransactionRejectsCommissionType(t *testing.T) {
	svc, repo, _ := newEmployeeServiceForTest()
	employee := seedEmployee(repo, entity.RoleSeller)

	_, err := svc.AddTransaction(context.Background(), &AddTransactionInput{
		EmployeeID:  employee.ID,
		CreatedByID: employee.ID,
		Type:        enum.TransactionCommission,
		Amount:      50,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestAddTransactionRejectsUnknownEmployee(t *testing.T) {
	svc, _, _ := newEmployeeServiceForTest()

	_, err := svc.AddTransaction(context.Background(), &AddTransactionInput{
		EmployeeID:  uuid.New(),
		CreatedByID: uuid.New(),
		Type:        enum.TransactionSalary,
		Amount:      100,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
