package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockKey struct {
	storeID   uuid.UUID
	productID uuid.UUID
}

// fakeLedgers implements all four engine collaborators in memory.
type fakeLedgers struct {
	stock         map[stockKey]float64
	clientDebt    map[uuid.UUID]int64
	supplierDebt  map[uuid.UUID]int64
	responsible   map[uuid.UUID]*uuid.UUID
	employeeStore map[uuid.UUID]*uuid.UUID
	commissions   []entity.Commission
	transactions  []entity.EmployeeTransaction
	deleteCalls   int
}

func newFakeLedgers() *fakeLedgers {
	return &fakeLedgers{
		stock:         make(map[stockKey]float64),
		clientDebt:    make(map[uuid.UUID]int64),
		supplierDebt:  make(map[uuid.UUID]int64),
		responsible:   make(map[uuid.UUID]*uuid.UUID),
		employeeStore: make(map[uuid.UUID]*uuid.UUID),
	}
}

func (f *fakeLedgers) Adjust(_ context.Context, storeID, productID uuid.UUID, delta float64) error {
	f.stock[stockKey{storeID, productID}] += delta
	return nil
}

func (f *fakeLedgers) AdjustClientDebt(_ context.Context, clientID uuid.UUID, delta int64) error {
	f.clientDebt[clientID] += delta
	return nil
}

func (f *fakeLedgers) AdjustSupplierDebt(_ context.Context, supplierID uuid.UUID, delta int64) error {
	f.supplierDebt[supplierID] += delta
	return nil
}

func (f *fakeLedgers) ResponsibleEmployee(_ context.Context, clientID uuid.UUID) (*uuid.UUID, error) {
	return f.responsible[clientID], nil
}

func (f *fakeLedgers) InsertCommission(_ context.Context, c *entity.Commission) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.commissions = append(f.commissions, *c)
	return nil
}

func (f *fakeLedgers) InsertTransaction(_ context.Context, t *entity.EmployeeTransaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.transactions = append(f.transactions, *t)
	return nil
}

func (f *fakeLedgers) BySource(_ context.Context, sourceID uuid.UUID, sourceType enum.SourceType) ([]entity.Commission, error) {
	var out []entity.Commission
	for _, c := range f.commissions {
		if c.SourceID == sourceID && c.SourceType == sourceType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeLedgers) DeleteBySource(_ context.Context, sourceID uuid.UUID, sourceType enum.SourceType) error {
	f.deleteCalls++
	kept := f.commissions[:0]
	for _, c := range f.commissions {
		if c.SourceID != sourceID || c.SourceType != sourceType {
			kept = append(kept, c)
		}
	}
	f.commissions = kept
	return nil
}

func (f *fakeLedgers) StoreIDForEmployee(_ context.Context, employeeID uuid.UUID) (*uuid.UUID, error) {
	return f.employeeStore[employeeID], nil
}

func (f *fakeLedgers) ledgerBalance(employeeID uuid.UUID) int64 {
	var sum int64
	for _, t := range f.transactions {
		if t.EmployeeID == employeeID {
			sum += t.Amount
		}
	}
	return sum
}

func newTestEngine() (*Engine, *fakeLedgers) {
	f := newFakeLedgers()
	return NewEngine(f, f, f, f), f
}

func newOrder(employeeID uuid.UUID, clientID *uuid.UUID, total, paid int64, items []entity.SalesOrderItem) *entity.SalesOrder {
	return &entity.SalesOrder{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		ClientID:        clientID,
		OrderDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		PaymentType:     enum.PaymentTypeCash,
		TotalAmount:     total,
		AmountPaid:      paid,
		AmountRemaining: total - paid,
		Items:           items,
	}
}

func newReturn(employeeID uuid.UUID, clientID *uuid.UUID, paymentType enum.PaymentType, total, paid int64, items []entity.SalesReturnItem) *entity.SalesReturn {
	return &entity.SalesReturn{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		ClientID:        clientID,
		ReturnDate:      time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		PaymentType:     paymentType,
		TotalAmount:     total,
		AmountPaid:      paid,
		AmountRemaining: total - paid,
		Items:           items,
	}
}

func TestProcessOrderAdjustsStockAndDebt(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	seller := uuid.New()
	store := uuid.New()
	f.employeeStore[seller] = &store

	client := uuid.New()
	productA := uuid.New()
	productB := uuid.New()
	f.stock[stockKey{store, productA}] = 10
	f.stock[stockKey{store, productB}] = 20

	// 100.00 total, 40.00 paid
	order := newOrder(seller, &client, 10000, 4000, []entity.SalesOrderItem{
		{ProductID: productA, Quantity: 3, BaseQuantity: 3, UnitPrice: 2000, Total: 6000},
		{ProductID: productB, Quantity: 5, BaseQuantity: 5, UnitPrice: 800, Total: 4000},
	})

	require.NoError(t, engine.ProcessOrder(ctx, order, 0))

	assert.Equal(t, 7.0, f.stock[stockKey{store, productA}])
	assert.Equal(t, 15.0, f.stock[stockKey{store, productB}])
	assert.Equal(t, int64(6000), f.clientDebt[client])
	assert.Empty(t, f.commissions)
}

func TestProcessOrderCommissionFanOut(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	seller := uuid.New()
	responsible := uuid.New()
	store := uuid.New()
	f.employeeStore[seller] = &store

	client := uuid.New()
	f.responsible[client] = &responsible

	product := uuid.New()
	// 1000.00 at 5% should yield two 50.00 rows
	order := newOrder(seller, &client, 100000, 100000, []entity.SalesOrderItem{
		{ProductID: product, Quantity: 1, BaseQuantity: 1, UnitPrice: 100000, Total: 100000},
	})

	require.NoError(t, engine.ProcessOrder(ctx, order, 5))

	require.Len(t, f.commissions, 2)
	var main, secondary *entity.Commission
	for i := range f.commissions {
		if f.commissions[i].IsMain {
			main = &f.commissions[i]
		} else {
			secondary = &f.commissions[i]
		}
	}
	require.NotNil(t, main)
	require.NotNil(t, secondary)
	assert.Equal(t, seller, main.EmployeeID)
	assert.Equal(t, responsible, secondary.EmployeeID)
	assert.Equal(t, int64(5000), main.Amount)
	assert.Equal(t, int64(5000), secondary.Amount)
	assert.Equal(t, enum.SourceSale, main.SourceType)

	// each commission row is paired with a ledger transaction
	require.Len(t, f.transactions, 2)
	for _, txn := range f.transactions {
		assert.Equal(t, enum.TransactionCommission, txn.Type)
		assert.Equal(t, int64(5000), txn.Amount)
		assert.NotNil(t, txn.RelatedCommissionID)
	}
}

func TestProcessOrderCommissionDedupWhenSellerIsResponsible(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	seller := uuid.New()
	store := uuid.New()
	f.employeeStore[seller] = &store

	client := uuid.New()
	f.responsible[client] = &seller

	product := uuid.New()
	order := newOrder(seller, &client, 100000, 100000, []entity.SalesOrderItem{
		{ProductID: product, Quantity: 1, BaseQuantity: 1, UnitPrice: 100000, Total: 100000},
	})

	require.NoError(t, engine.ProcessOrder(ctx, order, 5))

	require.Len(t, f.commissions, 1)
	assert.True(t, f.commissions[0].IsMain)
	assert.Equal(t, seller, f.commissions[0].EmployeeID)
}

func TestProcessOrderWithoutStoreAssignmentMutatesNothing(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	seller := uuid.New() // no store assignment
	client := uuid.New()
	product := uuid.New()
	order := newOrder(seller, &client, 10000, 0, []entity.SalesOrderItem{
		{ProductID: product, Quantity: 1, BaseQuantity: 1, UnitPrice: 10000, Total: 10000},
	})

	err := engine.ProcessOrder(ctx, order, 5)
	assert.ErrorIs(t, err, apperror.ErrNoStoreAssigned)
	assert.Empty(t, f.stock)
	assert.Empty(t, f.clientDebt)
	assert.Empty(t, f.commissions)
	assert.Empty(t, f.transactions)
}

func TestRevertOrderIsInverseOfProcess(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	seller := uuid.New()
	responsible := uuid.New()
	store := uuid.New()
	f.employeeStore[seller] = &store

	client := uuid.New()
	f.responsible[client] = &responsible

	productA := uuid.New()
	productB := uuid.New()
	f.stock[stockKey{store, productA}] = 10
	f.stock[stockKey{store, productB}] = 20

	order := newOrder(seller, &client, 100000, 25000, []entity.SalesOrderItem{
		{ProductID: productA, Quantity: 3, BaseQuantity: 3, UnitPrice: 20000, Total: 60000},
		{ProductID: productB, Quantity: 5, BaseQuantity: 5, UnitPrice: 8000, Total: 40000},
	})

	manager := uuid.New()
	require.NoError(t, engine.ProcessOrder(ctx, order, 5))
	require.NoError(t, engine.RevertOrder(ctx, order, manager))

	assert.Equal(t, 10.0, f.stock[stockKey{store, productA}])
	assert.Equal(t, 20.0, f.stock[stockKey{store, productB}])
	assert.Equal(t, int64(0), f.clientDebt[client])

	// commission rows are gone, ledger holds a +/- pair per employee
	assert.Empty(t, f.commissions)
	require.Len(t, f.transactions, 4)
	assert.Equal(t, int64(0), f.ledgerBalance(seller))
	assert.Equal(t, int64(0), f.ledgerBalance(responsible))
}

func TestRevertOrderAttributesCompensatingRows(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	seller := uuid.New()
	store := uuid.New()
	f.employeeStore[seller] = &store

	client := uuid.New()
	product := uuid.New()
	order := newOrder(seller, &client, 100000, 100000, []entity.SalesOrderItem{
		{ProductID: product, Quantity: 1, BaseQuantity: 1, UnitPrice: 100000, Total: 100000},
	})

	require.NoError(t, engine.ProcessOrder(ctx, order, 5))

	manager := uuid.New()
	require.NoError(t, engine.RevertOrder(ctx, order, manager))

	require.Len(t, f.transactions, 2)
	earned, clawback := f.transactions[0], f.transactions[1]
	assert.Nil(t, earned.CreatedByID)
	assert.Nil(t, earned.Notes)
	require.NotNil(t, clawback.CreatedByID)
	assert.Equal(t, manager, *clawback.CreatedByID)
	require.NotNil(t, clawback.Notes)
	assert.Contains(t, *clawback.Notes, "Reversal")
	assert.Equal(t, -earned.Amount, clawback.Amount)
}

func TestRevertOrderWithoutPriorSettlementWritesNoCompensation(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	seller := uuid.New()
	store := uuid.New()
	f.employeeStore[seller] = &store

	client := uuid.New()
	product := uuid.New()
	order := newOrder(seller, &client, 10000, 10000, []entity.SalesOrderItem{
		{ProductID: product, Quantity: 1, BaseQuantity: 1, UnitPrice: 10000, Total: 10000},
	})

	require.NoError(t, engine.RevertOrder(ctx, order, uuid.New()))

	assert.Empty(t, f.transactions)
	assert.Equal(t, 0, f.deleteCalls)
}

func TestRevertReturnWithoutPriorSettlementWritesNoCompensation(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	seller := uuid.New()
	store := uuid.New()
	f.employeeStore[seller] = &store

	client := uuid.New()
	product := uuid.New()
	ret := newReturn(seller, &client, enum.PaymentTypeCash, 10000, 10000, []entity.SalesReturnItem{
		{ProductID: product, Quantity: 1, BaseQuantity: 1, UnitPrice: 10000, Total: 10000},
	})

	require.NoError(t, engine.RevertReturn(ctx, ret, uuid.New()))

	assert.Empty(t, f.transactions)
	assert.Equal(t, 0, f.deleteCalls)
}

func TestProcessReturnNegatesCommissionAndRestocks(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	seller := uuid.New()
	store := uuid.New()
	f.employeeStore[seller] = &store

	client := uuid.New()
	product := uuid.New()

	// 200.00 return at 5% yields a -10.00 commission
	ret := newReturn(seller, &client, enum.PaymentTypeCash, 20000, 20000, []entity.SalesReturnItem{
		{ProductID: product, Quantity: 2, BaseQuantity: 2, UnitPrice: 10000, Total: 20000},
	})

	require.NoError(t, engine.ProcessReturn(ctx, ret, 5))

	assert.Equal(t, 2.0, f.stock[stockKey{store, product}])
	// cash return never touches debt
	assert.Equal(t, int64(0), f.clientDebt[client])
	require.Len(t, f.commissions, 1)
	assert.Equal(t, int64(-1000), f.commissions[0].Amount)
	assert.Equal(t, enum.SourceSaleReturn, f.commissions[0].SourceType)
	assert.Equal(t, int64(-1000), f.ledgerBalance(seller))
}

func TestProcessReturnDeferredReducesClientDebt(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	seller := uuid.New()
	store := uuid.New()
	f.employeeStore[seller] = &store

	client := uuid.New()
	f.clientDebt[client] = 50000
	product := uuid.New()

	ret := newReturn(seller, &client, enum.PaymentTypeDeferred, 20000, 0, []entity.SalesReturnItem{
		{ProductID: product, Quantity: 2, BaseQuantity: 2, UnitPrice: 10000, Total: 20000},
	})

	require.NoError(t, engine.ProcessReturn(ctx, ret, 0))
	assert.Equal(t, int64(30000), f.clientDebt[client])

	require.NoError(t, engine.RevertReturn(ctx, ret, uuid.New()))
	assert.Equal(t, int64(50000), f.clientDebt[client])
	assert.Equal(t, 0.0, f.stock[stockKey{store, product}])
}

func TestProcessReturnPartialRefundReducesDebtByRemainder(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	seller := uuid.New()
	store := uuid.New()
	f.employeeStore[seller] = &store

	client := uuid.New()
	f.clientDebt[client] = 50000
	product := uuid.New()

	// 200.00 returned, 50.00 refunded on the spot; only the 150.00
	// remainder comes off the client's ledger.
	ret := newReturn(seller, &client, enum.PaymentTypeDeferred, 20000, 5000, []entity.SalesReturnItem{
		{ProductID: product, Quantity: 2, BaseQuantity: 2, UnitPrice: 10000, Total: 20000},
	})

	require.NoError(t, engine.ProcessReturn(ctx, ret, 0))
	assert.Equal(t, int64(35000), f.clientDebt[client])

	require.NoError(t, engine.RevertReturn(ctx, ret, uuid.New()))
	assert.Equal(t, int64(50000), f.clientDebt[client])
}

func TestPurchaseRoundTrip(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	store := uuid.New()
	supplier := uuid.New()
	product := uuid.New()

	purchase := &entity.Purchase{
		ID:              uuid.New(),
		EmployeeID:      uuid.New(),
		SupplierID:      supplier,
		StoreID:         store,
		PurchaseDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PaymentType:     enum.PaymentTypeDeferred,
		TotalAmount:     500000,
		AmountPaid:      100000,
		AmountRemaining: 400000,
		Items: []entity.PurchaseItem{
			{ProductID: product, Quantity: 50, BaseQuantity: 50, UnitCost: 10000, Total: 500000},
		},
	}

	require.NoError(t, engine.ProcessPurchase(ctx, purchase))
	assert.Equal(t, 50.0, f.stock[stockKey{store, product}])
	assert.Equal(t, int64(400000), f.supplierDebt[supplier])

	require.NoError(t, engine.RevertPurchase(ctx, purchase))
	assert.Equal(t, 0.0, f.stock[stockKey{store, product}])
	assert.Equal(t, int64(0), f.supplierDebt[supplier])
}

func TestPurchaseReturnRoundTrip(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	store := uuid.New()
	supplier := uuid.New()
	product := uuid.New()
	f.stock[stockKey{store, product}] = 50
	f.supplierDebt[supplier] = 400000

	ret := &entity.PurchaseReturn{
		ID:              uuid.New(),
		EmployeeID:      uuid.New(),
		SupplierID:      supplier,
		StoreID:         store,
		ReturnDate:      time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		PaymentType:     enum.PaymentTypeDeferred,
		TotalAmount:     100000,
		AmountPaid:      0,
		AmountRemaining: 100000,
		Items: []entity.PurchaseReturnItem{
			{ProductID: product, Quantity: 10, BaseQuantity: 10, UnitCost: 10000, Total: 100000},
		},
	}

	require.NoError(t, engine.ProcessPurchaseReturn(ctx, ret))
	assert.Equal(t, 40.0, f.stock[stockKey{store, product}])
	assert.Equal(t, int64(300000), f.supplierDebt[supplier])

	require.NoError(t, engine.RevertPurchaseReturn(ctx, ret))
	assert.Equal(t, 50.0, f.stock[stockKey{store, product}])
	assert.Equal(t, int64(400000), f.supplierDebt[supplier])
}

func TestPurchaseReturnReducesDebtRegardlessOfPaymentType(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	store := uuid.New()
	supplier := uuid.New()
	product := uuid.New()
	f.stock[stockKey{store, product}] = 50
	f.supplierDebt[supplier] = 400000

	// Mirrors the purchase: the unpaid remainder moves the supplier
	// ledger even on a cash return.
	ret := &entity.PurchaseReturn{
		ID:              uuid.New(),
		EmployeeID:      uuid.New(),
		SupplierID:      supplier,
		StoreID:         store,
		ReturnDate:      time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		PaymentType:     enum.PaymentTypeCash,
		TotalAmount:     100000,
		AmountPaid:      40000,
		AmountRemaining: 60000,
		Items: []entity.PurchaseReturnItem{
			{ProductID: product, Quantity: 10, BaseQuantity: 10, UnitCost: 10000, Total: 100000},
		},
	}

	require.NoError(t, engine.ProcessPurchaseReturn(ctx, ret))
	assert.Equal(t, 40.0, f.stock[stockKey{store, product}])
	assert.Equal(t, int64(340000), f.supplierDebt[supplier])

	require.NoError(t, engine.RevertPurchaseReturn(ctx, ret))
	assert.Equal(t, int64(400000), f.supplierDebt[supplier])
}

func TestTransferMovesStockBetweenStores(t *testing.T) {
	engine, f := newTestEngine()
	ctx := context.Background()

	from := uuid.New()
	to := uuid.New()
	product := uuid.New()
	f.stock[stockKey{from, product}] = 30

	transfer := &entity.StockTransfer{
		ID:          uuid.New(),
		EmployeeID:  uuid.New(),
		FromStoreID: from,
		ToStoreID:   to,
		Items: []entity.StockTransferItem{
			{ProductID: product, Quantity: 12, BaseQuantity: 12},
		},
	}

	require.NoError(t, engine.ApplyTransfer(ctx, transfer))
	assert.Equal(t, 18.0, f.stock[stockKey{from, product}])
	assert.Equal(t, 12.0, f.stock[stockKey{to, product}])

	require.NoError(t, engine.RevertTransfer(ctx, transfer))
	assert.Equal(t, 30.0, f.stock[stockKey{from, product}])
	assert.Equal(t, 0.0, f.stock[stockKey{to, product}])
}

func TestCommissionRounding(t *testing.T) {
	// 33.33 at 2.5% is 0.83325, which rounds to 0.83
	assert.Equal(t, int64(83), commissionCents(3333, 2.5))
	// half-way cases round away from zero
	assert.Equal(t, int64(63), commissionCents(2500, 2.5))
	assert.Equal(t, int64(0), commissionCents(0, 5))
	assert.Equal(t, int64(0), commissionCents(10000, 0))
}
