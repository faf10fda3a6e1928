// Package settlement applies and reverts the side effects of trade
// documents: stock movement, client and supplier debt, and employee
// commissions. Callers own the transaction boundary; every operation
// here assumes it runs inside one and performs either all of its
// mutations or none.
package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// StockLedger moves per-store stock levels. Deltas are in the product's
// base unit; levels are allowed to go negative.
type StockLedger interface {
	Adjust(ctx context.Context, storeID, productID uuid.UUID, delta float64) error
}

// DebtLedger moves client and supplier balances by signed deltas in cents.
type DebtLedger interface {
	AdjustClientDebt(ctx context.Context, clientID uuid.UUID, delta int64) error
	AdjustSupplierDebt(ctx context.Context, supplierID uuid.UUID, delta int64) error
	// ResponsibleEmployee returns the employee accountable for the
	// client's account, or nil when none is set.
	ResponsibleEmployee(ctx context.Context, clientID uuid.UUID) (*uuid.UUID, error)
}

// CommissionLedger writes commission rows and their paired ledger
// transactions, and looks them up by source document when reverting.
type CommissionLedger interface {
	InsertCommission(ctx context.Context, c *entity.Commission) error
	InsertTransaction(ctx context.Context, t *entity.EmployeeTransaction) error
	BySource(ctx context.Context, sourceID uuid.UUID, sourceType enum.SourceType) ([]entity.Commission, error)
	DeleteBySource(ctx context.Context, sourceID uuid.UUID, sourceType enum.SourceType) error
}

// StoreResolver maps an employee to the store whose stock their sales
// move. Nil means the employee has no assignment.
type StoreResolver interface {
	StoreIDForEmployee(ctx context.Context, employeeID uuid.UUID) (*uuid.UUID, error)
}

// Engine settles trade documents against the three ledgers.
type Engine struct {
	stock       StockLedger
	debt        DebtLedger
	commissions CommissionLedger
	stores      StoreResolver
}

// NewEngine creates a settlement engine.
func NewEngine(stock StockLedger, debt DebtLedger, commissions CommissionLedger, stores StoreResolver) *Engine {
	return &Engine{
		stock:       stock,
		debt:        debt,
		commissions: commissions,
		stores:      stores,
	}
}

// commissionCents computes round(total * rate / 100) in cents. Rate is a
// percentage; decimal arithmetic keeps the rounding exact for rates like
// 2.5 that are not representable in binary floating point.
func commissionCents(totalCents int64, rate float64) int64 {
	if rate == 0 || totalCents == 0 {
		return 0
	}
	return decimal.NewFromInt(totalCents).
		Mul(decimal.NewFromFloat(rate)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// storeFor resolves the employee's store, failing the whole settlement
// when no assignment exists. The check runs before any mutation.
func (e *Engine) storeFor(ctx context.Context, employeeID uuid.UUID) (uuid.UUID, error) {
	storeID, err := e.stores.StoreIDForEmployee(ctx, employeeID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve store for employee %s: %w", employeeID, err)
	}
	if storeID == nil {
		return uuid.Nil, apperror.ErrNoStoreAssigned
	}
	return *storeID, nil
}

// ProcessOrder applies a sale: stock down, client debt up by the unpaid
// remainder, and commissions earned at the given percentage rate.
func (e *Engine) ProcessOrder(ctx context.Context, order *entity.SalesOrder, rate float64) error {
	storeID, err := e.storeFor(ctx, order.EmployeeID)
	if err != nil {
		return err
	}
	for i := range order.Items {
		item := &order.Items[i]
		if err := e.stock.Adjust(ctx, storeID, item.ProductID, -item.BaseQuantity); err != nil {
			return fmt.Errorf("adjust stock for product %s: %w", item.ProductID, err)
		}
	}
	if order.ClientID != nil && order.AmountRemaining != 0 {
		if err := e.debt.AdjustClientDebt(ctx, *order.ClientID, order.AmountRemaining); err != nil {
			return fmt.Errorf("adjust client debt: %w", err)
		}
	}
	amount := commissionCents(order.TotalAmount, rate)
	return e.writeCommissions(ctx, commissionSpec{
		sourceID:   order.ID,
		sourceType: enum.SourceSale,
		sellerID:   order.EmployeeID,
		clientID:   order.ClientID,
		amount:     amount,
		rate:       rate,
		date:       order.OrderDate,
	})
}

// RevertOrder undoes ProcessOrder: stock back up, debt back down, and
// every commission row compensated in the employee ledger then removed.
// revertedBy is recorded on the compensating ledger rows.
func (e *Engine) RevertOrder(ctx context.Context, order *entity.SalesOrder, revertedBy uuid.UUID) error {
	storeID, err := e.storeFor(ctx, order.EmployeeID)
	if err != nil {
		return err
	}
	for i := range order.Items {
		item := &order.Items[i]
		if err := e.stock.Adjust(ctx, storeID, item.ProductID, item.BaseQuantity); err != nil {
			return fmt.Errorf("adjust stock for product %s: %w", item.ProductID, err)
		}
	}
	if order.ClientID != nil && order.AmountRemaining != 0 {
		if err := e.debt.AdjustClientDebt(ctx, *order.ClientID, -order.AmountRemaining); err != nil {
			return fmt.Errorf("adjust client debt: %w", err)
		}
	}
	return e.compensateCommissions(ctx, order.ID, enum.SourceSale, revertedBy)
}

// ProcessReturn applies a sales return: stock back up, client debt down
// by the unrefunded remainder when the original payment was deferred,
// and negative commissions.
func (e *Engine) ProcessReturn(ctx context.Context, ret *entity.SalesReturn, rate float64) error {
	storeID, err := e.storeFor(ctx, ret.EmployeeID)
	if err != nil {
		return err
	}
	for i := range ret.Items {
		item := &ret.Items[i]
		if err := e.stock.Adjust(ctx, storeID, item.ProductID, item.BaseQuantity); err != nil {
			return fmt.Errorf("adjust stock for product %s: %w", item.ProductID, err)
		}
	}
	if ret.ClientID != nil && ret.PaymentType.IsDeferred() && ret.AmountRemaining != 0 {
		if err := e.debt.AdjustClientDebt(ctx, *ret.ClientID, -ret.AmountRemaining); err != nil {
			return fmt.Errorf("adjust client debt: %w", err)
		}
	}
	amount := -commissionCents(ret.TotalAmount, rate)
	return e.writeCommissions(ctx, commissionSpec{
		sourceID:   ret.ID,
		sourceType: enum.SourceSaleReturn,
		sellerID:   ret.EmployeeID,
		clientID:   ret.ClientID,
		amount:     amount,
		rate:       rate,
		date:       ret.ReturnDate,
	})
}

// RevertReturn undoes ProcessReturn. revertedBy is recorded on the
// compensating ledger rows.
func (e *Engine) RevertReturn(ctx context.Context, ret *entity.SalesReturn, revertedBy uuid.UUID) error {
	storeID, err := e.storeFor(ctx, ret.EmployeeID)
	if err != nil {
		return err
	}
	for i := range ret.Items {
		item := &ret.Items[i]
		if err := e.stock.Adjust(ctx, storeID, item.ProductID, -item.BaseQuantity); err != nil {
			return fmt.Errorf("adjust stock for product %s: %w", item.ProductID, err)
		}
	}
	if ret.ClientID != nil && ret.PaymentType.IsDeferred() && ret.AmountRemaining != 0 {
		if err := e.debt.AdjustClientDebt(ctx, *ret.ClientID, ret.AmountRemaining); err != nil {
			return fmt.Errorf("adjust client debt: %w", err)
		}
	}
	return e.compensateCommissions(ctx, ret.ID, enum.SourceSaleReturn, revertedBy)
}

// ProcessPurchase applies a purchase: stock up at the purchase's store
// and supplier debt up by the unpaid remainder. No commissions.
func (e *Engine) ProcessPurchase(ctx context.Context, purchase *entity.Purchase) error {
	for i := range purchase.Items {
		item := &purchase.Items[i]
		if err := e.stock.Adjust(ctx, purchase.StoreID, item.ProductID, item.BaseQuantity); err != nil {
			return fmt.Errorf("adjust stock for product %s: %w", item.ProductID, err)
		}
	}
	if purchase.AmountRemaining != 0 {
		if err := e.debt.AdjustSupplierDebt(ctx, purchase.SupplierID, purchase.AmountRemaining); err != nil {
			return fmt.Errorf("adjust supplier debt: %w", err)
		}
	}
	return nil
}

// RevertPurchase undoes ProcessPurchase.
func (e *Engine) RevertPurchase(ctx context.Context, purchase *entity.Purchase) error {
	for i := range purchase.Items {
		item := &purchase.Items[i]
		if err := e.stock.Adjust(ctx, purchase.StoreID, item.ProductID, -item.BaseQuantity); err != nil {
			return fmt.Errorf("adjust stock for product %s: %w", item.ProductID, err)
		}
	}
	if purchase.AmountRemaining != 0 {
		if err := e.debt.AdjustSupplierDebt(ctx, purchase.SupplierID, -purchase.AmountRemaining); err != nil {
			return fmt.Errorf("adjust supplier debt: %w", err)
		}
	}
	return nil
}

// ProcessPurchaseReturn applies a purchase return as the inverse of a
// purchase: stock down and supplier debt down by the unrefunded
// remainder.
func (e *Engine) ProcessPurchaseReturn(ctx context.Context, ret *entity.PurchaseReturn) error {
	for i := range ret.Items {
		item := &ret.Items[i]
		if err := e.stock.Adjust(ctx, ret.StoreID, item.ProductID, -item.BaseQuantity); err != nil {
			return fmt.Errorf("adjust stock for product %s: %w", item.ProductID, err)
		}
	}
	if ret.AmountRemaining != 0 {
		if err := e.debt.AdjustSupplierDebt(ctx, ret.SupplierID, -ret.AmountRemaining); err != nil {
			return fmt.Errorf("adjust supplier debt: %w", err)
		}
	}
	return nil
}

// RevertPurchaseReturn undoes ProcessPurchaseReturn.
func (e *Engine) RevertPurchaseReturn(ctx context.Context, ret *entity.PurchaseReturn) error {
	for i := range ret.Items {
		item := &ret.Items[i]
		if err := e.stock.Adjust(ctx, ret.StoreID, item.ProductID, item.BaseQuantity); err != nil {
			return fmt.Errorf("adjust stock for product %s: %w", item.ProductID, err)
		}
	}
	if ret.AmountRemaining != 0 {
		if err := e.debt.AdjustSupplierDebt(ctx, ret.SupplierID, ret.AmountRemaining); err != nil {
			return fmt.Errorf("adjust supplier debt: %w", err)
		}
	}
	return nil
}

// ApplyTransfer moves each item's quantity out of the source store and
// into the destination.
func (e *Engine) ApplyTransfer(ctx context.Context, transfer *entity.StockTransfer) error {
	for i := range transfer.Items {
		item := &transfer.Items[i]
		if err := e.stock.Adjust(ctx, transfer.FromStoreID, item.ProductID, -item.BaseQuantity); err != nil {
			return fmt.Errorf("adjust source stock for product %s: %w", item.ProductID, err)
		}
		if err := e.stock.Adjust(ctx, transfer.ToStoreID, item.ProductID, item.BaseQuantity); err != nil {
			return fmt.Errorf("adjust destination stock for product %s: %w", item.ProductID, err)
		}
	}
	return nil
}

// RevertTransfer undoes ApplyTransfer.
func (e *Engine) RevertTransfer(ctx context.Context, transfer *entity.StockTransfer) error {
	for i := range transfer.Items {
		item := &transfer.Items[i]
		if err := e.stock.Adjust(ctx, transfer.FromStoreID, item.ProductID, item.BaseQuantity); err != nil {
			return fmt.Errorf("adjust source stock for product %s: %w", item.ProductID, err)
		}
		if err := e.stock.Adjust(ctx, transfer.ToStoreID, item.ProductID, -item.BaseQuantity); err != nil {
			return fmt.Errorf("adjust destination stock for product %s: %w", item.ProductID, err)
		}
	}
	return nil
}

type commissionSpec struct {
	sourceID   uuid.UUID
	sourceType enum.SourceType
	sellerID   uuid.UUID
	clientID   *uuid.UUID
	amount     int64
	rate       float64
	date       time.Time
}

// writeCommissions records the seller's commission and, when the client
// has a responsible employee other than the seller, a secondary row of
// equal amount. Each row gets a paired employee ledger transaction.
func (e *Engine) writeCommissions(ctx context.Context, spec commissionSpec) error {
	if spec.amount == 0 {
		return nil
	}
	recipients := []struct {
		employeeID uuid.UUID
		isMain     bool
	}{
		{spec.sellerID, true},
	}
	if spec.clientID != nil {
		responsible, err := e.debt.ResponsibleEmployee(ctx, *spec.clientID)
		if err != nil {
			return fmt.Errorf("resolve responsible employee: %w", err)
		}
		if responsible != nil && *responsible != spec.sellerID {
			recipients = append(recipients, struct {
				employeeID uuid.UUID
				isMain     bool
			}{*responsible, false})
		}
	}
	for _, r := range recipients {
		commission := &entity.Commission{
			EmployeeID: r.employeeID,
			SourceID:   spec.sourceID,
			SourceType: spec.sourceType,
			Amount:     spec.amount,
			Rate:       spec.rate,
			IsMain:     r.isMain,
			Date:       spec.date,
		}
		if err := e.commissions.InsertCommission(ctx, commission); err != nil {
			return fmt.Errorf("insert commission: %w", err)
		}
		txn := &entity.EmployeeTransaction{
			EmployeeID:          r.employeeID,
			Type:                enum.TransactionCommission,
			Amount:              spec.amount,
			RelatedCommissionID: &commission.ID,
			Date:                spec.date,
		}
		if err := e.commissions.InsertTransaction(ctx, txn); err != nil {
			return fmt.Errorf("insert commission transaction: %w", err)
		}
	}
	return nil
}

// compensateCommissions writes an opposite-sign ledger row for every
// commission tied to the source document, then removes the commission
// rows themselves. The employee ledger stays append-only; each
// compensating row carries who reverted and a reversal note so it can
// be told apart from an earned commission.
func (e *Engine) compensateCommissions(ctx context.Context, sourceID uuid.UUID, sourceType enum.SourceType, revertedBy uuid.UUID) error {
	commissions, err := e.commissions.BySource(ctx, sourceID, sourceType)
	if err != nil {
		return fmt.Errorf("load commissions: %w", err)
	}
	note := fmt.Sprintf("Reversal of %s commission", sourceType)
	for i := range commissions {
		c := &commissions[i]
		txn := &entity.EmployeeTransaction{
			EmployeeID:          c.EmployeeID,
			CreatedByID:         &revertedBy,
			Type:                enum.TransactionCommission,
			Amount:              -c.Amount,
			RelatedCommissionID: &c.ID,
			Notes:               &note,
			Date:                c.Date,
		}
		if err := e.commissions.InsertTransaction(ctx, txn); err != nil {
			return fmt.Errorf("insert compensating transaction: %w", err)
		}
	}
	if len(commissions) == 0 {
		return nil
	}
	if err := e.commissions.DeleteBySource(ctx, sourceID, sourceType); err != nil {
		return fmt.Errorf("delete commissions: %w", err)
	}
	return nil
}
