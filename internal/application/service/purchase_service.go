package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/application/settlement"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"github.com/hisably/pos-api/internal/domain/repository"
	infraRepo "github.com/hisably/pos-api/internal/infrastructure/repository"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/hisably/pos-api/pkg/pagination"
	"github.com/sirupsen/logrus"
)

// PurchaseService handles supplier purchases and purchase returns
type PurchaseService struct {
	tx             *infraRepo.TxManager
	engine         *settlement.Engine
	purchaseRepo   repository.PurchaseRepository
	itemRepo       repository.PurchaseItemRepository
	returnRepo     repository.PurchaseReturnRepository
	returnItemRepo repository.PurchaseReturnItemRepository
	supplierRepo   repository.SupplierRepository
	productRepo    repository.ProductRepository
	unitRepo       repository.UnitRepository
	storeRepo      repository.StoreRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	tx *infraRepo.TxManager,
	engine *settlement.Engine,
	purchaseRepo repository.PurchaseRepository,
	itemRepo repository.PurchaseItemRepository,
	returnRepo repository.PurchaseReturnRepository,
	returnItemRepo repository.PurchaseReturnItemRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	unitRepo repository.UnitRepository,
	storeRepo repository.StoreRepository,
) *PurchaseService {
	return &PurchaseService{
		tx:             tx,
		engine:         engine,
		purchaseRepo:   purchaseRepo,
		itemRepo:       itemRepo,
		returnRepo:     returnRepo,
		returnItemRepo: returnItemRepo,
		supplierRepo:   supplierRepo,
		productRepo:    productRepo,
		unitRepo:       unitRepo,
		storeRepo:      storeRepo,
	}
}

// PurchaseItemInput represents one line of a purchase request
type PurchaseItemInput struct {
	ProductID uuid.UUID
	UnitID    *uuid.UUID
	Quantity  float64
	UnitCost  float64
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	EmployeeID   uuid.UUID
	SupplierID   uuid.UUID
	StoreID      *uuid.UUID
	PurchaseDate time.Time
	PaymentType  enum.PaymentType
	AmountPaid   float64
	Notes        *string
	Items        []PurchaseItemInput
}

func (s *PurchaseService) buildLines(ctx context.Context, items []PurchaseItemInput) ([]entity.PurchaseItem, int64, error) {
	if len(items) == 0 {
		return nil, 0, apperror.NewBadRequestError("Purchase must have at least one item")
	}

	productIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, 0, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var total int64
	lines := make([]entity.PurchaseItem, 0, len(items))
	for _, item := range items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, 0, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if item.Quantity <= 0 {
			return nil, 0, apperror.NewBadRequestError("Item quantity must be positive")
		}

		baseQuantity := item.Quantity
		if item.UnitID != nil && (product.BaseUnitID == nil || *item.UnitID != *product.BaseUnitID) {
			unit, err := s.unitRepo.GetByID(ctx, *item.UnitID)
			if err != nil {
				return nil, 0, err
			}
			if unit == nil {
				return nil, 0, apperror.NewNotFoundError("Unit")
			}
			baseQuantity = item.Quantity * unit.Rate
		}

		unitCostCents := int64(item.UnitCost * 100)
		lineTotal := int64(item.UnitCost * item.Quantity * 100)
		total += lineTotal

		lines = append(lines, entity.PurchaseItem{
			ProductID:    item.ProductID,
			UnitID:       item.UnitID,
			Quantity:     item.Quantity,
			BaseQuantity: baseQuantity,
			UnitCost:     unitCostCents,
			Total:        lineTotal,
		})
	}

	return lines, total, nil
}

// resolveStore picks the explicit store or falls back to the default
// active store.
func (s *PurchaseService) resolveStore(ctx context.Context, storeID *uuid.UUID) (uuid.UUID, error) {
	if storeID != nil {
		store, err := s.storeRepo.GetByID(ctx, *storeID)
		if err != nil {
			return uuid.Nil, err
		}
		if store == nil {
			return uuid.Nil, apperror.NewNotFoundError("Store")
		}
		return store.ID, nil
	}
	store, err := s.storeRepo.GetDefault(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if store == nil {
		return uuid.Nil, apperror.NewBadRequestError("No active store available")
	}
	return store.ID, nil
}

// CreatePurchase creates a purchase and settles it
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	if !input.PaymentType.Valid() {
		return nil, apperror.NewBadRequestError("Unknown payment type")
	}

	storeID, err := s.resolveStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}

	lines, total, err := s.buildLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	paidCents := int64(input.AmountPaid * 100)
	if paidCents > total {
		paidCents = total
	}

	purchaseDate := input.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	var purchase *entity.Purchase
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		referenceNo, err := s.purchaseRepo.NextReferenceNo(ctx, purchaseDate)
		if err != nil {
			return err
		}

		purchase = &entity.Purchase{
			ReferenceNo:     referenceNo,
			EmployeeID:      input.EmployeeID,
			SupplierID:      input.SupplierID,
			StoreID:         storeID,
			PurchaseDate:    purchaseDate,
			Status:          enum.DocumentStatusActive,
			PaymentType:     input.PaymentType,
			TotalAmount:     total,
			AmountPaid:      paidCents,
			AmountRemaining: total - paidCents,
			Notes:           input.Notes,
		}
		purchase.Touch()

		if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}

		for i := range lines {
			lines[i].PurchaseID = purchase.ID
		}
		if err := s.itemRepo.CreateBatch(ctx, lines); err != nil {
			return err
		}

		purchase.Items = lines
		return s.engine.ProcessPurchase(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"reference_no": purchase.ReferenceNo,
		"supplier_id":  input.SupplierID,
		"total":        total,
	}).Info("purchase settled")

	return s.purchaseRepo.GetWithDetails(ctx, purchase.ID)
}

// GetPurchase retrieves a purchase by ID
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases with filtering
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

// RevertPurchase undoes a settled purchase
func (s *PurchaseService) RevertPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	if purchase.Status == enum.DocumentStatusReverted {
		return nil, apperror.ErrAlreadyReverted
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.engine.RevertPurchase(ctx, purchase); err != nil {
			return err
		}
		return s.purchaseRepo.UpdateStatus(ctx, id, enum.DocumentStatusReverted)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("reference_no", purchase.ReferenceNo).Info("purchase reverted")

	purchase.Status = enum.DocumentStatusReverted
	return purchase, nil
}

// PayDue records a payment towards a purchase's outstanding balance and
// reduces the supplier's debt by the same amount.
func (s *PurchaseService) PayDue(ctx context.Context, purchaseID uuid.UUID, amount float64) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil {
		return apperror.NewNotFoundError("Purchase")
	}
	if purchase.Status == enum.DocumentStatusReverted {
		return apperror.NewBadRequestError("Cannot pay a reverted purchase")
	}

	amountCents := int64(amount * 100)
	if amountCents <= 0 {
		return apperror.NewBadRequestError("Payment must be positive")
	}
	if amountCents > purchase.AmountRemaining {
		amountCents = purchase.AmountRemaining
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		purchase.AmountPaid += amountCents
		purchase.AmountRemaining -= amountCents
		purchase.Touch()
		if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
			return err
		}
		return s.supplierRepo.AdjustDebt(ctx, purchase.SupplierID, -amountCents)
	})
}

// CreatePurchaseReturnInput represents the create purchase return input
type CreatePurchaseReturnInput struct {
	EmployeeID  uuid.UUID
	SupplierID  uuid.UUID
	StoreID     *uuid.UUID
	PurchaseID  *uuid.UUID
	ReturnDate  time.Time
	PaymentType enum.PaymentType
	AmountPaid  float64
	Notes       *string
	Items       []PurchaseItemInput
}

// CreatePurchaseReturn creates a purchase return and settles it
func (s *PurchaseService) CreatePurchaseReturn(ctx context.Context, input *CreatePurchaseReturnInput) (*entity.PurchaseReturn, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	if input.PurchaseID != nil {
		purchase, err := s.purchaseRepo.GetByID(ctx, *input.PurchaseID)
		if err != nil {
			return nil, err
		}
		if purchase == nil {
			return nil, apperror.NewNotFoundError("Purchase")
		}
	}

	storeID, err := s.resolveStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}

	lines, total, err := s.buildLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	paidCents := int64(input.AmountPaid * 100)
	if paidCents > total {
		paidCents = total
	}

	returnDate := input.ReturnDate
	if returnDate.IsZero() {
		returnDate = time.Now()
	}

	returnLines := make([]entity.PurchaseReturnItem, len(lines))
	for i, line := range lines {
		returnLines[i] = entity.PurchaseReturnItem{
			ProductID:    line.ProductID,
			UnitID:       line.UnitID,
			Quantity:     line.Quantity,
			BaseQuantity: line.BaseQuantity,
			UnitCost:     line.UnitCost,
			Total:        line.Total,
		}
	}

	var ret *entity.PurchaseReturn
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		returnNo, err := s.returnRepo.NextReturnNo(ctx, returnDate)
		if err != nil {
			return err
		}

		ret = &entity.PurchaseReturn{
			ReturnNo:        returnNo,
			EmployeeID:      input.EmployeeID,
			SupplierID:      input.SupplierID,
			StoreID:         storeID,
			PurchaseID:      input.PurchaseID,
			ReturnDate:      returnDate,
			Status:          enum.DocumentStatusActive,
			PaymentType:     input.PaymentType,
			TotalAmount:     total,
			AmountPaid:      paidCents,
			AmountRemaining: total - paidCents,
			Notes:           input.Notes,
		}
		ret.Touch()

		if err := s.returnRepo.Create(ctx, ret); err != nil {
			return err
		}

		for i := range returnLines {
			returnLines[i].ReturnID = ret.ID
		}
		if err := s.returnItemRepo.CreateBatch(ctx, returnLines); err != nil {
			return err
		}

		ret.Items = returnLines
		return s.engine.ProcessPurchaseReturn(ctx, ret)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("return_no", ret.ReturnNo).Info("purchase return settled")

	return s.returnRepo.GetWithDetails(ctx, ret.ID)
}

// GetPurchaseReturn retrieves a purchase return by ID
func (s *PurchaseService) GetPurchaseReturn(ctx context.Context, id uuid.UUID) (*entity.PurchaseReturn, error) {
	ret, err := s.returnRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Purchase return")
	}
	return ret, nil
}

// ListPurchaseReturns lists purchase returns with filtering
func (s *PurchaseService) ListPurchaseReturns(ctx context.Context, params *repository.PurchaseReturnFilterParams) (*pagination.PaginatedResult[entity.PurchaseReturn], error) {
	returns, total, err := s.returnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}

// RevertPurchaseReturn undoes a settled purchase return
func (s *PurchaseService) RevertPurchaseReturn(ctx context.Context, id uuid.UUID) (*entity.PurchaseReturn, error) {
	ret, err := s.returnRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Purchase return")
	}
	if ret.Status == enum.DocumentStatusReverted {
		return nil, apperror.ErrAlreadyReverted
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.engine.RevertPurchaseReturn(ctx, ret); err != nil {
			return err
		}
		return s.returnRepo.UpdateStatus(ctx, id, enum.DocumentStatusReverted)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("return_no", ret.ReturnNo).Info("purchase return reverted")

	ret.Status = enum.DocumentStatusReverted
	return ret, nil
}
