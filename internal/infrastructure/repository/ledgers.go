package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hisably/pos-api/internal/application/settlement"
	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// debtLedger backs settlement.DebtLedger with atomic balance updates.
type debtLedger struct {
	db *gorm.DB
}

// NewDebtLedger creates the settlement debt ledger
func NewDebtLedger(db *gorm.DB) settlement.DebtLedger {
	return &debtLedger{db: db}
}

func (l *debtLedger) AdjustClientDebt(ctx context.Context, clientID uuid.UUID, delta int64) error {
	return dbFrom(ctx, l.db).WithContext(ctx).Model(&entity.Client{}).
		Where("id = ?", clientID).
		Update("debt", gorm.Expr("debt + ?", delta)).Error
}

func (l *debtLedger) AdjustSupplierDebt(ctx context.Context, supplierID uuid.UUID, delta int64) error {
	return dbFrom(ctx, l.db).WithContext(ctx).Model(&entity.Supplier{}).
		Where("id = ?", supplierID).
		Update("debt", gorm.Expr("debt + ?", delta)).Error
}

func (l *debtLedger) ResponsibleEmployee(ctx context.Context, clientID uuid.UUID) (*uuid.UUID, error) {
	var client entity.Client
	err := dbFrom(ctx, l.db).WithContext(ctx).
		Select("responsible_employee_id").
		First(&client, "id = ?", clientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return client.ResponsibleEmployeeID, nil
}

// commissionLedger backs settlement.CommissionLedger.
type commissionLedger struct {
	db *gorm.DB
}

// NewCommissionLedger creates the settlement commission ledger
func NewCommissionLedger(db *gorm.DB) settlement.CommissionLedger {
	return &commissionLedger{db: db}
}

func (l *commissionLedger) InsertCommission(ctx context.Context, c *entity.Commission) error {
	return dbFrom(ctx, l.db).WithContext(ctx).Create(c).Error
}

func (l *commissionLedger) InsertTransaction(ctx context.Context, t *entity.EmployeeTransaction) error {
	return dbFrom(ctx, l.db).WithContext(ctx).Create(t).Error
}

func (l *commissionLedger) BySource(ctx context.Context, sourceID uuid.UUID, sourceType enum.SourceType) ([]entity.Commission, error) {
	var commissions []entity.Commission
	err := dbFrom(ctx, l.db).WithContext(ctx).
		Where("source_id = ? AND source_type = ?", sourceID, sourceType).
		Find(&commissions).Error
	return commissions, err
}

func (l *commissionLedger) DeleteBySource(ctx context.Context, sourceID uuid.UUID, sourceType enum.SourceType) error {
	return dbFrom(ctx, l.db).WithContext(ctx).
		Delete(&entity.Commission{}, "source_id = ? AND source_type = ?", sourceID, sourceType).Error
}
