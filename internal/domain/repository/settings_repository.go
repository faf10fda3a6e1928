package repository

import (
	"context"

	"github.com/hisably/pos-api/internal/domain/entity"
)

// SettingsRepository defines the interface for settings data access.
// Settings are a single row seeded at migration time.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Update(ctx context.Context, settings *entity.Settings) error
}
