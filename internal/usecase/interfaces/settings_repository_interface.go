package interfaces

import (
	"context"
	"instala_control/internal/domain/entities"
)

// ISettingsRepository stores the per-user CompanySettings singleton.
type ISettingsRepository interface {
	Get(ctx context.Context, userID string) (entities.CompanySettings, error)
	Put(ctx context.Context, s entities.CompanySettings) (entities.CompanySettings, error)
	List(ctx context.Context) ([]entities.CompanySettings, error)
}
