package interfaces

import (
	"context"
	"instala_control/internal/domain/entities"
)

// IServiceRepository abstracts persistence for Service records.
//
// Every method is scoped to one user partition. Lookups of a missing record
// return the zero value and a nil error.
type IServiceRepository interface {
	Create(ctx context.Context, s entities.Service) (entities.Service, error)
	Update(ctx context.Context, s entities.Service) (entities.Service, error)
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (entities.Service, error)
	ListByUser(ctx context.Context, userID string) ([]entities.Service, error)
}
