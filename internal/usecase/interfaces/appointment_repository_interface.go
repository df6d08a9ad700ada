package interfaces

import (
	"context"
	"instala_control/internal/domain/entities"
)

// IAppointmentRepository abstracts persistence for Appointment records.
type IAppointmentRepository interface {
	Create(ctx context.Context, a entities.Appointment) (entities.Appointment, error)
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (entities.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]entities.Appointment, error)
}
