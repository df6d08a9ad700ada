package interfaces

import (
	"context"
	"instala_control/internal/domain/entities"
)

// IPaymentRepository abstracts persistence for budget Payments.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	ListByBudgetID(ctx context.Context, userID, budgetID string) ([]entities.Payment, error)
}
