package interfaces

import (
	"context"
	"instala_control/internal/domain/entities"
)

// IBudgetRepository abstracts persistence for Budget records.
//
// The budget service must be able to:
//   - create and replace a budget (total already derived by the caller)
//   - flip the status to scheduled when an appointment is booked from it
//   - list a user's budgets to derive the next budget number
type IBudgetRepository interface {
	Create(ctx context.Context, b entities.Budget) (entities.Budget, error)
	Update(ctx context.Context, b entities.Budget) (entities.Budget, error)
	UpdateStatus(ctx context.Context, userID, id string, status entities.BudgetStatus) (entities.Budget, error)
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (entities.Budget, error)
	ListByUser(ctx context.Context, userID string) ([]entities.Budget, error)
}
