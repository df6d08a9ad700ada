package interfaces

import (
	"context"
	"instala_control/internal/domain/entities"
)

// IDocumentRenderer lays out a budget on the company letterhead and returns
// the printable file.
type IDocumentRenderer interface {
	RenderBudget(ctx context.Context, b entities.Budget, s entities.CompanySettings) ([]byte, error)
}
