package documents

import (
	"context"

	"github.com/dmitrijs2005/elegacy/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, doc *models.Document) error
	ListByEmail(ctx context.Context, email string) ([]models.Document, error)
	Get(ctx context.Context, id string) (*models.Document, error)
	Update(ctx context.Context, id string, upd models.DocumentUpdate) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
