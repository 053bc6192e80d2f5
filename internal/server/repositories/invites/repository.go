package invites

import (
	"context"

	"github.com/dmitrijs2005/elegacy/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, inv *models.Invite) error
	ListByRecipient(ctx context.Context, recipient string) ([]models.Invite, error)
}
