package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dmitrijs2005/elegacy/internal/logging"
	"github.com/dmitrijs2005/elegacy/internal/server/models"
	"github.com/dmitrijs2005/elegacy/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// InviteInput is the body of a share request.
type InviteInput struct {
	Sender        string
	Recipient     string
	DocumentID    string
	DocumentTitle string
}

// InviteService records share invitations. Delivery is logged rather than
// mailed.
type InviteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewInviteService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *InviteService {
	return &InviteService{db: db, repomanager: m, log: log, now: time.Now}
}

// Send stores a pending invite for the recipient.
func (s *InviteService) Send(ctx context.Context, in InviteInput) (*models.Invite, error) {
	recipient := strings.TrimSpace(in.Recipient)
	if recipient == "" || strings.TrimSpace(in.DocumentID) == "" {
		return nil, ErrInviteFields
	}

	inv := &models.Invite{
		ID:            uuid.NewString(),
		Sender:        strings.TrimSpace(in.Sender),
		Recipient:     recipient,
		DocumentID:    strings.TrimSpace(in.DocumentID),
		DocumentTitle: in.DocumentTitle,
		Status:        models.InviteStatusPending,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repomanager.Invites(s.db).Create(ctx, inv); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "invitation recorded",
		"invite_id", inv.ID, "sender", inv.Sender, "recipient", inv.Recipient, "document_id", inv.DocumentID)
	return inv, nil
}

// Pending lists invites addressed to recipient.
func (s *InviteService) Pending(ctx context.Context, recipient string) ([]models.Invite, error) {
	return s.repomanager.Invites(s.db).ListByRecipient(ctx, recipient)
}
