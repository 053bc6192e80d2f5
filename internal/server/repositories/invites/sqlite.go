// Package invites records share invitations.
package invites

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/elegacy/internal/dbx"
	"github.com/dmitrijs2005/elegacy/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, inv *models.Invite) error {
	query :=
		`INSERT INTO invites (id, sender, recipient, document_id, document_title, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 `

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.Sender, inv.Recipient, inv.DocumentID, inv.DocumentTitle, inv.Status, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListByRecipient(ctx context.Context, recipient string) ([]models.Invite, error) {
	query :=
		`SELECT id, sender, recipient, document_id, document_title, status, created_at FROM invites
		 WHERE recipient = ?
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, recipient)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Invite
	for rows.Next() {
		var inv models.Invite
		if err := rows.Scan(&inv.ID, &inv.Sender, &inv.Recipient, &inv.DocumentID, &inv.DocumentTitle, &inv.Status, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
