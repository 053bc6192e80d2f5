// Package documents stores uploaded documents and their sealed content.
package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/elegacy/internal/common"
	"github.com/dmitrijs2005/elegacy/internal/dbx"
	"github.com/dmitrijs2005/elegacy/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, doc *models.Document) error {
	query :=
		`INSERT INTO documents (id, email, title, filename, property_name, address, type, content, nonce, upload_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 `

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Email, doc.Title, doc.FileName, doc.PropertyName, doc.Address, doc.Type,
		doc.Content, doc.Nonce, doc.UploadDate)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByEmail returns the owner's documents without content, in the order
// they were uploaded.
func (r *SQLiteRepository) ListByEmail(ctx context.Context, email string) ([]models.Document, error) {
	query :=
		`SELECT id, email, title, filename, property_name, address, type, upload_date FROM documents
		 WHERE email = ?
		 ORDER BY upload_date, rowid
		 `

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.Email, &d.Title, &d.FileName, &d.PropertyName, &d.Address, &d.Type, &d.UploadDate); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return docs, nil
}

// Get returns the full row including the sealed content.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	query :=
		`SELECT id, email, title, filename, property_name, address, type, content, nonce, upload_date FROM documents
		 WHERE id = ?
		 `

	d := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.Email, &d.Title, &d.FileName, &d.PropertyName, &d.Address, &d.Type, &d.Content, &d.Nonce, &d.UploadDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

// Update sets the non-nil fields of upd. It reports false when the
// document is missing or every given value already matches.
func (r *SQLiteRepository) Update(ctx context.Context, id string, upd models.DocumentUpdate) (bool, error) {
	if upd.Empty() {
		return false, nil
	}

	var (
		sets    []string
		changed []string
		args    []any
		cmpArgs []any
	)
	add := func(col string, v *string) {
		if v == nil {
			return
		}
		sets = append(sets, col+" = ?")
		changed = append(changed, col+" <> ?")
		args = append(args, *v)
		cmpArgs = append(cmpArgs, *v)
	}
	add("title", upd.Title)
	add("property_name", upd.PropertyName)
	add("address", upd.Address)
	add("type", upd.Type)

	query := "UPDATE documents SET " + strings.Join(sets, ", ") +
		" WHERE id = ? AND (" + strings.Join(changed, " OR ") + ")"
	args = append(args, id)
	args = append(args, cmpArgs...)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

// Delete reports whether a row was removed.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
