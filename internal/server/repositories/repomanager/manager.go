// Package repomanager vends repositories bound to a connection or a
// transaction and owns the schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/elegacy/internal/dbx"
	"github.com/dmitrijs2005/elegacy/internal/server/repositories/documents"
	"github.com/dmitrijs2005/elegacy/internal/server/repositories/invites"
	"github.com/dmitrijs2005/elegacy/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Documents(db dbx.DBTX) documents.Repository
	Invites(db dbx.DBTX) invites.Repository
}
