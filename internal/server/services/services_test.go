package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/elegacy/internal/cryptox"
	"github.com/dmitrijs2005/elegacy/internal/logging"
	"github.com/dmitrijs2005/elegacy/internal/server/config"
	"github.com/dmitrijs2005/elegacy/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)

// newTestDB opens a private in-memory database for the test.
func newTestDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	rm := repomanager.NewSQLiteRepositoryManager()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repomanager.OpenDatabase(context.Background(), "file:"+name+"?mode=memory", rm)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, rm
}

func newServices(t *testing.T) (*UserService, *DocumentService, *InviteService) {
	t.Helper()
	db, rm := newTestDB(t)

	cfg := &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour}
	us := NewUserService(db, rm, cfg)
	us.hashCost = bcrypt.MinCost
	us.now = func() time.Time { return fixedNow }

	sealer, err := cryptox.NewSealer(cryptox.DeriveKey([]byte("k"), []byte("salt")))
	require.NoError(t, err)
	ds := NewDocumentService(db, rm, sealer)
	ds.now = func() time.Time { return fixedNow }

	is := NewInviteService(db, rm, logging.Nop())
	is.now = func() time.Time { return fixedNow }
	return us, ds, is
}
