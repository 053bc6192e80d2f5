// Package server wires the development backend: storage, services and the
// HTTP API, with graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/elegacy/internal/cryptox"
	"github.com/dmitrijs2005/elegacy/internal/logging"
	"github.com/dmitrijs2005/elegacy/internal/server/config"
	"github.com/dmitrijs2005/elegacy/internal/server/httpapi"
	"github.com/dmitrijs2005/elegacy/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/elegacy/internal/server/services"
	"go.uber.org/zap"
)

// documentKeySalt separates the at-rest key from the JWT use of the secret.
var documentKeySalt = []byte("elegacy/documents")

type App struct {
	config *config.Config
	logger logging.Logger
	zap    *zap.Logger
	db     *sql.DB
	server *httpapi.HTTPServer
}

// NewApp opens and migrates the database and builds the HTTP server. Logs
// go to w as JSON.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zl := logging.NewZap(w, level)
	logger := logging.FromZap(zl)

	rm := repomanager.NewSQLiteRepositoryManager()
	db, err := repomanager.OpenDatabase(ctx, c.DatabaseDSN, rm)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	sealer, err := cryptox.NewSealer(cryptox.DeriveKey([]byte(c.SecretKey), documentKeySalt))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("document sealer: %w", err)
	}

	us := services.NewUserService(db, rm, c)
	ds := services.NewDocumentService(db, rm, sealer)
	is := services.NewInviteService(db, rm, logger.With("module", "invites"))

	return &App{
		config: c,
		logger: logger,
		zap:    zl,
		db:     db,
		server: httpapi.NewHTTPServer(c, logger, zl, us, ds, is),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx ends or a signal arrives, then closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "address", app.config.EndpointAddr, "require_auth", app.config.RequireAuth)
	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "close database", "error", cerr)
	}
	_ = app.zap.Sync()
	return err
}
