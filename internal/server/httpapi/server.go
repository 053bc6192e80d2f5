// Package httpapi serves the eLegacy REST API with gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/elegacy/internal/logging"
	"github.com/dmitrijs2005/elegacy/internal/server/config"
	"github.com/dmitrijs2005/elegacy/internal/server/models"
	"github.com/dmitrijs2005/elegacy/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

type DocumentService interface {
	Upload(ctx context.Context, in services.UploadInput) (string, error)
	List(ctx context.Context, email string) ([]models.Document, error)
	Update(ctx context.Context, owner, id string, upd models.DocumentUpdate) error
	Delete(ctx context.Context, owner, id string) error
	File(ctx context.Context, owner, id, fileName string) (*models.Document, error)
}

type InviteService interface {
	Send(ctx context.Context, in services.InviteInput) (*models.Invite, error)
	Pending(ctx context.Context, recipient string) ([]models.Invite, error)
}

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address string
	config  *config.Config
	users   UserService
	docs    DocumentService
	invites InviteService
	logger  logging.Logger
	zap     *zap.Logger
	engine  *gin.Engine
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, zl *zap.Logger, us UserService, ds DocumentService, is InviteService) *HTTPServer {
	s := &HTTPServer{
		address: cfg.EndpointAddr,
		config:  cfg,
		users:   us,
		docs:    ds,
		invites: is,
		logger:  l.With("module", "http_server"),
		zap:     zl,
	}
	s.engine = s.routes()
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.MaxMultipartMemory = s.config.MaxUploadBytes

	r.Use(requestID(), requestLogger(s.zap), recovery(s.zap))
	r.Use(cors.New(s.corsConfig()))

	r.GET("/", s.health)

	authGroup := r.Group("/api/auth")
	authGroup.POST("/signup", s.signup)
	authGroup.POST("/login", s.login)

	api := r.Group("/api", authenticate([]byte(s.config.SecretKey), s.config.RequireAuth, s.zap))
	api.POST("/upload", s.upload)
	api.GET("/documents/:email", s.listDocuments)
	api.PUT("/documents/:id", s.updateDocument)
	api.DELETE("/documents/:id", s.deleteDocument)
	api.POST("/invite", s.sendInvite)
	api.GET("/invites/:email", s.listInvites)

	files := r.Group("/uploads", authenticate([]byte(s.config.SecretKey), s.config.RequireAuth, s.zap))
	files.GET("/:id/:filename", s.serveFile)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})
	return r
}

func (s *HTTPServer) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(s.config.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range s.config.AllowOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = s.config.AllowOrigins
	cfg.AllowCredentials = true
	return cfg
}

// Run serves until ctx ends, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
