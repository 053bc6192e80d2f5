package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/elegacy/internal/client/access"
	"github.com/dmitrijs2005/elegacy/internal/client/client"
	"github.com/dmitrijs2005/elegacy/internal/client/config"
	"github.com/dmitrijs2005/elegacy/internal/client/documents"
	"github.com/dmitrijs2005/elegacy/internal/client/menu"
	"github.com/dmitrijs2005/elegacy/internal/client/notifications"
	"github.com/dmitrijs2005/elegacy/internal/client/services"
	"github.com/dmitrijs2005/elegacy/internal/client/session"
	"github.com/dmitrijs2005/elegacy/internal/client/will"
	"github.com/dmitrijs2005/elegacy/internal/logging"
)

// App is the interactive eLegacy client: the session gate, the document
// list and its action menu, and the in-memory side screens.
type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	gate     *session.Gate
	auth     services.AuthService
	docs     services.DocumentService
	profiles services.ProfileService

	view   *documents.ViewState
	menu   *menu.Menu
	access *access.Manager
	feed   *notifications.Feed
	will   *will.Builder

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local store and wires the services against the API at
// cfg.ServerBaseURL. The caller owns Close.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	return newApp(cfg, log, db, os.Stdin, os.Stdout), nil
}

func newApp(cfg *config.Config, log logging.Logger, db *sql.DB, in io.Reader, out io.Writer) *App {
	gate := session.NewGate(session.NewStore(db), cfg.SplashDelay,
		session.WithLogger(log.With("component", "session")))

	api := client.NewHTTPClient(cfg.ServerBaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithTokenSource(gate.Token),
		client.WithLogger(log.With("component", "api")),
	)

	view := documents.NewViewState(api, log)
	docs := services.NewDocumentService(api, gate, view, api.BaseURL(), log)

	a := &App{
		config:   cfg,
		log:      log,
		db:       db,
		gate:     gate,
		auth:     services.NewAuthService(api, gate, log),
		docs:     docs,
		profiles: services.NewProfileService(db, gate),
		view:     view,
		menu:     menu.New(docs),
		access:   access.NewManager(access.SampleUsers()),
		feed:     notifications.NewFeed(notifications.Samples()),
		will:     will.NewBuilder(),
		reader:   bufio.NewReader(in),
		out:      out,
	}
	gate.OnUnauthenticated(a.onSignedOut)
	return a
}

// Run shows the splash while the gate decides, then serves commands until
// the user exits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "eLegacy")
	fmt.Fprintln(a.out, "Loading...")

	if err := a.gate.Start(ctx); err != nil {
		return err
	}
	if a.isLoggedIn() {
		a.welcome(ctx)
	}

	fmt.Fprintln(a.out, "Type 'help' for commands.")
	runREPL(ctx, a, a.out, a.status, bufio.NewScanner(&lineSource{r: a.reader}))
	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.gate.Session() != nil
}

// status is the prompt decoration: the signed-in email and the document
// the action menu is bound to.
func (a *App) status() string {
	rec := a.gate.Session()
	if rec == nil {
		return ""
	}
	s := rec.Email()
	if doc, ok := a.menu.Selected(); ok {
		s += " [" + doc.Title + "]"
	}
	return "(" + s + ") "
}

func (a *App) onSignedOut() {
	a.menu.Close()
	a.access.Close()
	fmt.Fprintln(a.out, "You are signed out. Use 'login' or 'register'.")
}

// welcome greets the user and loads the document list.
func (a *App) welcome(ctx context.Context) {
	rec := a.gate.Session()
	name := rec.Name()
	if name == "" {
		name = rec.Email()
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", name)
	if err := a.docs.Refresh(ctx); err != nil {
		a.alert("Could not load documents", err)
	}
}

// alert prints a user-facing message for err and hands err back.
func (a *App) alert(title string, err error) error {
	fmt.Fprintf(a.out, "%s: %s\n", title, alertMessage(err))
	return err
}

func (a *App) say(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// alertMessage prefers the server's own message, then a connectivity hint,
// then the error text.
func alertMessage(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, client.ErrUnavailable):
		return "Unable to connect to the server."
	}
	return capitalize(err.Error())
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// lineSource hands the scanner one line per Read, so prompts issued by a
// command read from the same buffered reader without losing input.
type lineSource struct {
	r       *bufio.Reader
	pending []byte
}

func (l *lineSource) Read(p []byte) (int, error) {
	if len(l.pending) == 0 {
		line, err := l.r.ReadBytes('\n')
		if len(line) == 0 {
			return 0, err
		}
		l.pending = line
	}
	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
