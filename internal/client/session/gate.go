package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/dmitrijs2005/elegacy/internal/logging"
)

type State int

const (
	Loading State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "loading"
	}
}

// RecordStore is the persistence the gate needs. *Store implements it.
type RecordStore interface {
	Load(ctx context.Context) (*models.SessionRecord, error)
	Save(ctx context.Context, rec *models.SessionRecord) error
	Clear(ctx context.Context) error
}

// Gate owns the session state. It is the only writer of sign-in and
// sign-out transitions.
type Gate struct {
	store RecordStore
	delay time.Duration
	after func(time.Duration) <-chan time.Time
	log   logging.Logger

	mu          sync.Mutex
	state       State
	loading     bool
	record      *models.SessionRecord
	onRedirect  func()
	redirecting bool
}

type GateOption func(*Gate)

// WithTimer replaces time.After, letting tests control the splash delay.
func WithTimer(after func(time.Duration) <-chan time.Time) GateOption {
	return func(g *Gate) { g.after = after }
}

func WithLogger(l logging.Logger) GateOption {
	return func(g *Gate) { g.log = l }
}

func NewGate(store RecordStore, delay time.Duration, opts ...GateOption) *Gate {
	g := &Gate{
		store:   store,
		delay:   delay,
		after:   time.After,
		log:     logging.Nop(),
		state:   Loading,
		loading: true,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// OnUnauthenticated registers the redirect to the login screen.
func (g *Gate) OnUnauthenticated(fn func()) {
	g.mu.Lock()
	g.onRedirect = fn
	g.mu.Unlock()
}

// Start waits out the splash delay, then reads the stored record. A failed
// read counts as signed out. If ctx ends during the delay the gate stays
// Loading and ctx.Err() is returned.
func (g *Gate) Start(ctx context.Context) error {
	if g.delay > 0 {
		select {
		case <-g.after(g.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	rec, err := g.store.Load(ctx)
	if err != nil {
		g.log.Warn(ctx, "session read failed, treating as signed out", "error", err)
		rec = nil
	}

	g.mu.Lock()
	g.loading = false
	g.record = rec
	if rec != nil {
		g.state = Authenticated
	}
	g.mu.Unlock()

	g.Evaluate()
	return nil
}

// Evaluate applies the redirect rule: once loading has finished without a
// session the state is Unauthenticated and the redirect fires. Calls made
// from inside the redirect do not fire it again.
func (g *Gate) Evaluate() State {
	g.mu.Lock()
	if g.loading || g.record != nil {
		st := g.state
		g.mu.Unlock()
		return st
	}
	g.state = Unauthenticated
	var fn func()
	if !g.redirecting && g.onRedirect != nil {
		fn = g.onRedirect
		g.redirecting = true
	}
	g.mu.Unlock()

	if fn != nil {
		defer func() {
			g.mu.Lock()
			g.redirecting = false
			g.mu.Unlock()
		}()
		fn()
	}
	return Unauthenticated
}

// SignIn persists rec and moves to Authenticated. On a storage error the
// state is unchanged.
func (g *Gate) SignIn(ctx context.Context, rec *models.SessionRecord) error {
	if err := g.store.Save(ctx, rec); err != nil {
		return err
	}

	g.mu.Lock()
	g.loading = false
	g.record = rec
	g.state = Authenticated
	g.mu.Unlock()
	return nil
}

// SignOut forgets the session in memory even if clearing storage fails; the
// storage error is still returned.
func (g *Gate) SignOut(ctx context.Context) error {
	err := g.store.Clear(ctx)
	if err != nil {
		g.log.Error(ctx, "clear session failed", "error", err)
	}

	g.mu.Lock()
	g.loading = false
	g.record = nil
	g.mu.Unlock()

	g.Evaluate()
	return err
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Session returns the current record, nil when signed out or still loading.
func (g *Gate) Session() *models.SessionRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.record
}

// Token is the bearer token of the current session, or "".
func (g *Gate) Token() string {
	if rec := g.Session(); rec != nil {
		return rec.Token()
	}
	return ""
}
