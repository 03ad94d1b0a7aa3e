package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dkorchagin/logbook/internal/api"
	"github.com/dkorchagin/logbook/internal/logging"
	"github.com/dkorchagin/logbook/internal/models"
	"github.com/dkorchagin/logbook/internal/storage"
)

// Store owns the authentication session: the bearer token and the identity
// resolved for it. The token is the sole source of truth for "is
// authenticated"; the identity is eventually consistent with it.
//
// Login and Logout bump an epoch counter, and every identity resolution
// carries the epoch it started under. A resolution whose epoch no longer
// matches is discarded, so a slow fetch completing after a newer Login or
// Logout can never install a stale identity. The last call to initiate wins,
// regardless of completion order.
type Store struct {
	api     api.Client
	creds   storage.CredentialStore
	log     logging.Logger
	timeout time.Duration

	mu        sync.Mutex
	epoch     uint64
	token     string
	identity  *models.Identity
	resolving bool

	changed chan struct{}
}

// NewStore wires a session store. timeout bounds each identity resolution.
func NewStore(apiClient api.Client, creds storage.CredentialStore, log logging.Logger, timeout time.Duration) *Store {
	return &Store{
		api:     apiClient,
		creds:   creds,
		log:     log,
		timeout: timeout,
		changed: make(chan struct{}, 1),
	}
}

// Changed returns a coalescing signal channel: a receive means session state
// may have moved and readers should re-query. Sends never block a mutation.
func (s *Store) Changed() <-chan struct{} {
	return s.changed
}

func (s *Store) notify() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// Start restores the persisted session, if any, and kicks off the eager
// identity resolution. A token that is visibly expired (JWT with a past exp)
// is cleared without spending the doomed network call.
func (s *Store) Start(ctx context.Context) error {
	token, err := s.creds.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if token == "" {
		return nil
	}

	if tokenExpired(token) {
		s.log.Info(ctx, "persisted token expired, starting anonymous")
		if err := s.creds.Clear(ctx); err != nil {
			s.log.Warn(ctx, "failed to clear expired credential", "err", err)
		}
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.resolving = true
	epoch := s.epoch
	s.mu.Unlock()

	go s.resolve(epoch, token)
	return nil
}

// Login stores the token durably, makes it the session credential, and
// resolves the identity asynchronously. A persistence failure fails the
// login and leaves the previous session untouched.
func (s *Store) Login(ctx context.Context, token string) error {
	if err := s.creds.Save(ctx, token); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.token = token
	s.identity = nil
	s.resolving = true
	s.mu.Unlock()

	s.notify()
	go s.resolve(epoch, token)
	return nil
}

// Logout drops the session and the persisted credential. It always succeeds:
// a storage failure is logged, and the in-memory session is gone regardless.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.epoch++
	s.token = ""
	s.identity = nil
	s.resolving = false
	s.mu.Unlock()

	if err := s.creds.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear credential on logout", "err", err)
	}
	s.notify()
}

// CurrentIdentity returns the resolved identity, or nil while anonymous or
// still resolving. Never blocks.
func (s *Store) CurrentIdentity() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// Authenticated reports whether a token is held. The identity may still be
// in flight.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Resolving reports whether an identity fetch for the current session is in
// flight.
func (s *Store) Resolving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolving
}

// Token returns the current bearer token, or "" while anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// resolve fetches the identity for the given token and applies the result if
// the session has not moved on. A failed resolution degrades the session to
// anonymous and clears the persisted credential; it is never retried, the
// next explicit Login is the only recovery path.
func (s *Store) resolve(epoch uint64, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	id, err := s.api.CurrentUser(ctx, token)

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		s.log.Debug(ctx, "stale identity resolution discarded")
		return
	}
	s.resolving = false

	if err != nil {
		s.token = ""
		s.identity = nil
		s.mu.Unlock()

		s.log.Warn(ctx, "identity resolution failed, degrading to anonymous", "err", err)
		// The fetch context may already be past its deadline; the cleanup
		// must still reach the database, so it gets its own.
		cctx, ccancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer ccancel()
		if cerr := s.creds.Clear(cctx); cerr != nil {
			s.log.Warn(ctx, "failed to clear credential", "err", cerr)
		}
		s.notify()
		return
	}

	s.identity = id
	s.mu.Unlock()

	s.log.Info(ctx, "identity resolved", "username", id.Username)
	s.notify()
}

// tokenExpired reports whether token is a JWT whose exp claim is already in
// the past. Opaque (non-JWT) tokens and JWTs without exp report false; the
// server remains the authority for those.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(time.Now())
}
