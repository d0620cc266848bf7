// Package session holds the state of one interactive user: who is logged
// in and the in-memory snapshot of their application records.
//
// A Session is either anonymous or authenticated. Every mutation validates
// its input, persists the resulting collection and only then replaces the
// snapshot, so a failed call leaves both memory and storage untouched.
// A Session is not safe for concurrent use.
package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/models"
	"github.com/dmitrijs2005/jobkeeper/internal/query"
	"github.com/dmitrijs2005/jobkeeper/internal/repositories/applications"
	"github.com/google/uuid"
)

// Authenticator checks a username and password.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (models.Identity, error)
}

// Session is the state of one interactive user. The zero value is not
// usable; create one with New.
type Session struct {
	id      string
	auth    Authenticator
	records applications.Repository
	log     logging.Logger

	identity *models.Identity
	snapshot []models.Application

	awaitingConfirmation bool
}

// New returns an anonymous session.
func New(auth Authenticator, records applications.Repository, log logging.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:      id,
		auth:    auth,
		records: records,
		log:     log.With("session", id),
	}
}

// ID identifies the session in log lines.
func (s *Session) ID() string { return s.id }

// Identity returns the logged-in user, if any.
func (s *Session) Identity() (models.Identity, bool) {
	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool { return s.identity != nil }

// Login authenticates and loads the user's records. Called on an
// authenticated session it switches user; the snapshot is always reloaded.
// On failure the previous state is kept.
func (s *Session) Login(ctx context.Context, username, password string) (models.Identity, error) {
	id, err := s.auth.Authenticate(ctx, username, password)
	if err != nil {
		return models.Identity{}, err
	}

	apps, err := s.records.Load(ctx, id.Username)
	if err != nil {
		s.log.Error(ctx, "load records failed", "user", id.Username, "error", err)
		return models.Identity{}, fmt.Errorf("load records: %w", err)
	}

	if s.identity != nil {
		s.log.Info(ctx, "switching user", "from", s.identity.Username, "to", id.Username)
	}
	s.identity = &id
	s.snapshot = apps
	s.awaitingConfirmation = false

	s.log.Info(ctx, "logged in", "user", id.Username, "records", len(apps))
	return id, nil
}

// Logout drops identity and snapshot without saving.
func (s *Session) Logout() {
	s.identity = nil
	s.snapshot = nil
	s.awaitingConfirmation = false
}

func (s *Session) requireAuth() error {
	if s.identity == nil {
		return common.ErrNotAuthenticated
	}
	return nil
}

// Records returns a copy of the snapshot.
func (s *Session) Records() ([]models.Application, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return models.Clone(s.snapshot), nil
}

// Filter runs query.Matches over the snapshot.
func (s *Session) Filter(search string, status models.Status) ([]query.Match, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	return query.Matches(s.snapshot, search, status), nil
}

// Stats aggregates the whole snapshot.
func (s *Session) Stats() (query.Stats, error) {
	if err := s.requireAuth(); err != nil {
		return query.Stats{}, err
	}
	return query.Aggregate(s.snapshot), nil
}

// Add appends app and persists the collection.
func (s *Session) Add(ctx context.Context, app models.Application) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	if err := app.Validate(); err != nil {
		return err
	}

	next := append(models.Clone(s.snapshot), app)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.log.Info(ctx, "application added", "company", app.CompanyName, "status", app.Status)
	return nil
}

// ApplyEdits replaces the whole snapshot, typically after edits or deletes
// made on a copy obtained from Records.
func (s *Session) ApplyEdits(ctx context.Context, apps []models.Application) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	if err := models.ValidateAll(apps); err != nil {
		return err
	}

	if err := s.persist(ctx, models.Clone(apps)); err != nil {
		return err
	}
	s.log.Info(ctx, "edits applied", "records", len(apps))
	return nil
}

// RequestClear arms ConfirmClear. Nothing is deleted yet.
func (s *Session) RequestClear() error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	s.awaitingConfirmation = true
	return nil
}

// ClearPending reports whether a clear was requested and not yet resolved.
func (s *Session) ClearPending() bool { return s.awaitingConfirmation }

// ConfirmClear empties and persists the collection. It fails with
// common.ErrNoPendingConfirmation unless RequestClear came first.
func (s *Session) ConfirmClear(ctx context.Context) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	if !s.awaitingConfirmation {
		return common.ErrNoPendingConfirmation
	}

	if err := s.persist(ctx, []models.Application{}); err != nil {
		return err
	}
	s.awaitingConfirmation = false
	s.log.Warn(ctx, "all applications cleared", "user", s.identity.Username)
	return nil
}

// CancelClear disarms a pending clear. It is a no-op when none is pending.
func (s *Session) CancelClear() error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	s.awaitingConfirmation = false
	return nil
}

// Refresh reloads the snapshot from storage, discarding the current one and
// any pending clear.
func (s *Session) Refresh(ctx context.Context) error {
	if err := s.requireAuth(); err != nil {
		return err
	}

	apps, err := s.records.Load(ctx, s.identity.Username)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	s.snapshot = apps
	s.awaitingConfirmation = false
	s.log.Debug(ctx, "snapshot refreshed", "records", len(apps))
	return nil
}

func (s *Session) persist(ctx context.Context, next []models.Application) error {
	if err := s.records.Save(ctx, s.identity.Username, next); err != nil {
		s.log.Error(ctx, "save records failed", "user", s.identity.Username, "error", err)
		return fmt.Errorf("save records: %w", err)
	}
	s.snapshot = next
	return nil
}
