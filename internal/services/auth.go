// Package services contains the account logic that sits between the front
// end and the repositories. AuthService registers users and checks their
// passwords against the credential store.
package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/cryptox"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/models"
	"github.com/dmitrijs2005/jobkeeper/internal/repositories/users"
)

// MinPasswordLength is counted in characters, not bytes.
const MinPasswordLength = 4

// AuthService provides registration and authentication.
type AuthService struct {
	users  users.Repository
	scheme cryptox.Scheme
	log    logging.Logger
	now    func() time.Time

	// verified for unknown users so they cost the same as a real account
	dummyHash string
}

// NewAuthService hashes new passwords with scheme.
func NewAuthService(repo users.Repository, scheme cryptox.Scheme, log logging.Logger) *AuthService {
	return &AuthService{
		users:     repo,
		scheme:    scheme,
		log:       log,
		now:       time.Now,
		dummyHash: newDummyHash(scheme),
	}
}

func newDummyHash(scheme cryptox.Scheme) string {
	pw := common.GenerateRandByteArray(32)
	defer common.WipeByteArray(pw)

	h, err := cryptox.HashPassword(scheme, pw)
	if err != nil {
		return hex.EncodeToString(pw)
	}
	return h
}

// Register creates an account. Checks run in order: incomplete input, weak
// password, duplicate username.
func (s *AuthService) Register(ctx context.Context, username, displayName, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(displayName) == "" || password == "" {
		return common.ErrIncompleteInput
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("%w: at least %d characters required", common.ErrWeakPassword, MinPasswordLength)
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	hash, err := cryptox.HashPassword(s.scheme, pw)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	cred := models.Credential{
		Username:     username,
		PasswordHash: hash,
		DisplayName:  displayName,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, cred); err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user", username, "scheme", s.scheme)
	return nil
}

// Authenticate returns the identity for a matching username and password.
// Unknown users, empty input and wrong passwords all yield
// common.ErrInvalidCredentials; storage failures are passed through.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (models.Identity, error) {
	if username == "" || password == "" {
		return models.Identity{}, common.ErrInvalidCredentials
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	cred, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = cryptox.VerifyPassword(pw, s.dummyHash)
			s.log.Info(ctx, "login failed", "user", username, "reason", "unknown user")
			return models.Identity{}, common.ErrInvalidCredentials
		}
		return models.Identity{}, err
	}

	ok, err := cryptox.VerifyPassword(pw, cred.PasswordHash)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: user %q: %w", common.ErrCorruptStore, username, err)
	}
	if !ok {
		s.log.Info(ctx, "login failed", "user", username, "reason", "password mismatch")
		return models.Identity{}, common.ErrInvalidCredentials
	}

	s.log.Debug(ctx, "login succeeded", "user", username)
	return cred.Identity(), nil
}
