package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/cryptox"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/models"
	"github.com/dmitrijs2005/jobkeeper/internal/objects"
	"github.com/dmitrijs2005/jobkeeper/internal/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewDiscard()
}

func newAuth(t *testing.T, scheme cryptox.Scheme) (*AuthService, users.Repository) {
	t.Helper()
	store, err := objects.NewFileStore(t.TempDir())
	require.NoError(t, err)
	repo := users.NewDocumentRepository(store)
	s := NewAuthService(repo, scheme, testLogger())
	s.now = func() time.Time {
		return time.Date(2024, 1, 10, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	}
	return s, repo
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		displayName string
		password    string
		wantErr     error
	}{
		{"empty username", "", "Alice", "pass1234", common.ErrIncompleteInput},
		{"blank username", "   ", "Alice", "pass1234", common.ErrIncompleteInput},
		{"empty display name", "alice", "", "pass1234", common.ErrIncompleteInput},
		{"empty password", "alice", "Alice", "", common.ErrIncompleteInput},
		{"incomplete beats weak", "", "Alice", "pw", common.ErrIncompleteInput},
		{"short password", "alice", "Alice", "abc", common.ErrWeakPassword},
		{"multibyte short", "alice", "Alice", "äöü", common.ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newAuth(t, cryptox.SchemeSHA256)
			err := s.Register(context.Background(), tt.username, tt.displayName, tt.password)
			require.ErrorIs(t, err, tt.wantErr)

			_, err = repo.GetByUsername(context.Background(), tt.username)
			require.ErrorIs(t, err, common.ErrorNotFound, "nothing may be stored")
		})
	}
}

func TestRegister_StoresDigest(t *testing.T) {
	s, repo := newAuth(t, cryptox.SchemeSHA256)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "alice", "Alice", "pass1234"))

	cred, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "bd94dcda26fccb4e68d6a31f9b5aac0b571ae266d822620e901ef7ebe3a11d4f", cred.PasswordHash)
	assert.Equal(t, "Alice", cred.DisplayName)
	assert.Equal(t, time.Date(2024, 1, 10, 11, 0, 0, 0, time.UTC), cred.CreatedAt)
	assert.Equal(t, time.UTC, cred.CreatedAt.Location())
}

func TestRegister_FourCharactersIsEnough(t *testing.T) {
	s, _ := newAuth(t, cryptox.SchemeSHA256)
	require.NoError(t, s.Register(context.Background(), "bob", "Bob", "äöüß"))
}

func TestRegister_DuplicateKeepsOriginal(t *testing.T) {
	s, _ := newAuth(t, cryptox.SchemeSHA256)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "alice", "Alice", "pass1234"))
	require.ErrorIs(t, s.Register(ctx, "alice", "Other", "otherpass"), common.ErrDuplicateUsername)

	id, err := s.Authenticate(ctx, "alice", "pass1234")
	require.NoError(t, err)
	assert.Equal(t, models.Identity{Username: "alice", DisplayName: "Alice"}, id)

	_, err = s.Authenticate(ctx, "alice", "otherpass")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	for _, scheme := range []cryptox.Scheme{cryptox.SchemeSHA256, cryptox.SchemeArgon2ID} {
		t.Run(string(scheme), func(t *testing.T) {
			s, _ := newAuth(t, scheme)
			ctx := context.Background()
			require.NoError(t, s.Register(ctx, "alice", "Alice", "pass1234"))

			id, err := s.Authenticate(ctx, "alice", "pass1234")
			require.NoError(t, err)
			assert.Equal(t, "Alice", id.DisplayName)

			for _, c := range []struct{ user, pass string }{
				{"alice", "wrong"},
				{"alice", "PASS1234"},
				{"Alice", "pass1234"},
				{"bob", "pass1234"},
				{"", "pass1234"},
				{"alice", ""},
			} {
				_, err := s.Authenticate(ctx, c.user, c.pass)
				require.ErrorIs(t, err, common.ErrInvalidCredentials, "%q/%q", c.user, c.pass)
			}
		})
	}
}

func TestAuthenticate_MixedSchemesInOneStore(t *testing.T) {
	s, repo := newAuth(t, cryptox.SchemeSHA256)
	ctx := context.Background()
	require.NoError(t, s.Register(ctx, "alice", "Alice", "pass1234"))

	s2 := NewAuthService(repo, cryptox.SchemeArgon2ID, testLogger())
	require.NoError(t, s2.Register(ctx, "bob", "Bob", "hunter22"))

	_, err := s2.Authenticate(ctx, "alice", "pass1234")
	require.NoError(t, err)
	_, err = s.Authenticate(ctx, "bob", "hunter22")
	require.NoError(t, err)

	cred, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cred.PasswordHash, "$argon2id$"))
}

type brokenUsers struct{ err error }

func (b brokenUsers) Create(context.Context, models.Credential) error { return b.err }
func (b brokenUsers) GetByUsername(context.Context, string) (models.Credential, error) {
	return models.Credential{}, b.err
}

func TestAuthenticate_StorageErrorsPassThrough(t *testing.T) {
	s := NewAuthService(brokenUsers{err: common.ErrCorruptStore}, cryptox.SchemeSHA256, testLogger())

	_, err := s.Authenticate(context.Background(), "alice", "pass1234")
	require.ErrorIs(t, err, common.ErrCorruptStore)
	require.NotErrorIs(t, err, common.ErrInvalidCredentials)

	err = s.Register(context.Background(), "alice", "Alice", "pass1234")
	require.ErrorIs(t, err, common.ErrCorruptStore)
}

type staticUsers struct{ cred models.Credential }

func (s staticUsers) Create(context.Context, models.Credential) error { return errors.New("read only") }
func (s staticUsers) GetByUsername(context.Context, string) (models.Credential, error) {
	return s.cred, nil
}

func TestAuthenticate_GarbageHashIsCorrupt(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "not hex", hash: "zz"},
		{name: "argon2 zero time", hash: "$argon2id$v=19$m=65536,t=0,p=4$c2FsdHNhbHRzYWx0$aGFzaGhhc2hoYXNo"},
		{name: "argon2 zero threads", hash: "$argon2id$v=19$m=65536,t=1,p=0$c2FsdHNhbHRzYWx0$aGFzaGhhc2hoYXNo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewAuthService(staticUsers{cred: models.Credential{Username: "bob", PasswordHash: tt.hash}},
				cryptox.SchemeSHA256, testLogger())

			require.NotPanics(t, func() {
				_, err := s.Authenticate(context.Background(), "bob", "pass1234")
				require.ErrorIs(t, err, common.ErrCorruptStore)
			})
		})
	}
}

func TestNewAuthService_DummyHashFollowsScheme(t *testing.T) {
	s := NewAuthService(staticUsers{}, cryptox.SchemeArgon2ID, testLogger())
	assert.True(t, strings.HasPrefix(s.dummyHash, "$argon2id$"), s.dummyHash)

	s = NewAuthService(staticUsers{}, cryptox.SchemeSHA256, testLogger())
	assert.Len(t, s.dummyHash, 64)

	ok, err := cryptox.VerifyPassword([]byte("pass1234"), s.dummyHash)
	require.NoError(t, err)
	assert.False(t, ok)
}
