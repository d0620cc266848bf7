package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/config"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/models"
	"github.com/dmitrijs2005/jobkeeper/internal/objects"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewDiscard()
}

func testConfig(storage string) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.Storage = storage
	return c
}

// exercise runs one credential and one record round trip through m.
func exercise(t *testing.T, m RepositoryManager) {
	t.Helper()
	ctx := context.Background()

	cred := models.Credential{Username: "alice", PasswordHash: "h", DisplayName: "Alice",
		CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, m.Users().Create(ctx, cred))
	require.ErrorIs(t, m.Users().Create(ctx, cred), common.ErrDuplicateUsername)

	got, err := m.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.DisplayName)

	apps := []models.Application{{CompanyName: "Acme", JobTitle: "Engineer",
		Status: models.StatusApplied, AppliedDate: civil.Date{Year: 2024, Month: 1, Day: 10}}}
	require.NoError(t, m.Applications().Save(ctx, "alice", apps))

	loaded, err := m.Applications().Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, apps, loaded)
}

func TestNew_File(t *testing.T) {
	cfg := testConfig(config.StorageFile)
	cfg.DataDir = filepath.Join(t.TempDir(), "data")

	m, err := New(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	exercise(t, m)
}

func TestNew_SQLite(t *testing.T) {
	cfg := testConfig(config.StorageSQLite)
	cfg.DatabaseDSN = filepath.Join(t.TempDir(), "jobs.db")

	m, err := New(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	exercise(t, m)

	// migrations are idempotent
	sm := m.(*SQLRepositoryManager)
	require.NoError(t, sm.RunMigrations(context.Background(), testLogger()))
}

type memStore struct{ objects map[string][]byte }

func (s *memStore) Read(_ context.Context, name string) ([]byte, error) {
	b, ok := s.objects[name]
	if !ok {
		return nil, objects.ErrNotExist
	}
	return b, nil
}

func (s *memStore) Write(_ context.Context, name string, data []byte) error {
	s.objects[name] = append([]byte(nil), data...)
	return nil
}

func TestNewObjectRepositoryManager(t *testing.T) {
	store := &memStore{objects: map[string][]byte{}}
	m := NewObjectRepositoryManager(store)

	exercise(t, m)
	assert.Contains(t, store.objects, "users.json")
	assert.Contains(t, store.objects, "jobs_alice.json")
	require.NoError(t, m.Close())
}

func TestNew_S3(t *testing.T) {
	orig := newS3Client
	t.Cleanup(func() { newS3Client = orig })

	var gotOpts objects.S3Options
	newS3Client = func(ctx context.Context, o objects.S3Options) (objects.S3API, error) {
		gotOpts = o
		return nil, nil
	}

	cfg := testConfig(config.StorageS3)
	cfg.S3Bucket = "jobs"
	cfg.S3Endpoint = "http://127.0.0.1:9000"

	m, err := New(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	require.NotNil(t, m.Users())
	assert.Equal(t, "http://127.0.0.1:9000", gotOpts.Endpoint)
	assert.Equal(t, "us-east-1", gotOpts.Region)

	newS3Client = func(ctx context.Context, o objects.S3Options) (objects.S3API, error) {
		return nil, errors.New("no credentials")
	}
	_, err = New(context.Background(), cfg, testLogger())
	require.Error(t, err)
}

func TestNew_Postgres(t *testing.T) {
	origOpen, origUp := openDB, gooseUpContext
	t.Cleanup(func() { openDB, gooseUpContext = origOpen, origUp })

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	var driver, dsn, dir string
	openDB = func(d, s string) (*sql.DB, error) {
		driver, dsn = d, s
		return db, nil
	}
	gooseUpContext = func(ctx context.Context, db *sql.DB, d string, opts ...goose.OptionsFunc) error {
		dir = d
		return nil
	}

	cfg := testConfig(config.StoragePostgres)
	cfg.DatabaseDSN = "postgres://jobs@localhost/jobs"

	m, err := New(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "pgx", driver)
	assert.Equal(t, "postgres://jobs@localhost/jobs", dsn)
	assert.Equal(t, "postgres", dir)

	require.NoError(t, m.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_MigrationFailureClosesDB(t *testing.T) {
	origOpen, origUp := openDB, gooseUpContext
	t.Cleanup(func() { openDB, gooseUpContext = origOpen, origUp })

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	openDB = func(string, string) (*sql.DB, error) { return db, nil }
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("migration 2 failed")
	}

	cfg := testConfig(config.StoragePostgres)
	cfg.DatabaseDSN = "postgres://x"

	_, err = New(context.Background(), cfg, testLogger())
	require.ErrorContains(t, err, "migration 2 failed")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_UnknownStorage(t *testing.T) {
	_, err := New(context.Background(), testConfig("floppy"), testLogger())
	require.Error(t, err)
}
