package repomanager

import (
	"context"

	"github.com/dmitrijs2005/jobkeeper/internal/config"
	"github.com/dmitrijs2005/jobkeeper/internal/objects"
	"github.com/dmitrijs2005/jobkeeper/internal/repositories/applications"
	"github.com/dmitrijs2005/jobkeeper/internal/repositories/users"
)

// ObjectRepositoryManager serves both repositories from JSON documents on
// one objects.Store.
type ObjectRepositoryManager struct {
	users        *users.DocumentRepository
	applications *applications.DocumentRepository
}

func NewObjectRepositoryManager(store objects.Store) *ObjectRepositoryManager {
	return &ObjectRepositoryManager{
		users:        users.NewDocumentRepository(store),
		applications: applications.NewDocumentRepository(store),
	}
}

// NewFileRepositoryManager keeps the documents in dir.
func NewFileRepositoryManager(dir string) (*ObjectRepositoryManager, error) {
	store, err := objects.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return NewObjectRepositoryManager(store), nil
}

// newS3Client is a seam for tests.
var newS3Client = objects.NewS3Client

// NewS3RepositoryManager keeps the documents in cfg.S3Bucket.
func NewS3RepositoryManager(ctx context.Context, cfg *config.Config) (*ObjectRepositoryManager, error) {
	client, err := newS3Client(ctx, objects.S3Options{
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		return nil, err
	}
	return NewObjectRepositoryManager(objects.NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix)), nil
}

func (m *ObjectRepositoryManager) Users() users.Repository { return m.users }

func (m *ObjectRepositoryManager) Applications() applications.Repository { return m.applications }

func (m *ObjectRepositoryManager) Close() error { return nil }
