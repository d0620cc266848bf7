// Package repomanager wires the storage backend selected in the config to
// the credential and record repositories.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/config"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/repositories/applications"
	"github.com/dmitrijs2005/jobkeeper/internal/repositories/users"
)

// RepositoryManager vends the repositories of one storage backend.
type RepositoryManager interface {
	Users() users.Repository
	Applications() applications.Repository
	Close() error
}

// New opens the backend named by cfg.Storage. SQL backends are migrated
// before New returns.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (RepositoryManager, error) {
	log = log.With("storage", cfg.Storage)

	switch cfg.Storage {
	case config.StorageFile:
		m, err := NewFileRepositoryManager(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		log.Info(ctx, "using file storage", "dir", cfg.DataDir)
		return m, nil

	case config.StorageS3:
		m, err := NewS3RepositoryManager(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info(ctx, "using s3 storage", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
		return m, nil

	case config.StorageSQLite, config.StoragePostgres:
		m, err := NewSQLRepositoryManager(ctx, cfg.Storage, cfg.DatabaseDSN, log)
		if err != nil {
			return nil, err
		}
		log.Info(ctx, "using sql storage")
		return m, nil
	}

	return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}
