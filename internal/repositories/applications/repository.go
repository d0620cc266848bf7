// Package applications persists each user's ordered collection of job
// applications. A collection is always read and written whole.
package applications

import (
	"context"

	"github.com/dmitrijs2005/jobkeeper/internal/models"
)

// Repository is the record store. Load returns an empty, non-nil slice for
// users with nothing stored and common.ErrCorruptStore for malformed data.
// Save replaces the stored collection; failures wrap common.ErrIO.
type Repository interface {
	Load(ctx context.Context, username string) ([]models.Application, error)
	Save(ctx context.Context, username string, apps []models.Application) error
}
