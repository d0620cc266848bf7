// Package users persists credential records. Two implementations exist: a
// JSON document (users.json) on an objects.Store and a SQL table.
package users

import (
	"context"

	"github.com/dmitrijs2005/jobkeeper/internal/models"
)

// Repository is the credential store. Create fails with
// common.ErrDuplicateUsername when the username is taken and leaves the
// stored record untouched. GetByUsername returns common.ErrorNotFound for
// unknown users.
type Repository interface {
	Create(ctx context.Context, cred models.Credential) error
	GetByUsername(ctx context.Context, username string) (models.Credential, error)
}
