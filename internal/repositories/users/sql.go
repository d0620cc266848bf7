package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/dbx"
	"github.com/dmitrijs2005/jobkeeper/internal/models"
)

// SQLRepository stores credentials in the users table.
type SQLRepository struct {
	db      *sql.DB
	dialect dbx.Dialect
}

func NewSQLRepository(db *sql.DB, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, cred models.Credential) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var n int
		err := tx.QueryRowContext(ctx,
			r.dialect.Rebind(`SELECT COUNT(*) FROM users WHERE username = ?`),
			cred.Username).Scan(&n)
		if err != nil {
			return fmt.Errorf("%w: db error: %w", common.ErrIO, err)
		}
		if n > 0 {
			return fmt.Errorf("%w: %q", common.ErrDuplicateUsername, cred.Username)
		}

		_, err = tx.ExecContext(ctx,
			r.dialect.Rebind(`INSERT INTO users (username, password_hash, display_name, created_at) VALUES (?, ?, ?, ?)`),
			cred.Username, cred.PasswordHash, cred.DisplayName, cred.CreatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("%w: db error: %w", common.ErrIO, err)
		}
		return nil
	})
}

func (r *SQLRepository) GetByUsername(ctx context.Context, username string) (models.Credential, error) {
	var (
		c         models.Credential
		createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		r.dialect.Rebind(`SELECT username, password_hash, display_name, created_at FROM users WHERE username = ?`),
		username).Scan(&c.Username, &c.PasswordHash, &c.DisplayName, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Credential{}, common.ErrorNotFound
		}
		return models.Credential{}, fmt.Errorf("%w: db error: %w", common.ErrIO, err)
	}

	c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.Credential{}, fmt.Errorf("%w: user %q created_at: %w", common.ErrCorruptStore, username, err)
	}
	return c, nil
}
