package applications

import (
	"context"
	"database/sql"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/dbx"
	"github.com/dmitrijs2005/jobkeeper/internal/models"
)

// SQLRepository stores records as rows of the applications table, ordered
// by position.
type SQLRepository struct {
	db      *sql.DB
	dialect dbx.Dialect
}

func NewSQLRepository(db *sql.DB, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Load(ctx context.Context, username string) ([]models.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		r.dialect.Rebind(`SELECT company_name, job_title, status, applied_date, package FROM applications WHERE username = ? ORDER BY position`),
		username)
	if err != nil {
		return nil, fmt.Errorf("%w: db error: %w", common.ErrIO, err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		var (
			a       models.Application
			status  string
			applied string
		)
		if err := rows.Scan(&a.CompanyName, &a.JobTitle, &status, &applied, &a.Package); err != nil {
			return nil, fmt.Errorf("%w: scan row %d: %w", common.ErrCorruptStore, len(apps)+1, err)
		}
		a.Status = models.Status(status)
		a.AppliedDate, err = civil.ParseDate(applied)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", common.ErrCorruptStore, len(apps)+1, err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: db error: %w", common.ErrIO, err)
	}

	if err := models.ValidateAll(apps); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrCorruptStore, err)
	}
	return apps, nil
}

func (r *SQLRepository) Save(ctx context.Context, username string, apps []models.Application) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			r.dialect.Rebind(`DELETE FROM applications WHERE username = ?`), username); err != nil {
			return err
		}

		insert := r.dialect.Rebind(`INSERT INTO applications (username, position, company_name, job_title, status, applied_date, package) VALUES (?, ?, ?, ?, ?, ?, ?)`)
		for i, a := range apps {
			if _, err := tx.ExecContext(ctx, insert,
				username, i, a.CompanyName, a.JobTitle, string(a.Status), a.AppliedDate.String(), a.Package); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: db error: %w", common.ErrIO, err)
	}
	return nil
}
