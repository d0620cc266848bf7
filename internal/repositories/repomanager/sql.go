package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/jobkeeper/internal/dbx"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/migrations"
	"github.com/dmitrijs2005/jobkeeper/internal/repositories/applications"
	"github.com/dmitrijs2005/jobkeeper/internal/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager serves both repositories from one database.
type SQLRepositoryManager struct {
	db           *sql.DB
	dialect      dbx.Dialect
	users        *users.SQLRepository
	applications *applications.SQLRepository
}

var openDB = sql.Open

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewSQLRepositoryManager opens dsn with the driver of dialect and applies
// the embedded migrations.
func NewSQLRepositoryManager(ctx context.Context, dialect string, dsn string, log logging.Logger) (*SQLRepositoryManager, error) {
	d, err := dbx.ParseDialect(dialect)
	if err != nil {
		return nil, err
	}

	db, err := openDB(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", d, err)
	}
	if d == dbx.DialectSQLite {
		// one writer; keeps :memory: databases on a single connection too
		db.SetMaxOpenConns(1)
	}

	m := &SQLRepositoryManager{
		db:           db,
		dialect:      d,
		users:        users.NewSQLRepository(db, d),
		applications: applications.NewSQLRepository(db, d),
	}
	if err := m.RunMigrations(ctx, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

// RunMigrations sets up goose with the embedded migrations for the dialect
// and runs them.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, log logging.Logger) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(&gooseLogger{ctx: ctx, log: log})

	gooseDialect := "sqlite3"
	if m.dialect == dbx.DialectPostgres {
		gooseDialect = "pgx"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, m.db, string(m.dialect)); err != nil {
		return fmt.Errorf("migrate %s: %w", m.dialect, err)
	}
	return nil
}

func (m *SQLRepositoryManager) Users() users.Repository { return m.users }

func (m *SQLRepositoryManager) Applications() applications.Repository { return m.applications }

func (m *SQLRepositoryManager) Close() error { return m.db.Close() }

// gooseLogger routes goose output to the application logger.
type gooseLogger struct {
	ctx context.Context
	log logging.Logger
}

func (g *gooseLogger) Printf(format string, v ...any) {
	g.log.Debug(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g *gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}
