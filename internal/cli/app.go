package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/config"
	"github.com/dmitrijs2005/jobkeeper/internal/cryptox"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
	"github.com/dmitrijs2005/jobkeeper/internal/models"
	"github.com/dmitrijs2005/jobkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/jobkeeper/internal/services"
	"github.com/dmitrijs2005/jobkeeper/internal/session"
)

// authService is the account surface the CLI needs.
type authService interface {
	Register(ctx context.Context, username, displayName, password string) error
	Authenticate(ctx context.Context, username, password string) (models.Identity, error)
}

type App struct {
	config  *config.Config
	log     logging.Logger
	repos   repomanager.RepositoryManager
	auth    authService
	session *session.Session
	reader  *bufio.Reader
	out     io.Writer
	now     func() time.Time
}

// NewApp opens the configured storage and builds the services on top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	scheme, err := cryptox.ParseScheme(c.PasswordScheme)
	if err != nil {
		return nil, err
	}

	repos, err := repomanager.New(ctx, c, log)
	if err != nil {
		log.Error(ctx, "error initializing storage", "error", err)
		return nil, err
	}

	auth := services.NewAuthService(repos.Users(), scheme, log)
	return newApp(c, log, repos, auth, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, log logging.Logger, repos repomanager.RepositoryManager, auth authService, in io.Reader, out io.Writer) *App {
	return &App{
		config:  c,
		log:     log,
		repos:   repos,
		auth:    auth,
		session: session.New(auth, repos.Applications(), log),
		reader:  bufio.NewReader(in),
		out:     out,
		now:     time.Now,
	}
}

// Run greets the user and blocks in the REPL until exit.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.repos.Close(); err != nil {
			a.log.Warn(ctx, "closing storage", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to jobkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) getStatus() string {
	if id, ok := a.session.Identity(); ok {
		return fmt.Sprintf(" (%s)", id.Username)
	}
	return ""
}

// storageCtx bounds one round of storage calls.
func (a *App) storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.StorageTimeout)
}
