package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/resilia/internal/common"
	"github.com/dmitrijs2005/resilia/internal/config"
	"github.com/dmitrijs2005/resilia/internal/filex"
	"github.com/dmitrijs2005/resilia/internal/logging"
	"github.com/dmitrijs2005/resilia/internal/repositories/kv"
	"github.com/dmitrijs2005/resilia/internal/services"
	"github.com/dmitrijs2005/resilia/internal/storage"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	accounts *services.AccountDirectory
	sessions *services.SessionManager
	activity *services.ActivityLog
	device   *services.Device
	deviceID string
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	now      func() time.Time
}

// NewApp opens the device store at c.DBPath, applies migrations and builds
// the services on top of it. Log output goes to logOut.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	log, err := logging.New(c.LogFormat, c.LogLevel, logOut)
	if err != nil {
		return nil, err
	}

	if err := filex.EnsureParentDir(c.DBPath); err != nil {
		return nil, err
	}

	db, err := storage.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	a, err := newApp(ctx, c, kv.NewSQLiteRepository(db), log, in, out)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a.db = db
	return a, nil
}

func newApp(ctx context.Context, c *config.Config, repo kv.Repository, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	device := services.NewDevice(repo, log)
	id, err := device.ID(ctx)
	if err != nil {
		return nil, fmt.Errorf("device id: %w", err)
	}
	log = log.With("device", id)

	accounts := services.NewAccountDirectory(repo, log)

	return &App{
		config:   c,
		accounts: accounts,
		sessions: services.NewSessionManager(repo, accounts, log),
		activity: services.NewActivityLog(repo, log, c.DateLayout),
		device:   device,
		deviceID: id,
		log:      log,
		reader:   bufio.NewReader(in),
		out:      out,
		now:      time.Now,
	}, nil
}

// Close releases the device store.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.sessions.Current(ctx) != nil
}

// getStatus renders the REPL prompt suffix.
func (a *App) getStatus(ctx context.Context) string {
	if u := a.sessions.Current(ctx); u != nil {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return ""
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}

// IsReported tells whether a command already explained err to the user.
func IsReported(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, common.ErrInvalidCredentials) ||
		errors.Is(err, common.ErrDuplicateEmail) ||
		errors.Is(err, common.ErrNoActiveSession)
}
