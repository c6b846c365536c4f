// Package cli implements the interactive Evently shell on top of the
// client core.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/evently/evently/internal/client/api"
	"github.com/evently/evently/internal/client/comments"
	"github.com/evently/evently/internal/client/config"
	"github.com/evently/evently/internal/client/credstore"
	"github.com/evently/evently/internal/client/events"
	"github.com/evently/evently/internal/client/favorites"
	"github.com/evently/evently/internal/client/models"
	"github.com/evently/evently/internal/client/session"
	"github.com/evently/evently/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	api       api.Client
	session   *session.Controller
	events    *events.Service
	favorites *favorites.Cache
	reader    *bufio.Reader
	out       io.Writer

	// current is the event opened with `open`; thread is its comment list.
	current *models.Event
	thread  *comments.Thread
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewDefault(cfg.LogLevel)

	db, err := credstore.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing local database: %w", err)
	}

	creds := credstore.NewSQLiteStore(db)
	apiClient := api.NewHTTPClient(cfg.APIBaseURL, creds, cfg.RequestTimeout)
	sess := session.NewController(creds, apiClient, logger)

	return &App{
		config:    cfg,
		logger:    logger,
		api:       apiClient,
		session:   sess,
		events:    events.NewService(apiClient, sess, logger),
		favorites: favorites.NewCache(apiClient, sess, logger),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

// Run resolves the session from the stored credential and enters the REPL.
func (a *App) Run(ctx context.Context) {
	if err := a.session.Authenticate(ctx); err != nil {
		a.logger.Warn(ctx, "session resolution failed", "error", err)
	}
	if a.session.IsAuthenticated() {
		if err := a.favorites.Load(ctx); err != nil {
			a.logger.Warn(ctx, "loading favorites failed", "error", err)
		}
	}
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}
