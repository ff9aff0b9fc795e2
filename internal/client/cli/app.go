package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/stockbook-app/stockbook/internal/client/api"
	"github.com/stockbook-app/stockbook/internal/client/config"
	"github.com/stockbook-app/stockbook/internal/client/models"
	"github.com/stockbook-app/stockbook/internal/client/services"
	"github.com/stockbook-app/stockbook/internal/client/store"
	"github.com/stockbook-app/stockbook/internal/logging"
)

// App wires the local store, the API client, and the client services behind
// the interactive REPL. The catalog and record commands work entirely
// against the local mirror; only sync and auth commands touch the backend.
type App struct {
	config  *config.Config
	store   *store.Store
	client  *api.Client
	auth    services.AuthService
	catalog services.CatalogService
	records services.RecordService
	sync    *services.SyncService
	logger  logging.Logger

	domain   models.Domain
	userName string
	reader   *bufio.Reader
}

// NewApp opens the local database, runs migrations, and wires all services.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewConsoleZerologLogger()

	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	client := api.New(api.Config{BaseURL: cfg.ServerBaseURL, Timeout: cfg.RequestTimeout})

	return &App{
		config:  cfg,
		store:   st,
		client:  client,
		auth:    services.NewAuthService(client),
		catalog: services.NewCatalogService(st),
		records: services.NewRecordService(st),
		sync:    services.NewSyncService(st, client, logger, cfg.SyncInterval),
		logger:  logger,
		domain:  models.DomainShoes,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the background reconciliation worker and blocks in the REPL
// until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.store.Close()

	go a.sync.Run(ctx)

	fmt.Printf("Stockbook CLI (type 'help' for commands)\n")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	s := string(a.domain)
	if a.userName != "" {
		s = a.userName + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}
