package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/kv"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	auth    services.AuthService
	catalog services.CatalogService
	shop    services.ShopService
	admin   services.AdminService
	cart    *cart.Store
	db      *sql.DB

	reader *bufio.Reader
	out    io.Writer

	modeMu sync.RWMutex
	mode   Mode

	cmdOnce sync.Once
	cmds    map[string]command
}

// NewApp opens the local database, connects the backend client and builds
// the services. The caller must Close the App.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	repo := kv.NewSQLiteRepository(db)
	a := newApp(c, logger, api, repo)
	a.db = db
	return a, nil
}

// newApp assembles an App over an arbitrary backend client and store.
func newApp(c *config.Config, logger logging.Logger, api client.Client, repo kv.Repository) *App {
	sessions := session.NewStore(repo, logger)
	carts := cart.NewStore(repo, logger)
	catalog := services.NewCatalogService(api)

	return &App{
		config:  c,
		logger:  logger,
		auth:    services.NewAuthService(api, sessions),
		catalog: catalog,
		shop:    services.NewShopService(catalog, carts, sessions),
		admin:   services.NewAdminService(api, sessions),
		cart:    carts,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

func (a *App) Close(ctx context.Context) error {
	err := a.auth.Close(ctx)
	if a.db != nil {
		err = errors.Join(err, a.db.Close())
	}
	return err
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// StartOnlineStatusWatcher pings the backend right away and then every
// interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx, interval)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context, timeout time.Duration) {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	err := a.auth.Ping(pingCtx)
	cancel()

	if ctx.Err() != nil {
		return
	}
	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
