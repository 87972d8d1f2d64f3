package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/filmshelf/filmshelf/internal/config"
	"github.com/filmshelf/filmshelf/internal/logger"
	"github.com/filmshelf/filmshelf/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// healthCheckTimeout bounds the database ping made at startup.
const healthCheckTimeout = 5 * time.Second

// HealthCheck implements do.Healthchecker.
func (h *StoreHandle) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	return h.Ping(ctx)
}

// ProvideStore opens the SQLite database.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := sqlite.Open(cfg.Database.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Debug("Database initialized", "path", cfg.Database.Path)

	return &StoreHandle{Store: db}, nil
}
