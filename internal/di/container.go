// Package di provides dependency injection configuration for filmshelf.
package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/filmshelf/filmshelf/internal/config"
	"github.com/filmshelf/filmshelf/internal/di/providers"
	"github.com/filmshelf/filmshelf/internal/logger"
	"github.com/filmshelf/filmshelf/internal/service"
	"github.com/filmshelf/filmshelf/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
// o carries the command-line overrides for configuration loading.
func NewContainer(o config.Overrides) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, o)
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Metadata layer
	do.Provide(injector, providers.ProvideOMDbClient)

	// Business services
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideCatalogService)

	return injector
}

// Bootstrap initializes all services. Configuration and database failures
// are returned rather than panicking so the CLI can report them.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	storeHandle, err := do.Invoke[*providers.StoreHandle](injector)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := storeHandle.HealthCheck(); err != nil {
		return fmt.Errorf("database health check: %w", err)
	}
	if _, err := do.Invoke[*providers.OMDbClientHandle](injector); err != nil {
		return fmt.Errorf("create omdb client: %w", err)
	}

	// Business services
	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)

	return nil
}
