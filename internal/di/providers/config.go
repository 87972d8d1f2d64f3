package providers

import (
	"github.com/samber/do/v2"

	"github.com/filmshelf/filmshelf/internal/config"
	"github.com/filmshelf/filmshelf/internal/logger"
	"github.com/filmshelf/filmshelf/internal/validation"
)

// ProvideConfig loads configuration using the command-line overrides.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	o := do.MustInvoke[config.Overrides](i)
	return config.LoadConfig(o)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
		NoColor:     cfg.Console.NoColor,
	})

	log.Debug("Starting filmshelf",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"db_path", cfg.Database.Path,
	)

	return log, nil
}

// ProvideValidator provides the shared input validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
