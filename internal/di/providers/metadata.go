package providers

import (
	"github.com/samber/do/v2"

	"github.com/filmshelf/filmshelf/internal/config"
	"github.com/filmshelf/filmshelf/internal/logger"
	"github.com/filmshelf/filmshelf/internal/metadata/omdb"
)

// OMDbClientHandle wraps the OMDb client with shutdown capability.
type OMDbClientHandle struct {
	*omdb.Client
}

// Shutdown implements do.Shutdownable.
func (h *OMDbClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideOMDbClient provides the OMDb API client. Without an API key the
// client still exists but every lookup fails, so adds fall back to manual
// entry.
func ProvideOMDbClient(i do.Injector) (*OMDbClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client, err := omdb.New(omdb.Config{
		APIKey:  cfg.OMDb.APIKey,
		BaseURL: cfg.OMDb.BaseURL,
		Timeout: cfg.OMDb.Timeout,
	}, log.Logger)
	if err != nil {
		return nil, err
	}

	if cfg.OMDb.APIKey == "" {
		log.Warn("OMDB_API_KEY is not set, movie lookups are disabled")
	}
	log.Debug("OMDb client initialized", "base_url", cfg.OMDb.BaseURL, "timeout", cfg.OMDb.Timeout)

	return &OMDbClientHandle{Client: client}, nil
}
