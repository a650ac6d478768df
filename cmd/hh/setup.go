package main

import (
	"github.com/rs/zerolog"

	"hepharvest/internal/config"
	"hepharvest/internal/harvest"
	"hepharvest/internal/inspire"
	"hepharvest/internal/store"
)

// newHarvester assembles the client and harvester from configuration.
func newHarvester(log zerolog.Logger) (*harvest.Harvester, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	opts := []inspire.ClientOption{inspire.WithLogger(log)}
	if cfg.APIBaseURL != "" {
		opts = append(opts, inspire.WithBaseURL(cfg.APIBaseURL))
	}
	if cfg.Timeout() > 0 {
		opts = append(opts, inspire.WithTimeout(cfg.Timeout()))
	}
	if cfg.MaxAuthors > 0 {
		opts = append(opts, inspire.WithMaxAuthors(cfg.MaxAuthors))
	}

	h := harvest.New(inspire.NewClient(opts...), log)
	h.MaxIterations = cfg.MaxIterations
	return h, cfg
}

// mustOpenStore opens the entry store, creating it on first use.
func mustOpenStore(cfg *config.Config) *store.Store {
	s, err := store.Open(cfg.StorePath)
	if err != nil {
		exitWithError(ExitStoreError, "opening store %s: %v", cfg.StorePath, err)
	}
	return s
}
