// Package container provides dependency injection for the pdn-calc application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"

	"fjacquet/pdn-calc/internal/config"
	"fjacquet/pdn-calc/internal/htmltable"
	"fjacquet/pdn-calc/internal/loader"
	"fjacquet/pdn-calc/internal/logging"
	"fjacquet/pdn-calc/internal/pdn"
	"fjacquet/pdn-calc/internal/snapshot"
	"fjacquet/pdn-calc/internal/spreadsheet"
	"fjacquet/pdn-calc/internal/wagetable"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods. The wage table is resolved once, inside
// NewContainer, before anything can serve requests.
type Container struct {
	logger  logging.Logger
	config  *config.Config
	store   snapshot.Store
	fetcher *htmltable.Fetcher
	loader  *loader.Loader
	report  loader.Report
	service *pdn.Service
}

// NewContainer creates and wires all application dependencies and loads the
// regional wage table. Data acquisition problems never fail construction; the
// loader always falls back to the built-in defaults.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(ctx, cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with a caller-supplied logger.
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	store, err := newStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	reader := spreadsheet.NewReader(cfg.Source.HeaderRow, logger)

	// The remote tier is only wired when a URL is configured
	var fetcher *htmltable.Fetcher
	var remote loader.RemoteSource
	if cfg.Source.RemoteURL != "" {
		parser := wagetable.NewParser(wagetable.Options{
			RegionTokens:     cfg.Source.RegionTokens,
			WageTokens:       append([]string{cfg.Source.TargetColumn}, cfg.Source.WageTokens...),
			ExclusionMarkers: cfg.Source.ExclusionMarkers,
			RegionColumn:     wagetable.AutoColumn,
		}, logger)
		fetcher = htmltable.NewFetcher(cfg.FetchTimeout(), parser, logger)
		remote = fetcher
	}

	ld := loader.New(loader.Options{
		SpreadsheetFile:  cfg.SpreadsheetPath(),
		TargetColumn:     cfg.Source.TargetColumn,
		ExclusionMarkers: cfg.Source.ExclusionMarkers,
		RemoteURL:        cfg.Source.RemoteURL,
	}, reader, remote, store, logger)

	report := ld.Load(ctx)
	service := pdn.NewService(report.Table, logger)

	logger.Info("Container initialized successfully",
		logging.F(logging.FieldBackend, cfg.Snapshot.Backend),
		logging.F(logging.FieldTier, string(report.Source)),
		logging.F(logging.FieldCount, report.Table.Len()))

	return &Container{
		logger:  logger,
		config:  cfg,
		store:   store,
		fetcher: fetcher,
		loader:  ld,
		report:  report,
		service: service,
	}, nil
}

func newStore(cfg *config.Config, logger logging.Logger) (snapshot.Store, error) {
	switch cfg.Snapshot.Backend {
	case config.BackendFile, "":
		return snapshot.NewFileStore(cfg.SnapshotPath(), logger), nil
	case config.BackendRedis:
		return snapshot.NewRedisStore(cfg.Snapshot.RedisAddr, cfg.Snapshot.RedisKey, logger), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend: %s", cfg.Snapshot.Backend)
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the snapshot store.
func (c *Container) GetStore() snapshot.Store {
	return c.store
}

// GetFetcher returns the remote table fetcher, or nil when no remote URL is configured.
func (c *Container) GetFetcher() *htmltable.Fetcher {
	return c.fetcher
}

// GetLoader returns the wage loader.
func (c *Container) GetLoader() *loader.Loader {
	return c.loader
}

// GetLoadReport returns the report of the startup load.
func (c *Container) GetLoadReport() loader.Report {
	return c.report
}

// GetService returns the calculation service bound to the startup wage table.
func (c *Container) GetService() *pdn.Service {
	return c.service
}

// Close releases the snapshot backend connection, if any.
func (c *Container) Close() error {
	if closer, ok := c.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close snapshot store: %w", err)
		}
	}
	c.logger.Info("Container closed")
	return nil
}
