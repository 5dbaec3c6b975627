package container

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"

	"resultdash/adapters/excel"
	"resultdash/domain/dataset"
	"resultdash/internal"
	"resultdash/internal/admin"
	"resultdash/internal/config"
	"resultdash/internal/dashboard"
	"resultdash/internal/errors"
	"resultdash/ports"
	"resultdash/ui"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config  *config.Config
	Logger  *internal.Logger
	Loader  ports.DatasetLoader
	Options dashboard.Options

	// Dataset is set by Init and never changes afterwards
	Dataset *dataset.Dataset
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(cfg.LogLevel)

	excelConfig := excel.DefaultExcelConfig()
	excelConfig.FilePath = cfg.Data.ResultsFile
	excelConfig.Defaults = dataset.Defaults{
		Category:         cfg.Data.DefaultCategory,
		DisabilityStatus: cfg.Data.DefaultDisability,
	}

	return &Container{
		Config: cfg,
		Logger: logger,
		Loader: excel.NewLoader(excelConfig, logger.With("loader")),
		Options: dashboard.Options{
			RowPolicy:       dashboard.RowPolicy(cfg.Dashboard.RowPolicy),
			DefaultRowCount: cfg.Dashboard.DefaultRowCount,
			HistogramBins:   cfg.Dashboard.HistogramBins,
		},
	}, nil
}

// Init loads the dataset once. A failure here is fatal for the process.
func (c *Container) Init(ctx context.Context) error {
	ds, err := c.Loader.Load(ctx, c.Config.Data.ResultsFile)
	if err != nil {
		code := errors.CodeLoadError
		if stderrors.Is(err, dataset.ErrSchema) {
			code = errors.CodeSchemaError
		}
		return errors.WithCode(code, errors.Wrapf(err, "failed to load %s", c.Config.Data.ResultsFile))
	}
	c.Dataset = ds
	return nil
}

// Run serves the API, plus the profiler when enabled, until ctx is
// cancelled or a listener fails
func (c *Container) Run(ctx context.Context) error {
	if c.Dataset == nil {
		return errors.InternalError("container not initialized")
	}

	gin.SetMode(c.Config.Server.GinMode)
	server := ui.NewServer(c.Dataset, c.Options, c.Logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, net.JoinHostPort("", c.Config.Server.Port))
	})
	if c.Config.Profiling.Enabled {
		g.Go(func() error {
			return admin.Run(ctx, net.JoinHostPort("localhost", c.Config.Profiling.Port), c.Logger.With("admin"))
		})
	}
	return g.Wait()
}
