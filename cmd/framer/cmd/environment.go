package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"framer-go/application"
	"framer-go/application/annotator"
	"framer-go/core/eventbus"
	"framer-go/core/geometry"
	"framer-go/domain/dataset"
	"framer-go/domain/label"
	"framer-go/infrastructure/config"
	"framer-go/infrastructure/imagestore"
	"framer-go/infrastructure/logging"
	"framer-go/infrastructure/metrics"
	"framer-go/infrastructure/repository"
	"framer-go/infrastructure/storage"
)

const eventBufferSize = 100

// environment holds the collaborators shared by every subcommand.
type environment struct {
	cfg        *config.Config
	logger     *slog.Logger
	bus        eventbus.EventBus
	source     imagestore.Source
	repository dataset.Repository

	closers []func() error
}

// newEnvironment sets up logging, the event bus, the image source, the
// dataset store and, when configured, the metrics endpoint.
func newEnvironment(ctx context.Context, cfg *config.Config) (env *environment, err error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logger, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}

	env = &environment{
		cfg:     cfg,
		logger:  logger,
		closers: []func() error{closeLog},
	}
	defer func() {
		if err != nil {
			env.Close()
		}
	}()

	env.bus = eventbus.NewWithLogger(eventBufferSize, logger)
	env.closers = append(env.closers, func() error {
		env.bus.Close()
		return nil
	})

	env.source = imagestore.NewDirSource(cfg.ImagesDir, nil, logger)

	if env.repository, err = env.openRepository(ctx); err != nil {
		return nil, err
	}

	if cfg.MetricsAddr != "" {
		if err := env.serveMetrics(ctx); err != nil {
			return nil, err
		}
	}

	logger.Info("Starting Framer", "images_dir", cfg.ImagesDir, "store", env.repository.Location())
	return env, nil
}

func (e *environment) openRepository(ctx context.Context) (dataset.Repository, error) {
	switch e.cfg.Store.Kind {
	case config.StoreMongoDB:
		mongoCfg := repository.DefaultMongoDBConfig()
		mongoCfg.URI = e.cfg.Store.MongoURI
		mongoCfg.Database = e.cfg.Store.Database

		db, err := repository.NewMongoDB(ctx, mongoCfg, e.logger)
		if err != nil {
			return nil, fmt.Errorf("connecting to MongoDB: %w", err)
		}
		e.closers = append(e.closers, func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return db.Close(closeCtx)
		})

		name := e.cfg.Store.Dataset
		if name == "" {
			name = filepath.Base(filepath.Clean(e.cfg.ImagesDir))
		}
		repo := repository.NewMongoDatasetRepository(db, e.cfg.Store.Collection, name, e.logger)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil

	default:
		opts := []storage.Option{storage.WithLogger(e.logger)}
		if e.cfg.Store.Indent {
			opts = append(opts, storage.WithIndent())
		}
		return storage.NewJSONFileRepository(e.cfg.DataPath, opts...), nil
	}
}

func (e *environment) serveMetrics(ctx context.Context) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	recorder := metrics.NewRecorder(reg)
	subscription := recorder.Attach(e.bus)

	srv, err := metrics.Listen(e.cfg.MetricsAddr, reg, e.logger)
	if err != nil {
		e.bus.Unsubscribe(subscription)
		return fmt.Errorf("starting metrics server: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(ctx); err != nil {
			e.logger.Error("Metrics server failed", "error", err)
		}
	}()
	e.closers = append(e.closers, func() error {
		cancel()
		<-done
		return nil
	})
	return nil
}

// coordinator builds the application coordinator for the given labels.
func (e *environment) coordinator(labels *label.Set) *application.Coordinator {
	width, height := e.cfg.DrawableSize()
	return application.NewCoordinator(&application.CoordinatorConfig{
		EventBus:   e.bus,
		Source:     e.source,
		Repository: e.repository,
		Annotator: annotator.Config{
			Labels:        labels,
			Area:          geometry.Size{Width: width, Height: height},
			Keymap:        annotator.DefaultKeymap(),
			PromptSize:    geometry.Size{Width: e.cfg.Prompt.Width, Height: e.cfg.Prompt.Height},
			MinRowHeight:  e.cfg.Prompt.MinRowHeight,
			RepeatDelay:   e.cfg.Annotate.RepeatDelay,
			MinRegionSize: e.cfg.Annotate.MinRegionSize,
			EventBus:      e.bus,
			Logger:        e.logger,
		},
		Logger: e.logger,
	})
}

// drainEvents delivers every queued event to its subscribers and stops the
// bus. Later publishes are dropped.
func (e *environment) drainEvents() {
	e.bus.Close()
}

// Close releases resources in reverse order of acquisition.
func (e *environment) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

// loadLabels resolves the label set from the configured list or file.
func loadLabels(cfg *config.Config) (*label.Set, error) {
	if len(cfg.Labels) > 0 {
		return label.NewSet(cfg.Labels)
	}
	if cfg.LabelsFile != "" {
		return label.LoadFromFS(os.DirFS(filepath.Dir(cfg.LabelsFile)), filepath.Base(cfg.LabelsFile))
	}
	return nil, fmt.Errorf("no labels given as arguments or in labels_file: %w", label.ErrEmpty)
}
