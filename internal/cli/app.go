package cli

import (
	"context"
	"io"
	"net/http"

	"github.com/idilsaglam/sheettracker/internal/config"
	"github.com/idilsaglam/sheettracker/internal/gateway"
	"github.com/idilsaglam/sheettracker/internal/model"
	"github.com/idilsaglam/sheettracker/internal/store"
	"github.com/idilsaglam/sheettracker/internal/store/boltstore"
	"github.com/idilsaglam/sheettracker/internal/store/jsonstore"
	"github.com/idilsaglam/sheettracker/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Importer turns one source into questions, either through a remote
// gateway or in-process.
type Importer interface {
	ParseWorkbook(ctx context.Context, filename string, r io.Reader) ([]model.Question, error)
	ParseGitHub(ctx context.Context, url string) ([]model.Question, error)
}

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func (a *app) setup(cmd *cobra.Command, flags rootFlags) error {
	logger, err := newLogger(flags.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	cfg, err := config.NewLoader(logger).Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.dataDir != "" {
		cfg.Storage.Dir = flags.dataDir
	}
	if flags.backend != "" {
		cfg.Storage.Backend = flags.backend
	}
	if flags.server != "" {
		cfg.Server.URL = flags.server
	}
	if flags.theme != "" {
		cfg.UI.Theme = flags.theme
	}
	if flags.color != "" {
		cfg.UI.Color = flags.color
	}
	if err := cfg.Validate(); err != nil {
		return usagef("%v", err)
	}
	a.cfg = cfg

	ui.SetTheme(cfg.UI.Theme)
	ui.SetColorForcing(cfg.UI.Color == "always", cfg.UI.Color == "never" || cfg.UI.Theme == "mono")
	logger.Debug("config resolved",
		zap.String("command", cmd.Name()),
		zap.String("backend", cfg.Storage.Backend),
		zap.String("dir", cfg.Storage.Dir))
	return nil
}

// openStore opens the configured backend and loads the list. The returned
// func releases the backend.
func (a *app) openStore(opts ...store.Option) (*store.Store, func(), error) {
	var (
		port    store.Persistence
		release = func() {}
	)
	switch a.cfg.Storage.Backend {
	case config.BackendBolt:
		b, err := boltstore.Open(a.cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		port, release = b, func() { _ = b.Close() }
	default:
		port = jsonstore.New(a.cfg.Storage.Dir)
	}

	opts = append([]store.Option{store.WithLogger(a.logger)}, opts...)
	s := store.New(port, opts...)
	s.Init()
	return s, release, nil
}

func (a *app) httpClient() *http.Client {
	return &http.Client{Timeout: a.cfg.Fetch.Timeout}
}

func (a *app) service() *gateway.Service {
	return gateway.NewService(gateway.NewHTTPFetcher(a.httpClient()), a.logger)
}

func (a *app) importer() Importer {
	if a.cfg.Server.URL != "" {
		a.logger.Debug("importing through gateway", zap.String("url", a.cfg.Server.URL))
		return gateway.NewClient(a.cfg.Server.URL, a.httpClient())
	}
	return a.service()
}
