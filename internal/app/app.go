package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/receipt/internal/config"
	"github.com/five82/receipt/internal/logging"
	"github.com/five82/receipt/internal/prefs"
	"github.com/five82/receipt/internal/printer"
	"github.com/five82/receipt/internal/request"
	"github.com/five82/receipt/internal/state"
	"github.com/five82/receipt/internal/ui"
)

// Options configure the receipt application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/receipt/prefs.toml
	PollEvery  int    // seconds; zero uses default
	Debug      bool
}

// services bundles everything built from the config.
type services struct {
	cfg        config.Config
	logger     *zap.Logger
	closeLog   func()
	client     *printer.Client
	controller *request.Controller
}

func setup(opts Options, minBusy *time.Duration) (*services, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}
	logger, closeLog, err := logging.New(cfg.LogPath, level)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := printer.NewClient(cfg.APIURL,
		printer.WithPrefix(cfg.APIPrefix),
		printer.WithTimeout(cfg.Timeout))
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("init printer client: %w", err)
	}

	busy := cfg.MinBusy
	if minBusy != nil {
		busy = *minBusy
	}
	controller := request.New(client,
		request.WithMinDuration(busy),
		request.WithLogger(logger))

	return &services{
		cfg:        cfg,
		logger:     logger,
		closeLog:   closeLog,
		client:     client,
		controller: controller,
	}, nil
}

// Run boots the receipt TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	svc, err := setup(opts, nil)
	if err != nil {
		return err
	}
	defer svc.closeLog()

	userPrefs := prefs.Load(opts.PrefsPath)
	store := state.NewStore(svc.cfg.HistoryLimit)
	unsubscribe := svc.controller.Subscribe(recordEvents(store))
	defer unsubscribe()

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	svc.logger.Info("receipt starting",
		zap.String("api", svc.client.Endpoint("/")),
		zap.Duration("min_busy", svc.cfg.MinBusy))

	// Start background health poller
	StartPoller(ctx, store, svc.client, interval, svc.logger)

	uiOpts := ui.Options{
		Context:    ctx,
		Controller: svc.controller,
		Store:      store,
		Endpoint:   svc.client.Endpoint,
		LogPath:    svc.cfg.LogPath,
		Prefs:      userPrefs,
		PrefsPath:  opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// recordEvents mirrors controller events into the history store.
func recordEvents(store *state.Store) func(request.Event) {
	return func(ev request.Event) {
		switch ev.Phase {
		case request.PhaseStarted:
			store.Begin(ev.ID, ev.Kind, ev.Path, time.Now())
		case request.PhaseDone:
			store.Finish(ev.ID, ev.State.Failed, ev.State.Error, time.Now())
		}
	}
}
