package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ruleproc/internal/clock"
	"ruleproc/internal/config"
	"ruleproc/internal/logging"
	"ruleproc/internal/mqtt"
	"ruleproc/internal/notify"
	"ruleproc/internal/store"
	"ruleproc/internal/watcher"
)

// Supervisor composes the runtime dependency graph and owns process
// lifecycle: logger, config, Global Store, Notification Dispatcher, MQTT
// client, and one Watcher per enabled WatchSpec (SPEC_FULL §2/§5).
// Grounded on the teacher's Service/NewService/Run/shutdown composition
// root in internal/app/service.go, narrowed from the teacher's HTTP-server
// plus NATS-subscriber plus notify-queue wiring to this spec's single
// MQTT-client plus N-watchers wiring.
// Params: none.
// Returns: none.
type Supervisor struct {
	cfg      *config.Config
	logger   *slog.Logger
	closeLog func()
	store    *store.Store
	client   *mqtt.Client
	watchers []*watcher.Watcher
}

// New builds a Supervisor from the config file at path. Every step that
// acquires a resource is followed by a check that tears down everything
// acquired so far on failure, matching the teacher's
// cleanupInitResources idiom.
// Params: path is the resolved configuration file location; levelName/
// logDir are the LOG_LEVEL/LOG_PATH ambient settings (§6).
// Returns: the ready, not-yet-running Supervisor.
func New(path, levelName, logDir string) (*Supervisor, error) {
	logger, closeLog, err := logging.New(levelName, logDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadSnapshot(path)
	if err != nil {
		closeLog()
		return nil, err
	}

	st := store.New()

	senders := []notify.Sender{
		notify.NewLogSender(logger),
		notify.NewMailSender(cfg.Mail),
		notify.NewSMSSender(cfg.SMS, logger),
	}
	dispatcher := notify.NewDispatcher(cfg.NotificationLists, senders, logger)

	client := mqtt.New(cfg.MQTT, logger)

	watchers := make([]*watcher.Watcher, 0, len(cfg.WatchList))
	for _, spec := range cfg.WatchList {
		if !spec.Enabled {
			logger.Info("watcher disabled, skipping", "watcher", spec.ID)
			continue
		}
		w := watcher.New(spec, st, dispatcher, clock.RealClock{}, logger)
		client.Subscribe(w.Subscription())
		watchers = append(watchers, w)
	}

	return &Supervisor{
		cfg:      cfg,
		logger:   logger,
		closeLog: closeLog,
		store:    st,
		client:   client,
		watchers: watchers,
	}, nil
}

// Run starts the MQTT client and every watcher's loop, then blocks until
// ctx is canceled or SIGINT/SIGTERM is received, mirroring the teacher's
// Service.Run signal-select idiom in internal/app/service.go.
// Params: ctx bounds the supervisor's lifetime.
// Returns: the first error observed during shutdown, if any.
func (s *Supervisor) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, w := range s.watchers {
		go w.Run(runCtx)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.client.Run(runCtx); err != nil {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		return s.shutdown()
	case err := <-errChan:
		cancel()
		_ = s.shutdown()
		return fmt.Errorf("mqtt client failed: %w", err)
	case <-sigChan:
		s.logger.Info("shutdown signal received")
		cancel()
		return s.shutdown()
	}
}

// shutdown runs after the watcher/client context has been canceled; it
// gives those goroutines a short moment to wind down and then closes the
// logger's file sink.
// Params: none.
// Returns: always nil today; kept as a named step for parity with the
// teacher's first-error-capture shutdown idiom, in case a future resource
// needs an explicit close with a reportable error.
func (s *Supervisor) shutdown() error {
	time.Sleep(50 * time.Millisecond)
	if s.closeLog != nil {
		s.closeLog()
	}
	return nil
}
