package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"pkt.systems/sndbq/console"
	"pkt.systems/sndbq/internal/appconfig"
	"pkt.systems/sndbq/internal/lookup"
	"pkt.systems/sndbq/internal/mailbox"
	"pkt.systems/sndbq/internal/store"
	"pkt.systems/sndbq/schema"
)

func newRunCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive lookup console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd.Context(), cfgPath)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	return cmd
}

func runConsole(ctx context.Context, cfgPath string) error {
	cfg, err := appconfig.Load(cfgPath)
	if err != nil {
		return err
	}
	term, err := console.NewStdTerminal()
	if err != nil {
		return err
	}

	logs, err := openSessionLogging(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := logs.Close(); closeErr != nil {
			pslog.Ctx(ctx).Warn("log shutdown failed", "err", closeErr)
		}
	}()
	pslog.Ctx(ctx).Info("console logging", "file", cfg.Logging.File, "remote", cfg.Logging.Remote)
	ctx = pslog.ContextWithLogger(ctx, logs.logger)
	logger := logs.logger

	db, err := store.Open(ctx, storeConfig(cfg))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Warn("store close failed", "err", closeErr)
		}
	}()

	requests := mailbox.New[schema.LookupRequest]("requests", logger)
	updates := mailbox.New[schema.Update]("updates", logger)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()
	worker := lookup.NewWorker(db, requests.Out(), updates)
	workerDone := make(chan error, 1)
	go func() {
		workerDone <- worker.Run(workerCtx)
	}()

	session := console.NewSession(term, requests, updates, console.Options{
		Theme:        cfg.Console.Theme,
		PollInterval: time.Duration(cfg.Console.PollIntervalMillis) * time.Millisecond,
		HistoryKeep:  cfg.Console.HistoryKeep,
		Clipboard:    console.SystemClipboard{},
	})
	runErr := session.Run(ctx)

	requests.Close()
	if pending := requests.Len(); pending > 0 {
		logger.Info("lookup worker draining", "pending", pending)
	}
	if err := awaitWorker(workerDone, cancelWorker, shutdownTimeout(cfg)); err != nil {
		logger.Warn("lookup worker shutdown", "err", err)
	}
	if dropped := updates.Discard(); dropped > 0 {
		logger.Debug("updates dropped after session end", "count", dropped)
	}
	return runErr
}

var errWorkerTimeout = errors.New("lookup worker did not drain in time")

// awaitWorker waits for the worker to drain its queue. On timeout the worker
// is cancelled, which abandons the lookup in flight.
func awaitWorker(done <-chan error, cancel context.CancelFunc, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		cancel()
		<-done
		return errWorkerTimeout
	}
}
