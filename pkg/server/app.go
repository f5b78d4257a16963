package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"FundPulse/internal/usecase"
	"FundPulse/pkg/config"
	xhttp "FundPulse/pkg/http"
	applogger "FundPulse/pkg/logger"

	"go.uber.org/multierr"
)

// Closers are infrastructure handles released on shutdown.
type Closers []io.Closer

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	cycle      *usecase.MarketCycle
	scheduler  *usecase.Scheduler
	httpServer *xhttp.Server
	closers    Closers
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	cycle *usecase.MarketCycle,
	scheduler *usecase.Scheduler,
	httpServer *xhttp.Server,
	closers Closers,
) *App {
	return &App{
		cfg:        cfg,
		log:        log,
		cycle:      cycle,
		scheduler:  scheduler,
		httpServer: httpServer,
		closers:    closers,
	}
}

// Run starts the scheduler and the HTTP server and blocks until interrupted
// or the server fails to listen.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.httpServer.Start(); err != nil {
		return fmt.Errorf("start http server: %w", err)
	}

	schedCtx, cancelSched := context.WithCancel(ctx)
	defer cancelSched()
	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		_ = a.scheduler.Run(schedCtx)
	}()

	a.log.Info("fundpulse started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("quote_asset", a.cfg.Market.QuoteAsset),
		applogger.Duration("interval", a.cfg.Market.Interval),
	)

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case runErr = <-a.httpServer.Err():
		a.log.Error("http server failed", applogger.Error(runErr))
	}

	cancelSched()
	<-schedDone
	return multierr.Append(runErr, a.shutdown())
}

// RunOnce runs a single aggregation cycle and writes the summary to w as JSON.
func (a *App) RunOnce(ctx context.Context, w io.Writer) (err error) {
	defer func() { err = multierr.Append(err, a.closeAll()) }()

	summary, err := a.cycle.RunCycle(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")

	err := a.httpServer.Stop(context.Background())
	err = multierr.Append(err, a.closeAll())

	if err != nil {
		a.log.Warn("shutdown finished with errors", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}

func (a *App) closeAll() error {
	var err error
	for _, c := range a.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}
