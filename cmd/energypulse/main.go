package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type options struct {
	APIURL      string        `long:"api-url" env:"ENERGYPULSE_API_URL" description:"EnergyPulse API base URL" default:"http://localhost:8080"`
	SessionFile string        `long:"session-file" env:"ENERGYPULSE_SESSION_FILE" description:"session file path (default: user config dir)"`
	RPS         int           `long:"rps" env:"ENERGYPULSE_RPS" description:"max API requests per second, 0 for unlimited" default:"0"`
	HTTPTimeout time.Duration `long:"http-timeout" env:"ENERGYPULSE_HTTP_TIMEOUT" description:"timeout for API requests, 0 for none"`
	MetricsAddr string        `long:"metrics-addr" env:"ENERGYPULSE_METRICS_ADDR" description:"address for metrics server, empty to disable"`
	LogLevel    string        `long:"log-level" env:"ENERGYPULSE_LOG_LEVEL" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"warn"`
	LogDev      bool          `long:"log-dev" env:"ENERGYPULSE_LOG_DEV" description:"human-readable development logs"`
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{ctx: ctx, out: os.Stdout}
	parser := flags.NewParser(&a.opts, flags.Default)
	registerCommands(parser, a)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}
		if err := a.init(); err != nil {
			return err
		}
		defer a.close()
		return cmd.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		// go-flags already printed err.
		os.Exit(1)
	}
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
