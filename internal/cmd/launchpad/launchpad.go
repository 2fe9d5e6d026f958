// Package launchpad parses launchpad command flags and launches the landing service.
package launchpad

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/beztern/launchpad/internal/countdown"
	entrypoint "github.com/beztern/launchpad/internal/platform/cmd"
	"github.com/beztern/launchpad/internal/platform/discovery"
	"github.com/beztern/launchpad/internal/platform/logging"
	launchpadservice "github.com/beztern/launchpad/internal/services/launchpad"
	"github.com/beztern/launchpad/internal/services/launchpad/content"
)

// Config holds launchpad command configuration.
type Config struct {
	HTTPAddr         string        `env:"BEZTERN_LAUNCHPAD_HTTP_ADDR"`
	GRPCAddr         string        `env:"BEZTERN_LAUNCHPAD_GRPC_ADDR"`
	DBPath           string        `env:"BEZTERN_LAUNCHPAD_DB_PATH" envDefault:"data/launchpad.db"`
	Target           string        `env:"BEZTERN_LAUNCHPAD_TARGET" envDefault:"2025-05-11T12:00:00+05:30"`
	TickInterval     time.Duration `env:"BEZTERN_LAUNCHPAD_TICK_INTERVAL" envDefault:"1s"`
	AlignToSecond    bool          `env:"BEZTERN_LAUNCHPAD_ALIGN_TO_SECOND" envDefault:"false"`
	SubmitDelay      time.Duration `env:"BEZTERN_LAUNCHPAD_SUBMIT_DELAY" envDefault:"1500ms"`
	StatusResetAfter time.Duration `env:"BEZTERN_LAUNCHPAD_STATUS_RESET_AFTER" envDefault:"3s"`
	ContentPath      string        `env:"BEZTERN_LAUNCHPAD_CONTENT_PATH"`
	LogLevel         string        `env:"BEZTERN_LAUNCHPAD_LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"BEZTERN_LAUNCHPAD_LOG_FORMAT" envDefault:"json"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if fs == nil {
		return Config{}, fmt.Errorf("flag parser is required")
	}
	cfg.HTTPAddr = discovery.OrDefaultHTTPAddr(cfg.HTTPAddr, discovery.ServiceLaunchpad)
	cfg.GRPCAddr = discovery.OrDefaultGRPCAddr(cfg.GRPCAddr, discovery.ServiceLaunchpad)
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC health listen address (empty disables)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Subscription SQLite database path")
	fs.StringVar(&cfg.Target, "target", cfg.Target, "Launch instant (RFC 3339)")
	fs.DurationVar(&cfg.TickInterval, "tick-interval", cfg.TickInterval, "Countdown tick interval")
	fs.BoolVar(&cfg.AlignToSecond, "align-to-second", cfg.AlignToSecond, "Tick on whole remaining seconds")
	fs.DurationVar(&cfg.SubmitDelay, "submit-delay", cfg.SubmitDelay, "Delay before a sign-up is confirmed")
	fs.DurationVar(&cfg.StatusResetAfter, "status-reset-after", cfg.StatusResetAfter, "How long the sign-up status stays visible")
	fs.StringVar(&cfg.ContentPath, "content-path", cfg.ContentPath, "Site content YAML (empty uses the embedded copy)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json, console)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Build resolves cfg into service inputs without starting anything.
func Build(cfg Config, logger *zap.Logger) (launchpadservice.Config, error) {
	target, err := countdown.ParseTarget(cfg.Target)
	if err != nil {
		return launchpadservice.Config{}, fmt.Errorf("parse target: %w", err)
	}
	site, err := content.Load(cfg.ContentPath)
	if err != nil {
		return launchpadservice.Config{}, err
	}
	return launchpadservice.Config{
		HTTPAddr:         cfg.HTTPAddr,
		GRPCAddr:         cfg.GRPCAddr,
		Target:           target,
		TickInterval:     cfg.TickInterval,
		AlignToSecond:    cfg.AlignToSecond,
		SubmitDelay:      cfg.SubmitDelay,
		StatusResetAfter: cfg.StatusResetAfter,
		Site:             site,
		DBPath:           cfg.DBPath,
		Logger:           logger,
	}, nil
}

// Run starts the launchpad service and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	serviceCfg, err := Build(cfg, logger)
	if err != nil {
		return err
	}
	options := entrypoint.RunOptions{Logger: logger}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceLaunchpad, options, func(ctx context.Context) error {
		server, err := launchpadservice.NewServer(ctx, serviceCfg)
		if err != nil {
			return err
		}
		defer server.Close()
		logger.Info("launchpad starting",
			zap.String("http_addr", serviceCfg.HTTPAddr),
			zap.String("grpc_addr", serviceCfg.GRPCAddr),
			zap.Time("target", serviceCfg.Target),
		)
		return server.ListenAndServe(ctx)
	})
}
