// Package launchpad hosts the coming-soon landing service.
package launchpad

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gogrpc "google.golang.org/grpc"

	"github.com/beztern/launchpad/internal/countdown"
	"github.com/beztern/launchpad/internal/platform/clock"
	platformgrpc "github.com/beztern/launchpad/internal/platform/grpc"
	"github.com/beztern/launchpad/internal/platform/logging"
	"github.com/beztern/launchpad/internal/platform/timeouts"
	lpapp "github.com/beztern/launchpad/internal/services/launchpad/app"
	"github.com/beztern/launchpad/internal/services/launchpad/content"
	module "github.com/beztern/launchpad/internal/services/launchpad/module"
	countdownmodule "github.com/beztern/launchpad/internal/services/launchpad/modules/countdown"
	"github.com/beztern/launchpad/internal/services/launchpad/modules/landing"
	"github.com/beztern/launchpad/internal/services/launchpad/modules/notify"
	"github.com/beztern/launchpad/internal/services/launchpad/platform/httpx"
	"github.com/beztern/launchpad/internal/services/launchpad/platform/observability"
	"github.com/beztern/launchpad/internal/services/launchpad/routepath"
	lpstatic "github.com/beztern/launchpad/internal/services/launchpad/static"
	"github.com/beztern/launchpad/internal/services/launchpad/storage"
	"github.com/beztern/launchpad/internal/services/launchpad/storage/sqlite"
	"github.com/beztern/launchpad/internal/services/launchpad/stream"
)

// ServiceName is the gRPC health service name reported by the server.
const ServiceName = "launchpad"

// Config defines startup inputs for the launchpad service.
type Config struct {
	HTTPAddr string
	// GRPCAddr serves the health service. Empty disables gRPC.
	GRPCAddr string

	Target        time.Time
	TickInterval  time.Duration
	AlignToSecond bool

	SubmitDelay      time.Duration
	StatusResetAfter time.Duration

	// Site defaults to the embedded copy when its brand is empty.
	Site content.Site

	// Subscriptions overrides the SQLite store opened at DBPath.
	Subscriptions storage.SubscriptionStore
	DBPath        string

	Clock     clock.Clock
	Scheduler clock.Scheduler
	Logger    *zap.Logger
}

// Server hosts the launchpad HTTP and gRPC surfaces and owns the countdown
// engine lifecycle.
type Server struct {
	httpAddr   string
	grpcAddr   string
	httpServer *http.Server
	health     *platformgrpc.HealthServer
	engine     *countdown.Engine
	hub        *stream.Hub
	closeStore func() error
	logger     *zap.Logger
	closeOnce  sync.Once
}

// DefaultModules returns the modules composed into the root handler.
func DefaultModules() []module.Module {
	return []module.Module{
		landing.New(),
		countdownmodule.New(),
		notify.New(),
	}
}

// NewHandler builds the root handler from the default modules.
func NewHandler(deps module.Dependencies) (http.Handler, error) {
	h, err := lpapp.Composer{}.Compose(lpapp.ComposeInput{
		Dependencies: deps,
		Modules:      DefaultModules(),
	})
	if err != nil {
		return nil, err
	}
	logger := logging.OrNop(deps.Logger)
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.Static, http.StripPrefix(routepath.Static, http.FileServer(http.FS(lpstatic.FS))))
	rootMux.HandleFunc(http.MethodGet+" "+routepath.Health, handleHealth)
	rootMux.Handle(routepath.Root, h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	), nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// NewServer validates config and constructs a launchpad server. The countdown
// engine starts ticking in ListenAndServe.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	logger := logging.OrNop(cfg.Logger)

	site := cfg.Site
	if strings.TrimSpace(site.Brand) == "" {
		defaultSite, err := content.Default()
		if err != nil {
			return nil, fmt.Errorf("load default content: %w", err)
		}
		site = defaultSite
	}

	hub := stream.NewHub(logger)
	engine, err := countdown.New(countdown.Config{
		Target:        cfg.Target,
		TickInterval:  cfg.TickInterval,
		AlignToSecond: cfg.AlignToSecond,
		OnTick:        hub.OnTick,
		OnMilestone:   hub.OnMilestone,
		OnComplete:    hub.OnComplete,
		Clock:         cfg.Clock,
		Scheduler:     cfg.Scheduler,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("configure countdown: %w", err)
	}

	store := cfg.Subscriptions
	closeStore := func() error { return nil }
	if store == nil {
		sqliteStore, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open subscription store: %w", err)
		}
		store = sqliteStore
		closeStore = sqliteStore.Close
	}

	handler, err := NewHandler(module.Dependencies{
		Countdown:        engine,
		Stream:           hub,
		Site:             site,
		Subscriptions:    store,
		Clock:            cfg.Clock,
		Scheduler:        cfg.Scheduler,
		Logger:           logger,
		SubmitDelay:      cfg.SubmitDelay,
		StatusResetAfter: cfg.StatusResetAfter,
	})
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("compose launchpad handler: %w", err)
	}

	server := &Server{
		httpAddr: httpAddr,
		grpcAddr: strings.TrimSpace(cfg.GRPCAddr),
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		engine:     engine,
		hub:        hub,
		closeStore: closeStore,
		logger:     logger,
	}
	if server.grpcAddr != "" {
		server.health = platformgrpc.NewHealthServer(ServiceName)
	}
	return server, nil
}

// Engine exposes the server's countdown engine.
func (s *Server) Engine() *countdown.Engine {
	if s == nil {
		return nil
	}
	return s.engine
}

// ListenAndServe starts the countdown and serves HTTP and gRPC until context
// cancellation or the first serve failure.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("launchpad server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := s.engine.Start(); err != nil {
		return fmt.Errorf("start countdown: %w", err)
	}
	defer s.engine.Stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return s.serveHTTP(groupCtx)
	})
	if s.health != nil {
		group.Go(func() error {
			return s.serveGRPC(groupCtx)
		})
	}
	return group.Wait()
}

func (s *Server) serveHTTP(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("launchpad http listening", zap.String("addr", s.httpAddr))

	select {
	case <-ctx.Done():
		// Hijacked stream connections are not tracked by Shutdown.
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown launchpad http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve launchpad http: %w", err)
	}
}

func (s *Server) serveGRPC(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.grpcAddr)
	if err != nil {
		return fmt.Errorf("listen launchpad grpc on %s: %w", s.grpcAddr, err)
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.health.Server.Serve(listener)
	}()
	s.logger.Info("launchpad grpc listening", zap.String("addr", listener.Addr().String()))

	select {
	case <-ctx.Done():
		s.health.Stop()
		<-serveErr
		return nil
	case err := <-serveErr:
		if err == nil || errors.Is(err, gogrpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve launchpad grpc: %w", err)
	}
}

// Close stops the countdown and releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	s.closeOnce.Do(func() {
		if s.engine != nil {
			s.engine.Stop()
		}
		if s.hub != nil {
			s.hub.Close()
		}
		if s.httpServer != nil {
			_ = s.httpServer.Close()
		}
		if s.health != nil {
			s.health.Stop()
		}
		if s.closeStore != nil {
			if err := s.closeStore(); err != nil {
				s.logger.Warn("close subscription store", zap.Error(err))
			}
		}
	})
}
