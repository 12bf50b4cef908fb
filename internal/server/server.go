// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/itsatony/sensordash/api"
	"github.com/itsatony/sensordash/internal/cleanup"
	"github.com/itsatony/sensordash/internal/config"
	"github.com/itsatony/sensordash/internal/dashboard"
	"github.com/itsatony/sensordash/internal/database"
	"github.com/itsatony/sensordash/internal/detector"
	"github.com/itsatony/sensordash/internal/models"
	"github.com/itsatony/sensordash/internal/monitoring"
	"github.com/itsatony/sensordash/internal/notify"
	"github.com/itsatony/sensordash/internal/repository/redis"
	"github.com/itsatony/sensordash/internal/repository/timescale"
	"github.com/itsatony/sensordash/internal/simulator"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	dashboard  *dashboard.Service
	monitoring *monitoring.Service
	cleanup    *cleanup.CleanupService
	closers    []io.Closer
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize services
	s.monitoring = monitoring.NewService(monitoring.Config{Namespace: s.config.Monitoring.Namespace})
	s.dashboard = s.initializeDashboard(ctx)

	// Set up dashboard and cleanup event handlers
	s.setupEventHandlers()

	// Setup routes
	s.srv.Handler = api.NewRouter(s.dashboard, api.RouterConfig{
		CORSOrigins: s.config.Server.CORSOrigins,
		MetricsPath: s.config.Monitoring.MetricsPath,
		Metrics:     s.monitoring.Handler(),
	})

	s.dashboard.Load(ctx)
	go s.dashboard.Run(ctx)
	if s.cleanup != nil {
		go s.cleanup.Run(ctx)
	}

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown(cancel)
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown(stopWorkers context.CancelFunc) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")
	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing %T: %v", c, err)
		}
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) setupEventHandlers() {
	s.dashboard.On(dashboard.EventAnomaly, "monitoring", func(args ...interface{}) {
		if len(args) == 0 {
			return
		}
		alert, ok := args[0].(models.Notification)
		if !ok {
			return
		}
		types := make([]string, len(alert.SensorTypes))
		for i, t := range alert.SensorTypes {
			types[i] = string(t)
		}
		s.monitoring.RecordEvent("anomaly_detected", map[string]string{
			"notification_id": alert.ID,
			"sensor_types":    strings.Join(types, ","),
		})
	})

	s.dashboard.On(dashboard.EventFilterReset, "monitoring", func(args ...interface{}) {
		if len(args) < 2 {
			return
		}
		s.monitoring.RecordEvent("filter_reset", map[string]string{
			"from": fmt.Sprint(args[0]),
			"to":   fmt.Sprint(args[1]),
		})
	})

	if s.cleanup != nil {
		// Handle archive pruning events
		s.cleanup.OnCleanup(cleanup.EventArchivePruned, func(cutoff string) {
			nuts.L.Infof("[Cleanup] Archived readings before %s deleted", cutoff)
			s.monitoring.RecordEvent("archive_pruned", map[string]string{
				"cutoff": cutoff,
			})
		})
	}
}

// initializeDashboard creates the generator and attaches every enabled sink
func (s *Server) initializeDashboard(ctx context.Context) *dashboard.Service {
	sim := s.config.Simulator
	gen := simulator.New(simulator.DefaultProfiles(), simulator.Options{
		HistoryPoints:             sim.HistoryPoints,
		HistoryStep:               sim.HistoryStep,
		HistoryVariation:          sim.HistoryVariation,
		AnomalyProbability:        sim.AnomalyProbability,
		HistoryAnomalyProbability: sim.HistoryAnomalyProbability,
		ConnectivityProbability:   sim.ConnectivityProbability,
		Seed:                      sim.Seed,
	})

	options := []dashboard.Option{
		dashboard.WithDetector(detector.New(detector.ThresholdsFromConfig(s.config.Detector))),
		dashboard.WithMonitoring(s.monitoring),
		dashboard.WithRecent(notify.NewRecent(sim.MaxNotifications)),
	}

	if s.config.Redis.Enabled {
		client, err := redis.NewClient(ctx, s.config.Redis)
		if err != nil {
			nuts.L.Fatalf("[Server] Failed to connect to Redis: %v", err)
		}
		cache := redis.NewSnapshotRepo(client, s.config.Redis)
		options = append(options, dashboard.WithSnapshotCache(cache), dashboard.WithNotifier(cache))
		s.closers = append(s.closers, cache)
	}

	if tsdb := s.config.Database.TimescaleDB; tsdb.Enabled {
		archive := initArchive(ctx, tsdb)
		options = append(options, dashboard.WithArchive(archive))
		s.cleanup = cleanup.New(archive, tsdb.Retention, tsdb.CleanupInterval)
		s.closers = append(s.closers, archive)
	}

	if rmq := s.config.RabbitMQ; rmq.Enabled {
		publisher, err := notify.NewRabbitNotifier(rmq.URL, rmq.Exchange, rmq.RoutingKey)
		if err != nil {
			nuts.L.Fatalf("[Server] Failed to connect to RabbitMQ: %v", err)
		}
		options = append(options, dashboard.WithNotifier(publisher))
		s.closers = append(s.closers, publisher)
	}

	return dashboard.New(gen, dashboard.OptionsFromConfig(sim), options...)
}

func initArchive(ctx context.Context, cfg config.PostgresConfig) *timescale.SensorDataRepo {
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	db, err := database.NewTimescaleDB(connectCtx, cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to TimescaleDB: %v", err)
	}

	archive, err := timescale.NewSensorDataRepository(db, cfg.Retention)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize reading archive: %v", err)
	}
	if err := archive.Ping(connectCtx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping TimescaleDB: %v", err)
	}
	return archive
}
