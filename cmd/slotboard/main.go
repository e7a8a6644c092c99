// Slotboard renders access-control dashboards for smart-home hubs.
//
// It connects to the hub over websocket, reads the entity registry and
// per-entry code slot metadata, classifies everything into a dashboard
// tree, and serves the result over HTTP. Snapshots of the last good fetch
// are kept in SQLite so the dashboard keeps working through hub outages.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nerrad567/slotboard/migrations"

	"github.com/nerrad567/slotboard/internal/api"
	"github.com/nerrad567/slotboard/internal/auth"
	"github.com/nerrad567/slotboard/internal/dashboard"
	"github.com/nerrad567/slotboard/internal/hub"
	"github.com/nerrad567/slotboard/internal/infrastructure/config"
	"github.com/nerrad567/slotboard/internal/infrastructure/database"
	"github.com/nerrad567/slotboard/internal/infrastructure/logging"
	"github.com/nerrad567/slotboard/internal/infrastructure/mqtt"
	"github.com/nerrad567/slotboard/internal/infrastructure/telemetry"
	"github.com/nerrad567/slotboard/internal/snapshot"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	issueToken := flag.String("issue-token", "",
		"issue an API token for the named client and exit")
	flag.Parse()

	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *issueToken != "" {
		if err := runIssueToken(*issueToken); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runIssueToken prints a signed API token for a client. Dashboard hosts
// get their token this way; there is no login endpoint.
func runIssueToken(client string) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ttl := time.Duration(cfg.Security.JWT.AccessTokenTTL) * time.Minute
	token, err := auth.IssueToken(client, cfg.Security.JWT.Secret, ttl)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Slotboard",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open the snapshot database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	snapshots := snapshot.NewSQLiteRepository(db.DB)

	// Connect to the hub
	hubClient, err := hub.Connect(ctx, cfg.Hub, log)
	if err != nil {
		return fmt.Errorf("connecting to hub: %w", err)
	}
	defer func() {
		log.Info("disconnecting from hub")
		if closeErr := hubClient.Close(); closeErr != nil {
			log.Error("error closing hub connection", "error", closeErr)
		}
	}()
	log.Info("hub connected", "url", cfg.Hub.URL)

	// Connect to InfluxDB (optional)
	var telemetrySink dashboard.Telemetry
	checks := map[string]api.HealthChecker{
		"database": db,
		"hub":      hubClient,
	}
	if cfg.InfluxDB.Enabled {
		telemetryClient, telErr := telemetry.Connect(cfg.InfluxDB)
		if telErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", telErr)
		}
		defer func() {
			log.Info("closing telemetry connection")
			if closeErr := telemetryClient.Close(); closeErr != nil {
				log.Error("error closing telemetry", "error", closeErr)
			}
		}()
		telemetryClient.SetOnError(func(err error) {
			log.Error("telemetry write error", "error", err)
		})
		telemetrySink = telemetryClient
		hubClient.SetTelemetry(telemetryClient)
		checks["telemetry"] = telemetryClient
		log.Info("telemetry connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("telemetry disabled")
	}

	// Dashboard renderer
	dash := dashboard.New(hubClient, snapshots, telemetrySink, log, cfg.Dashboard)

	// Connect to MQTT for cache invalidation (optional)
	if cfg.MQTT.Enabled {
		mqttClient, mqttErr := mqtt.Connect(cfg.MQTT)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		invalidateEntry := func(entryID string) {
			dash.InvalidateEntry(ctx, entryID)
		}
		// #nosec G115 -- qos validated to 0..2 by config
		if subErr := mqtt.SubscribeInvalidation(mqttClient, byte(cfg.MQTT.QoS), dash.Invalidate, invalidateEntry); subErr != nil {
			return fmt.Errorf("subscribing to hub change events: %w", subErr)
		}
		checks["mqtt"] = mqttClient
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	} else {
		log.Info("MQTT disabled, cache invalidation via explicit refresh only")
	}

	// Start the API server
	server, err := api.New(api.Deps{
		Config:    cfg.API,
		Security:  cfg.Security,
		Logger:    log,
		Dashboard: dash,
		Checks:    checks,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// API server, MQTT, telemetry, hub, database.

	log.Info("Slotboard stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses SLOTBOARD_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("SLOTBOARD_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
