package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// History modes of the simulator.
const (
	HistoryModeRolling = "rolling"
	HistoryModeRedraw  = "redraw"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Simulator  SimulatorConfig  `mapstructure:"simulator"`
	Detector   DetectorConfig   `mapstructure:"detector"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	RabbitMQ   RabbitMQConfig   `mapstructure:"rabbitmq"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

type SimulatorConfig struct {
	RefreshInterval           time.Duration `mapstructure:"refresh_interval"`
	HistoryPoints             int           `mapstructure:"history_points"`
	HistoryStep               time.Duration `mapstructure:"history_step"`
	HistoryMode               string        `mapstructure:"history_mode"`
	HistoryVariation          float64       `mapstructure:"history_variation"`
	AnomalyProbability        float64       `mapstructure:"anomaly_probability"`
	HistoryAnomalyProbability float64       `mapstructure:"history_anomaly_probability"`
	ConnectivityProbability   float64       `mapstructure:"connectivity_probability"`
	Seed                      uint64        `mapstructure:"seed"`
	MaxNotifications          int           `mapstructure:"max_notifications"`
}

// DetectorConfig tunes the rule-based anomaly classification. Absolute levels
// only apply to LevelSensorType.
type DetectorConfig struct {
	LevelSensorType      string  `mapstructure:"level_sensor_type"`
	Warning              float64 `mapstructure:"warning"`
	Critical             float64 `mapstructure:"critical"`
	Extreme              float64 `mapstructure:"extreme"`
	TrendWindow          int     `mapstructure:"trend_window"`
	TrendRise            float64 `mapstructure:"trend_rise"`
	ConsecutiveIncreases int     `mapstructure:"consecutive_increases"`
	VelocityWindow       int     `mapstructure:"velocity_window"`
	VelocityPerMinute    float64 `mapstructure:"velocity_per_minute"`
}

type DatabaseConfig struct {
	TimescaleDB PostgresConfig `mapstructure:"timescaledb"`
}

type PostgresConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	Retention       time.Duration `mapstructure:"retention"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	SnapshotKey  string        `mapstructure:"snapshot_key"`
	SnapshotTTL  time.Duration `mapstructure:"snapshot_ttl"`
	AlertChannel string        `mapstructure:"alert_channel"`
}

// Addr returns host:port for the redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RabbitMQConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	URL        string `mapstructure:"url"`
	Exchange   string `mapstructure:"exchange"`
	RoutingKey string `mapstructure:"routing_key"`
}

type MonitoringConfig struct {
	MetricsPath string `mapstructure:"metrics_path"`
	Namespace   string `mapstructure:"namespace"`
}

// Load initializes configuration from .env.local, environment variables and config file
func Load() (*Config, error) {
	// .env.local is optional; real environment variables win over it
	_ = godotenv.Load("./.env.local")

	v := viper.New()
	v.SetEnvPrefix("SENSORDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

// setDefaults registers every key; AutomaticEnv only reaches keys viper already knows
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.cors_origins", []string{"*"})

	// Simulator defaults
	v.SetDefault("simulator.refresh_interval", "10s")
	v.SetDefault("simulator.history_points", 24)
	v.SetDefault("simulator.history_step", "1h")
	v.SetDefault("simulator.history_mode", HistoryModeRolling)
	v.SetDefault("simulator.history_variation", 0.2)
	v.SetDefault("simulator.anomaly_probability", 0.1)
	v.SetDefault("simulator.history_anomaly_probability", 0.05)
	v.SetDefault("simulator.connectivity_probability", 0.95)
	v.SetDefault("simulator.seed", 0)
	v.SetDefault("simulator.max_notifications", 20)

	// Detector defaults
	v.SetDefault("detector.level_sensor_type", "Gas")
	v.SetDefault("detector.warning", 300)
	v.SetDefault("detector.critical", 500)
	v.SetDefault("detector.extreme", 1000)
	v.SetDefault("detector.trend_window", 5)
	v.SetDefault("detector.trend_rise", 0.1)
	v.SetDefault("detector.consecutive_increases", 3)
	v.SetDefault("detector.velocity_window", 3)
	v.SetDefault("detector.velocity_per_minute", 50)

	// Database defaults
	v.SetDefault("database.timescaledb.enabled", false)
	v.SetDefault("database.timescaledb.host", "")
	v.SetDefault("database.timescaledb.port", 5432)
	v.SetDefault("database.timescaledb.user", "")
	v.SetDefault("database.timescaledb.password", "")
	v.SetDefault("database.timescaledb.dbname", "")
	v.SetDefault("database.timescaledb.sslmode", "disable")
	v.SetDefault("database.timescaledb.retention", "30h")
	v.SetDefault("database.timescaledb.cleanup_interval", "1h")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.snapshot_key", "sensordash:snapshot")
	v.SetDefault("redis.snapshot_ttl", "1m")
	v.SetDefault("redis.alert_channel", "sensordash:alerts")

	// RabbitMQ defaults
	v.SetDefault("rabbitmq.enabled", false)
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "sensordash.alerts")
	v.SetDefault("rabbitmq.routing_key", "anomaly.detected")

	// Monitoring defaults
	v.SetDefault("monitoring.metrics_path", "/metrics")
	v.SetDefault("monitoring.namespace", "sensordash")
}

func validateConfig(config *Config) error {
	sim := config.Simulator
	if sim.RefreshInterval <= 0 {
		return fmt.Errorf("simulator refresh interval must be positive")
	}
	if sim.HistoryPoints < 1 {
		return fmt.Errorf("simulator history points must be at least 1")
	}
	if sim.HistoryMode != HistoryModeRolling && sim.HistoryMode != HistoryModeRedraw {
		return fmt.Errorf("unknown simulator history mode %q", sim.HistoryMode)
	}
	for name, p := range map[string]float64{
		"anomaly_probability":         sim.AnomalyProbability,
		"history_anomaly_probability": sim.HistoryAnomalyProbability,
		"connectivity_probability":    sim.ConnectivityProbability,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("simulator %s must be within [0, 1]", name)
		}
	}
	det := config.Detector
	if det.Warning > det.Critical || det.Critical > det.Extreme {
		return fmt.Errorf("detector levels must satisfy warning <= critical <= extreme")
	}
	if det.TrendWindow < 3 || det.ConsecutiveIncreases < 1 || det.VelocityWindow < 1 {
		return fmt.Errorf("detector windows are too small")
	}
	if tsdb := config.Database.TimescaleDB; tsdb.Enabled {
		if tsdb.Host == "" {
			return fmt.Errorf("timescaledb host is required")
		}
		if tsdb.Retention <= 0 || tsdb.CleanupInterval <= 0 {
			return fmt.Errorf("timescaledb retention and cleanup interval must be positive")
		}
	}
	if config.RabbitMQ.Enabled && config.RabbitMQ.URL == "" {
		return fmt.Errorf("rabbitmq url is required")
	}
	return nil
}
