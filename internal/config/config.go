// Package config handles loading and validating the ordertaker configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the ordertaker daemon.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Transports  TransportsConfig  `mapstructure:"transports"`
	Transcriber TranscriberConfig `mapstructure:"transcriber"`
	Parser      ParserConfig      `mapstructure:"parser"`
	Matcher     MatcherConfig     `mapstructure:"matcher"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Targets     map[string]Target `mapstructure:"targets"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig holds the health check server settings.
type ServerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

// TransportsConfig holds the configuration for each transport layer.
type TransportsConfig struct {
	GRPC GRPCConfig `mapstructure:"grpc"`
	HTTP HTTPConfig `mapstructure:"http"`
	MQTT MQTTConfig `mapstructure:"mqtt"`
}

// GRPCConfig configures the gRPC transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Enabled      bool  `mapstructure:"enabled"`
	Port         int   `mapstructure:"port"`
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

// MQTTConfig configures the MQTT transport.
type MQTTConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Broker       string `mapstructure:"broker"`
	ClientID     string `mapstructure:"client_id"`
	Topic        string `mapstructure:"topic"`         // subscription, tenant is the last level
	ResultPrefix string `mapstructure:"result_prefix"` // results go to <prefix>/<source>
	QoS          byte   `mapstructure:"qos"`
}

// TranscriberConfig selects the speech-to-text backend used for audio orders.
type TranscriberConfig struct {
	Backend string        `mapstructure:"backend"` // "whisper" or "none"
	Whisper WhisperConfig `mapstructure:"whisper"`
}

// WhisperConfig holds Whisper server settings.
type WhisperConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	Type      string        `mapstructure:"type"` // "openai" (default) or "asr" (ahmetoner/whisper-asr-webservice)
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	VADFilter bool          `mapstructure:"vad_filter"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ParserConfig configures transcript interpretation.
type ParserConfig struct {
	DefaultLanguage   string `mapstructure:"default_language"`
	BindModifications bool   `mapstructure:"bind_modifications"`
}

// MatcherConfig holds the menu matching policy and per-tenant overrides.
type MatcherConfig struct {
	Threshold       float64                    `mapstructure:"threshold"`
	ExactConfidence float64                    `mapstructure:"exact_confidence"`
	AliasConfidence float64                    `mapstructure:"alias_confidence"`
	Tenants         map[string]MatcherOverride `mapstructure:"tenants"`
}

// MatcherOverride replaces individual matcher settings for one tenant.
// Unset fields inherit the global value.
type MatcherOverride struct {
	Threshold       *float64 `mapstructure:"threshold"`
	ExactConfidence *float64 `mapstructure:"exact_confidence"`
	AliasConfidence *float64 `mapstructure:"alias_confidence"`
}

// MatcherSettings is the effective matcher policy for one tenant.
type MatcherSettings struct {
	Threshold       float64
	ExactConfidence float64
	AliasConfidence float64
}

// ForTenant resolves the matcher policy for tenant.
func (m MatcherConfig) ForTenant(tenant string) MatcherSettings {
	s := MatcherSettings{
		Threshold:       m.Threshold,
		ExactConfidence: m.ExactConfidence,
		AliasConfidence: m.AliasConfidence,
	}
	o, ok := m.Tenants[tenant]
	if !ok {
		return s
	}
	if o.Threshold != nil {
		s.Threshold = *o.Threshold
	}
	if o.ExactConfidence != nil {
		s.ExactConfidence = *o.ExactConfidence
	}
	if o.AliasConfidence != nil {
		s.AliasConfidence = *o.AliasConfidence
	}
	return s
}

// CatalogConfig selects where tenant spoken-menu catalogs are read from.
type CatalogConfig struct {
	Backend   string         `mapstructure:"backend"` // "file" or "postgres"
	Dir       string         `mapstructure:"dir"`
	Database  DatabaseConfig `mapstructure:"database"`
	CacheSize int            `mapstructure:"cache_size"`
	CacheTTL  time.Duration  `mapstructure:"cache_ttl"`
}

// DatabaseConfig holds PostgreSQL pool settings.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// Target defines a downstream service in the config file.
type Target struct {
	Endpoint string `mapstructure:"endpoint"`
	Protocol string `mapstructure:"protocol"`
	Token    string `mapstructure:"token"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, text
	File       string `mapstructure:"file"`   // empty logs to stdout
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("transports.grpc.enabled", true)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 8080)
	v.SetDefault("transports.http.max_body_bytes", 25<<20)
	v.SetDefault("transports.mqtt.enabled", false)
	v.SetDefault("transports.mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("transports.mqtt.client_id", "ordertaker")
	v.SetDefault("transports.mqtt.topic", "ordertaker/orders/+")
	v.SetDefault("transports.mqtt.result_prefix", "ordertaker/results")
	v.SetDefault("transports.mqtt.qos", 1)
	v.SetDefault("transcriber.backend", "whisper")
	v.SetDefault("transcriber.whisper.endpoint", "http://localhost:8000/v1/audio/transcriptions")
	v.SetDefault("transcriber.whisper.type", "openai")
	v.SetDefault("transcriber.whisper.api_key", "")
	v.SetDefault("transcriber.whisper.model", "whisper-1")
	v.SetDefault("transcriber.whisper.vad_filter", false)
	v.SetDefault("transcriber.whisper.timeout", "60s")
	v.SetDefault("parser.default_language", "gsw")
	v.SetDefault("parser.bind_modifications", false)
	v.SetDefault("matcher.threshold", 0.7)
	v.SetDefault("matcher.exact_confidence", 1.0)
	v.SetDefault("matcher.alias_confidence", 0.9)
	v.SetDefault("catalog.backend", "file")
	v.SetDefault("catalog.dir", "./catalogs")
	v.SetDefault("catalog.database.dsn", "")
	v.SetDefault("catalog.database.max_conns", 10)
	v.SetDefault("catalog.database.min_conns", 1)
	v.SetDefault("catalog.database.max_conn_lifetime", "1h")
	v.SetDefault("catalog.database.max_conn_idle_time", "30m")
	v.SetDefault("catalog.cache_size", 256)
	v.SetDefault("catalog.cache_ttl", "5m")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.max_size_mb", 64)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 14)
	v.SetDefault("logging.compress", true)
}

// Load reads the configuration from file, environment variables, and defaults,
// then validates it.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./ordertaker.yaml, ./configs/ordertaker.yaml, /etc/ordertaker/ordertaker.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("ordertaker")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/ordertaker")
	}

	// Environment variables: ORDERTAKER_SERVER_HEALTH_PORT, ORDERTAKER_CATALOG_BACKEND, etc.
	v.SetEnvPrefix("ORDERTAKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The config file is optional; env vars and defaults are sufficient.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${WHISPER_API_KEY}")
	cfg.Transcriber.Whisper.APIKey = resolveEnvRef(cfg.Transcriber.Whisper.APIKey)
	cfg.Catalog.Database.DSN = resolveEnvRef(cfg.Catalog.Database.DSN)
	for name, target := range cfg.Targets {
		target.Token = resolveEnvRef(target.Token)
		cfg.Targets[name] = target
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}
