package config

import (
	"fmt"
	"strings"

	"github.com/nadzzz/ordertaker/internal/lexicon"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if err := validPort("server.health_port", c.Server.HealthPort); err != nil {
		return err
	}
	if c.Transports.GRPC.Enabled {
		if err := validPort("transports.grpc.port", c.Transports.GRPC.Port); err != nil {
			return err
		}
	}
	if c.Transports.HTTP.Enabled {
		if err := validPort("transports.http.port", c.Transports.HTTP.Port); err != nil {
			return err
		}
	}
	if c.Transports.MQTT.Enabled {
		if c.Transports.MQTT.Broker == "" {
			return fmt.Errorf("transports.mqtt.broker is required when mqtt is enabled")
		}
		if c.Transports.MQTT.QoS > 2 {
			return fmt.Errorf("transports.mqtt.qos must be 0, 1 or 2 (got %d)", c.Transports.MQTT.QoS)
		}
	}

	if err := c.Transcriber.validate(); err != nil {
		return fmt.Errorf("transcriber: %w", err)
	}

	if _, err := lexicon.ParseLanguage(c.Parser.DefaultLanguage); err != nil {
		return fmt.Errorf("parser.default_language: %w", err)
	}

	if err := c.Matcher.validate(); err != nil {
		return fmt.Errorf("matcher: %w", err)
	}

	if err := c.Catalog.validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	for name, t := range c.Targets {
		switch strings.ToLower(t.Protocol) {
		case "http", "grpc", "mqtt":
		default:
			return fmt.Errorf("targets.%s.protocol must be http, grpc or mqtt (got %q)", name, t.Protocol)
		}
		if t.Endpoint == "" {
			return fmt.Errorf("targets.%s.endpoint is required", name)
		}
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text (got %q)", c.Logging.Format)
	}
	return nil
}

func validPort(key string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be in 1..65535 (got %d)", key, port)
	}
	return nil
}

func (t *TranscriberConfig) validate() error {
	switch t.Backend {
	case "none":
		return nil
	case "whisper":
	default:
		return fmt.Errorf("unknown backend %q (want whisper or none)", t.Backend)
	}
	if t.Whisper.Endpoint == "" {
		return fmt.Errorf("whisper.endpoint is required")
	}
	switch t.Whisper.Type {
	case "", "openai", "asr":
	default:
		return fmt.Errorf("whisper.type must be openai or asr (got %q)", t.Whisper.Type)
	}
	return nil
}

func (m *MatcherConfig) validate() error {
	check := func(key string, v float64) error {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0, 1] (got %v)", key, v)
		}
		return nil
	}
	s := MatcherSettings{Threshold: m.Threshold, ExactConfidence: m.ExactConfidence, AliasConfidence: m.AliasConfidence}
	if err := s.validate(check); err != nil {
		return err
	}
	for tenant := range m.Tenants {
		if err := m.ForTenant(tenant).validate(check); err != nil {
			return fmt.Errorf("tenants.%s: %w", tenant, err)
		}
	}
	return nil
}

func (s MatcherSettings) validate(check func(string, float64) error) error {
	if err := check("threshold", s.Threshold); err != nil {
		return err
	}
	if err := check("exact_confidence", s.ExactConfidence); err != nil {
		return err
	}
	if s.ExactConfidence == 0 {
		return fmt.Errorf("exact_confidence must be > 0")
	}
	if err := check("alias_confidence", s.AliasConfidence); err != nil {
		return err
	}
	if s.AliasConfidence == 0 {
		return fmt.Errorf("alias_confidence must be > 0")
	}
	return nil
}

func (c *CatalogConfig) validate() error {
	switch c.Backend {
	case "file":
		if c.Dir == "" {
			return fmt.Errorf("dir is required for the file backend")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres backend")
		}
		if c.Database.MaxConns < 1 {
			return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
		}
		if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("database.min_conns must be in 0..max_conns (got %d)", c.Database.MinConns)
		}
	default:
		return fmt.Errorf("unknown backend %q (want file or postgres)", c.Backend)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0 (got %d)", c.CacheSize)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be >= 0 (got %v)", c.CacheTTL)
	}
	return nil
}
