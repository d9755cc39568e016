// Package config provides configuration management for sceneimport using Viper.
// It supports configuration from files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default configuration values.
const (
	defaultServerPort      = 8080
	defaultServerTimeout   = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second

	defaultCreaseAngleDegrees  = 80.0
	defaultSplitMaxVertices    = 1_000_000
	defaultSplitMaxTriangles   = 1_000_000
	defaultMaxBoneWeights      = 4
	defaultSignatureProbeSize  = 200
	defaultRemoteTimeout       = 30 * time.Second
	defaultRemoteRetryAttempts = 3
	defaultRemoteRetryDelay    = 1 * time.Second
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Import  ImportConfig  `mapstructure:"import"`
	Remote  RemoteConfig  `mapstructure:"remote"`
}

// ServerConfig holds HTTP server configuration for the optional
// httpapi surface (cmd/sceneimport serve).
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, text
	AddSource  bool   `mapstructure:"add_source"`
	TimeFormat string `mapstructure:"time_format"`
}

// ImportConfig holds defaults for the dispatcher and post-processing
// pipeline. Values here seed the property store via
// dispatcher.Builder.WithPropertyDefaults; a caller can still override
// any of them per-request through the Dispatcher's SetProperty* methods.
type ImportConfig struct {
	// CreaseAngleDegrees is the default smoothing-group crease angle
	// for gensmoothnormals, in degrees.
	CreaseAngleDegrees float64 `mapstructure:"crease_angle_degrees"`
	// SplitMaxVertices and SplitMaxTriangles are the default
	// splitlargemeshes thresholds.
	SplitMaxVertices  int `mapstructure:"split_max_vertices"`
	SplitMaxTriangles int `mapstructure:"split_max_triangles"`
	// MaxBoneWeights is the default limitboneweights cap.
	MaxBoneWeights int `mapstructure:"max_bone_weights"`
	// SignatureProbeBytes bounds how far into a file the importer
	// registry's signature probing will read. Supports human-readable
	// values like "200B" or a raw byte count.
	SignatureProbeBytes ByteSize `mapstructure:"signature_probe_bytes"`
	// VerboseValidation re-runs scene structural validation between
	// every pipeline stage, at a performance cost, to localize which
	// stage broke an invariant.
	VerboseValidation bool `mapstructure:"verbose_validation"`
}

// RemoteConfig holds the resilient HTTP client settings sceneio.RemoteIO
// uses to fetch remote assets.
type RemoteConfig struct {
	Timeout       Duration `mapstructure:"timeout"`
	RetryAttempts int      `mapstructure:"retry_attempts"`
	RetryDelay    Duration `mapstructure:"retry_delay"`
	UserAgent     string   `mapstructure:"user_agent"`
}

// Load reads configuration from file and environment variables.
// Environment variables take precedence over file configuration.
// Environment variables are prefixed with SCENEIMPORT_ and use
// underscores for nesting, e.g. SCENEIMPORT_SERVER_PORT=8080.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/sceneimport")
		v.AddConfigPath("$HOME/.sceneimport")
	}

	v.SetEnvPrefix("SCENEIMPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults configures default values for all configuration options.
// This should be called before reading the config file to ensure
// defaults are in place.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.read_timeout", defaultServerTimeout)
	v.SetDefault("server.write_timeout", defaultServerTimeout)
	v.SetDefault("server.shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	v.SetDefault("import.crease_angle_degrees", defaultCreaseAngleDegrees)
	v.SetDefault("import.split_max_vertices", defaultSplitMaxVertices)
	v.SetDefault("import.split_max_triangles", defaultSplitMaxTriangles)
	v.SetDefault("import.max_bone_weights", defaultMaxBoneWeights)
	v.SetDefault("import.signature_probe_bytes", defaultSignatureProbeSize)
	v.SetDefault("import.verbose_validation", false)

	v.SetDefault("remote.timeout", defaultRemoteTimeout)
	v.SetDefault("remote.retry_attempts", defaultRemoteRetryAttempts)
	v.SetDefault("remote.retry_delay", defaultRemoteRetryDelay)
	v.SetDefault("remote.user_agent", "sceneimport/1.0")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	const maxPort = 65535
	if c.Server.Port < 1 || c.Server.Port > maxPort {
		return fmt.Errorf("server.port must be between 1 and %d", maxPort)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	if c.Import.CreaseAngleDegrees < 0 || c.Import.CreaseAngleDegrees > 180 {
		return fmt.Errorf("import.crease_angle_degrees must be between 0 and 180")
	}
	if c.Import.SplitMaxVertices < 3 {
		return fmt.Errorf("import.split_max_vertices must be at least 3")
	}
	if c.Import.SplitMaxTriangles < 1 {
		return fmt.Errorf("import.split_max_triangles must be at least 1")
	}
	if c.Import.MaxBoneWeights < 1 {
		return fmt.Errorf("import.max_bone_weights must be at least 1")
	}

	if c.Remote.RetryAttempts < 0 {
		return fmt.Errorf("remote.retry_attempts must not be negative")
	}

	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
