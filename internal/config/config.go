// Package config provides Viper-based configuration loading for the isekai console.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Catalog sources.
const (
	SourceYAML     = "yaml"
	SourcePostgres = "postgres"
)

// Opponent kinds.
const (
	OpponentRandom = "random"
	OpponentScript = "script"
)

// TierSelectionRounds is the only supported game.max_rounds value. It must
// match the number of tiers above the baseline.
const TierSelectionRounds = 3

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a zap sink: "stderr", "stdout" or a file path. Logs share the
	// terminal with the prompts unless redirected to a file.
	Output string `mapstructure:"output"`
}

// CatalogConfig selects where archetypes and worlds come from.
type CatalogConfig struct {
	// Source is "yaml" (ArchetypesDir) or "postgres" (the database section).
	Source string `mapstructure:"source"`
	// ArchetypesDir holds one YAML file per archetype. Also read by import-catalog.
	ArchetypesDir string `mapstructure:"archetypes_dir"`
	// WorldsDir holds one YAML file per world. Worlds are always loaded from YAML.
	WorldsDir string `mapstructure:"worlds_dir"`
	// CacheTTL bounds how long catalog lookups are memoized; 0 disables caching.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// GameConfig configures the tier selection minigame.
type GameConfig struct {
	// MaxRounds caps the winning streak. Only TierSelectionRounds is accepted.
	MaxRounds int `mapstructure:"max_rounds"`
	// Opponent is "random" or "script".
	Opponent string `mapstructure:"opponent"`
	// OpponentScript is the Lua file used when Opponent is "script".
	OpponentScript string `mapstructure:"opponent_script"`
	// InstructionLimit bounds Lua opcodes per opponent call; 0 uses the scripting default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// ConsoleConfig holds terminal settings.
type ConsoleConfig struct {
	// Color enables ANSI colour output.
	Color bool `mapstructure:"color"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
	Console  ConsoleConfig  `mapstructure:"console"`
}

// Validate checks all configuration invariants. The database section is only
// checked when the catalog is served from PostgreSQL.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCatalog(c.Catalog); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Catalog.Source == SourcePostgres {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCatalog(c CatalogConfig) error {
	var errs []string
	switch c.Source {
	case SourceYAML:
		if c.ArchetypesDir == "" {
			errs = append(errs, "catalog.archetypes_dir must not be empty when catalog.source is yaml")
		}
	case SourcePostgres:
	default:
		errs = append(errs, fmt.Sprintf("catalog.source must be one of [yaml, postgres], got %q", c.Source))
	}
	if c.WorldsDir == "" {
		errs = append(errs, "catalog.worlds_dir must not be empty")
	}
	if c.CacheTTL < 0 {
		errs = append(errs, "catalog.cache_ttl must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.MaxRounds != TierSelectionRounds {
		errs = append(errs, fmt.Sprintf("game.max_rounds must be %d, got %d", TierSelectionRounds, g.MaxRounds))
	}
	switch g.Opponent {
	case OpponentRandom:
	case OpponentScript:
		if g.OpponentScript == "" {
			errs = append(errs, "game.opponent_script must not be empty when game.opponent is script")
		}
	default:
		errs = append(errs, fmt.Sprintf("game.opponent must be one of [random, script], got %q", g.Opponent))
	}
	if g.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("game.instruction_limit must be >= 0, got %d", g.InstructionLimit))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ISEKAI_ prefix
	v.SetEnvPrefix("ISEKAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the built-in defaults.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("catalog.source", SourceYAML)
	v.SetDefault("catalog.archetypes_dir", "content/archetypes")
	v.SetDefault("catalog.worlds_dir", "content/worlds")
	v.SetDefault("catalog.cache_ttl", "10m")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "isekai")
	v.SetDefault("database.password", "isekai")
	v.SetDefault("database.name", "isekai")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("game.max_rounds", TierSelectionRounds)
	v.SetDefault("game.opponent", OpponentRandom)
	v.SetDefault("game.opponent_script", "content/scripts/opponent.lua")
	v.SetDefault("game.instruction_limit", 0)

	v.SetDefault("console.color", true)
}
