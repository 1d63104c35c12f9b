package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/mahjong-time/pkg/core/availability"
	"github.com/jakechorley/mahjong-time/pkg/core/model"
)

const configFileName = "time_config.yaml"

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Addr           string   `yaml:"addr" validate:"required"`
	StaticDir      string   `yaml:"staticDir,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// IntervalsConfig configures the common time computation
type IntervalsConfig struct {
	TouchPolicy string `yaml:"touchPolicy,omitempty" validate:"omitempty,oneof=strict inclusive"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL     string          `yaml:"databaseURL,omitempty"`
	DefaultRoomCode string          `yaml:"defaultRoomCode" validate:"required,alphanum"`
	Players         []string        `yaml:"players" validate:"len=4,unique,dive,required"`
	Server          ServerConfig    `yaml:"server"`
	Intervals       IntervalsConfig `yaml:"intervals,omitempty"`
	LogDir          string          `yaml:"logDir" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no file overrides a field
func Default() *Config {
	players := make([]string, len(model.DefaultPlayers))
	copy(players, model.DefaultPlayers)

	return &Config{
		DefaultRoomCode: model.DefaultRoomCode,
		Players:         players,
		Server: ServerConfig{
			Addr:      ":5000",
			StaticDir: "frontend",
		},
		LogDir: "logs",
	}
}

// LoadWithEnv loads the configuration for an environment.
// time_config.<env>.yaml is preferred over time_config.yaml; both are looked up in the
// current directory and then the home directory. With no file at all the defaults are used.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	var cfg *Config
	if configPath == "" {
		cfg = Default()
	} else {
		cfg, err = parseFile(configPath)
		if err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	cfg, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration struct and the interval touch policy
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := availability.ParseTouchPolicy(cfg.Intervals.TouchPolicy); err != nil {
		return fmt.Errorf("invalid intervals.touchPolicy: %w", err)
	}

	return nil
}

// TouchPolicy returns the configured policy for zero-length intersections
func (c *Config) TouchPolicy() availability.TouchPolicy {
	policy, err := availability.ParseTouchPolicy(c.Intervals.TouchPolicy)
	if err != nil {
		return availability.TouchStrict
	}
	return policy
}

// applyEnvOverrides lets hosting platforms choose the port and database through the environment
func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err == nil {
			cfg.Server.Addr = ":" + port
		}
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}
}

// findConfigFile searches for the env specific and then the generic config file in the
// current directory and the home directory. An empty path means no file was found.
func findConfigFile(env string) (string, error) {
	var names []string
	if env != "" {
		names = append(names, fmt.Sprintf("time_config.%s.yaml", env))
	}
	names = append(names, configFileName)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	for _, dir := range []string{".", homeDir} {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", nil
}
