package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"episodemap/galaxy/internal/graph"
)

// Config holds galaxy configuration.
type Config struct {
	Env    string             `toml:"env"` // "development" or "production"
	DB     string             `toml:"db"`
	Graph  GraphConfig        `toml:"graph"`
	Layout graph.LayoutConfig `toml:"layout"`
	Server ServerConfig       `toml:"server"`
	UI     UIConfig           `toml:"ui"`
}

// GraphConfig controls edge derivation and initial placement.
type GraphConfig struct {
	Threshold     int     `toml:"threshold"`
	StrengthScale float64 `toml:"strength_scale"`
	Seed          uint64  `toml:"seed"` // 0 picks a random seed per run
}

// ServerConfig controls the frame loop and HTTP surface.
type ServerConfig struct {
	Addr string `toml:"addr"`
	FPS  int    `toml:"fps"`
}

// UIConfig controls terminal output.
type UIConfig struct {
	Color bool `toml:"color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Env: "development",
		Graph: GraphConfig{
			Threshold:     graph.ConnectionThreshold,
			StrengthScale: graph.StrengthScale,
		},
		Layout: graph.DefaultLayoutConfig(),
		Server: ServerConfig{Addr: ":8080", FPS: 60},
		UI:     UIConfig{Color: true},
	}
}

// BuildOptions converts the graph section for the builder
func (c *Config) BuildOptions() graph.BuildOptions {
	return graph.BuildOptions{
		Threshold:     c.Graph.Threshold,
		StrengthScale: c.Graph.StrengthScale,
		Bounds:        c.Layout.Bounds,
	}
}

// IsProduction reports whether production logging is selected
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects parameters the simulator cannot run with
func (c *Config) Validate() error {
	if c.Graph.Threshold < 1 {
		return fmt.Errorf("graph.threshold must be >= 1, got %d", c.Graph.Threshold)
	}
	if c.Graph.StrengthScale <= 0 {
		return fmt.Errorf("graph.strength_scale must be > 0, got %g", c.Graph.StrengthScale)
	}
	if c.Layout.Damping <= 0 || c.Layout.Damping >= 1 {
		return fmt.Errorf("layout.damping must be in (0, 1), got %g", c.Layout.Damping)
	}
	if c.Layout.MaxVelocity <= 0 {
		return fmt.Errorf("layout.max_velocity must be > 0, got %g", c.Layout.MaxVelocity)
	}
	b := c.Layout.Bounds
	if b.X <= 0 || b.Y <= 0 || b.Z <= 0 {
		return fmt.Errorf("layout.bounds must be positive, got %+v", b)
	}
	if c.Server.FPS < 1 {
		return fmt.Errorf("server.fps must be >= 1, got %d", c.Server.FPS)
	}
	return nil
}

// ConfigDir returns the galaxy config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "galaxy")
}

func configPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file (defaults when absent), a .env file in the
// working directory if present, then GALAXY_* environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = configPath()
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GALAXY_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("GALAXY_DB"); v != "" {
		cfg.DB = v
	}
	if v := os.Getenv("GALAXY_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("GALAXY_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Graph.Seed = seed
		}
	}
}

// Save writes the config to its default path.
func Save(cfg *Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	path := configPath()
	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}
	return Save(Default())
}
