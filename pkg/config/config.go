package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cbodonnell/stoneworks/pkg/accessor"
	"github.com/cbodonnell/stoneworks/pkg/cell"
	"github.com/cbodonnell/stoneworks/pkg/log"
	"github.com/cbodonnell/stoneworks/pkg/mutations"
	"github.com/cbodonnell/stoneworks/pkg/schematic"
	"github.com/cbodonnell/stoneworks/pkg/world"
	"github.com/muhammadmuzzammil1998/jsonc"
	"gopkg.in/yaml.v3"
)

// DatabaseURLEnv overrides Config.DatabaseURL when set.
const DatabaseURLEnv = "STONEWORKS_DATABASE_URL"

// Duration is a time.Duration read from strings like "50ms".
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d *Duration) parse(s string) error {
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %v", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.parse(value.Value)
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	return d.parse(string(b))
}

// WorldConfig describes one in-memory world.
type WorldConfig struct {
	Name string `yaml:"name" json:"name"`
	// Typed worlds store block data strings instead of numeric variants.
	Typed bool `yaml:"typed" json:"typed"`
	MinY  int  `yaml:"min_y" json:"min_y"`
	MaxY  int  `yaml:"max_y" json:"max_y"`
}

func (w WorldConfig) GridOptions() world.GridOptions {
	return world.GridOptions{Typed: w.Typed, MinY: w.MinY, MaxY: w.MaxY}
}

type Config struct {
	TickInterval Duration `yaml:"tick_interval" json:"tick_interval"`
	MaxChecks    int      `yaml:"max_checks" json:"max_checks"`
	MaxWrites    int      `yaml:"max_writes" json:"max_writes"`
	PasteBudget  int      `yaml:"paste_budget" json:"paste_budget"`
	// MaxTasks bounds the submitted closures run per tick.
	MaxTasks    int      `yaml:"max_tasks" json:"max_tasks"`
	Accessor    string   `yaml:"accessor" json:"accessor"`
	SparseTypes []string `yaml:"sparse_types" json:"sparse_types"`

	Worlds []WorldConfig `yaml:"worlds" json:"worlds"`

	SchematicDir string `yaml:"schematic_dir" json:"schematic_dir"`
	Compress     bool   `yaml:"compress" json:"compress"`
	DatabaseURL  string `yaml:"database_url" json:"database_url"`
	Migrations   string `yaml:"migrations" json:"migrations"`

	APIPort       int      `yaml:"api_port" json:"api_port"`
	StatsInterval Duration `yaml:"stats_interval" json:"stats_interval"`
	LogLevel      string   `yaml:"log_level" json:"log_level"`
}

// Default returns the configuration used for every field a file leaves out.
func Default() *Config {
	return &Config{
		TickInterval:  Duration(50 * time.Millisecond), // 20 ticks per second
		MaxChecks:     mutations.DefaultMaxChecks,
		MaxWrites:     mutations.DefaultMaxWrites,
		PasteBudget:   schematic.DefaultPasteBudget,
		MaxTasks:      100,
		Accessor:      string(accessor.VariantAuto),
		SparseTypes:   append([]string(nil), cell.DefaultSparseTypes...),
		Worlds:        []WorldConfig{{Name: "world", MinY: world.DefaultMinY, MaxY: world.DefaultMaxY}},
		SchematicDir:  "schematics",
		DatabaseURL:   "sqlite://stoneworks.db",
		Migrations:    "./migrations",
		APIPort:       8080,
		StatsInterval: Duration(10 * time.Second),
		LogLevel:      "info",
	}
}

// Load reads a YAML (.yaml, .yml) or JSON with comments (.json, .jsonc) file
// over the defaults, applies environment overrides and validates the result.
// An empty path loads the defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
		if err := decode(path, b, cfg); err != nil {
			return nil, err
		}
	}

	if connStr := os.Getenv(DatabaseURLEnv); connStr != "" {
		cfg.DatabaseURL = connStr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("failed to parse yaml config: %v", err)
		}
	case ".json", ".jsonc":
		// decode worlds into fresh elements, as yaml does
		defaults := cfg.Worlds
		cfg.Worlds = nil
		if err := jsonc.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("failed to parse jsonc config: %v", err)
		}
		if cfg.Worlds == nil {
			cfg.Worlds = defaults
		}
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}
	return nil
}

// Validate checks ranges and cross-field consistency.
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive")
	}
	if c.MaxChecks <= 0 || c.MaxWrites <= 0 {
		return fmt.Errorf("max_checks and max_writes must be positive")
	}
	if c.PasteBudget <= 0 {
		return fmt.Errorf("paste_budget must be positive")
	}
	if c.MaxTasks <= 0 {
		return fmt.Errorf("max_tasks must be positive")
	}
	if _, err := accessor.ParseVariant(c.Accessor); err != nil {
		return err
	}
	if _, err := log.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if len(c.Worlds) == 0 {
		return fmt.Errorf("at least one world is required")
	}
	seen := make(map[string]bool, len(c.Worlds))
	for _, w := range c.Worlds {
		if w.Name == "" {
			return fmt.Errorf("world name is required")
		}
		if seen[w.Name] {
			return fmt.Errorf("duplicate world %q", w.Name)
		}
		seen[w.Name] = true
		if w.MinY > w.MaxY {
			return fmt.Errorf("world %q: min_y %d is above max_y %d", w.Name, w.MinY, w.MaxY)
		}
	}
	if c.SchematicDir == "" {
		return fmt.Errorf("schematic_dir is required")
	}
	if c.APIPort < 0 || c.APIPort > 65535 {
		return fmt.Errorf("api_port %d out of range", c.APIPort)
	}
	return nil
}

// SparseSet returns the configured sparse types.
func (c *Config) SparseSet() cell.SparseSet {
	return cell.NewSparseSet(c.SparseTypes...)
}

// Variant returns the configured accessor variant. Validate must have passed.
func (c *Config) Variant() accessor.Variant {
	v, _ := accessor.ParseVariant(c.Accessor)
	return v
}
