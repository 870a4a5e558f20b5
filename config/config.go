// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Arena     ArenaConfig     `yaml:"arena"`
	Run       RunConfig       `yaml:"run"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// PhysicsConfig holds the per-step force and integration parameters.
type PhysicsConfig struct {
	DT            float64 `yaml:"dt"`              // seconds per tick
	Viscosity     float64 `yaml:"viscosity"`       // drag coefficient on velocity and spin
	SpringK       float64 `yaml:"spring_k"`        // stiffness shared by both connection springs
	CenterRestLen float64 `yaml:"center_rest_len"` // rest length of the center-to-center spring
	DiffusionRate float64 `yaml:"diffusion_rate"`  // resource transfer rate per second (0 = off)
}

// ArenaConfig holds cell storage parameters.
type ArenaConfig struct {
	InitialCapacity int `yaml:"initial_capacity"` // slots pre-allocated at startup
	MaxSlots        int `yaml:"max_slots"`        // hard slot cap (0 = unbounded growth)
}

// RunConfig holds headless run parameters.
type RunConfig struct {
	MaxTicks       int `yaml:"max_ticks"`        // stop after N ticks (0 = unlimited)
	StepsPerUpdate int `yaml:"steps_per_update"` // simulation ticks per update call
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // stats window size in seconds
	PerfWindow  int     `yaml:"perf_window"`  // ticks averaged by the perf collector
	LogInterval float64 `yaml:"log_interval"` // seconds between periodic stat logs
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	StatsWindowTicks int // Telemetry.StatsWindow in ticks
	LogIntervalTicks int // Telemetry.LogInterval in ticks
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Physics.DT <= 0 {
		c.Physics.DT = 1.0 / 60.0
	}
	c.Derived.StatsWindowTicks = int(c.Telemetry.StatsWindow / c.Physics.DT)
	c.Derived.LogIntervalTicks = int(c.Telemetry.LogInterval / c.Physics.DT)
	if c.Derived.StatsWindowTicks < 1 {
		c.Derived.StatsWindowTicks = 1
	}
	if c.Derived.LogIntervalTicks < 1 {
		c.Derived.LogIntervalTicks = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
