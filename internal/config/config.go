package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Scenario   ScenarioConfig   `toml:"scenario"`
	Scripting  ScriptingConfig  `toml:"scripting"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	TickRate  time.Duration `toml:"tick_rate"`  // wall-clock time between ticks
	Step      float32       `toml:"step"`       // simulated seconds per tick (dt)
	MaxTicks  int           `toml:"max_ticks"`  // 0 = run until signalled
	DumpEvery int           `toml:"dump_every"` // ticks between state dumps, 0 = never
}

type ScenarioConfig struct {
	Path string `toml:"path"`
}

type ScriptingConfig struct {
	Dir       string `toml:"dir"`
	Autopilot bool   `toml:"autopilot"`
	Console   bool   `toml:"console"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Simulation.TickRate <= 0 {
		return nil, fmt.Errorf("simulation.tick_rate must be positive, got %s", cfg.Simulation.TickRate)
	}
	if cfg.Simulation.Step <= 0 {
		return nil, fmt.Errorf("simulation.step must be positive, got %v", cfg.Simulation.Step)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate:  100 * time.Millisecond,
			Step:      0.1,
			DumpEvery: 50,
		},
		Scenario: ScenarioConfig{
			Path: "data/yaml/scenario.yaml",
		},
		Scripting: ScriptingConfig{
			Dir:       "scripts",
			Autopilot: true,
			Console:   true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
