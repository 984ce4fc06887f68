package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Sim     SimConfig     `mapstructure:"sim"`
	Log     LogConfig     `mapstructure:"log"`
	Prefabs PrefabsConfig `mapstructure:"prefabs"`
}

type SimConfig struct {
	// TickRate is the number of fixed steps per simulated second.
	TickRate int `mapstructure:"tick_rate"`
	// Ticks caps the run; 0 runs until interrupted.
	Ticks    int    `mapstructure:"ticks"`
	Realtime bool   `mapstructure:"realtime"`
	Level    string `mapstructure:"level"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

type PrefabsConfig struct {
	Watch     bool   `mapstructure:"watch"`
	Dir       string `mapstructure:"dir"`
	LevelsDir string `mapstructure:"levels_dir"`
}

// Step is the fixed simulation step.
func (c SimConfig) Step() float64 {
	return 1 / float64(c.TickRate)
}

// Interval is the wall-clock time between ticks in realtime mode.
func (c SimConfig) Interval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Load reads config from the given YAML file path. An empty path yields the
// defaults. PEANUT_* environment variables override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("peanut")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("sim.tick_rate", 30)
	v.SetDefault("sim.ticks", 0)
	v.SetDefault("sim.realtime", false)
	v.SetDefault("sim.level", "arena")
	v.SetDefault("log.debug", false)
	v.SetDefault("prefabs.watch", false)
	v.SetDefault("prefabs.dir", "prefabs")
	v.SetDefault("prefabs.levels_dir", "levels")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.Sim.TickRate <= 0 {
		return nil, fmt.Errorf("config: sim.tick_rate %d must be positive", cfg.Sim.TickRate)
	}
	if cfg.Sim.Ticks < 0 {
		return nil, fmt.Errorf("config: sim.ticks %d is negative", cfg.Sim.Ticks)
	}
	return cfg, nil
}
