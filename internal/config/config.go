package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Build     BuildConfig     `toml:"build"`
	World     WorldConfig     `toml:"world"`
	Character CharacterConfig `toml:"character"`
	Logging   LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Name             string        `toml:"name"`
	TickRate         time.Duration `toml:"tick_rate"`
	MaxEventsPerTick int           `toml:"max_events_per_tick"`
	InputQueueSize   int           `toml:"input_queue_size"`
	StartTime        int64         // unix seconds, set by Parse, not from config
}

// Uptime returns the time since the config was loaded, to the second.
func (c ServerConfig) Uptime(now time.Time) time.Duration {
	if c.StartTime == 0 {
		return 0
	}
	return now.Sub(time.Unix(c.StartTime, 0)).Truncate(time.Second)
}

type BuildConfig struct {
	RotationScale float64       `toml:"rotation_scale"` // yaw degrees per unit of rotate input
	TraceDistance float64       `toml:"trace_distance"` // max preview ray length in world units
	DefaultKind   string        `toml:"default_kind"`   // initial selection, empty = none
	CatalogPath   string        `toml:"catalog"`
	ScriptsDir    string        `toml:"scripts_dir"`
	NoticeTTL     time.Duration `toml:"notice_ttl"` // how long HUD notices stay up
}

type WorldConfig struct {
	SizeX        int `toml:"size_x"`
	SizeY        int `toml:"size_y"`
	SizeZ        int `toml:"size_z"`
	GroundHeight int `toml:"ground_height"` // voxels below this Z are solid
}

type CharacterConfig struct {
	SpawnX          float64 `toml:"spawn_x"`
	SpawnY          float64 `toml:"spawn_y"`
	WalkSpeed       float64 `toml:"walk_speed"` // units per second
	LookSensitivity float64 `toml:"look_sensitivity"`
	EyeHeight       float64 `toml:"eye_height"`
	MaxPitch        float64 `toml:"max_pitch"` // degrees, symmetric clamp
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
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("server.tick_rate must be positive, got %s", c.Server.TickRate))
	}
	if c.Server.MaxEventsPerTick <= 0 {
		errs = append(errs, fmt.Errorf("server.max_events_per_tick must be positive, got %d", c.Server.MaxEventsPerTick))
	}
	if c.Build.TraceDistance <= 0 {
		errs = append(errs, fmt.Errorf("build.trace_distance must be positive, got %g", c.Build.TraceDistance))
	}
	if c.World.SizeX <= 0 || c.World.SizeY <= 0 || c.World.SizeZ <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %dx%dx%d", c.World.SizeX, c.World.SizeY, c.World.SizeZ))
	}
	if c.World.GroundHeight < 0 || c.World.GroundHeight > c.World.SizeZ {
		errs = append(errs, fmt.Errorf("world.ground_height %d outside 0..%d", c.World.GroundHeight, c.World.SizeZ))
	}
	return errors.Join(errs...)
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name:             "buildsys",
			TickRate:         50 * time.Millisecond,
			MaxEventsPerTick: 32,
			InputQueueSize:   128,
		},
		Build: BuildConfig{
			RotationScale: 10.0,
			TraceDistance: 64.0,
			CatalogPath:   "data/yaml/structure_list.yaml",
			ScriptsDir:    "scripts",
			NoticeTTL:     5 * time.Second,
		},
		World: WorldConfig{
			SizeX:        64,
			SizeY:        64,
			SizeZ:        32,
			GroundHeight: 1,
		},
		Character: CharacterConfig{
			SpawnX:          32,
			SpawnY:          32,
			WalkSpeed:       5.0,
			LookSensitivity: 1.0,
			EyeHeight:       1.7,
			MaxPitch:        89,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
