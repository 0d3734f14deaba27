package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"collabviz/genrenet/internal/logging"
	"collabviz/genrenet/internal/network"
)

// Config holds all application configuration.
type Config struct {
	DB      DBConfig      `mapstructure:"db"`
	Network NetworkConfig `mapstructure:"network"`
	Style   StyleConfig   `mapstructure:"style"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

// NetworkConfig tunes the engine. Zero values fall back to engine defaults.
type NetworkConfig struct {
	SizeScale   float64  `mapstructure:"size_scale"`
	Radius      float64  `mapstructure:"radius"`
	NodeOrder   string   `mapstructure:"node_order"` // discovery, alphabetical, count
	Sentinels   []string `mapstructure:"sentinels"`
	MetricLabel string   `mapstructure:"metric_label"`
	LegendBands int      `mapstructure:"legend_bands"`
	ColorLevels int      `mapstructure:"color_levels"`
}

type StyleConfig struct {
	NodeColor  string `mapstructure:"node_color"`
	Background string `mapstructure:"background"`
	Font       string `mapstructure:"font"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // text or json
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

func setDefaults(v *viper.Viper) {
	d := network.DefaultConfig()
	v.SetDefault("db.path", "")
	v.SetDefault("network.size_scale", d.SizeScale)
	v.SetDefault("network.radius", d.Radius)
	v.SetDefault("network.node_order", string(d.NodeOrder))
	v.SetDefault("network.sentinels", d.Sentinels)
	v.SetDefault("network.metric_label", d.MetricLabel)
	v.SetDefault("network.legend_bands", d.LegendBands)
	v.SetDefault("network.color_levels", 256)
	v.SetDefault("style.node_color", d.Style.NodeColor)
	v.SetDefault("style.background", d.Style.Background)
	v.SetDefault("style.font", d.Style.Font)
	v.SetDefault("server.addr", ":8050")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if _, err := network.ParseNodeOrder(c.Network.NodeOrder); err != nil {
		warnings = append(warnings, fmt.Sprintf("%v; using discovery order", err))
	}
	if c.Network.SizeScale <= 0 {
		warnings = append(warnings, fmt.Sprintf("network size_scale %.2f is not positive; using default", c.Network.SizeScale))
	}
	if c.Network.Radius <= 0 {
		warnings = append(warnings, fmt.Sprintf("network radius %.2f is not positive; using default", c.Network.Radius))
	}
	if c.Network.LegendBands < 1 {
		warnings = append(warnings, fmt.Sprintf("network legend_bands %d is below 1; using default", c.Network.LegendBands))
	}
	if !validServerMode(c.Server.Mode) {
		warnings = append(warnings, fmt.Sprintf("server mode '%s' is not debug, release or test; using release", c.Server.Mode))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		warnings = append(warnings, fmt.Sprintf("log format '%s' is not text or json; using text", c.Log.Format))
	}

	return warnings
}

// Load reads configuration from an optional file and the environment
// (GENRENET_ prefix, "." replaced by "_", e.g. GENRENET_NETWORK_NODE_ORDER).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("GENRENET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if warnings := cfg.Validate(); len(warnings) > 0 {
		for _, warning := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
		}
	}

	return &cfg, nil
}

// EngineConfig maps the network and style sections onto the engine's Config
func (c *Config) EngineConfig() *network.Config {
	order, err := network.ParseNodeOrder(c.Network.NodeOrder)
	if err != nil {
		order = network.OrderDiscovery
	}
	return &network.Config{
		SizeScale:   c.Network.SizeScale,
		Radius:      c.Network.Radius,
		NodeOrder:   order,
		Sentinels:   c.Network.Sentinels,
		MetricLabel: c.Network.MetricLabel,
		LegendBands: c.Network.LegendBands,
		Scale:       network.SummerScale{Levels: c.Network.ColorLevels},
		Style: network.Style{
			NodeColor:  c.Style.NodeColor,
			Background: c.Style.Background,
			Font:       c.Style.Font,
		},
	}
}

func validServerMode(mode string) bool {
	switch mode {
	case "", "debug", "release", "test":
		return true
	}
	return false
}

// ServerMode is the configured gin mode, or release when it is unset or unknown
func (c *Config) ServerMode() string {
	if c.Server.Mode == "" || !validServerMode(c.Server.Mode) {
		return "release"
	}
	return c.Server.Mode
}

// LogOptions maps the log section onto logging.Options
func (c *Config) LogOptions() logging.Options {
	return logging.Options{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}
