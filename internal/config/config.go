// Package config loads flowmap settings from defaults, an optional TOML file, an
// optional .env file and FLOWMAP_* environment variables, in increasing precedence.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/psidex/flowmap/internal/commuting"
	"github.com/psidex/flowmap/internal/flowgraph"
	"github.com/psidex/flowmap/internal/lib"
	"github.com/psidex/flowmap/internal/loader"
)

const EnvPrefix = "FLOWMAP"

type Config struct {
	LogLevel string          `mapstructure:"log_level"`
	Data     DataConfig      `mapstructure:"data"`
	Server   ServerConfig    `mapstructure:"server"`
	Defaults SelectionConfig `mapstructure:"defaults"`
	Style    flowgraph.Style `mapstructure:"style"`
	Snapshot SnapshotConfig  `mapstructure:"snapshot"`
}

type DataConfig struct {
	Edges       string        `mapstructure:"edges"`
	Nodes       string        `mapstructure:"nodes"`
	Boundaries  string        `mapstructure:"boundaries"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

func (d DataConfig) Sources() loader.Sources {
	return loader.Sources{Edges: d.Edges, Nodes: d.Nodes, Boundaries: d.Boundaries}
}

type ServerConfig struct {
	Address     string        `mapstructure:"address"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

// SelectionConfig is the selection shown before the user picks anything.
type SelectionConfig struct {
	Region  int    `mapstructure:"region"`
	Purpose string `mapstructure:"purpose"`
}

type SnapshotConfig struct {
	Width   int64         `mapstructure:"width"`
	Height  int64         `mapstructure:"height"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("data.edges", "data/commuting_2011_edges.json")
	v.SetDefault("data.nodes", "data/commuting_2011_nodes.json")
	v.SetDefault("data.boundaries", "")
	v.SetDefault("data.http_timeout", 10*time.Second)

	v.SetDefault("server.address", "127.0.0.1:8080")
	v.SetDefault("server.idle_timeout", 10*time.Minute)

	v.SetDefault("defaults.region", 12)
	v.SetDefault("defaults.purpose", commuting.Work.Label())

	style := flowgraph.DefaultStyle()
	v.SetDefault("style.title", style.Title)
	v.SetDefault("style.node_color", style.NodeColor)
	v.SetDefault("style.node_line_color", style.NodeLineColor)
	v.SetDefault("style.edge_color_field", style.EdgeColorField)
	v.SetDefault("style.width_field", style.WidthField)
	hover := make([]map[string]string, 0, len(style.HoverFields))
	for _, h := range style.HoverFields {
		hover = append(hover, map[string]string{"label": h.Label, "field": h.Field})
	}
	v.SetDefault("style.hover_fields", hover)

	v.SetDefault("snapshot.width", 1280)
	v.SetDefault("snapshot.height", 900)
	v.SetDefault("snapshot.timeout", 30*time.Second)
}

// NewViper returns a viper instance with defaults and environment binding set up.
// configFile may be empty.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	}
	return v, nil
}

// Load reads .env (if present) into the environment, then builds the config.
func Load(configFile string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v, err := NewViper(configFile)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := lib.ParseSLogLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "log_level %q", c.LogLevel)
	}
	if c.Data.Edges == "" || c.Data.Nodes == "" {
		return errors.New("data.edges and data.nodes are required")
	}
	if c.Data.HTTPTimeout <= 0 {
		return errors.New("data.http_timeout must be positive")
	}
	if c.Server.Address == "" {
		return errors.New("server.address is required")
	}
	if _, _, err := c.DefaultSelection(); err != nil {
		return errors.Wrap(err, "defaults")
	}
	if err := c.Style.Validate(); err != nil {
		return errors.Wrap(err, "style")
	}
	if c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0 {
		return errors.New("snapshot.width and snapshot.height must be positive")
	}
	return nil
}

// DefaultSelection parses the configured default region and purpose.
func (c *Config) DefaultSelection() (commuting.Region, commuting.Purpose, error) {
	region := commuting.Region(c.Defaults.Region)
	if err := commuting.CheckRegion(region); err != nil {
		return 0, 0, err
	}
	purpose, err := commuting.ParsePurpose(c.Defaults.Purpose)
	if err != nil {
		return 0, 0, err
	}
	return region, purpose, nil
}
