package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths     PathsConfig     `mapstructure:"paths"     yaml:"paths"`
	Codec     CodecConfig     `mapstructure:"codec"     yaml:"codec"`
	Keywords  KeywordsConfig  `mapstructure:"keywords"  yaml:"keywords"`
	Lifecycle LifecycleConfig `mapstructure:"lifecycle" yaml:"lifecycle"`
	LogLevel  string          `mapstructure:"log_level" yaml:"log_level"`
}

type PathsConfig struct {
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
	Meme    string `mapstructure:"meme"     yaml:"meme"`
}

type CodecConfig struct {
	Workers int  `mapstructure:"workers" yaml:"workers"`
	NFC     bool `mapstructure:"nfc"     yaml:"nfc"`
}

type KeywordsConfig struct {
	Top int `mapstructure:"top" yaml:"top"`
}

type LifecycleConfig struct {
	MovingAvgWindow  int     `mapstructure:"moving_avg_window" yaml:"moving_avg_window"`
	DeltaWindow      int     `mapstructure:"delta_window"      yaml:"delta_window"`
	GrowthThreshold  float64 `mapstructure:"growth_threshold"  yaml:"growth_threshold"`
	DeclineThreshold float64 `mapstructure:"decline_threshold" yaml:"decline_threshold"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			DataDir: "data",
			Meme:    "sample",
		},
		Codec: CodecConfig{
			Workers: 4,
			NFC:     true,
		},
		Keywords: KeywordsConfig{
			Top: 20,
		},
		Lifecycle: LifecycleConfig{
			MovingAvgWindow:  7,
			DeltaWindow:      3,
			GrowthThreshold:  -10.5,
			DeclineThreshold: -10.3,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("data-dir", defaults.Paths.DataDir, "Root of the raw/preprocessed/analysis data tree")
	fs.String("meme", defaults.Paths.Meme, "Meme name used in every input and output file name")
	fs.Int("workers", defaults.Codec.Workers, "Captions encoded in parallel")
	fs.Bool("nfc", defaults.Codec.NFC, "NFC-normalize captions before cleaning")
	fs.Int("top", defaults.Keywords.Top, "Keyword rows printed to stdout (0 disables the preview)")
	fs.Int("moving-avg-window", defaults.Lifecycle.MovingAvgWindow, "Rolling window (days) for daily post counts")
	fs.Int("delta-window", defaults.Lifecycle.DeltaWindow, "Rolling window (days) smoothing the moving-average delta")
	fs.Float64("growth-threshold", defaults.Lifecycle.GrowthThreshold, "Delta above which a day is in the growth phase")
	fs.Float64("decline-threshold", defaults.Lifecycle.DeclineThreshold, "Delta below which a day is in the decline phase")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("MEMETREND")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("memetrend")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// flagKeys maps each registered flag to its nested config key.
var flagKeys = map[string]string{
	"data-dir":          "paths.data_dir",
	"meme":              "paths.meme",
	"workers":           "codec.workers",
	"nfc":               "codec.nfc",
	"top":               "keywords.top",
	"moving-avg-window": "lifecycle.moving_avg_window",
	"delta-window":      "lifecycle.delta_window",
	"growth-threshold":  "lifecycle.growth_threshold",
	"decline-threshold": "lifecycle.decline_threshold",
	"log-level":         "log_level",
}

// bindFlags binds each flag directly to its nested key, so a changed flag
// beats env and file values while an untouched one falls through to them.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.data_dir", c.Paths.DataDir)
	v.SetDefault("paths.meme", c.Paths.Meme)
	v.SetDefault("codec.workers", c.Codec.Workers)
	v.SetDefault("codec.nfc", c.Codec.NFC)
	v.SetDefault("keywords.top", c.Keywords.Top)
	v.SetDefault("lifecycle.moving_avg_window", c.Lifecycle.MovingAvgWindow)
	v.SetDefault("lifecycle.delta_window", c.Lifecycle.DeltaWindow)
	v.SetDefault("lifecycle.growth_threshold", c.Lifecycle.GrowthThreshold)
	v.SetDefault("lifecycle.decline_threshold", c.Lifecycle.DeclineThreshold)
	v.SetDefault("log_level", c.LogLevel)
}
