package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "framer"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "FRAMER"
)

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"images-dir":   "images_dir",
	"data-path":    "data_path",
	"labels-file":  "labels_file",
	"log-level":    "log_level",
	"verbose":      "verbose",
	"metrics-addr": "metrics_addr",
	"store":        "store.kind",
}

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader with its own viper instance.
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// BindFlags binds the known flags present in fs to their configuration keys.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads configuration from configFile, or searches the standard
// locations when it is empty, then applies environment variables and
// defaults and validates the result.
func (l *Loader) Load(configFile string) (*Config, error) {
	l.setupEnvironmentVariables()
	l.setDefaults()

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", configFile)
		}
		l.v.SetConfigFile(configFile)
	} else {
		l.v.SetConfigName(ConfigFileName)
		l.v.SetConfigType("yaml")
		l.addConfigPaths()
	}

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars still apply
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// ConfigFileUsed returns the path of the config file used, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Viper returns the underlying viper instance.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// addConfigPaths adds the standard configuration search paths.
func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")

	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		l.v.AddConfigPath(filepath.Join(configDir, "framer"))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "framer"))
	}
}

// setupEnvironmentVariables configures environment variable handling.
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	// Replace dots and dashes with underscores in env var names
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults sets default values for all configuration options.
func (l *Loader) setDefaults() {
	d := DefaultConfig()

	l.v.SetDefault("images_dir", d.ImagesDir)
	l.v.SetDefault("data_path", d.DataPath)
	l.v.SetDefault("labels", d.Labels)
	l.v.SetDefault("labels_file", d.LabelsFile)
	l.v.SetDefault("log_level", d.LogLevel)
	l.v.SetDefault("verbose", d.Verbose)
	l.v.SetDefault("metrics_addr", d.MetricsAddr)

	l.v.SetDefault("window.screen_ratio", d.Window.ScreenRatio)
	l.v.SetDefault("window.info_ratio", d.Window.InfoRatio)
	l.v.SetDefault("window.screen_width", d.Window.ScreenWidth)
	l.v.SetDefault("window.screen_height", d.Window.ScreenHeight)

	l.v.SetDefault("prompt.width", d.Prompt.Width)
	l.v.SetDefault("prompt.height", d.Prompt.Height)
	l.v.SetDefault("prompt.min_row_height", d.Prompt.MinRowHeight)

	l.v.SetDefault("annotate.repeat_delay", d.Annotate.RepeatDelay)
	l.v.SetDefault("annotate.min_region_size", d.Annotate.MinRegionSize)

	l.v.SetDefault("store.kind", d.Store.Kind)
	l.v.SetDefault("store.indent", d.Store.Indent)
	l.v.SetDefault("store.mongo_uri", d.Store.MongoURI)
	l.v.SetDefault("store.database", d.Store.Database)
	l.v.SetDefault("store.collection", d.Store.Collection)
	l.v.SetDefault("store.dataset", d.Store.Dataset)
}
