// Package config loads the framer configuration from files, environment
// variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Store kinds.
const (
	StoreJSON    = "json"
	StoreMongoDB = "mongodb"
)

// Config is the complete application configuration.
type Config struct {
	ImagesDir   string         `mapstructure:"images_dir"`
	DataPath    string         `mapstructure:"data_path"`
	Labels      []string       `mapstructure:"labels"`
	LabelsFile  string         `mapstructure:"labels_file"`
	LogLevel    string         `mapstructure:"log_level"`
	Verbose     bool           `mapstructure:"verbose"`
	MetricsAddr string         `mapstructure:"metrics_addr"`
	Window      WindowConfig   `mapstructure:"window"`
	Prompt      PromptConfig   `mapstructure:"prompt"`
	Annotate    AnnotateConfig `mapstructure:"annotate"`
	Store       StoreConfig    `mapstructure:"store"`
}

// WindowConfig sizes the application window.
type WindowConfig struct {
	// ScreenRatio is the window size relative to the screen.
	ScreenRatio float64 `mapstructure:"screen_ratio"`
	// InfoRatio is the side panel width relative to the window width.
	InfoRatio float64 `mapstructure:"info_ratio"`
	// ScreenWidth and ScreenHeight stand in for the screen size, which fyne does not expose.
	ScreenWidth  int `mapstructure:"screen_width"`
	ScreenHeight int `mapstructure:"screen_height"`
}

// PromptConfig sizes the label prompt.
type PromptConfig struct {
	Width        int `mapstructure:"width"`
	Height       int `mapstructure:"height"`
	MinRowHeight int `mapstructure:"min_row_height"`
}

// AnnotateConfig tunes the annotation interaction.
type AnnotateConfig struct {
	RepeatDelay   time.Duration `mapstructure:"repeat_delay"`
	MinRegionSize int           `mapstructure:"min_region_size"`
}

// StoreConfig selects where the dataset record is persisted.
type StoreConfig struct {
	Kind       string `mapstructure:"kind"`
	Indent     bool   `mapstructure:"indent"`
	MongoURI   string `mapstructure:"mongo_uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
	// Dataset names the record inside the collection; defaults to the images directory.
	Dataset string `mapstructure:"dataset"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ImagesDir: "img/",
		DataPath:  "data/data.json",
		LogLevel:  "info",
		Window: WindowConfig{
			ScreenRatio:  0.8,
			InfoRatio:    0.2,
			ScreenWidth:  1600,
			ScreenHeight: 1000,
		},
		Prompt: PromptConfig{
			Width:        100,
			Height:       100,
			MinRowHeight: 16,
		},
		Annotate: AnnotateConfig{
			RepeatDelay:   10 * time.Millisecond,
			MinRegionSize: 1,
		},
		Store: StoreConfig{
			Kind:       StoreJSON,
			MongoURI:   "mongodb://localhost:27017",
			Database:   "framer",
			Collection: "images",
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []error

	if c.ImagesDir == "" {
		errs = append(errs, errors.New("images_dir must not be empty"))
	}
	if c.Window.ScreenRatio <= 0 || c.Window.ScreenRatio > 1 {
		errs = append(errs, fmt.Errorf("window.screen_ratio must be in (0, 1], got %v", c.Window.ScreenRatio))
	}
	if c.Window.InfoRatio < 0 || c.Window.InfoRatio >= 1 {
		errs = append(errs, fmt.Errorf("window.info_ratio must be in [0, 1), got %v", c.Window.InfoRatio))
	}
	if c.Window.ScreenWidth <= 0 || c.Window.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("window screen size must be positive, got %dx%d", c.Window.ScreenWidth, c.Window.ScreenHeight))
	}
	if c.Prompt.Width <= 0 || c.Prompt.Height <= 0 {
		errs = append(errs, fmt.Errorf("prompt size must be positive, got %dx%d", c.Prompt.Width, c.Prompt.Height))
	}
	if c.Annotate.RepeatDelay <= 0 {
		errs = append(errs, fmt.Errorf("annotate.repeat_delay must be positive, got %v", c.Annotate.RepeatDelay))
	}
	if c.Annotate.MinRegionSize < 1 {
		errs = append(errs, fmt.Errorf("annotate.min_region_size must be at least 1, got %d", c.Annotate.MinRegionSize))
	}

	switch c.Store.Kind {
	case StoreJSON:
		if c.DataPath == "" {
			errs = append(errs, errors.New("data_path must not be empty for the json store"))
		}
	case StoreMongoDB:
		if c.Store.MongoURI == "" || c.Store.Database == "" {
			errs = append(errs, errors.New("store.mongo_uri and store.database are required for the mongodb store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store.kind %q", c.Store.Kind))
	}

	return errors.Join(errs...)
}

// WindowSize returns the window dimensions derived from the screen size.
func (c *Config) WindowSize() (width, height int) {
	return int(float64(c.Window.ScreenWidth) * c.Window.ScreenRatio),
		int(float64(c.Window.ScreenHeight) * c.Window.ScreenRatio)
}

// DrawableSize returns the area left for the image once the side panel is removed.
func (c *Config) DrawableSize() (width, height int) {
	w, h := c.WindowSize()
	return w - c.InfoWidth(), h
}

// InfoWidth returns the width of the side panel.
func (c *Config) InfoWidth() int {
	w, _ := c.WindowSize()
	return int(float64(w) * c.Window.InfoRatio)
}
