package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/youbike-osm/youbike-osm/station"
)

// Default feed endpoints per schema version.
const (
	LegacyFeedURL  = "http://its.taipei.gov.tw/atis_index/aspx/Youbike.aspx?Mode=1"
	CurrentFeedURL = "https://tcgbusfs.blob.core.windows.net/blobyoubike/YouBikeTP.json"
)

const DefaultTimeoutMS = 30000

// searched in order when no explicit path is given
var defaultPaths = []string{"config.yml", "./config/config.yml"}

// Defaults returns the configuration used when no file sets a value.
func Defaults() AppConfig {
	return AppConfig{
		Feed: FeedConfig{
			TimeoutMS: DefaultTimeoutMS,
			Schema:    station.Legacy.String(),
		},
		Export: ExportConfig{
			Format: "osm",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadAppConfig reads and validates the configuration. An explicit path must
// exist. With an empty path the default locations are tried and, when none
// exists, Defaults() is returned.
func LoadAppConfig(path string) (AppConfig, error) {
	cfg := Defaults()

	data, err := readConfig(path)
	if err != nil {
		return AppConfig{}, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func readConfig(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		return data, nil
	}
	for _, p := range defaultPaths {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", p, err)
		}
	}
	return nil, nil
}

// Validate checks the struct tags of every section.
func (c AppConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SchemaVersion returns the configured schema version.
func (c AppConfig) SchemaVersion() (station.Version, error) {
	return station.ParseVersion(c.Feed.Schema)
}

// FeedURL returns the configured feed URL, or the default endpoint for v.
func (c AppConfig) FeedURL(v station.Version) string {
	if c.Feed.URL != "" {
		return c.Feed.URL
	}
	if v == station.Current {
		return CurrentFeedURL
	}
	return LegacyFeedURL
}

// Timeout returns the feed request timeout. Zero disables it.
func (c AppConfig) Timeout() time.Duration {
	return time.Duration(c.Feed.TimeoutMS) * time.Millisecond
}
