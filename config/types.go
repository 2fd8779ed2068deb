package config

// FeedConfig describes the remote station feed.
type FeedConfig struct {
	// URL overrides the default endpoint of the selected schema.
	URL       string `yaml:"url" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
	// Schema is "legacy" or "current".
	Schema string `yaml:"schema" validate:"omitempty,oneof=legacy current"`
}

// ExportConfig controls the output artifact.
type ExportConfig struct {
	// Format is osm, json or csv. Unknown values fall back to osm when used.
	Format string `yaml:"format"`
	// NameStyle is "bilingual" or "zh"; empty picks the schema default.
	NameStyle string `yaml:"nameStyle" validate:"omitempty,oneof=bilingual zh"`
	OutputDir string `yaml:"outputDir"`
}

// LogConfig controls process logging.
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Feed   FeedConfig   `yaml:"feed"`
	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
}
