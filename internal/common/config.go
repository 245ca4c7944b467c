package common

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration for the statement
// reconstruction pipeline.
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Pipeline    PipelineConfig `toml:"pipeline"`
	Logging     LoggingConfig  `toml:"logging"`
	Storage     StorageConfig  `toml:"storage"`
}

// PipelineConfig holds the tunables used by the table reconstruction and
// standardization stages.
type PipelineConfig struct {
	// MaxColumnsKept is the maximum number of value columns a table keeps
	// after TableFilter admits date/numeric columns (the rest are dropped,
	// left-to-right, once the cap is reached).
	MaxColumnsKept int `toml:"max_columns_kept"`
	// MinTableRows is the minimum number of rows, besides one header row, a
	// RawTable must have: TableFilter drops tables with fewer than
	// MinTableRows+1 rows in all.
	MinTableRows int `toml:"min_table_rows"`
	// HeaderExtensionFraction sizes the window of the table's top rows that
	// TableBuilder's CorrectTable searches for dates: a line above the table
	// that does not fit the column grid but holds both a date and a units
	// mention is still absorbed when neither the lines absorbed so far nor
	// this fraction of the table's own rows show a date in a value column.
	HeaderExtensionFraction float64 `toml:"header_extension_fraction"`
	// DoubleCharWidthGapFactor is the multiple of a line's average character
	// width that BlockSegmenter treats as a column-separating gap.
	DoubleCharWidthGapFactor float64 `toml:"double_char_width_gap_factor"`
	// SeparatorFillOpacity is the minimum fill opacity BlockSegmenter treats
	// as a drawn column rule rather than background shading.
	SeparatorFillOpacity float64 `toml:"separator_fill_opacity"`
	// SeparatorOverlapFraction is the minimum vertical overlap between a
	// fill and a line for the fill to split that line into blocks.
	SeparatorOverlapFraction float64 `toml:"separator_overlap_fraction"`
	// StructuresPath optionally overrides the embedded taxonomy resource
	// with a file on disk.
	StructuresPath string `toml:"structures_path"`
}

// LoggingConfig controls arbor log output.
type LoggingConfig struct {
	Level      string   `toml:"level"` // debug|info|warn|error
	Format     string   `toml:"format"` // text|json
	Output     []string `toml:"output"` // stdout, file
	TimeFormat string   `toml:"time_format"`
}

// StorageConfig controls the Badger-backed statement store.
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

type BadgerConfig struct {
	Path           string `toml:"path"`
	ResetOnStartup bool   `toml:"reset_on_startup"`
}

// NewDefaultConfig returns the built-in defaults, the base every loaded
// config file is merged on top of.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Pipeline: PipelineConfig{
			MaxColumnsKept:           4,
			MinTableRows:             2,
			HeaderExtensionFraction:  1.0 / 3.0,
			DoubleCharWidthGapFactor: 2.0,
			SeparatorFillOpacity:     0.9,
			SeparatorOverlapFraction: 0.66,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05.000",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
	}
}

// LoadFromFile loads configuration from a single TOML file, merged on top
// of the built-in defaults. An empty path returns the defaults unchanged.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies a small set of environment variable overrides,
// highest priority after CLI flags.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STATEMENTCORE_ENV"); env != "" {
		config.Environment = env
	}
	if level := os.Getenv("STATEMENTCORE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if path := os.Getenv("STATEMENTCORE_STORAGE_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
}

// IsProduction reports whether the configuration targets a production
// environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
