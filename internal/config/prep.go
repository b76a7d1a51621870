package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default values used when a PrepConfig field is unset.
const (
	DefaultCoreColumnCount    = 60
	DefaultPreparedFileName   = "df_prepared.csv"
	DefaultDictionaryFileName = "df_cols_prepared.csv"
)

var (
	defaultRetainedColumns = []string{"Month_bl"}
	defaultCensoredColumns = []string{"ABETA", "TAU", "PTAU"}

	// defaultMissingMarkers mirrors the NA tokens recognised by pandas
	// read_csv, the reader the ADNIMERGE export is usually consumed with.
	defaultMissingMarkers = []string{
		"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
		"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
		"n/a", "nan", "null",
	}

	defaultSubstitutions = []Substitution{
		{From: "Unknown", Missing: true},
		{From: "m0", To: "bl"},
		{From: "y1", To: "m12"},
	}
)

// Substitution replaces a whole cell equal to From. When Missing is set the
// cell becomes missing and To is ignored.
type Substitution struct {
	From    string `json:"from"`
	To      string `json:"to,omitempty"`
	Missing bool   `json:"missing,omitempty"`
}

// PrepConfig holds the tunable parts of the preparation pass. Unset fields
// fall back to the defaults above through the Get* accessors.
type PrepConfig struct {
	// Pruning
	CoreColumnCount *int     `json:"core_column_count,omitempty"`
	RetainedColumns []string `json:"retained_columns,omitempty"`

	// Cleaning
	CensoredColumns []string       `json:"censored_columns,omitempty"`
	MissingMarkers  []string       `json:"missing_markers,omitempty"`
	Substitutions   []Substitution `json:"substitutions,omitempty"`

	// Output
	PreparedFileName   *string `json:"prepared_file_name,omitempty"`
	DictionaryFileName *string `json:"dictionary_file_name,omitempty"`

	// StrictSchema makes prepared columns without a dictionary entry fatal.
	StrictSchema *bool `json:"strict_schema,omitempty"`
}

// DefaultPrepConfig returns a PrepConfig with every field unset.
func DefaultPrepConfig() *PrepConfig {
	return &PrepConfig{}
}

// LoadPrepConfig loads a PrepConfig from a JSON file. An empty path returns
// the defaults.
func LoadPrepConfig(path string) (*PrepConfig, error) {
	if path == "" {
		return DefaultPrepConfig(), nil
	}

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultPrepConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *PrepConfig) Validate() error {
	if c.CoreColumnCount != nil && *c.CoreColumnCount <= 0 {
		return fmt.Errorf("core_column_count must be positive, got %d", *c.CoreColumnCount)
	}
	for _, name := range c.CensoredColumns {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("censored_columns must not contain empty names")
		}
	}
	for i, s := range c.Substitutions {
		if s.From == "" {
			return fmt.Errorf("substitutions[%d]: from must not be empty", i)
		}
	}
	for _, f := range []*string{c.PreparedFileName, c.DictionaryFileName} {
		if f == nil {
			continue
		}
		if *f == "" || strings.ContainsAny(*f, `/\`) {
			return fmt.Errorf("output file name %q must be a plain, non-empty file name", *f)
		}
	}
	if c.PreparedFileName != nil && c.DictionaryFileName != nil && *c.PreparedFileName == *c.DictionaryFileName {
		return fmt.Errorf("prepared_file_name and dictionary_file_name must differ")
	}
	return nil
}

// GetCoreColumnCount returns the positional pruning cutoff.
func (c *PrepConfig) GetCoreColumnCount() int {
	if c.CoreColumnCount == nil {
		return DefaultCoreColumnCount
	}
	return *c.CoreColumnCount
}

// GetRetainedColumns returns the columns kept regardless of position.
func (c *PrepConfig) GetRetainedColumns() []string {
	if c.RetainedColumns == nil {
		return append([]string(nil), defaultRetainedColumns...)
	}
	return c.RetainedColumns
}

// GetCensoredColumns returns the biomarker columns split into value and
// censoring status.
func (c *PrepConfig) GetCensoredColumns() []string {
	if c.CensoredColumns == nil {
		return append([]string(nil), defaultCensoredColumns...)
	}
	return c.CensoredColumns
}

// GetMissingMarkers returns the raw field values read as missing.
func (c *PrepConfig) GetMissingMarkers() []string {
	if c.MissingMarkers == nil {
		return append([]string(nil), defaultMissingMarkers...)
	}
	return c.MissingMarkers
}

// GetSubstitutions returns the whole-cell terminology substitutions.
func (c *PrepConfig) GetSubstitutions() []Substitution {
	if c.Substitutions == nil {
		return append([]Substitution(nil), defaultSubstitutions...)
	}
	return c.Substitutions
}

// GetPreparedFileName returns the file name of the prepared table.
func (c *PrepConfig) GetPreparedFileName() string {
	if c.PreparedFileName == nil {
		return DefaultPreparedFileName
	}
	return *c.PreparedFileName
}

// GetDictionaryFileName returns the file name of the column dictionary.
func (c *PrepConfig) GetDictionaryFileName() string {
	if c.DictionaryFileName == nil {
		return DefaultDictionaryFileName
	}
	return *c.DictionaryFileName
}

// GetStrictSchema reports whether undeclared prepared columns are fatal.
func (c *PrepConfig) GetStrictSchema() bool {
	if c.StrictSchema == nil {
		return false
	}
	return *c.StrictSchema
}
