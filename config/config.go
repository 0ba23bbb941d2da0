package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	set "github.com/deckarep/golang-set/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/m-manu/digipres-columns/columns"
	"github.com/m-manu/digipres-columns/entity"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	defaultConfigPath = "~/.config/digipres-columns/config.toml"

	// BinaryEnv overrides Siegfried.Binary
	BinaryEnv = "DIGIPRES_SF"
)

// Output formats
const (
	FormatAuto  = "auto"
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatTSV   = "tsv"
	FormatJSON  = "json"
)

// Formats lists the valid values of Output.Format
var Formats = set.NewSet(FormatAuto, FormatTable, FormatCSV, FormatTSV, FormatJSON)

// Siegfried configures the identification tool.
type Siegfried struct {
	Binary         string   `toml:"binary"`
	Args           []string `toml:"args"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// Checksum configures the checksum column.
type Checksum struct {
	Algorithm string `toml:"algorithm"`
}

// Output configures how rows are rendered.
type Output struct {
	Format  string   `toml:"format"`
	Columns []string `toml:"columns"`
}

// Config is the full configuration file.
type Config struct {
	Siegfried Siegfried `toml:"siegfried"`
	Checksum  Checksum  `toml:"checksum"`
	Output    Output    `toml:"output"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Siegfried: Siegfried{
			Binary:         "sf",
			TimeoutSeconds: 60,
		},
		Checksum: Checksum{
			Algorithm: string(entity.MD5),
		},
		Output: Output{
			Format:  FormatAuto,
			Columns: []string{"name", "puid", "format_name", "checksum"},
		},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads the configuration at path (or the default location when path is empty),
// falling back to defaults when the file doesn't exist. Returns the config, the resolved
// path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if binary, ok := os.LookupEnv(BinaryEnv); ok && strings.TrimSpace(binary) != "" {
		cfg.Siegfried.Binary = binary
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Overrides carries command line values that take precedence over the file and environment.
// Nil fields leave the loaded value alone.
type Overrides struct {
	Binary         *string
	TimeoutSeconds *int
	Algorithm      *string
	Format         *string
	Columns        []string
}

// Apply sets the non-nil overrides, then normalizes and validates again.
func (c *Config) Apply(o Overrides) error {
	if o.Binary != nil {
		c.Siegfried.Binary = *o.Binary
	}
	if o.TimeoutSeconds != nil {
		c.Siegfried.TimeoutSeconds = *o.TimeoutSeconds
	}
	if o.Algorithm != nil {
		c.Checksum.Algorithm = *o.Algorithm
	}
	if o.Format != nil {
		c.Output.Format = *o.Format
	}
	if o.Columns != nil {
		c.Output.Columns = o.Columns
	}
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}

// SampleConfig returns a commented sample configuration file.
func SampleConfig() string {
	return sampleConfig
}

// DigestAlgorithm returns the configured checksum algorithm. Only valid after Validate.
func (c *Config) DigestAlgorithm() entity.DigestAlgorithm {
	alg, _ := entity.ParseDigestAlgorithm(c.Checksum.Algorithm)
	return alg
}

// Timeout returns the per-file identification timeout; 0 means none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Siegfried.TimeoutSeconds) * time.Second
}

func (c *Config) normalize() error {
	c.Siegfried.Binary = strings.TrimSpace(c.Siegfried.Binary)
	if c.Siegfried.Binary == "" {
		c.Siegfried.Binary = Default().Siegfried.Binary
	}
	// Only expand paths; a bare name is looked up on PATH when sf is run
	if strings.ContainsRune(c.Siegfried.Binary, filepath.Separator) || strings.HasPrefix(c.Siegfried.Binary, "~") {
		expanded, err := expandPath(c.Siegfried.Binary)
		if err != nil {
			return err
		}
		c.Siegfried.Binary = expanded
	}
	c.Checksum.Algorithm = strings.ToLower(strings.TrimSpace(c.Checksum.Algorithm))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = FormatAuto
	}
	attributes := make([]string, 0, len(c.Output.Columns))
	for _, attribute := range c.Output.Columns {
		if trimmed := strings.ToLower(strings.TrimSpace(attribute)); trimmed != "" {
			attributes = append(attributes, trimmed)
		}
	}
	c.Output.Columns = attributes
	return nil
}

// Validate checks the configuration for values that can't work.
func (c *Config) Validate() error {
	if _, ok := entity.ParseDigestAlgorithm(c.Checksum.Algorithm); !ok {
		return fmt.Errorf("checksum.algorithm %q is not one of %v", c.Checksum.Algorithm, entity.DigestAlgorithms)
	}
	if c.Siegfried.TimeoutSeconds < 0 {
		return fmt.Errorf("siegfried.timeout_seconds must not be negative (got %d)", c.Siegfried.TimeoutSeconds)
	}
	if !Formats.Contains(c.Output.Format) {
		return fmt.Errorf("output.format %q is not one of %v", c.Output.Format, Formats.ToSlice())
	}
	if _, err := columns.Select(c.Output.Columns); err != nil {
		return fmt.Errorf("output.columns: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = defaultConfigPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
