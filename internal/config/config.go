package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/hashing"
	"github.com/mcncl/devkit/internal/keycase"
	"github.com/mcncl/devkit/internal/timeutil"
)

// EnvPrefix prefixes every environment override, e.g. DEVKIT_JSON_INDENT
const EnvPrefix = "DEVKIT"

// Output formats for diff and search results
const (
	OutputText  = "text"
	OutputTable = "table"
	OutputJSON  = "json"
)

// Config represents the complete configuration for devkit
type Config struct {
	JSON   JSONConfig   `yaml:"json"`
	Diff   DiffConfig   `yaml:"diff"`
	Search SearchConfig `yaml:"search"`
	Time   TimeConfig   `yaml:"time"`
	Hash   HashConfig   `yaml:"hash"`
	Dev    DevConfig    `yaml:"dev"`
}

// JSONConfig controls parsing and formatting
type JSONConfig struct {
	Indent   int    `yaml:"indent"`
	SortKeys bool   `yaml:"sort_keys"`
	KeyCase  string `yaml:"key_case"`
	MaxDepth int    `yaml:"max_depth"`
}

// DiffConfig controls how comparisons are reported
type DiffConfig struct {
	Output string `yaml:"output"`
	Color  bool   `yaml:"color"`
	// SortFirst key-sorts both documents before comparing, making member order irrelevant
	SortFirst bool `yaml:"sort_first"`
}

// SearchConfig controls search output
type SearchConfig struct {
	Output     string `yaml:"output"`
	MaxResults int    `yaml:"max_results"`
}

// TimeConfig holds time zone and pattern defaults
type TimeConfig struct {
	Timezone string `yaml:"timezone"`
	Pattern  string `yaml:"pattern"`
}

// HashConfig holds the default digest
type HashConfig struct {
	Algorithm string `yaml:"algorithm"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		JSON: JSONConfig{
			Indent:   2,
			SortKeys: false,
			KeyCase:  string(keycase.None),
			MaxDepth: 512,
		},
		Diff: DiffConfig{
			Output: OutputText,
			Color:  true,
		},
		Search: SearchConfig{
			Output:     OutputText,
			MaxResults: 0,
		},
		Time: TimeConfig{
			Timezone: "",
			Pattern:  timeutil.DefaultPattern,
		},
		Hash: HashConfig{
			Algorithm: string(hashing.SHA256),
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".devkit.yml", ".devkit.yaml", "devkit.yml", "devkit.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that every value is usable
func (c *Config) Validate() error {
	if c.JSON.Indent < 0 || c.JSON.Indent > 16 {
		return errors.NewConfigError(fmt.Sprintf("json.indent must be between 0 and 16, got %d", c.JSON.Indent), nil)
	}
	if c.JSON.MaxDepth < 0 {
		return errors.NewConfigError(fmt.Sprintf("json.max_depth must not be negative, got %d", c.JSON.MaxDepth), nil)
	}
	if _, err := keycase.ParseStyle(c.JSON.KeyCase); err != nil {
		return errors.NewConfigError(fmt.Sprintf("json.key_case '%s' is not supported", c.JSON.KeyCase), err)
	}
	if !validOutput(c.Diff.Output) {
		return errors.NewConfigError(fmt.Sprintf("diff.output '%s' must be text, table or json", c.Diff.Output), nil)
	}
	if !validOutput(c.Search.Output) {
		return errors.NewConfigError(fmt.Sprintf("search.output '%s' must be text, table or json", c.Search.Output), nil)
	}
	if c.Search.MaxResults < 0 {
		return errors.NewConfigError("search.max_results must not be negative", nil)
	}
	if _, err := hashing.ParseAlgorithm(c.Hash.Algorithm); err != nil {
		return errors.NewConfigError(fmt.Sprintf("hash.algorithm '%s' is not supported", c.Hash.Algorithm), err)
	}
	if _, err := timeutil.LoadLocation(c.Time.Timezone); err != nil {
		return errors.NewConfigError(fmt.Sprintf("time.timezone '%s' is not a known zone", c.Time.Timezone), err)
	}
	return nil
}

func validOutput(output string) bool {
	switch output {
	case OutputText, OutputTable, OutputJSON:
		return true
	}
	return false
}

// EnvName returns the environment variable that overrides a section field,
// e.g. ("JSON", "MaxDepth") -> DEVKIT_JSON_MAX_DEPTH
func EnvName(section, field string) string {
	return EnvPrefix + "_" + strcase.ToScreamingSnake(section) + "_" + strcase.ToScreamingSnake(field)
}

// ApplyEnv overrides values from DEVKIT_<SECTION>_<FIELD> environment variables
// using lookup, which is os.LookupEnv outside of tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	root := reflect.ValueOf(c).Elem()
	rootType := root.Type()

	for i := 0; i < root.NumField(); i++ {
		section := root.Field(i)
		sectionName := rootType.Field(i).Name
		for j := 0; j < section.NumField(); j++ {
			field := section.Field(j)
			name := EnvName(sectionName, section.Type().Field(j).Name)
			raw, ok := lookup(name)
			if !ok {
				continue
			}
			if err := setField(field, raw); err != nil {
				return errors.NewConfigError(fmt.Sprintf("invalid value for %s", name), err)
			}
		}
	}
	return c.Validate()
}

func setField(field reflect.Value, raw string) error {
	raw = strings.TrimSpace(raw)
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		field.SetInt(int64(n))
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}

// CLIOverrides carries flags the user set explicitly. Nil means "not given".
type CLIOverrides struct {
	Indent     *int
	SortKeys   *bool
	KeyCase    *string
	MaxDepth   *int
	Output     *string
	SortFirst  *bool
	MaxResults *int
	NoColor    bool
	Debug      bool
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// defaults, then the config file, then the environment, then flags.
func LoadConfigWithCLI(configPath string, lookup func(string) (string, bool), cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("failed to load '%s'", configPath), err)
		}
		cfg = fileConfig
	}

	if lookup != nil {
		if err := cfg.ApplyEnv(lookup); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyCLI(cli); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyCLI layers explicitly set flags over c and validates the result.
// Output sets both the diff and the search format.
func (c *Config) ApplyCLI(cli CLIOverrides) error {
	if cli.Indent != nil {
		c.JSON.Indent = *cli.Indent
	}
	if cli.SortKeys != nil {
		c.JSON.SortKeys = *cli.SortKeys
	}
	if cli.KeyCase != nil {
		c.JSON.KeyCase = *cli.KeyCase
	}
	if cli.MaxDepth != nil {
		c.JSON.MaxDepth = *cli.MaxDepth
	}
	if cli.Output != nil {
		c.Diff.Output = *cli.Output
		c.Search.Output = *cli.Output
	}
	if cli.SortFirst != nil {
		c.Diff.SortFirst = *cli.SortFirst
	}
	if cli.MaxResults != nil {
		c.Search.MaxResults = *cli.MaxResults
	}
	if cli.NoColor {
		c.Diff.Color = false
	}
	if cli.Debug {
		c.Dev.Debug = true
	}
	return c.Validate()
}
