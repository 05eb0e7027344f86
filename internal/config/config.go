package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"importfix/internal/slogutil"
)

// FileName is the config file written by `importfix init`.
// Lookup also accepts .importfix.json and .importfix.yaml.
const FileName = ".importfix.toml"

// EnvPrefix prefixes environment overrides, e.g. IMPORTFIX_ROOTMARKER.
const EnvPrefix = "IMPORTFIX"

// Config represents the complete importfix configuration
type Config struct {
	ProjectRoot string `json:"projectRoot" mapstructure:"projectRoot" toml:"projectRoot"`
	RootMarker  string `json:"rootMarker" mapstructure:"rootMarker" toml:"rootMarker"`

	// Manifest is the package.json path; empty means <projectRoot>/package.json
	Manifest string `json:"manifest" mapstructure:"manifest" toml:"manifest"`

	Extensions    []string `json:"extensions" mapstructure:"extensions" toml:"extensions"`
	ExcludeDirs   []string `json:"excludeDirs" mapstructure:"excludeDirs" toml:"excludeDirs"`
	ExcludeGlobs  []string `json:"excludeGlobs" mapstructure:"excludeGlobs" toml:"excludeGlobs"`
	ExtraBuiltins []string `json:"extraBuiltins" mapstructure:"extraBuiltins" toml:"extraBuiltins"`

	// MaxFileSize is a human size such as "1MB"; "0" disables the limit
	MaxFileSize string `json:"maxFileSize" mapstructure:"maxFileSize" toml:"maxFileSize"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging" toml:"logging"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format" toml:"format"`
	Level  string `json:"level" mapstructure:"level" toml:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ProjectRoot:   ".",
		RootMarker:    "src",
		Manifest:      "",
		Extensions:    []string{".ts", ".tsx", ".js", ".jsx"},
		ExcludeDirs:   []string{"node_modules", "dist"},
		ExcludeGlobs:  []string{},
		ExtraBuiltins: []string{},
		MaxFileSize:   "1MB",
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("projectRoot", d.ProjectRoot)
	v.SetDefault("rootMarker", d.RootMarker)
	v.SetDefault("manifest", d.Manifest)
	v.SetDefault("extensions", d.Extensions)
	v.SetDefault("excludeDirs", d.ExcludeDirs)
	v.SetDefault("excludeGlobs", d.ExcludeGlobs)
	v.SetDefault("extraBuiltins", d.ExtraBuiltins)
	v.SetDefault("maxFileSize", d.MaxFileSize)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
}

// LoadConfig loads configuration for the project in dir.
//
// Precedence: overrides (CLI flags) > IMPORTFIX_* env vars > config file > defaults.
// configFile selects an explicit file, which must exist; otherwise .importfix.*
// in dir is used when present. A relative projectRoot is resolved against dir.
func LoadConfig(dir, configFile string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	base := dir
	if used := v.ConfigFileUsed(); used != "" {
		base = filepath.Dir(used)
	}
	if _, ok := overrides["projectRoot"]; ok {
		base = dir
	}
	root, err := resolveRoot(base, cfg.ProjectRoot)
	if err != nil {
		return nil, err
	}
	cfg.ProjectRoot = root

	return &cfg, nil
}

func resolveRoot(base, root string) (string, error) {
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(base, root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root: %w", err)
	}
	return abs, nil
}

// ManifestPath returns the absolute package.json path.
func (c *Config) ManifestPath() string {
	if c.Manifest == "" {
		return filepath.Join(c.ProjectRoot, "package.json")
	}
	if filepath.IsAbs(c.Manifest) {
		return c.Manifest
	}
	return filepath.Join(c.ProjectRoot, c.Manifest)
}

// MaxFileSizeBytes parses MaxFileSize. Zero means unlimited.
func (c *Config) MaxFileSizeBytes() (uint64, error) {
	if c.MaxFileSize == "" {
		return 0, nil
	}
	return humanize.ParseBytes(c.MaxFileSize)
}

// Save writes the configuration as TOML to path
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	marker := strings.Trim(strings.ReplaceAll(c.RootMarker, "\\", "/"), "/")
	if marker == "" || marker == "." {
		return &ConfigError{Field: "rootMarker", Message: "must name a directory"}
	}
	if strings.Contains(marker, "/") || marker == ".." {
		return &ConfigError{Field: "rootMarker", Message: "must be a single path segment"}
	}

	if len(c.Extensions) == 0 {
		return &ConfigError{Field: "extensions", Message: "at least one extension is required"}
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return &ConfigError{Field: "extensions", Message: fmt.Sprintf("%q must start with a dot", ext)}
		}
	}

	if _, err := c.MaxFileSizeBytes(); err != nil {
		return &ConfigError{Field: "maxFileSize", Message: err.Error()}
	}

	if _, ok := slogutil.ParseLevel(c.Logging.Level); c.Logging.Level != "" && !ok {
		return &ConfigError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", slogutil.FormatHuman, slogutil.FormatJSON:
	default:
		return &ConfigError{Field: "logging.format", Message: fmt.Sprintf("unknown format %q", c.Logging.Format)}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
