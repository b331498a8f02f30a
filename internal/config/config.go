package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pagebundle "github.com/alnah/go-pagebundle"
	"github.com/alnah/go-pagebundle/internal/fileutil"
	"github.com/alnah/go-pagebundle/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidName     = errors.New("invalid asset name")
	ErrInvalidEngine   = errors.New("invalid stylesheet engine")
)

// Field length limits.
const (
	MaxNameLength = 255  // single path element (directory or file name)
	MaxPathLength = 4096 // PATH_MAX on Linux
)

// Stylesheet engines accepted in styles.engine.
const (
	EngineYUI     = pagebundle.EngineYUI
	EngineBuiltin = pagebundle.EngineBuiltin
)

// Defaults applied to empty fields. The library owns the values.
const (
	DefaultScriptsDir    = pagebundle.DefaultScriptsDir
	DefaultBundleName    = pagebundle.DefaultBundleName
	DefaultStylesDir     = pagebundle.DefaultStylesDir
	DefaultEngine        = EngineYUI
	DefaultNode          = pagebundle.DefaultNodeRuntime
	DefaultJava          = pagebundle.DefaultJavaRuntime
	DefaultCompressorJar = pagebundle.DefaultCompressorJar
)

// appDirName is the directory under the user config dir searched for named configs.
const appDirName = "go-pagebundle"

// Config holds all configuration for a bundling run.
type Config struct {
	Scripts ScriptsConfig `yaml:"scripts"`
	Styles  StylesConfig  `yaml:"styles"`
	Tools   ToolsConfig   `yaml:"tools"`
}

// ScriptsConfig defines how script references are bundled.
type ScriptsConfig struct {
	Dir             string `yaml:"dir"`             // Directory name next to the input document (default: "js")
	BundleName      string `yaml:"bundleName"`      // Combined output file name (default: "min.js")
	KeepPreMinified bool   `yaml:"keepPreMinified"` // Copy "min.js" script lines through instead of dropping them
}

// StylesConfig defines how stylesheet references are minified.
type StylesConfig struct {
	Dir       string `yaml:"dir"`       // Directory name next to the input document (default: "css")
	Engine    string `yaml:"engine"`    // "yui" or "builtin" (default: "yui")
	OutputDir string `yaml:"outputDir"` // Where minified stylesheets go (empty = working directory)
}

// ToolsConfig locates the external programs.
type ToolsConfig struct {
	Node          string `yaml:"node"`          // Runtime for the script minifier (default: "node")
	Java          string `yaml:"java"`          // Runtime for the YUI compressor (default: "java")
	CompressorJar string `yaml:"compressorJar"` // YUI compressor jar (default: "yuicompressor-2.4.8.jar")
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with their defaults.
// Called last, after the config file, environment and flags are merged,
// so that an explicit value from any source wins.
func (c *Config) ApplyDefaults() {
	setDefault(&c.Scripts.Dir, DefaultScriptsDir)
	setDefault(&c.Scripts.BundleName, DefaultBundleName)
	setDefault(&c.Styles.Dir, DefaultStylesDir)
	setDefault(&c.Styles.Engine, DefaultEngine)
	setDefault(&c.Tools.Node, DefaultNode)
	setDefault(&c.Tools.Java, DefaultJava)
	setDefault(&c.Tools.CompressorJar, DefaultCompressorJar)
}

func setDefault(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

// Validate checks names, engine and field lengths.
// Empty values are accepted: they mean "use the default".
func (c *Config) Validate() error {
	// Names are matched literally inside src/href attributes, so they must be
	// a single path element.
	names := []struct{ field, value string }{
		{"scripts.dir", c.Scripts.Dir},
		{"scripts.bundleName", c.Scripts.BundleName},
		{"styles.dir", c.Styles.Dir},
	}
	for _, n := range names {
		if err := validateName(n.field, n.value); err != nil {
			return err
		}
	}

	if c.Styles.Engine != "" {
		switch strings.ToLower(c.Styles.Engine) {
		case EngineYUI, EngineBuiltin:
			// valid
		default:
			return fmt.Errorf("%w: styles.engine %q (must be %s or %s)", ErrInvalidEngine, c.Styles.Engine, EngineYUI, EngineBuiltin)
		}
	}

	paths := []struct{ field, value string }{
		{"styles.outputDir", c.Styles.OutputDir},
		{"tools.node", c.Tools.Node},
		{"tools.java", c.Tools.Java},
		{"tools.compressorJar", c.Tools.CompressorJar},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.field, p.value, MaxPathLength); err != nil {
			return err
		}
	}

	return nil
}

// validateName rejects names that are not a single path element.
func validateName(field, value string) error {
	if value == "" {
		return nil
	}
	if err := validateFieldLength(field, value, MaxNameLength); err != nil {
		return err
	}
	if value == "." || value == ".." || strings.ContainsAny(value, "/\\\"\x00") {
		return fmt.Errorf("%w: %s %q (must be a single file or directory name)", ErrInvalidName, field, value)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Defaults are not applied: unset fields stay empty so later sources can fill them.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order:
// current directory, then the user config directory, each with .yaml and .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
