package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-pagebundle/internal/config"
)

// dotEnvFile is loaded from the working directory when present.
const dotEnvFile = ".env"

// envPrefix marks the variables this tool reads.
const envPrefix = "PAGEBUNDLE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string // PAGEBUNDLE_CONFIG: config file name or path
	Node          string // PAGEBUNDLE_NODE: runtime for the script minifier
	Java          string // PAGEBUNDLE_JAVA: runtime for the YUI compressor
	CompressorJar string // PAGEBUNDLE_COMPRESSOR_JAR: YUI compressor jar
	CSSEngine     string // PAGEBUNDLE_CSS_ENGINE: yui or builtin
	CSSOutputDir  string // PAGEBUNDLE_CSS_OUTPUT_DIR: minified stylesheet directory
}

// knownEnvVars lists valid PAGEBUNDLE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PAGEBUNDLE_CONFIG":         true,
	"PAGEBUNDLE_NODE":           true,
	"PAGEBUNDLE_JAVA":           true,
	"PAGEBUNDLE_COMPRESSOR_JAR": true,
	"PAGEBUNDLE_CSS_ENGINE":     true,
	"PAGEBUNDLE_CSS_OUTPUT_DIR": true,
}

// loadDotEnv reads .env from the working directory into the process
// environment. Variables already set are not overridden, and a missing
// file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(dotEnvFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", dotEnvFile, err)
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized PAGEBUNDLE_* values.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath:    os.Getenv("PAGEBUNDLE_CONFIG"),
		Node:          os.Getenv("PAGEBUNDLE_NODE"),
		Java:          os.Getenv("PAGEBUNDLE_JAVA"),
		CompressorJar: os.Getenv("PAGEBUNDLE_COMPRESSOR_JAR"),
		CSSEngine:     os.Getenv("PAGEBUNDLE_CSS_ENGINE"),
		CSSOutputDir:  os.Getenv("PAGEBUNDLE_CSS_OUTPUT_DIR"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized PAGEBUNDLE_* variables.
// Helps catch typos like PAGEBUNDLE_JAR instead of PAGEBUNDLE_COMPRESSOR_JAR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				_, _ = fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied
// afterwards via mergeFlags.
// This ensures: CLI flags > env vars > config file > defaults
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIfNotEmpty(&cfg.Tools.Node, env.Node)
	setIfNotEmpty(&cfg.Tools.Java, env.Java)
	setIfNotEmpty(&cfg.Tools.CompressorJar, env.CompressorJar)
	setIfNotEmpty(&cfg.Styles.Engine, env.CSSEngine)
	setIfNotEmpty(&cfg.Styles.OutputDir, env.CSSOutputDir)
}

func setIfNotEmpty(field *string, value string) {
	if value != "" {
		*field = value
	}
}
