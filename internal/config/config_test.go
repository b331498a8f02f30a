package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	checks := []struct {
		field, got, want string
	}{
		{"Scripts.Dir", cfg.Scripts.Dir, "js"},
		{"Scripts.BundleName", cfg.Scripts.BundleName, "min.js"},
		{"Styles.Dir", cfg.Styles.Dir, "css"},
		{"Styles.Engine", cfg.Styles.Engine, "yui"},
		{"Styles.OutputDir", cfg.Styles.OutputDir, ""},
		{"Tools.Node", cfg.Tools.Node, "node"},
		{"Tools.Java", cfg.Tools.Java, "java"},
		{"Tools.CompressorJar", cfg.Tools.CompressorJar, "yuicompressor-2.4.8.jar"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.field, c.got, c.want)
		}
	}
	if cfg.Scripts.KeepPreMinified {
		t.Error("Scripts.KeepPreMinified = true, want false")
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Scripts: ScriptsConfig{Dir: "scripts"},
		Styles:  StylesConfig{Engine: EngineBuiltin, OutputDir: "dist"},
		Tools:   ToolsConfig{Node: "/opt/node/bin/node"},
	}
	cfg.ApplyDefaults()

	if cfg.Scripts.Dir != "scripts" {
		t.Errorf("Scripts.Dir = %q, want %q", cfg.Scripts.Dir, "scripts")
	}
	if cfg.Scripts.BundleName != DefaultBundleName {
		t.Errorf("Scripts.BundleName = %q, want %q", cfg.Scripts.BundleName, DefaultBundleName)
	}
	if cfg.Styles.Engine != EngineBuiltin {
		t.Errorf("Styles.Engine = %q, want %q", cfg.Styles.Engine, EngineBuiltin)
	}
	if cfg.Styles.OutputDir != "dist" {
		t.Errorf("Styles.OutputDir = %q, want %q", cfg.Styles.OutputDir, "dist")
	}
	if cfg.Tools.Node != "/opt/node/bin/node" {
		t.Errorf("Tools.Node = %q, want %q", cfg.Tools.Node, "/opt/node/bin/node")
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit is invalid", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test", tt.value, tt.maxLength)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFieldLength() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("error = %v, want ErrFieldTooLong", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "empty config is valid",
			cfg:  Config{},
		},
		{
			name: "defaults are valid",
			cfg:  *DefaultConfig(),
		},
		{
			name: "engine is case-insensitive",
			cfg:  Config{Styles: StylesConfig{Engine: "Builtin"}},
		},
		{
			name:    "unknown engine",
			cfg:     Config{Styles: StylesConfig{Engine: "closure"}},
			wantErr: ErrInvalidEngine,
		},
		{
			name:    "scripts dir with separator",
			cfg:     Config{Scripts: ScriptsConfig{Dir: "assets/js"}},
			wantErr: ErrInvalidName,
		},
		{
			name:    "bundle name with backslash",
			cfg:     Config{Scripts: ScriptsConfig{BundleName: `out\min.js`}},
			wantErr: ErrInvalidName,
		},
		{
			name:    "styles dir with quote",
			cfg:     Config{Styles: StylesConfig{Dir: `css"`}},
			wantErr: ErrInvalidName,
		},
		{
			name:    "dot-dot scripts dir",
			cfg:     Config{Scripts: ScriptsConfig{Dir: ".."}},
			wantErr: ErrInvalidName,
		},
		{
			name:    "bundle name too long",
			cfg:     Config{Scripts: ScriptsConfig{BundleName: strings.Repeat("a", MaxNameLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "jar path too long",
			cfg:     Config{Tools: ToolsConfig{CompressorJar: strings.Repeat("a", MaxPathLength+1)}},
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config without defaults", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "bundle.yaml")
		content := `scripts:
  dir: scripts
  keepPreMinified: true
styles:
  engine: builtin
  outputDir: dist/css
tools:
  compressorJar: /opt/yui/yuicompressor.jar
`
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Scripts.Dir != "scripts" {
			t.Errorf("Scripts.Dir = %q, want %q", cfg.Scripts.Dir, "scripts")
		}
		if !cfg.Scripts.KeepPreMinified {
			t.Error("Scripts.KeepPreMinified = false, want true")
		}
		if cfg.Styles.Engine != "builtin" {
			t.Errorf("Styles.Engine = %q, want %q", cfg.Styles.Engine, "builtin")
		}
		if cfg.Styles.OutputDir != "dist/css" {
			t.Errorf("Styles.OutputDir = %q, want %q", cfg.Styles.OutputDir, "dist/css")
		}
		if cfg.Tools.CompressorJar != "/opt/yui/yuicompressor.jar" {
			t.Errorf("Tools.CompressorJar = %q, want %q", cfg.Tools.CompressorJar, "/opt/yui/yuicompressor.jar")
		}
		// Unset fields stay empty so env vars and flags can still fill them.
		if cfg.Scripts.BundleName != "" {
			t.Errorf("Scripts.BundleName = %q, want empty before ApplyDefaults", cfg.Scripts.BundleName)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/bundle.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("scripts: [unclosed"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "unknown.yaml")
		content := "scripts:\n  bundle: app.js\n"
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid engine fails validation", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "engine.yaml")
		if err := os.WriteFile(configPath, []byte("styles:\n  engine: csso\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidEngine) {
			t.Errorf("error = %v, want ErrInvalidEngine", err)
		}
	})

	t.Run("config name is searched in working directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "release.yml"), []byte("scripts:\n  bundleName: game.js\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("release")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Scripts.BundleName != "game.js" {
			t.Errorf("Scripts.BundleName = %q, want %q", cfg.Scripts.BundleName, "game.js")
		}
	})

	t.Run("unknown config name lists searched paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("does-not-exist")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "does-not-exist.yaml") {
			t.Errorf("error should list searched paths, got: %v", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths("bundle")

	if len(paths) < 2 {
		t.Fatalf("SearchPaths() returned %d paths, want at least 2", len(paths))
	}
	if paths[0] != "bundle.yaml" || paths[1] != "bundle.yml" {
		t.Errorf("first paths = %q, want working directory first", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, appDirName) {
			t.Errorf("path %q not under %s", p, appDirName)
		}
	}
}
