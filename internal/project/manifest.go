package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a decoded chearmyp.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest sections. Zero values mean "not set"; the CLI
// fills them from flags and defaults.
type Config struct {
	Parse  ParseConfig  `toml:"parse"`
	Output OutputConfig `toml:"output"`
	Trace  TraceConfig  `toml:"trace"`
}

type ParseConfig struct {
	Text      string `toml:"text"` // borrowed | owned
	Normalize bool   `toml:"normalize"`
	Extension string `toml:"extension"`
	Jobs      int    `toml:"jobs"`
	Cache     bool   `toml:"cache"`
}

type OutputConfig struct {
	Format         string `toml:"format"`
	Diagnostics    string `toml:"diagnostics"` // pretty | short | json
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max-diagnostics"`
}

type TraceConfig struct {
	Level string `toml:"level"`
	Mode  string `toml:"mode"`
}

// LoadManifest finds and decodes the manifest above startDir.
// ok is false when there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes one manifest file and validates enumerated values.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := oneOf("parse.text", c.Parse.Text, "borrowed", "owned"); err != nil {
		return err
	}
	if err := oneOf("output.format", c.Output.Format, "dump", "tree", "json", "yaml", "msgpack"); err != nil {
		return err
	}
	if err := oneOf("output.diagnostics", c.Output.Diagnostics, "pretty", "short", "json"); err != nil {
		return err
	}
	if err := oneOf("output.color", c.Output.Color, "auto", "on", "off"); err != nil {
		return err
	}
	if c.Parse.Extension != "" && !strings.HasPrefix(c.Parse.Extension, ".") {
		return fmt.Errorf("parse.extension must start with '.', got %q", c.Parse.Extension)
	}
	if c.Parse.Jobs < 0 || c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("parse.jobs and output.max-diagnostics must not be negative")
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s: %q is not one of %s", key, value, strings.Join(allowed, "|"))
}
