// Package config loads and saves nest.yml, the project file that lists the
// user regions a generator knows about and the files it regenerates.
//
// Viper lower-cases every key, so template data keys are lower case too:
// a target with data {Name: uart} is rendered with {{ .name }}.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/nest/codewriter"
	"github.com/simonhull/firebird-suite/nest/generator"
	"github.com/simonhull/firebird-suite/nest/region"
)

// FileName is the config file looked up in the working directory.
const FileName = "nest.yml"

// ErrNotFound is returned when no config file exists.
var ErrNotFound = errors.New("nest.yml not found")

// Config is the content of nest.yml.
type Config struct {
	// IndentSize is the spaces per level for indented regions in templates
	// ({{ region "Init" 1 }}) and for `nest example`.
	IndentSize int      `mapstructure:"indent_size" yaml:"indent_size"`
	Regions    []Region `mapstructure:"regions" yaml:"regions"`
	Targets    []Target `mapstructure:"targets" yaml:"targets"`
	Scan       Scan     `mapstructure:"scan" yaml:"scan,omitempty"`

	// Dir is the directory holding the config file. Relative paths in
	// targets are resolved against it.
	Dir string `mapstructure:"-" yaml:"-"`
}

// Region declares one named user region.
type Region struct {
	Name        string  `mapstructure:"name" yaml:"name"`
	Description string  `mapstructure:"description" yaml:"description,omitempty"`
	Default     *string `mapstructure:"default" yaml:"default,omitempty"`
}

// Target is one regenerated file.
type Target struct {
	Name     string         `mapstructure:"name" yaml:"name"`
	Template string         `mapstructure:"template" yaml:"template,omitempty"`
	Text     string         `mapstructure:"text" yaml:"text,omitempty"`
	Output   string         `mapstructure:"output" yaml:"output"`
	Data     map[string]any `mapstructure:"data" yaml:"data,omitempty"`
}

// Scan configures `nest check`.
type Scan struct {
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`
	IgnoreDirs []string `mapstructure:"ignore_dirs" yaml:"ignore_dirs,omitempty"`
}

// Load reads the config at path, or nest.yml in the working directory when
// path is empty. Settings can be overridden from the environment with the
// NEST_ prefix, e.g. NEST_INDENT_SIZE=2.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("indent_size", codewriter.DefaultIndentSize)

	if path == "" {
		path = FileName
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s (run 'nest init' to create one)", ErrNotFound, path)
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("NEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	cfg.Dir = dir

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks region names and targets.
func (c *Config) Validate() error {
	if c.IndentSize < 0 {
		return fmt.Errorf("indent_size must not be negative, got %d", c.IndentSize)
	}

	seen := make(map[string]bool, len(c.Regions))
	for i, r := range c.Regions {
		if !region.ValidName(r.Name) {
			return fmt.Errorf("regions[%d]: invalid region name %q (letters, digits and '_' only)", i, r.Name)
		}
		if err := (region.Definition{Name: r.Name, Description: r.Description}).Check(); err != nil {
			return fmt.Errorf("regions[%d]: %w", i, err)
		}
		if seen[r.Name] {
			return fmt.Errorf("regions[%d]: region %q declared twice", i, r.Name)
		}
		seen[r.Name] = true
	}

	outputs := make(map[string]bool, len(c.Targets))
	for i, t := range c.Targets {
		if t.Output == "" {
			return fmt.Errorf("targets[%d]: output is required", i)
		}
		if (t.Template == "") == (t.Text == "") {
			return fmt.Errorf("targets[%d]: exactly one of template or text is required", i)
		}
		if outputs[t.Output] {
			return fmt.Errorf("targets[%d]: output %s is generated twice", i, t.Output)
		}
		outputs[t.Output] = true
	}
	return nil
}

// Registry returns a registry holding the configured regions.
func (c *Config) Registry() *region.Registry {
	defs := make([]region.Definition, 0, len(c.Regions))
	for _, r := range c.Regions {
		d := region.Definition{Name: r.Name, Description: r.Description}
		if r.Default != nil {
			d.Default = *r.Default
			d.HasDefault = true
		}
		defs = append(defs, d)
	}

	reg := region.NewRegistry()
	reg.Load(defs)
	return reg
}

// GeneratorTargets returns the targets with paths resolved against Dir.
// A non-empty only keeps the targets with those names.
func (c *Config) GeneratorTargets(only ...string) ([]generator.Target, error) {
	var out []generator.Target
	found := make(map[string]bool, len(only))

	for _, t := range c.Targets {
		if len(only) > 0 && !slices.Contains(only, t.Name) {
			continue
		}
		found[t.Name] = true

		gt := generator.Target{
			Name:   t.Name,
			Output: c.resolve(t.Output),
			Text:   t.Text,
			Data:   t.Data,
		}
		if t.Template != "" {
			gt.Template = c.resolve(t.Template)
		}
		out = append(out, gt)
	}

	for _, name := range only {
		if !found[name] {
			return nil, fmt.Errorf("no target named %q", name)
		}
	}
	return out, nil
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// Default returns the starter config written by `nest init`.
func Default() *Config {
	includes := "#include <stdint.h>\n"
	return &Config{
		IndentSize: codewriter.DefaultIndentSize,
		Regions: []Region{
			{Name: "Includes", Description: "Includes", Default: &includes},
			{Name: "Init", Description: "Initialization code"},
		},
		Targets: []Target{
			{
				Name:   "example",
				Output: "example.c",
				Text: "/* {{ .name }}.c - generated by nest */\n" +
					"{{ region \"Includes\" }}" +
					"void {{ .name }}_init(void)\n" +
					"{\n" +
					"{{ regionBare \"Init\" 1 }}" +
					"}\n",
				Data: map[string]any{"name": "example"},
			},
		},
		Scan: Scan{Extensions: []string{".c", ".h"}},
	}
}
