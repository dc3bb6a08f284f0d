// Package config loads facscope settings from a YAML file.
//
// Settings resolve in three layers: built-in defaults, then the config file,
// then command-line flags that were set explicitly. This package handles the
// first two; the CLI overlays flags on the returned Config.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"facscope/internal/errors"
	"facscope/internal/expertise"
	"facscope/internal/extract"
	"facscope/internal/render"
)

const (
	// AppName is used for XDG directory paths.
	AppName = "facscope"

	// DefaultConfigFile is the config file name inside the XDG config dir.
	DefaultConfigFile = "config.yaml"

	DefaultOutputDir = "."
	DefaultUserAgent = "facscope/1.0"
)

// DefaultFormats are written when no output format is configured.
var DefaultFormats = []string{"csv"}

// Renderer holds page rendering settings.
type Renderer struct {
	Kind              string        `yaml:"kind"`
	Wait              time.Duration `yaml:"wait"`
	NavigationTimeout time.Duration `yaml:"navigationTimeout"`
	Headless          *bool         `yaml:"headless"`
	UserAgent         string        `yaml:"userAgent"`
	ExecPath          string        `yaml:"execPath"`
	RespectRobots     bool          `yaml:"respectRobots"`
}

// Extract holds extraction settings.
type Extract struct {
	Mode         string `yaml:"mode"`
	NameSelector string `yaml:"nameSelector"`
	Normalize    *bool  `yaml:"normalize"`
}

// Output holds export settings.
type Output struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
}

// Catalog is a custom subject catalog. A name matching a built-in catalog
// replaces it.
type Catalog struct {
	Name     string   `yaml:"name"`
	Subjects []string `yaml:"subjects"`
}

// Config is the file configuration schema.
type Config struct {
	Renderer Renderer  `yaml:"renderer"`
	Extract  Extract   `yaml:"extract"`
	Output   Output    `yaml:"output"`
	Tabs     []string  `yaml:"tabs"`
	Catalog  string    `yaml:"catalog"`
	Catalogs []Catalog `yaml:"catalogs"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	chrome := render.DefaultChromeOptions()
	headless := chrome.Headless
	normalize := true
	return &Config{
		Renderer: Renderer{
			Kind:              string(render.KindChrome),
			Wait:              chrome.Wait,
			NavigationTimeout: chrome.NavigationTimeout,
			Headless:          &headless,
			UserAgent:         DefaultUserAgent,
		},
		Extract: Extract{
			Mode:         string(extract.ModeFlat),
			NameSelector: extract.DefaultNameSelector,
			Normalize:    &normalize,
		},
		Output: Output{
			Dir:     DefaultOutputDir,
			Formats: append([]string(nil), DefaultFormats...),
		},
		Catalog: expertise.AllCatalog,
	}
}

// ConfigDir returns the XDG config directory for facscope.
// On Linux: ~/.config/facscope
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), DefaultConfigFile)
}

// Load reads the config at path and fills unset fields from Default. An
// empty path reads DefaultPath and tolerates its absence; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, errors.NewConfigError(path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.NewConfigError(path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes YAML and fills unset fields from Default.
func Parse(data []byte) (*Config, error) {
	var fc Config
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, err
	}
	fc.applyDefaults(Default())
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	return &fc, nil
}

func (c *Config) applyDefaults(d *Config) {
	if c.Renderer.Kind == "" {
		c.Renderer.Kind = d.Renderer.Kind
	}
	if c.Renderer.Wait == 0 {
		c.Renderer.Wait = d.Renderer.Wait
	}
	if c.Renderer.NavigationTimeout == 0 {
		c.Renderer.NavigationTimeout = d.Renderer.NavigationTimeout
	}
	if c.Renderer.Headless == nil {
		c.Renderer.Headless = d.Renderer.Headless
	}
	if c.Renderer.UserAgent == "" {
		c.Renderer.UserAgent = d.Renderer.UserAgent
	}
	if c.Extract.Mode == "" {
		c.Extract.Mode = d.Extract.Mode
	}
	if c.Extract.NameSelector == "" {
		c.Extract.NameSelector = d.Extract.NameSelector
	}
	if c.Extract.Normalize == nil {
		c.Extract.Normalize = d.Extract.Normalize
	}
	if c.Output.Dir == "" {
		c.Output.Dir = d.Output.Dir
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = d.Output.Formats
	}
	if c.Catalog == "" {
		c.Catalog = d.Catalog
	}
}

// Validate checks enumerated settings and the custom catalogs.
func (c *Config) Validate() error {
	if _, err := render.ParseKind(c.Renderer.Kind); err != nil {
		return err
	}
	if _, err := extract.ParseMode(c.Extract.Mode); err != nil {
		return err
	}
	if c.Renderer.Wait < 0 {
		return errors.NewValidationError("renderer.wait", "must not be negative")
	}
	if c.Renderer.NavigationTimeout < 0 {
		return errors.NewValidationError("renderer.navigationTimeout", "must not be negative")
	}
	reg, err := c.Registry()
	if err != nil {
		return err
	}
	_, err = reg.Lookup(c.Catalog)
	return err
}

// Registry returns the built-in catalogs merged with the custom ones.
func (c *Config) Registry() (*expertise.Registry, error) {
	base := expertise.DefaultRegistry()
	if len(c.Catalogs) == 0 {
		return base, nil
	}
	extra := make([]expertise.Catalog, 0, len(c.Catalogs))
	for _, cat := range c.Catalogs {
		extra = append(extra, expertise.Catalog{Name: cat.Name, Subjects: cat.Subjects})
	}
	return base.Merge(extra)
}

// HeadlessEnabled reports the headless setting, defaulting to true.
func (c *Config) HeadlessEnabled() bool {
	return c.Renderer.Headless == nil || *c.Renderer.Headless
}

// NormalizeEnabled reports whether extracted text is normalized, defaulting to true.
func (c *Config) NormalizeEnabled() bool {
	return c.Extract.Normalize == nil || *c.Extract.Normalize
}

// ChromeOptions converts the renderer settings for render.NewChromeRenderer.
func (c *Config) ChromeOptions() render.ChromeOptions {
	return render.ChromeOptions{
		Wait:              c.Renderer.Wait,
		NavigationTimeout: c.Renderer.NavigationTimeout,
		Headless:          c.HeadlessEnabled(),
		UserAgent:         c.Renderer.UserAgent,
		ExecPath:          c.Renderer.ExecPath,
	}
}

// SplitFormats splits comma-separated format lists and lowercases each entry.
func SplitFormats(values []string) []string {
	var out []string
	for _, v := range values {
		for _, f := range strings.Split(v, ",") {
			if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
				out = append(out, f)
			}
		}
	}
	return out
}
