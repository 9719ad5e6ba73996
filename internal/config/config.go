// internal/config/config.go
//
// This package handles configuration and the .atrium directory structure.
// Every project that uses atrium gets a .atrium/ folder next to its content
// file.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"atrium/internal/page"
)

const (
	// AtriumDir is the name of the directory we create in each project.
	AtriumDir = ".atrium"

	// DefaultAccent is the accent color used for the active nav link and
	// revealed card borders when the config does not set one.
	DefaultAccent = "#5B8DEF"

	defaultSinkPort = 8787
)

const defaultConfigYAML = `# atrium project configuration
version: 1

# Accent color for the active nav link and revealed cards.
accent: "#5B8DEF"

# Page content file, relative to the project directory.
content: portfolio.yaml

# Where the contact form posts to. Point this at a hosted form service or
# leave it on the local sink started alongside the viewer.
form:
  endpoint: http://127.0.0.1:8787/submit

# Local development endpoint for form submissions.
sink:
  enabled: true
  host: 127.0.0.1
  port: 8787
`

// FormConfig captures contact form delivery settings.
type FormConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// SinkConfig captures the local form sink settings.
type SinkConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Host    string `yaml:"host,omitempty"`
	Port    int    `yaml:"port,omitempty"`
}

// ProjectConfig models .atrium/config.yaml.
type ProjectConfig struct {
	Version int        `yaml:"version"`
	Accent  string     `yaml:"accent"`
	Content string     `yaml:"content"`
	Form    FormConfig `yaml:"form"`
	Sink    SinkConfig `yaml:"sink"`
}

// Config holds the runtime configuration for atrium.
type Config struct {
	// ProjectDir is the directory where the user ran `atrium` from.
	ProjectDir string

	// AtriumProjectDir is ProjectDir/.atrium.
	AtriumProjectDir string

	Project ProjectConfig
}

// InitAtriumDir creates the .atrium directory structure and seed files in
// the given project directory. Called on viewer startup.
func InitAtriumDir(projectDir string) error {
	atriumDir := filepath.Join(projectDir, AtriumDir)
	dirs := []string{
		filepath.Join(atriumDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := ensureConfigFile(filepath.Join(atriumDir, "config.yaml")); err != nil {
		return err
	}
	return page.EnsureContent(filepath.Join(projectDir, page.DefaultContentFile))
}

// NewConfig loads the project configuration, applying defaults for anything
// the file leaves unset.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:       projectDir,
		AtriumProjectDir: filepath.Join(projectDir, AtriumDir),
		Project:          defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.AtriumProjectDir, "logs")
}

// ConfigPath returns the on-disk location of the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.AtriumProjectDir, "config.yaml")
}

// ContentPath returns the absolute path of the page content file.
func (c *Config) ContentPath() string {
	content := c.Project.Content
	if filepath.IsAbs(content) {
		return filepath.Clean(content)
	}
	return filepath.Join(c.ProjectDir, content)
}

// Accent returns the configured accent color.
func (c *Config) Accent() string {
	return c.Project.Accent
}

// FormEndpoint returns the URL the contact form posts to.
func (c *Config) FormEndpoint() string {
	return c.Project.Form.Endpoint
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Accent:  DefaultAccent,
		Content: page.DefaultContentFile,
		Form:    FormConfig{Endpoint: fmt.Sprintf("http://127.0.0.1:%d/submit", defaultSinkPort)},
	}
}

func (c *Config) loadProjectConfig() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project = parsed
	return nil
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Accent) == "" {
		pc.Accent = DefaultAccent
	}
	if strings.TrimSpace(pc.Content) == "" {
		pc.Content = page.DefaultContentFile
	}
	if strings.TrimSpace(pc.Form.Endpoint) == "" {
		pc.Form.Endpoint = fmt.Sprintf("http://127.0.0.1:%d/submit", defaultSinkPort)
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Accent = strings.TrimSpace(pc.Accent)
	pc.Content = strings.TrimSpace(pc.Content)
	pc.Form.Endpoint = strings.TrimSpace(pc.Form.Endpoint)
	pc.Sink.Host = strings.TrimSpace(pc.Sink.Host)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if !strings.HasPrefix(pc.Accent, "#") {
		return fmt.Errorf("accent must be a hex color, got %q", pc.Accent)
	}
	parsed, err := url.Parse(pc.Form.Endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("form.endpoint must be an absolute URL, got %q", pc.Form.Endpoint)
	}
	if pc.Sink.Port != 0 && (pc.Sink.Port < 1 || pc.Sink.Port > 65535) {
		return fmt.Errorf("sink.port %d out of range", pc.Sink.Port)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0644)
}
