package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"lookat/internal/browse"
	"lookat/internal/errors"
	"lookat/internal/filter"
)

// Config represents the application configuration structure.
// It defines the working-set filter, header, viewer and logging settings.
type Config struct {
	Filter struct {
		FileExclusions      []string `yaml:"file_exclusions"`      // Regexps (or glob: patterns) for file names to skip
		DirectoryExclusions []string `yaml:"directory_exclusions"` // Same for directory names
		Recurse             bool     `yaml:"recurse"`              // Descend into subdirectories
	} `yaml:"filter"`
	Header struct {
		ShowSubdirectories bool `yaml:"show_subdirectories"` // Show the scanned directories in the header
		MaxNameWidth       int  `yaml:"max_name_width"`      // Truncate file names to this many cells, 0 = no limit
	} `yaml:"header"`
	Viewer struct {
		Style         string `yaml:"style"`          // Chroma style for source code
		MarkdownStyle string `yaml:"markdown_style"` // Glamour style for markdown
		Watch         bool   `yaml:"watch"`          // Refresh the current file when it changes on disk
		DefaultSort   string `yaml:"default_sort"`   // Comparator applied after loading, empty keeps input order
	} `yaml:"viewer"`
	Log struct {
		Level string `yaml:"level"` // debug, info, warn or error
		File  string `yaml:"file"`  // Log file; the viewer discards logs without one
		JSON  bool   `yaml:"json"`  // One JSON object per line
	} `yaml:"log"`
	Theme struct {
		Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
		Primary  string `yaml:"primary"`  // Primary color for branding
		Success  string `yaml:"success"`  // Success message color
		Warning  string `yaml:"warning"`  // Warning message color
		Error    string `yaml:"error"`    // Error message color
		Info     string `yaml:"info"`     // Informational message color
		Emphasis string `yaml:"emphasis"` // Emphasis color for text that should stand out
		Border   string `yaml:"border"`   // Border color for frames
	} `yaml:"theme"`
}

// DefaultPath returns ~/.config/lookat/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lookat", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// fields absent from the file keep their defaults; theme colors are
	// cleared so a bare theme name selects that theme's colors
	cfg.Theme.Primary, cfg.Theme.Success, cfg.Theme.Warning, cfg.Theme.Error = "", "", "", ""
	cfg.Theme.Info, cfg.Theme.Emphasis, cfg.Theme.Border = "", "", ""
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.fillTheme()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Filter.FileExclusions = []string{`\.zip$`, `~$`, `^#.*#$`}
	cfg.Filter.DirectoryExclusions = []string{`^\.git$`, `^\.svn$`, `^\.hg$`}
	cfg.Filter.Recurse = false

	cfg.Header.ShowSubdirectories = false
	cfg.Header.MaxNameWidth = 60

	cfg.Viewer.Style = "monokai"
	cfg.Viewer.MarkdownStyle = "dark"
	cfg.Viewer.Watch = true
	cfg.Viewer.DefaultSort = ""

	cfg.Log.Level = "info"

	cfg.ApplyTheme("default")
	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}

	if err := c.FilterConfig().Validate(); err != nil {
		return err
	}
	if c.Header.MaxNameWidth < 0 {
		return errors.NewConfigError("must be >= 0", "header.max_name_width", errors.InvalidConfig, nil)
	}
	if c.Viewer.DefaultSort != "" && !browse.HasComparator(c.Viewer.DefaultSort) {
		return errors.NewConfigError("unknown comparator "+c.Viewer.DefaultSort, "viewer.default_sort", errors.InvalidConfig, nil)
	}
	if c.Log.Level != "" && !validLevels[c.Log.Level] {
		return errors.NewConfigError("unknown level "+c.Log.Level, "log.level", errors.InvalidConfig, nil)
	}
	return nil
}

// FilterConfig returns the working-set filter settings.
func (c *Config) FilterConfig() filter.Config {
	return filter.Config{
		FileExclusions:      append([]string(nil), c.Filter.FileExclusions...),
		DirectoryExclusions: append([]string(nil), c.Filter.DirectoryExclusions...),
		Recurse:             c.Filter.Recurse,
		ShowSubdirectories:  c.Header.ShowSubdirectories,
	}
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "213", // Purple
		},
		"dark": {
			"primary":  "105",
			"success":  "78",
			"warning":  "214",
			"error":    "160",
			"info":     "33",
			"emphasis": "147",
			"border":   "105",
		},
		"light": {
			"primary":  "135",
			"success":  "150",
			"warning":  "222",
			"error":    "210",
			"info":     "117",
			"emphasis": "219",
			"border":   "135",
		},
		"monochrome": {
			"primary":  "245",
			"success":  "252",
			"warning":  "241",
			"error":    "232",
			"info":     "248",
			"emphasis": "255",
			"border":   "245",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme sets the theme colors from a predefined theme.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)
	if name == "" {
		name = "default"
	}

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// fillTheme sets the colors the configuration leaves empty from the named
// theme.
func (c *Config) fillTheme() {
	theme := GetTheme(c.Theme.Name)
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = theme[key]
		}
	}
	fill(&c.Theme.Primary, "primary")
	fill(&c.Theme.Success, "success")
	fill(&c.Theme.Warning, "warning")
	fill(&c.Theme.Error, "error")
	fill(&c.Theme.Info, "info")
	fill(&c.Theme.Emphasis, "emphasis")
	fill(&c.Theme.Border, "border")
}

// ThemeColors returns the configured colors keyed like GetTheme.
func (c *Config) ThemeColors() map[string]string {
	return map[string]string{
		"primary":  c.Theme.Primary,
		"success":  c.Theme.Success,
		"warning":  c.Theme.Warning,
		"error":    c.Theme.Error,
		"info":     c.Theme.Info,
		"emphasis": c.Theme.Emphasis,
		"border":   c.Theme.Border,
	}
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
