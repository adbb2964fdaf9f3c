package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"lookat/internal/config"
	"lookat/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

const (
	validYAML = `
filter:
  file_exclusions: ['\.zip$', 'glob:*.bak']
  recurse: true
header:
  show_subdirectories: true
  max_name_width: 40
viewer:
  style: dracula
  default_sort: mtime
log:
  level: debug
  file: /tmp/lookat.log
theme:
  name: dark
`
	invalidSyntaxYAML = `
filter:
  recurse: [unclosed
`
	invalidPatternYAML = `
filter:
  directory_exclusions: ['(']
`
	invalidSortYAML = `
viewer:
  default_sort: shuffle
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, []string{`\.zip$`, "glob:*.bak"}, cfg.Filter.FileExclusions)
		assert.True(t, cfg.Filter.Recurse)
		assert.True(t, cfg.Header.ShowSubdirectories)
		assert.Equal(t, 40, cfg.Header.MaxNameWidth)
		assert.Equal(t, "dracula", cfg.Viewer.Style)
		assert.Equal(t, "mtime", cfg.Viewer.DefaultSort)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "/tmp/lookat.log", cfg.Log.File)

		// unset fields keep their defaults
		assert.Equal(t, []string{`^\.git$`, `^\.svn$`, `^\.hg$`}, cfg.Filter.DirectoryExclusions)
		assert.Equal(t, "dark", cfg.Viewer.MarkdownStyle)
		assert.True(t, cfg.Viewer.Watch)

		// a bare theme name selects its colors
		assert.Equal(t, "dark", cfg.Theme.Name)
		assert.Equal(t, config.GetTheme("dark")["primary"], cfg.Theme.Primary)
	})

	t.Run("load non-existent file", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "does_not_exist.yaml"))
		require.NoError(t, err, "Loading non-existent file should return default config, not an error")
		assert.Equal(t, config.New(), cfg)
	})

	t.Run("load file with invalid YAML syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
	})

	t.Run("load file with invalid pattern", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidPatternYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("load file with unknown comparator", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSortYAML))
		require.Error(t, err)
		var cfgErr *errors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "viewer.default_sort", cfgErr.Param())
	})
}

func TestDefaults(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Validate())

	fc := cfg.FilterConfig()
	assert.Equal(t, []string{`\.zip$`, `~$`, `^#.*#$`}, fc.FileExclusions)
	assert.False(t, fc.Recurse)
	assert.False(t, fc.ShowSubdirectories)

	// the filter config is a copy
	fc.FileExclusions[0] = "changed"
	assert.Equal(t, `\.zip$`, cfg.Filter.FileExclusions[0])
}

func TestValidate(t *testing.T) {
	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())

	cfg := config.New()
	cfg.Header.MaxNameWidth = -1
	assert.True(t, errors.IsInvalidConfig(cfg.Validate()))

	cfg = config.New()
	cfg.Log.Level = "chatty"
	assert.Error(t, cfg.Validate())

	cfg = config.New()
	cfg.Viewer.DefaultSort = "size"
	assert.NoError(t, cfg.Validate())
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.New()
	cfg.Filter.Recurse = true
	cfg.ApplyTheme("light")

	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestThemes(t *testing.T) {
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("nonexistent"))
	for _, name := range config.ListThemes() {
		assert.NotEmpty(t, config.GetTheme(name)["primary"], name)
	}

	cfg := config.New()
	cfg.ApplyTheme("")
	assert.Equal(t, "default", cfg.Theme.Name)

	cfg.ApplyTheme("monochrome")
	assert.Equal(t, config.GetTheme("monochrome"), cfg.ThemeColors())
}
