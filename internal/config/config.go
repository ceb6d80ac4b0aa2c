// Package config parses tabkit.toml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/LISSConsulting/LISSTech.TabKit/internal/tabs"
)

// FileName is the configuration file looked up by Load.
const FileName = "tabkit.toml"

// DefaultAccentColor is the default TUI accent color (indigo).
const DefaultAccentColor = "#7D56F4"

// hexColorRe matches a 6-digit hex color string like "#7D56F4".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Config is the top-level tabkit.toml configuration.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Tabs    TabsConfig    `toml:"tabs"`
	TabBar  TabBarConfig  `toml:"tab_bar"`
	TUI     TUIConfig     `toml:"tui"`
	Store   StoreConfig   `toml:"store"`
	Tab     []TabConfig   `toml:"tab"`
}

// ProjectConfig identifies the project.
type ProjectConfig struct {
	Name string `toml:"name"`
}

// TabsConfig controls the tab controller.
type TabsConfig struct {
	InitialPage       PageRef `toml:"initial_page"`
	Page              PageRef `toml:"page"`               // set = controlled mode
	PrerenderSiblings int     `toml:"prerender_siblings"` // -1 = render all
	DestroyInactive   bool    `toml:"destroy_inactive"`
	Animated          bool    `toml:"animated"`
	Swipeable         bool    `toml:"swipeable"`
	DistanceToChange  float64 `toml:"distance_to_change"` // fraction of pane width
	Direction         string  `toml:"direction"`          // "horizontal" or "vertical"
	PagesDir          string  `toml:"pages_dir"`
}

// TabBarConfig controls the tab bar renderer.
type TabBarConfig struct {
	Position        string `toml:"position"`
	Hidden          bool   `toml:"hidden"`
	PageSize        int    `toml:"page_size"`
	ActiveColor     string `toml:"active_color"`
	InactiveColor   string `toml:"inactive_color"`
	BackgroundColor string `toml:"background_color"`
	UnderlineColor  string `toml:"underline_color"`
}

// TUIConfig controls the terminal UI appearance.
type TUIConfig struct {
	AccentColor string `toml:"accent_color"`
	LogFile     string `toml:"log_file"` // empty = no diagnostics log
}

// StoreConfig controls the transition session log.
type StoreConfig struct {
	Enabled   bool   `toml:"enabled"`
	Dir       string `toml:"dir"`
	Retention int    `toml:"retention"` // number of session logs to keep; 0 = unlimited
}

// TabConfig declares one tab. File and Text are mutually exclusive; a tab
// with neither takes the page with the same key from pages_dir.
type TabConfig struct {
	Key   string `toml:"key"`
	Title string `toml:"title"`
	File  string `toml:"file"`
	Text  string `toml:"text"`
}

// PageRef is a page identifier written either as an integer index or a
// string key.
type PageRef struct {
	page tabs.Page
}

// NewPageRef wraps a tabs.Page.
func NewPageRef(p tabs.Page) PageRef {
	return PageRef{page: p}
}

// Page returns the wrapped identifier.
func (r PageRef) Page() tabs.Page {
	return r.page
}

// UnmarshalTOML implements toml.Unmarshaler.
func (r *PageRef) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case int64:
		r.page = tabs.Index(int(val))
	case string:
		if val == "" {
			r.page = tabs.NoPage
		} else {
			r.page = tabs.Key(val)
		}
	default:
		return fmt.Errorf("page must be an integer index or a string key, got %T", v)
	}
	return nil
}

// Validate checks the configuration for issues that would cause confusing
// runtime behaviour. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Tabs.PrerenderSiblings < tabs.Unbounded {
		errs = append(errs, fmt.Errorf("tabs.prerender_siblings must be >= 0 (-1 = render all)"))
	}
	if c.Tabs.DistanceToChange <= 0 || c.Tabs.DistanceToChange > 1 {
		errs = append(errs, fmt.Errorf("tabs.distance_to_change must be in (0, 1]"))
	}
	switch c.Tabs.Direction {
	case "horizontal", "vertical":
	default:
		errs = append(errs, fmt.Errorf("tabs.direction must be \"horizontal\" or \"vertical\""))
	}

	switch c.TabBar.Position {
	case "top", "bottom", "left", "right":
	default:
		errs = append(errs, fmt.Errorf("tab_bar.position must be one of top, bottom, left, right"))
	}
	if c.TabBar.PageSize < 1 {
		errs = append(errs, fmt.Errorf("tab_bar.page_size must be >= 1"))
	}
	colors := []struct{ name, value string }{
		{"tab_bar.active_color", c.TabBar.ActiveColor},
		{"tab_bar.inactive_color", c.TabBar.InactiveColor},
		{"tab_bar.background_color", c.TabBar.BackgroundColor},
		{"tab_bar.underline_color", c.TabBar.UnderlineColor},
		{"tui.accent_color", c.TUI.AccentColor},
	}
	for _, col := range colors {
		if col.value != "" && !hexColorRe.MatchString(col.value) {
			errs = append(errs, fmt.Errorf("%s must be a hex color (e.g. \"#7D56F4\")", col.name))
		}
	}

	if c.Store.Retention < 0 {
		errs = append(errs, fmt.Errorf("store.retention must be >= 0 (0 = unlimited)"))
	}
	if c.Store.Enabled && c.Store.Dir == "" {
		errs = append(errs, fmt.Errorf("store.dir must be set when store.enabled is true"))
	}

	for i, t := range c.Tab {
		if t.Key == "" && t.Title == "" {
			errs = append(errs, fmt.Errorf("tab[%d] needs a key or a title", i))
		}
		if t.File != "" && t.Text != "" {
			errs = append(errs, fmt.Errorf("tab[%d] sets both file and text", i))
		}
	}

	return errors.Join(errs...)
}

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		Tabs: TabsConfig{
			PrerenderSiblings: 1,
			Animated:          true,
			Swipeable:         true,
			DistanceToChange:  0.3,
			Direction:         "horizontal",
			PagesDir:          "pages",
		},
		TabBar: TabBarConfig{
			Position: "top",
			PageSize: tabs.DefaultPageSize,
		},
		TUI: TUIConfig{
			AccentColor: DefaultAccentColor,
		},
		Store: StoreConfig{
			Enabled:   true,
			Dir:       ".tabkit/sessions",
			Retention: 20,
		},
	}
}

// Load reads tabkit.toml from the given path. If path is empty, it walks up
// from the current working directory looking for tabkit.toml. Returns an
// error if the file contains unknown keys (likely typos).
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := findConfig()
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, strings.Join(keys, ", "))
	}

	if cfg.Project.Name == "" {
		cfg.Project.Name = DetectProjectName(filepath.Dir(path))
	}

	return &cfg, nil
}

// Find returns the path Load("") would read.
func Find() (string, error) {
	return findConfig()
}

// findConfig walks up from the current directory looking for tabkit.toml.
func findConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("config: get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config: %s not found (searched up from %s)", FileName, dir)
		}
		dir = parent
	}
}

// InitFile writes a default tabkit.toml template to the given directory.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: %s already exists at %s", FileName, path)
	}

	if err := os.WriteFile(path, []byte(initTemplate), 0644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}

const initTemplate = `# tabkit.toml: TabKit project configuration
# Place this file in the root of your project.

[project]
name = ""

[tabs]
initial_page = 0          # index or key of the first active tab
# page = "overview"       # uncomment to drive the active tab externally
prerender_siblings = 1    # tabs kept mounted on each side; -1 = all
destroy_inactive = false  # unmount tabs that leave the prerender band
animated = true
swipeable = true          # mouse drag switches tabs
distance_to_change = 0.3  # drag distance as a fraction of pane width
direction = "horizontal"
pages_dir = "pages"       # Markdown pages become tabs

[tab_bar]
position = "top"
hidden = false
page_size = 5
active_color = ""
inactive_color = ""
background_color = ""
underline_color = ""

[tui]
accent_color = "#7D56F4"
log_file = ""             # diagnostics log; empty = disabled

[store]
enabled = true
dir = ".tabkit/sessions"
retention = 20            # number of session logs to keep; 0 = unlimited

# Tabs declared here come before discovered pages.
# [[tab]]
# key = "readme"
# title = "README"
# file = "README.md"
`
