package style

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed theme.yaml
var defaultTheme []byte

// ColorDef is an adaptive color in a theme file
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef describes one named style in a theme file. Foreground and
// Background name entries of the theme's colors.
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// Theme is the decoded form of theme.yaml
type Theme struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// ParseTheme decodes a theme document
func ParseTheme(data []byte) (*Theme, error) {
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	return &t, nil
}

// Merge overlays o on t. Colors and styles in o replace those with the
// same name.
func (t *Theme) Merge(o *Theme) *Theme {
	merged := &Theme{
		Colors: make(map[string]ColorDef, len(t.Colors)+len(o.Colors)),
		Styles: make(map[string]StyleDef, len(t.Styles)+len(o.Styles)),
	}
	for _, src := range []*Theme{t, o} {
		for name, c := range src.Colors {
			merged.Colors[name] = c
		}
		for name, s := range src.Styles {
			merged.Styles[name] = s
		}
	}
	return merged
}

// Build turns the theme into lipgloss styles keyed by name. A style that
// names an unknown color is an error.
func (t *Theme) Build() (map[string]lipgloss.Style, error) {
	color := func(style, name string) (lipgloss.AdaptiveColor, error) {
		c, ok := t.Colors[name]
		if !ok {
			return lipgloss.AdaptiveColor{}, fmt.Errorf("style %q uses unknown color %q", style, name)
		}
		return lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark}, nil
	}

	styles := make(map[string]lipgloss.Style, len(t.Styles))
	for name, def := range t.Styles {
		s := lipgloss.NewStyle().
			Bold(def.Bold).
			Italic(def.Italic).
			Underline(def.Underline)
		if def.Foreground != "" {
			c, err := color(name, def.Foreground)
			if err != nil {
				return nil, err
			}
			s = s.Foreground(c)
		}
		if def.Background != "" {
			c, err := color(name, def.Background)
			if err != nil {
				return nil, err
			}
			s = s.Background(c)
		}
		styles[name] = s
	}
	return styles, nil
}

// LoadTheme reads a user theme from path and applies it over the
// built-in one. On error the current styles are left untouched.
func LoadTheme(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read theme %s: %w", path, err)
	}
	user, err := ParseTheme(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	base, err := ParseTheme(defaultTheme)
	if err != nil {
		return err
	}
	styles, err := base.Merge(user).Build()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	apply(styles)
	return nil
}

func mustDefaultStyles() map[string]lipgloss.Style {
	t, err := ParseTheme(defaultTheme)
	if err != nil {
		panic(err)
	}
	styles, err := t.Build()
	if err != nil {
		panic(err)
	}
	return styles
}
