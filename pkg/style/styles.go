package style

import (
	"github.com/charmbracelet/lipgloss"
)

// registry holds the active named styles
var registry = mustDefaultStyles()

// Get returns the named style, or a plain style when the name is unknown
func Get(name string) lipgloss.Style {
	if s, ok := registry[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Names lists the registered style names; each is also a markup tag
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func apply(styles map[string]lipgloss.Style) {
	registry = styles
	defaultParser = NewMarkupParser()
}

// Indent pads s by two spaces per level
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return Get("bold").Render(s)
}
