package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] markup with lipgloss styles
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a parser with a tag for every active style
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   map[string]lipgloss.Style{},
		patterns: map[string]*regexp.Regexp{},
	}
	for tag, s := range registry {
		p.AddStyle(tag, s)
	}
	return p
}

// AddStyle registers or replaces a tag
func (p *MarkupParser) AddStyle(tag string, s lipgloss.Style) {
	p.styles[tag] = s
	p.patterns[tag] = regexp.MustCompile(`(?s)\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

// Render replaces markup with styled text
func (p *MarkupParser) Render(text string) string {
	return p.apply(text, func(tag, content string) string {
		return p.styles[tag].Render(content)
	})
}

// Strip removes markup and keeps the text
func (p *MarkupParser) Strip(text string) string {
	return p.apply(text, func(_, content string) string {
		return content
	})
}

// apply substitutes tags until nothing changes, so nested tags resolve
func (p *MarkupParser) apply(text string, fn func(tag, content string) string) string {
	result := text
	for {
		before := result
		for tag, pattern := range p.patterns {
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				sub := pattern.FindStringSubmatch(match)
				return fn(tag, sub[1])
			})
		}
		if result == before {
			return result
		}
	}
}

// RenderTemplate substitutes {{key}} placeholders, then renders markup
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return p.Render(result)
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip is a convenience function using the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}

// RenderTemplate is a convenience function using the default parser
func RenderTemplate(template string, vars map[string]string) string {
	return defaultParser.RenderTemplate(template, vars)
}
