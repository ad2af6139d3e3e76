// Package style renders rich-text style classes as markup. Themes are YAML
// documents embedded in the binary and may be overridden from a directory.
package style

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/eescode/eescode/pkg/ast"
	v "github.com/eescode/eescode/pkg/validator"

	"gopkg.in/yaml.v3"
)

// Style is the presentation of one class.
type Style struct {
	Class string `yaml:"class,omitempty"`
	Color string `yaml:"color,omitempty"`
	// ANSI is an SGR parameter list such as "1;34" used by the terminal styler.
	ANSI string `yaml:"ansi,omitempty"`
}

type Theme struct {
	Name      string           `yaml:"name"`
	LineBreak string           `yaml:"line_break,omitempty"`
	Styles    map[string]Style `yaml:"styles"`
}

func (t *Theme) Validate() error {
	return v.All(
		v.NotEmpty(t.Name, "name"),
		v.MapDict(t.Styles, func(class string, s Style) error {
			return v.All(
				v.MatchesAllowed(class, ast.Styles, "style class"),
				v.NoMarkup(s.Class, "class of "+class),
				v.NoMarkup(s.Color, "color of "+class),
			)
		}, "styles"),
	)
}

//go:embed themes/*.yaml
var Files embed.FS

var (
	mu       sync.RWMutex
	themeDir string
	themes   = map[string]*Theme{}
)

// SetThemeDir sets a directory searched before the embedded themes. An empty
// dir disables the override.
func SetThemeDir(dir string) {
	mu.Lock()
	defer mu.Unlock()
	themeDir = dir
}

// Load returns the theme called name.
func Load(name string) (*Theme, error) {
	mu.RLock()
	dir := themeDir
	mu.RUnlock()

	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name+".yaml"))
		if err == nil {
			slog.Debug("loading theme override", "name", name, "dir", dir)
			return decode(data)
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading theme %q: %w", name, err)
		}
	}

	if t, ok := themes[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

// Names lists the embedded themes.
func Names() []string {
	var names []string
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func decode(data []byte) (*Theme, error) {
	var t Theme
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding theme: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validating theme %q: %w", t.Name, err)
	}
	return &t, nil
}

func init() {
	entries, err := Files.ReadDir("themes")
	if err != nil {
		panic(fmt.Errorf("reading embedded themes: %w", err))
	}
	for _, entry := range entries {
		data, err := Files.ReadFile("themes/" + entry.Name())
		if err != nil {
			panic(fmt.Errorf("reading theme %s: %w", entry.Name(), err))
		}
		t, err := decode(data)
		if err != nil {
			panic(fmt.Errorf("theme %s: %w", entry.Name(), err))
		}
		themes[strings.TrimSuffix(entry.Name(), ".yaml")] = t
	}
}

// HTML renders spans with the theme's class and color.
type HTML struct {
	Theme *Theme
}

func (h HTML) Style(class, text string) string {
	escaped := html.EscapeString(text)
	var s Style
	if h.Theme != nil {
		s = h.Theme.Styles[class]
	}
	if s.Class == "" && s.Color == "" {
		return escaped
	}
	var b strings.Builder
	b.WriteString("<span")
	if s.Class != "" {
		fmt.Fprintf(&b, ` class="%s"`, s.Class)
	}
	if s.Color != "" {
		fmt.Fprintf(&b, ` style="color:%s"`, s.Color)
	}
	b.WriteString(">")
	b.WriteString(escaped)
	b.WriteString("</span>")
	return b.String()
}

func (h HTML) LineBreak() string {
	if h.Theme != nil && h.Theme.LineBreak != "" {
		return h.Theme.LineBreak
	}
	return "<br>"
}

// Plain drops all styling.
type Plain struct{}

func (Plain) Style(_, text string) string { return text }
func (Plain) LineBreak() string           { return "\n" }

// ANSI colors text for a terminal using each style's SGR parameters.
type ANSI struct {
	Theme *Theme
}

func (a ANSI) Style(class, text string) string {
	if a.Theme == nil {
		return text
	}
	s, ok := a.Theme.Styles[class]
	if !ok || s.ANSI == "" {
		return text
	}
	return "\x1b[" + s.ANSI + "m" + text + "\x1b[0m"
}

func (ANSI) LineBreak() string { return "\n" }

// For returns the styler for an output format: html, ansi or plain.
func For(format string, t *Theme) (ast.Styler, error) {
	switch format {
	case "html":
		return HTML{Theme: t}, nil
	case "ansi":
		return ANSI{Theme: t}, nil
	case "plain", "":
		return Plain{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// Formats lists the formats accepted by For.
var Formats = []string{"html", "ansi", "plain"}
