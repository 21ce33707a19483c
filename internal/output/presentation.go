package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	apperrors "github.com/ariel-frischer/appcore/internal/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Presentation is an output format for records.
type Presentation string

const (
	PresentationJSON  Presentation = "json"
	PresentationPlain Presentation = "plain"
	PresentationRich  Presentation = "rich"
	PresentationTOML  Presentation = "toml"
	PresentationYAML  Presentation = "yaml"
)

// Presentations returns every supported presentation.
func Presentations() []Presentation {
	return []Presentation{PresentationJSON, PresentationPlain, PresentationRich, PresentationTOML, PresentationYAML}
}

// PresentationNames returns the names of every supported presentation.
func PresentationNames() []string {
	names := make([]string, 0, len(Presentations()))
	for _, p := range Presentations() {
		names = append(names, string(p))
	}
	return names
}

// ParsePresentation parses a presentation name.
func ParsePresentation(s string) (Presentation, error) {
	for _, p := range Presentations() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", apperrors.InvalidPresentation(s, PresentationNames())
}

// String implements fmt.Stringer and pflag.Value.
func (p Presentation) String() string { return string(p) }

// Set implements pflag.Value.
func (p *Presentation) Set(s string) error {
	parsed, err := ParsePresentation(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Type implements pflag.Value.
func (p *Presentation) Type() string { return "presentation" }

// Render writes record to w in presentation p. Rich output falls back to
// plain output when colorize is false.
func Render(w io.Writer, p Presentation, record Record, colorize bool) error {
	switch p {
	case PresentationJSON:
		return renderJSON(w, record)
	case PresentationPlain:
		return renderPlain(w, record)
	case PresentationRich:
		if !colorize {
			return renderPlain(w, record)
		}
		return renderRich(w, record)
	case PresentationTOML:
		if err := toml.NewEncoder(w).Encode(record.Map()); err != nil {
			return fmt.Errorf("encoding TOML: %w", err)
		}
		return nil
	case PresentationYAML:
		return renderYAML(w, record)
	default:
		return fmt.Errorf("invalid presentation %q", p)
	}
}

func renderJSON(w io.Writer, record Record) error {
	raw, err := record.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("indenting JSON: %w", err)
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

func renderPlain(w io.Writer, record Record) error {
	for _, entry := range record {
		if _, err := fmt.Fprintf(w, "%s: %v\n", entry.Key, entry.Value); err != nil {
			return err
		}
	}
	return nil
}

func renderYAML(w io.Writer, record Record) error {
	node, err := record.yamlNode()
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return encoder.Close()
}

func renderRich(w io.Writer, record Record) error {
	renderer := lipgloss.NewRenderer(w)
	styles := richStyles{
		key: renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		value: renderer.NewStyle().
			Foreground(lipgloss.Color("245")),
		marker: renderer.NewStyle().
			Foreground(lipgloss.Color("214")),
	}
	var sb strings.Builder
	for _, entry := range record {
		styles.write(&sb, entry.Key, entry.Value, 0)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

type richStyles struct {
	key    lipgloss.Style
	value  lipgloss.Style
	marker lipgloss.Style
}

func (s richStyles) write(sb *strings.Builder, key string, value any, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := value.(type) {
	case map[string]any:
		sb.WriteString(indent + s.key.Render(key) + "\n")
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.write(sb, k, v[k], depth+1)
		}
	case []map[string]any:
		sb.WriteString(indent + s.key.Render(key) + "\n")
		for i, element := range v {
			s.write(sb, s.marker.Render(fmt.Sprintf("[%d]", i)), element, depth+1)
		}
	case []any:
		sb.WriteString(indent + s.key.Render(key) + "\n")
		for i, element := range v {
			s.write(sb, s.marker.Render(fmt.Sprintf("[%d]", i)), element, depth+1)
		}
	default:
		sb.WriteString(fmt.Sprintf("%s%s %s\n", indent, s.key.Render(key), s.value.Render(fmt.Sprint(v))))
	}
}
