package treeconf

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const redacted = "***redacted***"

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for DumpEffective.
type dumpConfig struct {
	withSources bool   // Include source attribution for each option
	asJSON      bool   // Output as JSON instead of text format
	indent      string // Indentation for JSON output (default: "  ")
}

// WithSources includes source attribution for each option in the output.
func WithSources() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withSources = true
	}
}

// AsJSON outputs configuration as JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  ").
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// DumpEffective writes every resolved option, global section first and then
// each tree. Secret options are written as "***redacted***".
// Returns an error if writing to the writer fails.
func DumpEffective(w io.Writer, cfg *Config, opts ...DumpOption) error {
	if cfg == nil {
		return ErrNilConfig
	}

	config := dumpConfig{
		indent: "  ",
	}
	for _, opt := range opts {
		opt(&config)
	}

	sections := append([]*Section{cfg.Section}, treeSections(cfg)...)
	if config.asJSON {
		return dumpAsJSON(w, sections, config)
	}
	return dumpAsText(w, sections, config)
}

func treeSections(cfg *Config) []*Section {
	trees := cfg.Trees()
	out := make([]*Section, len(trees))
	for i, t := range trees {
		out[i] = t.Section
	}
	return out
}

// dumpAsText outputs one "key.path: value" line per option.
func dumpAsText(w io.Writer, sections []*Section, config dumpConfig) error {
	for _, s := range sections {
		if err := dumpSectionText(w, s, config); err != nil {
			return err
		}
	}
	return nil
}

func dumpSectionText(w io.Writer, s *Section, config dumpConfig) error {
	for _, key := range s.keys {
		prov := s.prov[key]
		line := fmt.Sprintf("%s: %s", prov.KeyPath, formatText(s.values[key], prov))
		if config.withSources {
			line += " (" + describeOrigin(prov) + ")"
		}
		line += "\n"

		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}
	for _, sub := range s.subs {
		if err := dumpSectionText(w, sub, config); err != nil {
			return err
		}
	}
	return nil
}

// dumpAsJSON outputs configuration as nested JSON objects keyed by section.
func dumpAsJSON(w io.Writer, sections []*Section, config dumpConfig) error {
	result := make(map[string]any, len(sections))
	for _, s := range sections {
		result[s.name] = buildJSONStructure(s, config)
	}

	var data []byte
	var err error
	if config.indent != "" {
		data, err = json.MarshalIndent(result, "", config.indent)
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

func buildJSONStructure(s *Section, config dumpConfig) map[string]any {
	result := make(map[string]any, len(s.keys)+len(s.subs))
	for _, key := range s.keys {
		prov := s.prov[key]
		value := copyValue(s.values[key])
		if prov.Secret {
			value = redacted
		}
		if config.withSources {
			result[key] = map[string]any{"value": value, "source": describeOrigin(prov)}
			continue
		}
		result[key] = value
	}
	for _, sub := range s.subs {
		result[sub.name] = buildJSONStructure(sub, config)
	}
	return result
}

// formatText formats a value for text output, redacting secrets.
func formatText(v any, prov OptionProvenance) string {
	if prov.Secret {
		return redacted
	}
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case []string:
		return fmt.Sprintf("[%s]", strings.Join(val, ", "))
	default:
		return fmt.Sprintf("%v", val)
	}
}

func describeOrigin(prov OptionProvenance) string {
	switch prov.Origin {
	case OriginSource:
		if prov.Line > 0 {
			return fmt.Sprintf("source: %s:%d", prov.SourceName, prov.Line)
		}
		return "source: " + prov.SourceName
	case OriginGlobal:
		return "inherited from " + GlobalSection
	default:
		return "default"
	}
}
