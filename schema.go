package treeconf

import "fmt"

// Kind is the coercion applied to an option's raw text.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindBool   Kind = "bool"
	KindList   Kind = "list" // whitespace-separated strings
)

// TreePlaceholder is replaced by the tree's name in defaults and in global
// values a tree inherits.
const TreePlaceholder = "{tree}"

// OptionSpec declares one recognized option.
type OptionSpec struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Required bool   `json:"required,omitempty"`

	// Default is written in config-file syntax and coerced like user input.
	// It may contain {tree}.
	Default    string `json:"default,omitempty"`
	HasDefault bool   `json:"has_default,omitempty"`

	// Inherit names the global option a tree option falls back to when the
	// tree leaves it unset. Only meaningful in the tree schema.
	Inherit string `json:"inherit,omitempty"`

	Secret      bool         `json:"secret,omitempty"`
	Constraints []Constraint `json:"constraints,omitempty"`
	Doc         string       `json:"doc,omitempty"`
}

// SectionSpec declares a nested sub-section.
type SectionSpec struct {
	Name     string        `json:"name"`
	Required bool          `json:"required,omitempty"`
	Schema   SectionSchema `json:"schema"`
}

// SectionSchema is the ordered set of options and sub-sections a section
// may contain. Unknown keys are errors unless Permissive is set.
type SectionSchema struct {
	Name       string        `json:"name"`
	Options    []OptionSpec  `json:"options,omitempty"`
	Sections   []SectionSpec `json:"sections,omitempty"`
	Permissive bool          `json:"permissive,omitempty"`
}

// Option returns the spec for name.
func (s *SectionSchema) Option(name string) (OptionSpec, bool) {
	for _, o := range s.Options {
		if o.Name == name {
			return o, true
		}
	}
	return OptionSpec{}, false
}

// Section returns the nested sub-section spec for name.
func (s *SectionSchema) Section(name string) (SectionSpec, bool) {
	if i := s.sectionIndex(name); i >= 0 {
		return s.Sections[i], true
	}
	return SectionSpec{}, false
}

func (s *SectionSchema) sectionIndex(name string) int {
	for i, sub := range s.Sections {
		if sub.Name == name {
			return i
		}
	}
	return -1
}

// check reports schema mistakes that would otherwise surface as confusing
// validation errors: duplicate names, bad constraints, uncoercible defaults.
func (s *SectionSchema) check() error {
	seen := make(map[string]bool)
	for _, o := range s.Options {
		if o.Name == "" {
			return fmt.Errorf("schema %s: option with empty name", s.Name)
		}
		if seen[o.Name] {
			return fmt.Errorf("schema %s: duplicate option %s", s.Name, o.Name)
		}
		seen[o.Name] = true

		switch o.Kind {
		case KindString, KindInt, KindBool, KindList:
		default:
			return fmt.Errorf("schema %s: option %s has unknown kind %q", s.Name, o.Name, o.Kind)
		}
		for i := range o.Constraints {
			if err := o.Constraints[i].check(o.Kind); err != nil {
				return fmt.Errorf("schema %s: option %s: %w", s.Name, o.Name, err)
			}
		}
		if o.HasDefault && o.Kind != KindString && o.Kind != KindList {
			if _, err := coerce(o.Kind, o.Default); err != nil {
				return fmt.Errorf("schema %s: option %s: default %q is not a valid %s", s.Name, o.Name, o.Default, o.Kind)
			}
		}
	}
	for i := range s.Sections {
		sub := &s.Sections[i]
		if seen[sub.Name] {
			return fmt.Errorf("schema %s: sub-section %s collides with another entry", s.Name, sub.Name)
		}
		seen[sub.Name] = true
		if err := sub.Schema.check(); err != nil {
			return err
		}
	}
	return nil
}

// clone returns a deep copy of s.
func (s *SectionSchema) clone() *SectionSchema {
	if s == nil {
		return nil
	}
	out := *s
	if s.Options != nil {
		out.Options = make([]OptionSpec, len(s.Options))
		for i, o := range s.Options {
			if o.Constraints != nil {
				cs := make([]Constraint, len(o.Constraints))
				for j, c := range o.Constraints {
					cs[j] = c.clone()
				}
				o.Constraints = cs
			}
			out.Options[i] = o
		}
	}
	if s.Sections != nil {
		out.Sections = make([]SectionSpec, len(s.Sections))
		for i, sub := range s.Sections {
			sub.Schema = *sub.Schema.clone()
			out.Sections[i] = sub
		}
	}
	return &out
}

// PluginDescriptor is what a plugin contributes: its name and, optionally,
// the schema of its [[name]] sub-section inside each tree.
type PluginDescriptor struct {
	Name   string         `json:"name"`
	Schema *SectionSchema `json:"schema,omitempty"`
	Core   bool           `json:"core,omitempty"`
}

func (p PluginDescriptor) clone() PluginDescriptor {
	p.Schema = p.Schema.clone()
	return p
}
