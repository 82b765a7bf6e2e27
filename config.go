package treeconf

import (
	"fmt"
	"strings"
)

// Section is a validated, read-only section: typed option values in schema
// order plus nested sub-sections.
type Section struct {
	name   string
	path   []string
	keys   []string
	values map[string]any
	prov   map[string]OptionProvenance
	subs   []*Section
}

func newSection(name string, path []string) *Section {
	return &Section{
		name:   name,
		path:   append([]string(nil), path...),
		values: make(map[string]any),
		prov:   make(map[string]OptionProvenance),
	}
}

func (s *Section) put(key string, value any, prov OptionProvenance) {
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
	prov.KeyPath = strings.Join(append(append([]string(nil), s.path...), key), ".")
	s.prov[key] = prov
}

// Name returns the section's own name.
func (s *Section) Name() string { return s.name }

// Path returns the section names from the root down to this section.
func (s *Section) Path() []string {
	return append([]string(nil), s.path...)
}

// Keys returns option names in schema order.
func (s *Section) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Has reports whether key is a resolved option of this section.
func (s *Section) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Sub returns a nested section by name.
func (s *Section) Sub(name string) (*Section, bool) {
	for _, sub := range s.subs {
		if sub.name == name {
			return sub, true
		}
	}
	return nil, false
}

// Subs returns nested sections in order.
func (s *Section) Subs() []*Section {
	return append([]*Section(nil), s.subs...)
}

// Get walks path through nested sections. The last element may name an
// option, returning its typed value (string, int, bool or []string), or a
// section, returning the *Section.
func (s *Section) Get(path ...string) (any, error) {
	if len(path) == 0 {
		return nil, &LookupError{Path: s.Path()}
	}
	cur := s
	for i, name := range path {
		last := i == len(path)-1
		if last {
			if v, ok := cur.values[name]; ok {
				return copyValue(v), nil
			}
		}
		sub, ok := cur.Sub(name)
		if !ok {
			return nil, &LookupError{Path: append(s.Path(), path[:i+1]...)}
		}
		if last {
			return sub, nil
		}
		cur = sub
	}
	return nil, &LookupError{Path: append(s.Path(), path...)}
}

// GetString returns a string option.
func (s *Section) GetString(path ...string) (string, error) {
	v, err := s.Get(path...)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s is %T, not a string", strings.Join(path, "."), v)
	}
	return str, nil
}

// GetInt returns an int option.
func (s *Section) GetInt(path ...string) (int, error) {
	v, err := s.Get(path...)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("%s is %T, not an int", strings.Join(path, "."), v)
	}
	return n, nil
}

// GetBool returns a bool option.
func (s *Section) GetBool(path ...string) (bool, error) {
	v, err := s.Get(path...)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s is %T, not a bool", strings.Join(path, "."), v)
	}
	return b, nil
}

// GetList returns a list option.
func (s *Section) GetList(path ...string) ([]string, error) {
	v, err := s.Get(path...)
	if err != nil {
		return nil, err
	}
	l, ok := v.([]string)
	if !ok {
		return nil, fmt.Errorf("%s is %T, not a list", strings.Join(path, "."), v)
	}
	return l, nil
}

// Provenance returns where key's value came from.
func (s *Section) Provenance(key string) (OptionProvenance, bool) {
	p, ok := s.prov[key]
	return p, ok
}

func copyValue(v any) any {
	if l, ok := v.([]string); ok {
		return append([]string{}, l...)
	}
	return v
}

// TreeConfig is one tree's resolved configuration. Its own options are
// promoted from Section; each enabled plugin has a sub-section named after
// it, empty when the plugin declares no schema.
type TreeConfig struct {
	*Section
	enabled []PluginDescriptor
}

// EnabledPlugins returns copies of the resolved plugins, core first.
func (t *TreeConfig) EnabledPlugins() []PluginDescriptor {
	out := make([]PluginDescriptor, len(t.enabled))
	for i, p := range t.enabled {
		out[i] = p.clone()
	}
	return out
}

// EnabledPluginNames returns the names of EnabledPlugins.
func (t *TreeConfig) EnabledPluginNames() []string {
	names := make([]string, len(t.enabled))
	for i, p := range t.enabled {
		names[i] = p.Name
	}
	return names
}

// Plugin returns an enabled plugin's validated sub-section.
func (t *TreeConfig) Plugin(name string) (*Section, bool) {
	return t.Sub(name)
}

// Config is the validated configuration: global options promoted from
// Section, plus every tree.
type Config struct {
	*Section
	trees     map[string]*TreeConfig
	treeOrder []string
}

// Tree returns a tree by name.
func (c *Config) Tree(name string) (*TreeConfig, bool) {
	t, ok := c.trees[name]
	return t, ok
}

// Trees returns all trees in document order.
func (c *Config) Trees() []*TreeConfig {
	out := make([]*TreeConfig, len(c.treeOrder))
	for i, name := range c.treeOrder {
		out[i] = c.trees[name]
	}
	return out
}

// TreeNames returns tree names in document order.
func (c *Config) TreeNames() []string {
	return append([]string(nil), c.treeOrder...)
}

// DefaultTree returns the tree named by default_tree.
func (c *Config) DefaultTree() *TreeConfig {
	name, err := c.GetString("default_tree")
	if err == nil {
		if t, ok := c.trees[name]; ok {
			return t
		}
	}
	return c.trees[c.treeOrder[0]]
}

// Get resolves a path from the root. A leading "trees" element descends
// into a tree:
//
//	cfg.Get("workers")
//	cfg.Get("trees", "mozilla-central", "es_index")
//	cfg.Get("trees", "mozilla-central", "buglink", "url")
//
// With exactly ("trees", name) the *TreeConfig is returned.
func (c *Config) Get(path ...string) (any, error) {
	if len(path) == 0 || path[0] != "trees" {
		return c.Section.Get(path...)
	}
	if len(path) == 1 {
		return nil, &LookupError{Path: path}
	}
	t, ok := c.trees[path[1]]
	if !ok {
		return nil, &LookupError{Path: path[:2]}
	}
	if len(path) == 2 {
		return t, nil
	}
	return t.Get(path[2:]...)
}
