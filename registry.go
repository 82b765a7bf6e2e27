package treeconf

import (
	"fmt"
)

// GlobalSection is the name of the process-wide section.
const GlobalSection = "DXR"

// CorePlugin is the name of the always-on plugin.
const CorePlugin = "core"

// Registry holds the global schema, the per-tree schema and the plugin
// descriptors in discovery order. The core plugin is always first.
type Registry struct {
	global  SectionSchema
	tree    SectionSchema
	plugins []PluginDescriptor
	index   map[string]int
}

// NewRegistry checks the schemas and plugins and builds a Registry.
// The Registry keeps its own copies; later changes to the arguments do not
// affect it.
func NewRegistry(global, tree SectionSchema, plugins ...PluginDescriptor) (*Registry, error) {
	global, tree = *global.clone(), *tree.clone()
	if err := global.check(); err != nil {
		return nil, err
	}
	if err := tree.check(); err != nil {
		return nil, err
	}
	for _, o := range tree.Options {
		if o.Inherit == "" {
			continue
		}
		g, ok := global.Option(o.Inherit)
		if !ok {
			return nil, fmt.Errorf("tree option %s inherits unknown global option %s", o.Name, o.Inherit)
		}
		if g.Kind != o.Kind {
			return nil, fmt.Errorf("tree option %s is %s but inherits %s option %s", o.Name, o.Kind, g.Kind, g.Name)
		}
	}

	r := &Registry{
		global: global,
		tree:   tree,
		index:  make(map[string]int),
	}

	core := PluginDescriptor{Name: CorePlugin, Core: true}
	ordered := []PluginDescriptor{core}
	for _, p := range plugins {
		p = p.clone()
		if p.Name == CorePlugin {
			ordered[0] = p
			ordered[0].Core = true
		}
		ordered = append(ordered, p)
	}

	for _, p := range ordered {
		if p.Name == CorePlugin && len(r.plugins) > 0 {
			continue
		}
		if p.Name == "" || p.Name == "*" {
			return nil, fmt.Errorf("invalid plugin name %q", p.Name)
		}
		if _, dup := r.index[p.Name]; dup {
			return nil, fmt.Errorf("plugin %s registered twice", p.Name)
		}
		if _, clash := tree.Option(p.Name); clash {
			return nil, fmt.Errorf("plugin %s collides with tree option of the same name", p.Name)
		}
		if p.Schema != nil {
			if err := p.Schema.check(); err != nil {
				return nil, fmt.Errorf("plugin %s: %w", p.Name, err)
			}
		}
		if p.Name != CorePlugin {
			p.Core = false
		}
		r.index[p.Name] = len(r.plugins)
		r.plugins = append(r.plugins, p)
	}

	return r, nil
}

// DefaultRegistry builds a Registry from GlobalSchema and TreeSchema.
func DefaultRegistry(plugins ...PluginDescriptor) (*Registry, error) {
	return NewRegistry(GlobalSchema(), TreeSchema(), plugins...)
}

// SchemaFor returns the schema governing the section at path:
//
//	()                       global
//	("DXR")                  global
//	("some_tree")            tree
//	("some_tree", "buglink") buglink's sub-section, and deeper nested ones
//
// It reports false for unknown plugins, plugins without a schema and
// undeclared nested sections. Whether a plugin schema is enforced depends on
// the tree's enabled plugins, which is the validator's concern. The result
// is a copy.
func (r *Registry) SchemaFor(path ...string) (*SectionSchema, bool) {
	schema, ok := r.schemaFor(path)
	if !ok {
		return nil, false
	}
	return schema.clone(), true
}

func (r *Registry) schemaFor(path []string) (*SectionSchema, bool) {
	switch {
	case len(path) == 0, len(path) == 1 && path[0] == GlobalSection:
		return &r.global, true
	case path[0] == GlobalSection:
		return nil, false
	case len(path) == 1:
		return &r.tree, true
	}

	p, ok := r.plugin(path[1])
	if !ok || p.Schema == nil {
		return nil, false
	}
	schema := p.Schema
	for _, name := range path[2:] {
		i := schema.sectionIndex(name)
		if i < 0 {
			return nil, false
		}
		schema = &schema.Sections[i].Schema
	}
	return schema, true
}

// Plugin looks up a discovered plugin. The descriptor's schema is a copy.
func (r *Registry) Plugin(name string) (PluginDescriptor, bool) {
	p, ok := r.plugin(name)
	if !ok {
		return PluginDescriptor{}, false
	}
	return p.clone(), true
}

func (r *Registry) plugin(name string) (PluginDescriptor, bool) {
	i, ok := r.index[name]
	if !ok {
		return PluginDescriptor{}, false
	}
	return r.plugins[i], true
}

// Plugins returns copies of all discovered plugins in discovery order.
func (r *Registry) Plugins() []PluginDescriptor {
	out := make([]PluginDescriptor, len(r.plugins))
	for i, p := range r.plugins {
		out[i] = p.clone()
	}
	return out
}

// PluginNames returns discovered plugin names in discovery order.
func (r *Registry) PluginNames() []string {
	names := make([]string, len(r.plugins))
	for i, p := range r.plugins {
		names[i] = p.Name
	}
	return names
}
