package treeconf

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Validate checks root against reg and builds the typed configuration.
// It stops at the first violation and returns it as a *ConfigError.
//
// The global section is validated first, then each tree in document order:
// the tree's own options, then the sub-section of each enabled plugin in
// enabled order. Sub-sections of plugins that are not enabled for a tree are
// never validated.
func Validate(root *RawNode, reg *Registry) (*Config, error) {
	return newValidator(reg, nil).validate(root)
}

type sectionValidator struct {
	reg    *Registry
	logger *slog.Logger
}

func newValidator(reg *Registry, logger *slog.Logger) *sectionValidator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sectionValidator{reg: reg, logger: logger}
}

// scope locates the section being validated for error reporting.
type scope struct {
	sections []string // reported in ConfigError.Sections
	path     []string // full section path
	prefix   string   // qualifies option names inside a tree, e.g. "buglink."
	tree     string   // tree name, empty for the global section
}

func (sc scope) fail(code, option, format string, args ...any) *ConfigError {
	return &ConfigError{
		Sections: append([]string(nil), sc.sections...),
		Path:     append([]string(nil), sc.path...),
		Option:   option,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (sc scope) child(name string) scope {
	return scope{
		sections: sc.sections,
		path:     append(append([]string(nil), sc.path...), name),
		prefix:   sc.prefix + name + ".",
		tree:     sc.tree,
	}
}

func (v *sectionValidator) validate(root *RawNode) (*Config, error) {
	if root == nil {
		root = NewRawNode("")
	}
	globalScope := scope{sections: []string{GlobalSection}, path: []string{GlobalSection}}

	if keys := root.Keys(); len(keys) > 0 {
		return nil, globalScope.fail(ErrCodeUnknownOption, keys[0], "option %s appears outside any section", keys[0])
	}

	globalRaw, ok := root.Section(GlobalSection)
	if !ok {
		globalRaw, ok = root.sectionFold(GlobalSection)
		ok = ok && globalRaw.folded
	}
	if !ok {
		globalRaw = NewRawNode(GlobalSection)
	}
	global, err := v.section(globalRaw, &v.reg.global, globalScope, nil, true)
	if err != nil {
		return nil, err
	}
	if err := v.checkPluginNames(global, globalRaw, globalScope); err != nil {
		return nil, err
	}

	cfg := &Config{Section: global, trees: make(map[string]*TreeConfig)}
	for _, raw := range root.Sections() {
		if raw == globalRaw {
			continue
		}
		tree, err := v.tree(raw, global)
		if err != nil {
			return nil, err
		}
		cfg.trees[raw.Name] = tree
		cfg.treeOrder = append(cfg.treeOrder, raw.Name)
	}

	if len(cfg.treeOrder) == 0 {
		return nil, globalScope.fail(ErrCodeNoTrees, "", "at least one tree must be configured")
	}
	if global.Has("default_tree") {
		name := global.values["default_tree"].(string)
		switch {
		case name == "":
			global.put("default_tree", cfg.treeOrder[0], OptionProvenance{Origin: OriginDefault})
		case cfg.trees[name] == nil:
			return nil, globalScope.fail(ErrCodeUnknownTree, "default_tree", "default_tree names unknown tree %s", name)
		}
	}

	return cfg, nil
}

func (v *sectionValidator) tree(raw *RawNode, global *Section) (*TreeConfig, error) {
	sc := scope{sections: []string{raw.Name}, path: []string{raw.Name}, tree: raw.Name}

	sec, err := v.section(raw, &v.reg.tree, sc, global, false)
	if err != nil {
		return nil, err
	}
	if err := v.checkPluginNames(sec, raw, sc); err != nil {
		return nil, err
	}

	names := ResolvePlugins(pluginLists(sec, raw), pluginLists(global, nil), v.reg.PluginNames())
	v.logger.Debug("resolved plugins", "tree", raw.Name, "plugins", names)

	tree := &TreeConfig{Section: sec}
	for _, name := range names {
		desc, ok := v.reg.plugin(name)
		if !ok {
			return nil, sc.fail(ErrCodeUnknownPlugin, "enabled_plugins", "never heard of plugin %s", name)
		}
		tree.enabled = append(tree.enabled, desc)

		pluginRaw, ok := raw.Section(name)
		if !ok {
			pluginRaw = NewRawNode(name)
		}
		pluginScope := sc.child(name)
		if desc.Schema == nil {
			sec.subs = append(sec.subs, newSection(name, pluginScope.path))
			continue
		}
		pluginSec, err := v.section(pluginRaw, desc.Schema, pluginScope, nil, true)
		if err != nil {
			return nil, err
		}
		sec.subs = append(sec.subs, pluginSec)
	}

	for _, sub := range raw.Sections() {
		if _, enabled := sec.Sub(sub.Name); !enabled {
			v.logger.Debug("ignoring section of plugin not enabled", "tree", raw.Name, "section", sub.Name)
		}
	}

	if sec.Has("enabled_plugins") {
		sec.put("enabled_plugins", append([]string(nil), names...), sec.prov["enabled_plugins"])
	}
	return tree, nil
}

// section validates raw against schema. inherited, when non-nil, supplies
// values for options with an Inherit name that raw leaves unset. When
// nested is false, raw's sub-sections are left to the caller.
func (v *sectionValidator) section(raw *RawNode, schema *SectionSchema, sc scope, inherited *Section, nested bool) (*Section, error) {
	sec := newSection(sc.path[len(sc.path)-1], sc.path)

	for _, opt := range schema.Options {
		qualified := sc.prefix + opt.Name
		entry, present := raw.entry(opt.Name)

		switch {
		case present:
			value, err := coerce(opt.Kind, entry.value)
			if err != nil {
				return nil, sc.fail(ErrCodeInvalidType, qualified, "%s %s", qualified, err)
			}
			for _, c := range opt.Constraints {
				if msg := c.evaluate(value); msg != "" {
					return nil, sc.fail(ErrCodeConstraint, qualified, "%s %s", qualified, msg)
				}
			}
			sec.put(opt.Name, value, OptionProvenance{
				Origin:     OriginSource,
				SourceName: entry.source,
				Line:       entry.line,
				Secret:     opt.Secret,
			})

		case opt.Inherit != "" && inherited != nil && inherited.Has(opt.Inherit):
			value := copyValue(inherited.values[opt.Inherit])
			if s, ok := value.(string); ok && sc.tree != "" {
				value = strings.ReplaceAll(s, TreePlaceholder, sc.tree)
			}
			sec.put(opt.Name, value, OptionProvenance{Origin: OriginGlobal, Secret: opt.Secret})

		case opt.Required:
			return nil, sc.fail(ErrCodeRequired, qualified, "%s is required", qualified)

		case opt.HasDefault:
			text := opt.Default
			if sc.tree != "" {
				text = strings.ReplaceAll(text, TreePlaceholder, sc.tree)
			}
			value, err := coerce(opt.Kind, text)
			if err != nil {
				return nil, sc.fail(ErrCodeInvalidType, qualified, "default of %s %s", qualified, err)
			}
			sec.put(opt.Name, value, OptionProvenance{Origin: OriginDefault, Secret: opt.Secret})

		default:
			sec.put(opt.Name, zeroValue(opt.Kind), OptionProvenance{Origin: OriginDefault, Secret: opt.Secret})
		}
	}

	if !schema.Permissive {
		for _, key := range raw.Keys() {
			if _, known := schema.Option(key); !known {
				return nil, sc.fail(ErrCodeUnknownOption, sc.prefix+key, "unknown option %s", sc.prefix+key)
			}
		}
	}

	if !nested {
		return sec, nil
	}

	for _, spec := range schema.Sections {
		subRaw, ok := raw.Section(spec.Name)
		if !ok {
			if spec.Required {
				return nil, sc.fail(ErrCodeRequired, sc.prefix+spec.Name, "section %s is required", sc.prefix+spec.Name)
			}
			subRaw = NewRawNode(spec.Name)
		}
		sub, err := v.section(subRaw, &spec.Schema, sc.child(spec.Name), nil, true)
		if err != nil {
			return nil, err
		}
		sec.subs = append(sec.subs, sub)
	}
	if !schema.Permissive {
		for _, subRaw := range raw.Sections() {
			if _, known := schema.Section(subRaw.Name); !known {
				return nil, sc.fail(ErrCodeUnknownOption, sc.prefix+subRaw.Name, "unknown option %s", sc.prefix+subRaw.Name)
			}
		}
	}

	return sec, nil
}

// checkPluginNames rejects plugin names a section sets explicitly that were
// never discovered. Disabling core is allowed and has no effect.
func (v *sectionValidator) checkPluginNames(sec *Section, raw *RawNode, sc scope) error {
	for _, key := range []string{"enabled_plugins", "disabled_plugins"} {
		if _, set := raw.Scalar(key); !set {
			continue
		}
		names, _ := sec.values[key].([]string)
		for _, name := range names {
			if key == "enabled_plugins" && name == Wildcard {
				continue
			}
			if _, ok := v.reg.plugin(name); !ok {
				return sc.fail(ErrCodeUnknownPlugin, key, "%s: never heard of plugin %s", key, name)
			}
		}
	}
	return nil
}

// pluginLists reads a section's plugin lists. With raw given, only options
// raw sets count as set; otherwise every resolved list does.
func pluginLists(sec *Section, raw *RawNode) PluginLists {
	var lists PluginLists
	if l, ok := sec.values["enabled_plugins"].([]string); ok {
		lists.Enabled = l
		lists.EnabledSet = raw == nil || hasScalar(raw, "enabled_plugins")
	}
	if l, ok := sec.values["disabled_plugins"].([]string); ok {
		lists.Disabled = l
		lists.DisabledSet = raw == nil || hasScalar(raw, "disabled_plugins")
	}
	return lists
}

func hasScalar(raw *RawNode, key string) bool {
	_, ok := raw.Scalar(key)
	return ok
}
