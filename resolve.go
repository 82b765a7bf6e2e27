package treeconf

// Wildcard in enabled_plugins stands for every discovered plugin.
const Wildcard = "*"

// PluginLists is one section's view of plugin enablement. The Set flags
// distinguish "not configured" from "configured as empty".
type PluginLists struct {
	Enabled     []string
	EnabledSet  bool
	Disabled    []string
	DisabledSet bool
}

// ResolvePlugins computes a tree's ordered list of enabled plugin names.
//
// The tree's enabled list wins over the global one when set. A wildcard is
// replaced in place by all discovered plugins in discovery order; core is
// then put first, duplicates keep their first position, and the effective
// disabled set (again tree over global) is removed. Core can never be
// removed. Resolution does not fail; unknown names pass through for the
// validator to report.
func ResolvePlugins(tree, global PluginLists, discovered []string) []string {
	tokens := global.Enabled
	if tree.EnabledSet {
		tokens = tree.Enabled
	} else if !global.EnabledSet {
		tokens = nil
	}

	expanded := make([]string, 0, len(tokens)+len(discovered)+1)
	expanded = append(expanded, CorePlugin)
	for _, name := range tokens {
		if name == Wildcard {
			expanded = append(expanded, discovered...)
			continue
		}
		expanded = append(expanded, name)
	}

	disabled := global.Disabled
	if tree.DisabledSet {
		disabled = tree.Disabled
	} else if !global.DisabledSet {
		disabled = nil
	}
	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		if name != CorePlugin {
			skip[name] = true
		}
	}

	seen := make(map[string]bool, len(expanded))
	resolved := make([]string, 0, len(expanded))
	for _, name := range expanded {
		if seen[name] || skip[name] {
			continue
		}
		seen[name] = true
		resolved = append(resolved, name)
	}
	return resolved
}
