package plugins

import "github.com/Azhovan/treeconf"

// Builtin returns the built-in plugins in discovery order, core first.
func Builtin() []treeconf.PluginDescriptor {
	return []treeconf.PluginDescriptor{
		Core(),
		URLLink(),
		BugLink(),
		Python(),
		XPIDL(),
		Omniglot(),
		Clang(),
	}
}

// Core is the always-enabled baseline plugin. It has no options.
func Core() treeconf.PluginDescriptor {
	return treeconf.PluginDescriptor{Name: treeconf.CorePlugin, Core: true}
}

// URLLink links URLs found in source text. It has no options.
func URLLink() treeconf.PluginDescriptor {
	return treeconf.PluginDescriptor{Name: "urllink"}
}

// BugLink turns bug numbers into links to a bug tracker.
func BugLink() treeconf.PluginDescriptor {
	return treeconf.PluginDescriptor{
		Name: "buglink",
		Schema: &treeconf.SectionSchema{
			Name: "buglink",
			Options: []treeconf.OptionSpec{
				{Name: "url", Kind: treeconf.KindString, Required: true,
					Constraints: []treeconf.Constraint{treeconf.Tag("url")},
					Doc:         "bug tracker URL; %s is replaced with the bug number"},
				{Name: "name", Kind: treeconf.KindString, Default: "this bug tracker", HasDefault: true,
					Doc: "tracker name shown in menus"},
				{Name: "regex", Kind: treeconf.KindString, Default: `(?i)bug\s+#?([0-9]+)`, HasDefault: true},
			},
		},
	}
}

// Python indexes Python sources.
func Python() treeconf.PluginDescriptor {
	return treeconf.PluginDescriptor{
		Name: "python",
		Schema: &treeconf.SectionSchema{
			Name: "python",
			Options: []treeconf.OptionSpec{
				{Name: "python_path", Kind: treeconf.KindString, Required: true,
					Constraints: []treeconf.Constraint{treeconf.NonEmpty()}},
				{Name: "max_import_depth", Kind: treeconf.KindInt, Default: "5", HasDefault: true,
					Constraints: []treeconf.Constraint{treeconf.NonNegative()}},
			},
		},
	}
}

// XPIDL indexes XPCOM interface definitions.
func XPIDL() treeconf.PluginDescriptor {
	return treeconf.PluginDescriptor{
		Name: "xpidl",
		Schema: &treeconf.SectionSchema{
			Name: "xpidl",
			Options: []treeconf.OptionSpec{
				{Name: "header_path", Kind: treeconf.KindString, Required: true,
					Constraints: []treeconf.Constraint{treeconf.NonEmpty()}},
				{Name: "include_folders", Kind: treeconf.KindList, HasDefault: true},
			},
		},
	}
}

// Omniglot provides version-control links. It has no options.
func Omniglot() treeconf.PluginDescriptor {
	return treeconf.PluginDescriptor{Name: "omniglot"}
}

// Clang indexes C and C++ through a compiler plugin. It has no options.
func Clang() treeconf.PluginDescriptor {
	return treeconf.PluginDescriptor{Name: "clang"}
}
