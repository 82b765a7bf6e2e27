// Package treeconf loads and validates the configuration of a multi-tree,
// plugin-extensible code indexer.
//
// Quick Start:
//
//	[DXR]
//	enabled_plugins = buglink clang
//	es_index = dxr_{tree}
//
//	[mozilla-central]
//	source_folder = /src/mozilla-central
//
//	    [[buglink]]
//	    url = https://bugzilla.mozilla.org/show_bug.cgi?id=%s
//
//	reg, _ := treeconf.DefaultRegistry(plugins.Builtin()...)
//	cfg, err := treeconf.NewLoader(reg).
//	    WithSource(sourcefile.New("dxr.config", sourcefile.Options{Required: true})).
//	    WithSource(sourceenv.New(sourceenv.Options{Prefix: "DXR_"})).
//	    Load(context.Background())
//
//	tree, _ := cfg.Tree("mozilla-central")
//	url, _ := tree.GetString("buglink", "url")
//
// The [DXR] section holds global options; every other top-level section is a
// tree. Trees inherit selected global options (es_index, enabled_plugins,
// ...), with {tree} replaced by the tree's name. Each enabled plugin
// validates its [[plugin]] sub-section; sub-sections of plugins that are not
// enabled are ignored. Loading stops at the first *ConfigError.
//
// See example_test.go for detailed usage.
package treeconf
