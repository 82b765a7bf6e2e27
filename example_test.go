package treeconf_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Azhovan/treeconf"
	"github.com/Azhovan/treeconf/plugins"
)

// Example demonstrates loading a configuration with the built-in plugins.
func Example() {
	reg, err := treeconf.DefaultRegistry(plugins.Builtin()...)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := treeconf.LoadString(`
[DXR]
enabled_plugins = buglink clang

[mozilla-central]
source_folder = /src/mozilla-central
    [[buglink]]
    url = https://bugzilla.mozilla.org/

[comm-central]
source_folder = /src/comm-central
enabled_plugins = urllink
`, reg)
	if err != nil {
		log.Fatal(err)
	}

	for _, tree := range cfg.Trees() {
		index, _ := tree.GetString("es_index")
		fmt.Println(tree.Name()+":", index, tree.EnabledPluginNames())
	}

	url, _ := cfg.Get("trees", "mozilla-central", "buglink", "url")
	fmt.Println("bugs:", url)

	// Output:
	// mozilla-central: dxr_mozilla-central [core buglink clang]
	// comm-central: dxr_comm-central [core urllink]
	// bugs: https://bugzilla.mozilla.org/
}

// ExampleLoader_Load demonstrates layering sources. Later sources override
// earlier ones option by option.
func ExampleLoader_Load() {
	reg, err := treeconf.DefaultRegistry(plugins.Builtin()...)
	if err != nil {
		log.Fatal(err)
	}

	override := treeconf.SourceFunc{
		ID: "override",
		Func: func(ctx context.Context) (*treeconf.RawNode, error) {
			root := treeconf.NewRawNode("")
			root.Child("DXR").Set("workers", "8")
			root.StampSource("override")
			return root, nil
		},
	}

	cfg, err := treeconf.NewLoader(reg).
		WithText("[DXR]\nworkers = 2\n[t]\nsource_folder = /src\n").
		WithSource(override).
		Load(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	workers, _ := cfg.GetInt("workers")
	prov, _ := cfg.Provenance().Lookup("DXR.workers")
	fmt.Println(workers, prov.SourceName)

	// Output:
	// 8 override
}

func smallRegistry() *treeconf.Registry {
	reg, err := treeconf.NewRegistry(
		treeconf.SectionSchema{Name: treeconf.GlobalSection, Options: []treeconf.OptionSpec{
			{Name: "workers", Kind: treeconf.KindInt, Default: "1", HasDefault: true},
			{Name: "token", Kind: treeconf.KindString, Secret: true},
		}},
		treeconf.SectionSchema{Name: "tree", Options: []treeconf.OptionSpec{
			{Name: "source_folder", Kind: treeconf.KindString, Required: true},
		}},
	)
	if err != nil {
		log.Fatal(err)
	}
	return reg
}

const smallConfig = `[DXR]
workers = 2
token = hunter2
[t]
source_folder = /src
`

// ExampleDumpEffective demonstrates dumping the effective configuration.
func ExampleDumpEffective() {
	cfg, err := treeconf.LoadString(smallConfig, smallRegistry())
	if err != nil {
		log.Fatal(err)
	}

	if err := treeconf.DumpEffective(os.Stdout, cfg); err != nil {
		log.Fatal(err)
	}

	// Output:
	// DXR.workers: 2
	// DXR.token: ***redacted***
	// t.source_folder: "/src"
}

// ExampleDumpEffective_withSources demonstrates source attribution.
func ExampleDumpEffective_withSources() {
	cfg, err := treeconf.LoadString(smallConfig, smallRegistry())
	if err != nil {
		log.Fatal(err)
	}

	if err := treeconf.DumpEffective(os.Stdout, cfg, treeconf.WithSources()); err != nil {
		log.Fatal(err)
	}

	// Output:
	// DXR.workers: 2 (source: text:2)
	// DXR.token: ***redacted*** (source: text:3)
	// t.source_folder: "/src" (source: text:5)
}

// ExampleDumpEffective_asJSON demonstrates JSON output.
func ExampleDumpEffective_asJSON() {
	cfg, err := treeconf.LoadString(smallConfig, smallRegistry())
	if err != nil {
		log.Fatal(err)
	}

	if err := treeconf.DumpEffective(os.Stdout, cfg, treeconf.AsJSON()); err != nil {
		log.Fatal(err)
	}

	// Output:
	// {
	//   "DXR": {
	//     "token": "***redacted***",
	//     "workers": 2
	//   },
	//   "t": {
	//     "core": {},
	//     "source_folder": "/src"
	//   }
	// }
}

// ExampleConfigError demonstrates inspecting a validation failure.
func ExampleConfigError() {
	reg, err := treeconf.DefaultRegistry(plugins.Builtin()...)
	if err != nil {
		log.Fatal(err)
	}

	_, err = treeconf.LoadString(`
[DXR]
enabled_plugins = buglink
[mozilla-central]
source_folder = /src
`, reg)

	var cerr *treeconf.ConfigError
	if errors.As(err, &cerr) {
		fmt.Println(cerr.Sections, cerr.Code, cerr.Option)
		fmt.Println(err)
	}

	// Output:
	// [mozilla-central] required buglink.url
	// config error in [mozilla-central]: buglink.url is required (required)
}

// ExampleResolvePlugins demonstrates wildcard expansion and disabling.
func ExampleResolvePlugins() {
	discovered := []string{"core", "urllink", "buglink", "clang"}

	tree := treeconf.PluginLists{Disabled: []string{"clang"}, DisabledSet: true}
	global := treeconf.PluginLists{Enabled: []string{"*"}, EnabledSet: true}

	fmt.Println(treeconf.ResolvePlugins(tree, global, discovered))

	// Output:
	// [core urllink buglink]
}
