// Package sourcefile loads configuration from a file in the native
// nested-section format, or from YAML, JSON or TOML documents of the same
// shape: top-level keys are sections, nested maps are sub-sections, scalars
// are options and arrays become whitespace-separated lists.
//
// Format is auto-detected from extension (.config, .ini, .cfg, .conf,
// .yaml, .yml, .json, .toml).
//
// Example:
//
//	source := sourcefile.New("dxr.config", sourcefile.Options{Required: true})
//	loader := treeconf.NewLoader(reg).WithSource(source)
package sourcefile
