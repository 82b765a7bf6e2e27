// Package plugins declares the built-in plugins: their names, discovery
// order and the schemas of their [[name]] sub-sections.
//
// Example:
//
//	reg, err := treeconf.DefaultRegistry(plugins.Builtin()...)
package plugins
