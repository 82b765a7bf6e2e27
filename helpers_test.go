package treeconf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// testPlugins mirrors the built-in plugin set (package plugins imports this
// one, so it cannot be used here) plus a plugin with nested sub-sections.
func testPlugins() []PluginDescriptor {
	return []PluginDescriptor{
		{Name: "urllink"},
		{Name: "buglink", Schema: &SectionSchema{
			Name: "buglink",
			Options: []OptionSpec{
				{Name: "url", Kind: KindString, Required: true, Constraints: []Constraint{Tag("url")}},
				{Name: "name", Kind: KindString, Default: "this bug tracker", HasDefault: true},
				{Name: "regex", Kind: KindString, Default: `(?i)bug\s+#?([0-9]+)`, HasDefault: true},
			},
		}},
		{Name: "python", Schema: &SectionSchema{
			Name:    "python",
			Options: []OptionSpec{{Name: "python_path", Kind: KindString, Required: true}},
		}},
		{Name: "xpidl", Schema: &SectionSchema{
			Name:    "xpidl",
			Options: []OptionSpec{{Name: "header_path", Kind: KindString, Required: true}},
		}},
		{Name: "omniglot"},
		{Name: "clang"},
		{Name: "deep", Schema: &SectionSchema{
			Name:    "deep",
			Options: []OptionSpec{{Name: "level", Kind: KindInt, Default: "1", HasDefault: true}},
			Sections: []SectionSpec{{
				Name: "inner",
				Schema: SectionSchema{
					Name: "inner",
					Options: []OptionSpec{
						{Name: "label", Kind: KindString, Default: "{tree}-inner", HasDefault: true},
					},
					Sections: []SectionSpec{{
						Name: "leaf",
						Schema: SectionSchema{
							Name:    "leaf",
							Options: []OptionSpec{{Name: "value", Kind: KindString}},
						},
					}},
				},
			}},
		}},
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := DefaultRegistry(testPlugins()...)
	require.NoError(t, err)
	return reg
}

func mustLoad(t *testing.T, text string) *Config {
	t.Helper()
	cfg, err := LoadString(text, testRegistry(t))
	require.NoError(t, err)
	return cfg
}

func loadConfigError(t *testing.T, text string) *ConfigError {
	t.Helper()
	_, err := LoadString(text, testRegistry(t))
	require.Error(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr), "want *ConfigError, got %T: %v", err, err)
	return cerr
}

func mustTree(t *testing.T, cfg *Config, name string) *TreeConfig {
	t.Helper()
	tree, ok := cfg.Tree(name)
	require.True(t, ok, "tree %s", name)
	return tree
}
