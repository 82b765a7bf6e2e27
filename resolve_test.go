package treeconf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var discovered = []string{"core", "urllink", "buglink", "python", "xpidl", "omniglot", "clang"}

func TestResolvePlugins(t *testing.T) {
	tests := []struct {
		name   string
		tree   PluginLists
		global PluginLists
		want   []string
	}{
		{
			name:   "nothing configured yields core only",
			tree:   PluginLists{},
			global: PluginLists{},
			want:   []string{"core"},
		},
		{
			name: "explicit list keeps order and gains core",
			tree: PluginLists{Enabled: []string{"urllink", "omniglot"}, EnabledSet: true},
			want: []string{"core", "urllink", "omniglot"},
		},
		{
			name: "wildcard expands to discovery order without duplicating core",
			tree: PluginLists{Enabled: []string{"*"}, EnabledSet: true},
			want: discovered,
		},
		{
			name: "names around the wildcard collapse into first occurrence",
			tree: PluginLists{Enabled: []string{"clang", "*", "urllink"}, EnabledSet: true},
			want: []string{"core", "clang", "urllink", "buglink", "python", "xpidl", "omniglot"},
		},
		{
			name: "explicit core in the middle is moved first",
			tree: PluginLists{Enabled: []string{"buglink", "core", "clang"}, EnabledSet: true},
			want: []string{"core", "buglink", "clang"},
		},
		{
			name: "duplicates keep first position",
			tree: PluginLists{Enabled: []string{"clang", "buglink", "clang"}, EnabledSet: true},
			want: []string{"core", "clang", "buglink"},
		},
		{
			name:   "tree list overrides global list",
			tree:   PluginLists{Enabled: []string{"python"}, EnabledSet: true},
			global: PluginLists{Enabled: []string{"*"}, EnabledSet: true},
			want:   []string{"core", "python"},
		},
		{
			name:   "tree set to empty overrides global",
			tree:   PluginLists{Enabled: []string{}, EnabledSet: true},
			global: PluginLists{Enabled: []string{"clang"}, EnabledSet: true},
			want:   []string{"core"},
		},
		{
			name:   "global list used when tree unset",
			global: PluginLists{Enabled: []string{"clang", "buglink"}, EnabledSet: true},
			want:   []string{"core", "clang", "buglink"},
		},
		{
			name:   "global disabled removes from wildcard",
			global: PluginLists{Enabled: []string{"*"}, EnabledSet: true, Disabled: []string{"buglink", "xpidl"}, DisabledSet: true},
			want:   []string{"core", "urllink", "python", "omniglot", "clang"},
		},
		{
			name:   "tree disabled overrides global disabled",
			tree:   PluginLists{Disabled: []string{"clang"}, DisabledSet: true},
			global: PluginLists{Enabled: []string{"clang", "buglink"}, EnabledSet: true, Disabled: []string{"buglink"}, DisabledSet: true},
			want:   []string{"core", "buglink"},
		},
		{
			name:   "disabling core is a no-op",
			tree:   PluginLists{Enabled: []string{"clang"}, EnabledSet: true, Disabled: []string{"core"}, DisabledSet: true},
			global: PluginLists{},
			want:   []string{"core", "clang"},
		},
		{
			name: "unknown names pass through",
			tree: PluginLists{Enabled: []string{"mystery"}, EnabledSet: true},
			want: []string{"core", "mystery"},
		},
		{
			name:   "unset global lists are ignored even if populated",
			global: PluginLists{Enabled: []string{"clang"}, Disabled: []string{"clang"}},
			want:   []string{"core"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePlugins(tt.tree, tt.global, discovered)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ResolvePlugins() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolvePlugins_CoreAlwaysFirst(t *testing.T) {
	inputs := [][]string{
		nil,
		{"*"},
		{"clang", "core"},
		{"urllink", "*", "core"},
		{"core", "core"},
	}
	for _, enabled := range inputs {
		got := ResolvePlugins(PluginLists{Enabled: enabled, EnabledSet: true, Disabled: []string{"core"}, DisabledSet: true}, PluginLists{}, discovered)
		if len(got) == 0 || got[0] != "core" {
			t.Errorf("enabled %v: core not first in %v", enabled, got)
		}
		for _, name := range got[1:] {
			if name == "core" {
				t.Errorf("enabled %v: core duplicated in %v", enabled, got)
			}
		}
	}
}
