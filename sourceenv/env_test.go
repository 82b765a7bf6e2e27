package sourceenv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Azhovan/treeconf"
)

func TestEnvSource_Load(t *testing.T) {
	t.Setenv("TCTEST_DXR__WORKERS", "8")
	t.Setenv("TCTEST_MOZILLA_CENTRAL__BUGLINK__URL", "http://example.com/")
	t.Setenv("TCTEST_WORKERS", "skipped")
	t.Setenv("TCTEST_DXR____EMPTY", "skipped")
	t.Setenv("OTHER_DXR__WORKERS", "ignored")

	src := New(Options{Prefix: "TCTEST_"})
	root, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "env:TCTEST_*", src.Name())

	var names []string
	for _, s := range root.Sections() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"dxr", "mozilla_central"}, names)

	dxr, ok := root.Section("dxr")
	require.True(t, ok)
	workers, ok := dxr.Scalar("workers")
	require.True(t, ok)
	assert.Equal(t, "8", workers)

	mc, _ := root.Section("mozilla_central")
	buglink, ok := mc.Section("buglink")
	require.True(t, ok)
	url, _ := buglink.Scalar("url")
	assert.Equal(t, "http://example.com/", url)
}

func TestEnvSource_PrefixCase(t *testing.T) {
	t.Setenv("tctest_DXR__WORKERS", "3")

	root, err := New(Options{Prefix: "TCTEST_"}).Load(context.Background())
	require.NoError(t, err)
	_, ok := root.Section("dxr")
	assert.True(t, ok, "prefix matches case-insensitively by default")

	root, err = New(Options{Prefix: "TCTEST_", CaseSensitive: true}).Load(context.Background())
	require.NoError(t, err)
	_, ok = root.Section("dxr")
	assert.False(t, ok, "case-sensitive prefix must match exactly")
}

func TestEnvSource_EmptyValues(t *testing.T) {
	t.Setenv("TCTEST_DXR__WWW_ROOT", "")

	root, err := New(Options{Prefix: "TCTEST_"}).Load(context.Background())
	require.NoError(t, err)

	dxr, ok := root.Section("dxr")
	require.True(t, ok)
	v, ok := dxr.Scalar("www_root")
	assert.True(t, ok, "empty values are still set")
	assert.Equal(t, "", v)
}

// Environment names cannot carry '-', so tree names fold '-' to '_' when
// merged over a file source.
func TestEnvSource_OverridesFileTree(t *testing.T) {
	t.Setenv("TCTEST_DXR__WORKERS", "6")
	t.Setenv("TCTEST_MOZILLA_CENTRAL__ES_SHARDS", "9")

	reg, err := treeconf.DefaultRegistry()
	require.NoError(t, err)

	cfg, err := treeconf.NewLoader(reg).
		WithText("[DXR]\nworkers = 2\n[mozilla-central]\nsource_folder = /src\n").
		WithSource(New(Options{Prefix: "TCTEST_"})).
		Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"mozilla-central"}, cfg.TreeNames())

	workers, _ := cfg.GetInt("workers")
	assert.Equal(t, 6, workers)

	tree, ok := cfg.Tree("mozilla-central")
	require.True(t, ok)
	shards, _ := tree.GetInt("es_shards")
	assert.Equal(t, 9, shards)

	prov, ok := tree.Provenance("es_shards")
	require.True(t, ok)
	assert.Equal(t, "env:TCTEST_MOZILLA_CENTRAL__ES_SHARDS", prov.SourceName)
}

func TestEnvSource_BeforeFileTree(t *testing.T) {
	t.Setenv("TCTEST_DXR__WORKERS", "7")
	t.Setenv("TCTEST_MOZILLA_CENTRAL__ES_SHARDS", "4")

	reg, err := treeconf.DefaultRegistry()
	require.NoError(t, err)

	cfg, err := treeconf.NewLoader(reg).
		WithSource(New(Options{Prefix: "TCTEST_"})).
		WithText("[DXR]\nes_index = dxr_{tree}\n[mozilla-central]\nsource_folder = /src\n").
		Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"mozilla-central"}, cfg.TreeNames())
	assert.Equal(t, treeconf.GlobalSection, cfg.Name())

	workers, _ := cfg.GetInt("workers")
	assert.Equal(t, 7, workers)

	tree, ok := cfg.Tree("mozilla-central")
	require.True(t, ok)
	shards, _ := tree.GetInt("es_shards")
	assert.Equal(t, 4, shards)
	index, _ := tree.GetString("es_index")
	assert.Equal(t, "dxr_mozilla-central", index)
}

func TestEnvSource_OnlyEnvGlobal(t *testing.T) {
	t.Setenv("TCTEST_DXR__WORKERS", "5")

	reg, err := treeconf.DefaultRegistry()
	require.NoError(t, err)

	cfg, err := treeconf.NewLoader(reg).
		WithText("[mozilla-central]\nsource_folder = /src\n").
		WithSource(New(Options{Prefix: "TCTEST_"})).
		Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"mozilla-central"}, cfg.TreeNames(), "folded dxr is the global section")
	workers, _ := cfg.GetInt("workers")
	assert.Equal(t, 5, workers)
}

func TestEnvSource_NoPrefixName(t *testing.T) {
	assert.Equal(t, "env", New(Options{}).Name())
}
