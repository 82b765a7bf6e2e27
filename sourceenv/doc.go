// Package sourceenv overlays configuration from environment variables.
//
// Double underscores separate levels; the last level is the option name:
//
//	DXR_DXR__WORKERS=8                       -> [DXR] workers = 8
//	DXR_MOZILLA_CENTRAL__ES_INDEX=mc         -> [mozilla_central] es_index = mc
//	DXR_SOME_TREE__BUGLINK__URL=https://...  -> [some_tree] [[buglink]] url = ...
//
// Names are lowercased; when merged, section names match existing sections
// ignoring case and '-' versus '_', so "dxr" lands in [DXR] and
// "mozilla_central" in [mozilla-central].
//
// Example:
//
//	source := sourceenv.New(sourceenv.Options{Prefix: "DXR_"})
//	loader := treeconf.NewLoader(reg).WithSource(fileSrc).WithSource(source)
package sourceenv
