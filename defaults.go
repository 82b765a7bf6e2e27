package treeconf

// GlobalSchema is the option set of the [DXR] section.
func GlobalSchema() SectionSchema {
	return SectionSchema{
		Name: GlobalSection,
		Options: []OptionSpec{
			{Name: "default_tree", Kind: KindString, Doc: "tree shown at the site root; defaults to the first tree"},
			{Name: "disabled_plugins", Kind: KindList, HasDefault: true},
			{Name: "enabled_plugins", Kind: KindList, HasDefault: true},
			{Name: "es_hosts", Kind: KindList, Default: "http://127.0.0.1:9200/", HasDefault: true,
				Constraints: []Constraint{NonEmpty(), Tag("url")}},
			{Name: "es_index", Kind: KindString, Default: "dxr_{tree}", HasDefault: true,
				Doc: "index name template; {tree} is replaced per tree"},
			{Name: "es_indexing_timeout", Kind: KindInt, Default: "60", HasDefault: true,
				Constraints: []Constraint{NonNegative()}},
			{Name: "es_refresh_interval", Kind: KindInt, Default: "60", HasDefault: true,
				Constraints: []Constraint{AtLeast(-1)}},
			{Name: "generated_date", Kind: KindString},
			{Name: "google_analytics_key", Kind: KindString, Secret: true,
				Constraints: []Constraint{{
					Kind:    ConstraintRegex,
					Pattern: `(UA-\d+-\d+)?`,
					Message: `must look like "UA-XXXX-Y"`,
				}}},
			{Name: "log_folder", Kind: KindString, Default: "/tmp/dxr-logs", HasDefault: true},
			{Name: "max_thumbnail_size", Kind: KindInt, Default: "20000", HasDefault: true,
				Constraints: []Constraint{NonNegative()}},
			{Name: "skip_stages", Kind: KindList, HasDefault: true,
				Constraints: []Constraint{OneOf("build", "index")}},
			{Name: "temp_folder", Kind: KindString, Default: "/tmp/dxr-temp-{tree}", HasDefault: true},
			{Name: "workers", Kind: KindInt, Default: "1", HasDefault: true,
				Constraints: []Constraint{NonNegative()}},
			{Name: "www_root", Kind: KindString},
		},
	}
}

// TreeSchema is the option set of each [tree] section, excluding plugin
// sub-sections.
func TreeSchema() SectionSchema {
	return SectionSchema{
		Name: "tree",
		Options: []OptionSpec{
			{Name: "build_command", Kind: KindString},
			{Name: "clean_command", Kind: KindString},
			{Name: "description", Kind: KindString},
			{Name: "disabled_plugins", Kind: KindList, Inherit: "disabled_plugins"},
			{Name: "enabled_plugins", Kind: KindList, Inherit: "enabled_plugins"},
			{Name: "es_index", Kind: KindString, Inherit: "es_index"},
			{Name: "es_shards", Kind: KindInt, Default: "5", HasDefault: true,
				Constraints: []Constraint{AtLeast(1)}},
			{Name: "ignore_filenames", Kind: KindList, Default: ".hg .git CVS .svn .bzr .deps .libs .DS_Store .nfs* *~ ._*", HasDefault: true},
			{Name: "ignore_paths", Kind: KindList, HasDefault: true},
			{Name: "object_folder", Kind: KindString},
			{Name: "source_encoding", Kind: KindString, Default: "utf-8", HasDefault: true},
			{Name: "source_folder", Kind: KindString, Required: true,
				Constraints: []Constraint{NonEmpty()}},
			{Name: "temp_folder", Kind: KindString, Inherit: "temp_folder"},
		},
	}
}
