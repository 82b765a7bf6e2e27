package treeconf

// Origin says how an option got its value.
type Origin string

const (
	OriginSource  Origin = "source"  // set explicitly in a source
	OriginDefault Origin = "default" // schema default or zero value
	OriginGlobal  Origin = "global"  // inherited from the global section
)

// OptionProvenance describes where one option's value came from.
type OptionProvenance struct {
	KeyPath    string // Dot notation (e.g., "mozilla-central.buglink.url")
	Origin     Origin
	SourceName string // Source identifier (e.g., "file:dxr.config"); empty unless Origin is OriginSource
	Line       int    // Line in the source, when known
	Secret     bool   // Whether the option is secret
}

// Provenance lists every resolved option of a Config in document order:
// global options first, then each tree with its plugin sections.
type Provenance struct {
	Options []OptionProvenance
}

// Provenance collects provenance for the whole configuration.
func (c *Config) Provenance() *Provenance {
	prov := &Provenance{}
	collectProvenance(c.Section, prov)
	for _, t := range c.Trees() {
		collectProvenance(t.Section, prov)
	}
	return prov
}

// Lookup finds the entry for a dotted key path.
func (p *Provenance) Lookup(keyPath string) (OptionProvenance, bool) {
	for _, o := range p.Options {
		if o.KeyPath == keyPath {
			return o, true
		}
	}
	return OptionProvenance{}, false
}

func collectProvenance(s *Section, prov *Provenance) {
	for _, k := range s.keys {
		prov.Options = append(prov.Options, s.prov[k])
	}
	for _, sub := range s.subs {
		collectProvenance(sub, prov)
	}
}
