package treeconf

import "context"

// Source provides raw configuration (files, environment, in-memory text).
// A Source returns its sections in input order; scalars should carry the
// source's Name via RawNode.StampSource for provenance.
type Source interface {
	// Load returns the parsed tree. Missing optional sources return an empty node.
	Load(ctx context.Context) (*RawNode, error)

	// Name identifies the source in provenance and errors (e.g., "file:dxr.config").
	Name() string
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc struct {
	ID   string
	Func func(ctx context.Context) (*RawNode, error)
}

func (s SourceFunc) Load(ctx context.Context) (*RawNode, error) {
	return s.Func(ctx)
}

func (s SourceFunc) Name() string {
	return s.ID
}

type textSource struct {
	name string
	text string
}

// FromText returns a Source that parses text in the nested-section format.
func FromText(name, text string) Source {
	return &textSource{name: name, text: text}
}

func (t *textSource) Load(ctx context.Context) (*RawNode, error) {
	root, err := Parse(t.text)
	if err != nil {
		return nil, err
	}
	root.StampSource(t.name)
	return root, nil
}

func (t *textSource) Name() string {
	return t.name
}
