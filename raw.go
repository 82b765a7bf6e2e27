package treeconf

import "strings"

// RawNode is an unvalidated section: an ordered list of scalar assignments
// and nested sub-sections, exactly as they appeared in the input.
type RawNode struct {
	Name    string
	folded  bool // Name was lowercased with '-' written as '_'
	entries []rawEntry
}

type rawEntry struct {
	key    string
	value  string
	line   int
	source string
	node   *RawNode // nil for scalars
}

// NewRawNode creates an empty section.
func NewRawNode(name string) *RawNode {
	return &RawNode{Name: name}
}

// Set assigns a scalar. Reassigning an existing key keeps its position.
func (n *RawNode) Set(key, value string) {
	n.set(key, value, 0, "")
}

// SetAt assigns a scalar and records the input line it came from.
func (n *RawNode) SetAt(key, value string, line int) {
	n.set(key, value, line, "")
}

func (n *RawNode) set(key, value string, line int, source string) {
	for i := range n.entries {
		if n.entries[i].node == nil && n.entries[i].key == key {
			n.entries[i].value = value
			n.entries[i].line = line
			n.entries[i].source = source
			return
		}
	}
	n.entries = append(n.entries, rawEntry{key: key, value: value, line: line, source: source})
}

// Child returns the named sub-section, creating it if absent.
func (n *RawNode) Child(name string) *RawNode {
	if c, ok := n.Section(name); ok {
		return c
	}
	c := NewRawNode(name)
	n.entries = append(n.entries, rawEntry{key: name, node: c})
	return c
}

// FoldedChild is Child for a name that lost its original spelling on the
// way in, as environment variable names do. When merged with a section of
// the same folded name from another source, the section takes that
// source's spelling.
func (n *RawNode) FoldedChild(name string) *RawNode {
	if c, ok := n.Section(name); ok {
		return c
	}
	c := n.Child(name)
	c.folded = true
	return c
}

// Scalar returns the value assigned to key.
func (n *RawNode) Scalar(key string) (string, bool) {
	for _, e := range n.entries {
		if e.node == nil && e.key == key {
			return e.value, true
		}
	}
	return "", false
}

// Section returns the named sub-section.
func (n *RawNode) Section(name string) (*RawNode, bool) {
	for _, e := range n.entries {
		if e.node != nil && e.key == name {
			return e.node, true
		}
	}
	return nil, false
}

// Keys returns scalar keys in input order.
func (n *RawNode) Keys() []string {
	var keys []string
	for _, e := range n.entries {
		if e.node == nil {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Sections returns sub-sections in input order.
func (n *RawNode) Sections() []*RawNode {
	var out []*RawNode
	for _, e := range n.entries {
		if e.node != nil {
			out = append(out, e.node)
		}
	}
	return out
}

// Merge overlays other onto n. Scalars in other replace those in n;
// sub-sections merge recursively. Section names are matched exactly first.
// A folded section (see FoldedChild) also matches ignoring case and treating
// '-' and '_' alike, so "dxr" and "mozilla_central" from an environment
// overlay land in "DXR" and "mozilla-central" whichever source comes first.
func (n *RawNode) Merge(other *RawNode) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		if e.node == nil {
			n.set(e.key, e.value, e.line, e.source)
			continue
		}
		target, ok := n.Section(e.key)
		if !ok {
			target, ok = n.sectionFold(e.key)
			switch {
			case ok && target.folded && !e.node.folded:
				n.rename(target, e.key)
			case ok && !target.folded && !e.node.folded:
				ok = false
			}
		}
		if !ok {
			target = n.Child(e.key)
			target.folded = e.node.folded
		}
		if !e.node.folded {
			target.folded = false
		}
		target.Merge(e.node)
	}
}

// StampSource records name as the origin of every scalar without one.
func (n *RawNode) StampSource(name string) {
	for i := range n.entries {
		if n.entries[i].node != nil {
			n.entries[i].node.StampSource(name)
			continue
		}
		if n.entries[i].source == "" {
			n.entries[i].source = name
		}
	}
}

func (n *RawNode) sectionFold(name string) (*RawNode, bool) {
	for _, e := range n.entries {
		if e.node != nil && foldName(e.key) == foldName(name) {
			return e.node, true
		}
	}
	return nil, false
}

func (n *RawNode) rename(child *RawNode, name string) {
	for i := range n.entries {
		if n.entries[i].node == child {
			n.entries[i].key = name
		}
	}
	child.Name = name
}

func (n *RawNode) entry(key string) (rawEntry, bool) {
	for _, e := range n.entries {
		if e.node == nil && e.key == key {
			return e, true
		}
	}
	return rawEntry{}, false
}

func foldName(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", "_"))
}
