package treeconf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SnapshotVersion is the snapshot file format version.
const SnapshotVersion = 1

// MaxSnapshotSize bounds the snapshot files WriteSnapshot produces and
// ReadSnapshot accepts.
const MaxSnapshotSize = 16 << 20

var (
	ErrSnapshotTooLarge   = errors.New("treeconf: snapshot too large")
	ErrUnsupportedVersion = errors.New("treeconf: unsupported snapshot version")
)

// Snapshot is the effective configuration at one instant with secrets
// redacted. Option values are keyed by KeyPath.
type Snapshot struct {
	Version int            `json:"version"`
	Taken   time.Time      `json:"taken"`
	Global  SectionValues  `json:"global"`
	Trees   []TreeSnapshot `json:"trees"`
}

// SectionValues holds the options of a section and of everything below it.
type SectionValues struct {
	Options    map[string]any     `json:"options"`
	Provenance []OptionProvenance `json:"provenance"`
}

// TreeSnapshot is one tree's part of a Snapshot.
type TreeSnapshot struct {
	Name    string   `json:"name"`
	Plugins []string `json:"plugins"`
	SectionValues
}

// SnapshotOption configures CreateSnapshot.
type SnapshotOption func(*snapshotConfig)

type snapshotConfig struct {
	trees   []string
	exclude []string
}

// SnapshotTrees limits the snapshot to the named trees, in the given order.
// The global section is always included.
func SnapshotTrees(names ...string) SnapshotOption {
	return func(cfg *snapshotConfig) {
		cfg.trees = append(cfg.trees, names...)
	}
}

// ExcludePaths drops options from the snapshot. A path is either an
// option's KeyPath, such as "DXR.google_analytics_key", or a section path,
// such as "mozilla-central.buglink", which drops every option below it.
// Paths are case-sensitive.
func ExcludePaths(paths ...string) SnapshotOption {
	return func(cfg *snapshotConfig) {
		cfg.exclude = append(cfg.exclude, paths...)
	}
}

// CreateSnapshot captures cfg. It returns a *LookupError when a selected
// tree or an excluded path does not exist.
func CreateSnapshot(cfg *Config, opts ...SnapshotOption) (*Snapshot, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	var sc snapshotConfig
	for _, opt := range opts {
		opt(&sc)
	}

	all := append([]*Section{cfg.Section}, treeSections(cfg)...)
	for _, path := range sc.exclude {
		if !hasPath(all, path) {
			return nil, &LookupError{Path: strings.Split(path, ".")}
		}
	}

	trees := cfg.Trees()
	if sc.trees != nil {
		trees = make([]*TreeConfig, 0, len(sc.trees))
		for _, name := range sc.trees {
			t, ok := cfg.Tree(name)
			if !ok {
				return nil, &LookupError{Path: []string{"trees", name}}
			}
			trees = append(trees, t)
		}
	}

	snap := &Snapshot{
		Version: SnapshotVersion,
		Taken:   time.Now().UTC(),
		Global:  sectionValues(cfg.Section, sc.exclude),
		Trees:   make([]TreeSnapshot, 0, len(trees)),
	}
	for _, t := range trees {
		snap.Trees = append(snap.Trees, TreeSnapshot{
			Name:          t.Name(),
			Plugins:       t.EnabledPluginNames(),
			SectionValues: sectionValues(t.Section, sc.exclude),
		})
	}
	return snap, nil
}

// Lookup returns the snapshotted value at keyPath.
func (s *Snapshot) Lookup(keyPath string) (any, bool) {
	if v, ok := s.Global.Options[keyPath]; ok {
		return v, true
	}
	for _, t := range s.Trees {
		if v, ok := t.Options[keyPath]; ok {
			return v, true
		}
	}
	return nil, false
}

func sectionValues(s *Section, exclude []string) SectionValues {
	out := SectionValues{Options: make(map[string]any)}
	var walk func(*Section)
	walk = func(s *Section) {
		for _, key := range s.keys {
			prov := s.prov[key]
			if excluded(prov.KeyPath, exclude) {
				continue
			}
			out.Provenance = append(out.Provenance, prov)
			if prov.Secret {
				out.Options[prov.KeyPath] = redacted
				continue
			}
			out.Options[prov.KeyPath] = copyValue(s.values[key])
		}
		for _, sub := range s.subs {
			walk(sub)
		}
	}
	walk(s)
	return out
}

func excluded(keyPath string, exclude []string) bool {
	for _, p := range exclude {
		if keyPath == p || strings.HasPrefix(keyPath, p+".") {
			return true
		}
	}
	return false
}

// hasPath reports whether path names a section or an option in sections or
// below them.
func hasPath(sections []*Section, path string) bool {
	for _, s := range sections {
		if strings.Join(s.path, ".") == path {
			return true
		}
		for _, key := range s.keys {
			if s.prov[key].KeyPath == path {
				return true
			}
		}
		if hasPath(s.subs, path) {
			return true
		}
	}
	return false
}

// SnapshotFileName names a tree's snapshot file, for example
// "mozilla-central-20240305-140709.json".
func SnapshotFileName(tree string, taken time.Time) string {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, tree)
	return safe + "-" + taken.UTC().Format("20060102-150405") + ".json"
}

// WriteSnapshot writes one file per tree into dir, each holding the global
// section and that tree, and returns the paths written. Files are named by
// SnapshotFileName, created 0600 and replaced atomically.
func WriteSnapshot(snap *Snapshot, dir string) ([]string, error) {
	if snap == nil {
		return nil, ErrNilConfig
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(snap.Trees))
	for _, tree := range snap.Trees {
		one := *snap
		one.Trees = []TreeSnapshot{tree}
		path := filepath.Join(dir, SnapshotFileName(tree.Name, snap.Taken))
		if err := writeSnapshotFile(path, &one); err != nil {
			return paths, fmt.Errorf("write snapshot of %s: %w", tree.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeSnapshotFile(path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if len(data) > MaxSnapshotSize {
		return ErrSnapshotTooLarge
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }() // fails harmlessly once renamed

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadSnapshot loads a file written by WriteSnapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxSnapshotSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxSnapshotSize {
		return nil, ErrSnapshotTooLarge
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, snap.Version)
	}
	return &snap, nil
}
