package sourceenv

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/Azhovan/treeconf"
	"github.com/Azhovan/treeconf/internal/normalize"
)

// Options configures environment variable source behavior.
type Options struct {
	// Prefix filters vars starting with prefix (stripped before normalization).
	// Empty = consider all vars.
	// Prefix matching behavior is controlled by CaseSensitive.
	Prefix string

	// CaseSensitive controls prefix matching (default: false).
	// When false, prefix matching is case-insensitive (DXR_ matches dxr_, Dxr_, etc.).
	// When true, prefix must match exactly.
	// Keys are always normalized to lowercase after prefix stripping.
	CaseSensitive bool
}

type envSource struct {
	opts Options
}

// New creates an environment variable source.
func New(opts Options) treeconf.Source {
	return &envSource{opts: opts}
}

// Load scans environment variables, filters by prefix, and builds a section
// tree. Variables naming fewer than two levels are skipped.
func (e *envSource) Load(ctx context.Context) (*treeconf.RawNode, error) {
	root := treeconf.NewRawNode("")

	environ := os.Environ()
	sort.Strings(environ)
	for _, env := range environ {
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		key := name
		if e.opts.Prefix != "" {
			var hasPrefix bool
			if e.opts.CaseSensitive {
				hasPrefix = strings.HasPrefix(key, e.opts.Prefix)
			} else {
				hasPrefix = strings.HasPrefix(strings.ToUpper(key), strings.ToUpper(e.opts.Prefix))
			}

			if !hasPrefix {
				continue
			}
			key = key[len(e.opts.Prefix):]
		}

		// Normalize: DXR__WORKERS → [dxr] workers
		path, ok := normalize.SplitPath(key)
		if !ok {
			continue
		}

		overlay := treeconf.NewRawNode("")
		node := overlay
		for _, section := range path[:len(path)-1] {
			node = node.FoldedChild(section)
		}
		node.Set(path[len(path)-1], value)
		overlay.StampSource("env:" + name)
		root.Merge(overlay)
	}

	return root, nil
}

// Name returns a human-readable identifier for this source.
func (e *envSource) Name() string {
	if e.opts.Prefix == "" {
		return "env"
	}
	return "env:" + e.opts.Prefix + "*"
}
