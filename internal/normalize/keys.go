package normalize

import (
	"strings"
)

// ToLowerDotPath normalizes a configuration key to a lowercase dot-separated path.
// Double underscores (__) are treated as level separators and converted to dots.
// Single underscores within a level are preserved.
// Examples:
//   - "DXR__WORKERS" → "dxr.workers"
//   - "ES_INDEX" → "es_index"
//   - "MOZILLA_CENTRAL__BUGLINK__URL" → "mozilla_central.buglink.url"
func ToLowerDotPath(key string) string {
	normalized := strings.ReplaceAll(key, "__", ".")
	return strings.ToLower(normalized)
}

// SplitPath normalizes key and splits it into section path segments plus
// the option name. It reports false when the key has fewer than two
// segments or any empty segment.
// Examples:
//   - "DXR__WORKERS" → ["dxr", "workers"]
//   - "SOME_TREE__BUGLINK__URL" → ["some_tree", "buglink", "url"]
//   - "WORKERS" → false
func SplitPath(key string) ([]string, bool) {
	parts := strings.Split(ToLowerDotPath(key), ".")
	if len(parts) < 2 {
		return nil, false
	}
	for _, p := range parts {
		if p == "" {
			return nil, false
		}
	}
	return parts, true
}
