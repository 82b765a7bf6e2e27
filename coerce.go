package treeconf

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errNotInt  = errors.New("must be an integer")
	errNotBool = errors.New("must be a boolean")
)

// coerce converts raw option text to the Go type for kind:
// string, int, bool or []string.
func coerce(kind Kind, raw string) (any, error) {
	switch kind {
	case KindInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, errNotInt
		}
		return n, nil
	case KindBool:
		b, ok := parseBool(raw)
		if !ok {
			return nil, errNotBool
		}
		return b, nil
	case KindList:
		items := strings.Fields(raw)
		if items == nil {
			items = []string{}
		}
		return items, nil
	default:
		return raw, nil
	}
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}

// zeroValue is what an optional option without a default resolves to.
func zeroValue(kind Kind) any {
	switch kind {
	case KindInt:
		return 0
	case KindBool:
		return false
	case KindList:
		return []string{}
	default:
		return ""
	}
}
