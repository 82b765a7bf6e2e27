package treeconf

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for configuration failures.
const (
	ErrCodeRequired      = "required"
	ErrCodeUnknownOption = "unknown_option"
	ErrCodeInvalidType   = "invalid_type"
	ErrCodeConstraint    = "constraint"
	ErrCodeUnknownPlugin = "unknown_plugin"
	ErrCodeNoTrees       = "no_trees"
	ErrCodeUnknownTree   = "unknown_tree"
)

// ErrNoSuchOption is returned by facade lookups on undeclared paths.
var ErrNoSuchOption = errors.New("treeconf: no such option")

// ErrNilConfig is returned when a nil *Config or *Snapshot is passed in.
var ErrNilConfig = errors.New("treeconf: config is nil")

// ParseError reports malformed section nesting or an option outside any
// section.
type ParseError struct {
	Line    int
	Text    string
	Message string
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("parse error on line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("parse error on line %d: %s: %q", e.Line, e.Message, e.Text)
}

// ConfigError is a validation failure. Loading stops at the first one.
type ConfigError struct {
	// Sections names where the fault was detected: the global section name
	// for global faults, otherwise the tree name.
	Sections []string
	// Path is the full section path down to the innermost section involved,
	// e.g. ["mozilla-central", "buglink"].
	Path    []string
	Option  string // Offending option, qualified within its tree (e.g. "buglink.url")
	Code    string // One of the ErrCode constants
	Message string // Human-readable, names the option or constraint
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in [%s]: %s (%s)", strings.Join(e.Sections, "."), e.Message, e.Code)
}

// LookupError reports a facade access to a path that does not exist.
type LookupError struct {
	Path []string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNoSuchOption.Error(), strings.Join(e.Path, "."))
}

func (e *LookupError) Unwrap() error {
	return ErrNoSuchOption
}
