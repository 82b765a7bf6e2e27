package treeconf

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ConstraintKind selects which fields of a Constraint are meaningful.
type ConstraintKind string

const (
	ConstraintRange    ConstraintKind = "range"     // Min and/or Max, ints
	ConstraintNonEmpty ConstraintKind = "non_empty" // strings and lists
	ConstraintRegex    ConstraintKind = "regex"     // Pattern, strings and list items
	ConstraintOneOf    ConstraintKind = "one_of"    // Values, strings and list items
	ConstraintTag      ConstraintKind = "tag"       // go-playground/validator tag, strings and list items
	ConstraintCustom   ConstraintKind = "custom"    // Predicate, any kind
)

// Constraint is a check run on an option's coerced value. Everything but
// Predicate serializes, so schemas stay inspectable.
type Constraint struct {
	Kind    ConstraintKind `json:"kind"`
	Min     *int           `json:"min,omitempty"`
	Max     *int           `json:"max,omitempty"`
	Pattern string         `json:"pattern,omitempty"`
	Values  []string       `json:"values,omitempty"`
	Tag     string         `json:"tag,omitempty"`
	Name    string         `json:"name,omitempty"` // identifies a custom predicate
	Message string         `json:"message,omitempty"`

	Predicate func(value any) bool `json:"-"`

	re *regexp.Regexp // anchored Pattern, set by Matches and check
}

var tagValidator = validator.New()

// NonNegative requires an int >= 0.
func NonNegative() Constraint {
	return AtLeast(0)
}

// AtLeast requires an int >= n.
func AtLeast(n int) Constraint {
	return Constraint{Kind: ConstraintRange, Min: &n}
}

// Between requires lo <= value <= hi.
func Between(lo, hi int) Constraint {
	return Constraint{Kind: ConstraintRange, Min: &lo, Max: &hi}
}

// NonEmpty rejects empty strings and empty lists.
func NonEmpty() Constraint {
	return Constraint{Kind: ConstraintNonEmpty}
}

// Matches requires the whole string (or every list item) to match pattern.
func Matches(pattern string) Constraint {
	c := Constraint{Kind: ConstraintRegex, Pattern: pattern}
	c.re, _ = compileAnchored(pattern) // a bad pattern is reported by check
	return c
}

func compileAnchored(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)$`)
}

// OneOf restricts a string (or every list item) to values.
func OneOf(values ...string) Constraint {
	return Constraint{Kind: ConstraintOneOf, Values: values}
}

// Tag applies a go-playground/validator tag such as "url" or "hostname".
func Tag(tag string) Constraint {
	return Constraint{Kind: ConstraintTag, Tag: tag}
}

// Custom wraps an arbitrary predicate. message is reported when it fails.
func Custom(name, message string, pred func(value any) bool) Constraint {
	return Constraint{Kind: ConstraintCustom, Name: name, Message: message, Predicate: pred}
}

// check reports a constraint that cannot apply to kind and compiles
// Pattern for regex constraints.
func (c *Constraint) check(kind Kind) error {
	switch c.Kind {
	case ConstraintRange:
		if kind != KindInt {
			return fmt.Errorf("range constraint needs an int option, got %s", kind)
		}
		if c.Min == nil && c.Max == nil {
			return errors.New("range constraint without bounds")
		}
	case ConstraintNonEmpty:
		if kind != KindString && kind != KindList {
			return fmt.Errorf("non_empty constraint needs a string or list option, got %s", kind)
		}
	case ConstraintRegex:
		if kind != KindString && kind != KindList {
			return fmt.Errorf("regex constraint needs a string or list option, got %s", kind)
		}
		re, err := compileAnchored(c.Pattern)
		if err != nil {
			return fmt.Errorf("regex constraint: %w", err)
		}
		c.re = re
	case ConstraintOneOf:
		if kind != KindString && kind != KindList {
			return fmt.Errorf("one_of constraint needs a string or list option, got %s", kind)
		}
		if len(c.Values) == 0 {
			return errors.New("one_of constraint without values")
		}
	case ConstraintTag:
		if kind != KindString && kind != KindList {
			return fmt.Errorf("tag constraint needs a string or list option, got %s", kind)
		}
		if err := checkTag(c.Tag); err != nil {
			return err
		}
	case ConstraintCustom:
		if c.Predicate == nil {
			return fmt.Errorf("custom constraint %s has no predicate", c.Name)
		}
	default:
		return fmt.Errorf("unknown constraint kind %q", c.Kind)
	}
	return nil
}

// checkTag reports tags the validator does not know; Var panics on them.
func checkTag(tag string) (err error) {
	if tag == "" {
		return errors.New("tag constraint without tag")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tag constraint %q: %v", tag, r)
		}
	}()
	_ = tagValidator.Var("", tag)
	return nil
}

// evaluate returns a failure message, or "" when value satisfies c.
func (c Constraint) evaluate(value any) string {
	switch c.Kind {
	case ConstraintRange:
		n, _ := value.(int)
		if (c.Min != nil && n < *c.Min) || (c.Max != nil && n > *c.Max) {
			return c.message()
		}
	case ConstraintNonEmpty:
		switch v := value.(type) {
		case string:
			if v == "" {
				return c.message()
			}
		case []string:
			if len(v) == 0 {
				return c.message()
			}
		}
	case ConstraintCustom:
		if !c.Predicate(value) {
			return c.message()
		}
	default:
		return c.evaluateItems(value)
	}
	return ""
}

func (c Constraint) evaluateItems(value any) string {
	switch v := value.(type) {
	case string:
		if !c.matchItem(v) {
			return c.message()
		}
	case []string:
		for _, item := range v {
			if !c.matchItem(item) {
				return fmt.Sprintf("item %q %s", item, c.message())
			}
		}
	}
	return ""
}

func (c Constraint) matchItem(s string) bool {
	switch c.Kind {
	case ConstraintRegex:
		// Unchecked constraints have no compiled pattern and match nothing.
		return c.re != nil && c.re.MatchString(s)
	case ConstraintOneOf:
		for _, allowed := range c.Values {
			if s == allowed {
				return true
			}
		}
		return false
	case ConstraintTag:
		return tagValidator.Var(s, c.Tag) == nil
	}
	return true
}

// clone copies c. The compiled pattern is shared.
func (c Constraint) clone() Constraint {
	if c.Min != nil {
		n := *c.Min
		c.Min = &n
	}
	if c.Max != nil {
		n := *c.Max
		c.Max = &n
	}
	c.Values = append([]string(nil), c.Values...)
	return c
}

func (c Constraint) message() string {
	if c.Message != "" {
		return c.Message
	}
	switch c.Kind {
	case ConstraintRange:
		switch {
		case c.Min != nil && c.Max != nil:
			return fmt.Sprintf("must be between %d and %d", *c.Min, *c.Max)
		case c.Min != nil && *c.Min == 0:
			return "must be non-negative"
		case c.Min != nil:
			return fmt.Sprintf("must be at least %d", *c.Min)
		default:
			return fmt.Sprintf("must be at most %d", *c.Max)
		}
	case ConstraintNonEmpty:
		return "must not be empty"
	case ConstraintRegex:
		return fmt.Sprintf("must match %s", c.Pattern)
	case ConstraintOneOf:
		return "must be one of: " + strings.Join(c.Values, ", ")
	case ConstraintTag:
		return "must be a valid " + c.Tag
	default:
		return "failed check " + c.Name
	}
}
