package treeconf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Loader merges sources and validates the result against a Registry.
// Sources are processed in order (later override earlier).
// A Loader is not safe for concurrent configuration changes; the Config it
// produces is immutable and safe to share.
type Loader struct {
	registry *Registry
	sources  []Source
	logger   *slog.Logger
}

// NewLoader creates a Loader with no sources that validates against reg.
func NewLoader(reg *Registry) *Loader {
	return &Loader{
		registry: reg,
		sources:  make([]Source, 0),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSource adds a source. Sources are processed in order (later override earlier).
func (l *Loader) WithSource(src Source) *Loader {
	l.sources = append(l.sources, src)
	return l
}

// WithText adds configuration text as a source named "text".
func (l *Loader) WithText(text string) *Loader {
	return l.WithSource(FromText("text", text))
}

// WithLogger sets the logger used for debug output.
func (l *Loader) WithLogger(logger *slog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load reads every source, merges them and validates the result.
// Returns the Config, a *ParseError or the first *ConfigError encountered.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	if l.registry == nil {
		return nil, errors.New("treeconf: loader has no registry")
	}

	merged := NewRawNode("")
	for _, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := src.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load source %s: %w", src.Name(), err)
		}
		if raw == nil {
			l.logger.Debug("source returned nothing", "source", src.Name())
			continue
		}
		l.logger.Debug("loaded source", "source", src.Name(), "sections", len(raw.Sections()))
		merged.Merge(raw)
	}

	cfg, err := newValidator(l.registry, l.logger).validate(merged)
	if err != nil {
		var cerr *ConfigError
		if errors.As(err, &cerr) {
			l.logger.Debug("configuration rejected", "sections", cerr.Sections, "code", cerr.Code, "message", cerr.Message)
		}
		return nil, err
	}
	l.logger.Debug("configuration loaded", "trees", cfg.TreeNames())
	return cfg, nil
}

// LoadString parses and validates a single configuration text.
func LoadString(text string, reg *Registry) (*Config, error) {
	return NewLoader(reg).WithText(text).Load(context.Background())
}
