package application

import (
	"log/slog"

	"a11ytree/internal/domain"
)

// Options holds the configuration of one tree widget.
type Options struct {
	// OnExpand is called after a node transitions from collapsed to expanded.
	OnExpand func(n *domain.Node)
	// OnCollapse is called after a node transitions from expanded to collapsed.
	OnCollapse func(n *domain.Node)
	// InsertToggle asks renderers to draw a toggle affordance on branches.
	InsertToggle bool
	// ToggleMarker replaces the default toggle glyph. Cosmetic only.
	ToggleMarker string
	// Logger receives transition logs. Nil means the "engine" component logger.
	Logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Options)

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		OnExpand:     func(*domain.Node) {},
		OnCollapse:   func(*domain.Node) {},
		InsertToggle: true,
	}
}

// WithOnExpand sets the expand hook.
func WithOnExpand(fn func(n *domain.Node)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithOnCollapse sets the collapse hook.
func WithOnCollapse(fn func(n *domain.Node)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnCollapse = fn
		}
	}
}

// WithInsertToggle enables or disables toggle affordances.
func WithInsertToggle(insert bool) Option {
	return func(o *Options) {
		o.InsertToggle = insert
	}
}

// WithToggleMarker sets a custom toggle glyph.
func WithToggleMarker(marker string) Option {
	return func(o *Options) {
		o.ToggleMarker = marker
	}
}

// WithLogger sets the logger used for transition logs.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}
