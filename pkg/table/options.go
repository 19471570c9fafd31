package table

import (
	"go.uber.org/zap"

	"github.com/pyhub-apps/tablestitch/pkg/config"
)

// Option is a function that modifies extraction behavior
type Option func(*extractionConfig)

type extractionConfig struct {
	Profile       *config.Profile
	Strict        bool
	LineTolerance float64
	Logger        *zap.Logger
}

// WithProfile sets the column profile
func WithProfile(p *config.Profile) Option {
	return func(c *extractionConfig) {
		c.Profile = p
	}
}

// WithStrict collects a diagnostic for every skipped page, header and row
func WithStrict(enabled bool) Option {
	return func(c *extractionConfig) {
		c.Strict = enabled
	}
}

// WithLineTolerance overrides the profile's vertical tolerance for line grouping
func WithLineTolerance(tolerance float64) Option {
	return func(c *extractionConfig) {
		c.LineTolerance = tolerance
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *extractionConfig) {
		c.Logger = l
	}
}
