package layout

import (
	"math"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
)

// Default spacing values in abstract layout units.
const (
	DefaultBaseSpacing      = 150.0
	DefaultSpouseSpacing    = 100.0
	DefaultVerticalSpacing  = 200.0
	DefaultMinSpacing       = 90.0
	DefaultExpansionFactor  = 1.25
	DefaultMaxRealignPasses = 32
)

// Config holds the numeric options of a layout run.
//
// The zero value of any field is replaced by its default when the layout
// runs, so callers only need to set what they want to change.
type Config struct {
	// BaseSpacing is the horizontal distance between unrelated neighbours
	// and between sibling units.
	BaseSpacing float64 `json:"base_spacing" toml:"base_spacing" mapstructure:"base_spacing" bson:"base_spacing"`

	// SpouseSpacing is the gap between the members of a couple. It is
	// normally smaller than BaseSpacing.
	SpouseSpacing float64 `json:"spouse_spacing" toml:"spouse_spacing" mapstructure:"spouse_spacing" bson:"spouse_spacing"`

	// VerticalSpacing is the distance between two generations.
	VerticalSpacing float64 `json:"vertical_spacing" toml:"vertical_spacing" mapstructure:"vertical_spacing" bson:"vertical_spacing"`

	// MinSpacing is the hard floor for the horizontal distance of two nodes
	// in the same generation.
	MinSpacing float64 `json:"min_spacing" toml:"min_spacing" mapstructure:"min_spacing" bson:"min_spacing"`

	// ExpansionFactor scales crowded generations beyond MinSpacing. Must be
	// greater than 1.
	ExpansionFactor float64 `json:"expansion_factor" toml:"expansion_factor" mapstructure:"expansion_factor" bson:"expansion_factor"`

	// MaxRealignPasses bounds the global realignment loop per generation.
	MaxRealignPasses int `json:"max_realign_passes" toml:"max_realign_passes" mapstructure:"max_realign_passes" bson:"max_realign_passes"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BaseSpacing:      DefaultBaseSpacing,
		SpouseSpacing:    DefaultSpouseSpacing,
		VerticalSpacing:  DefaultVerticalSpacing,
		MinSpacing:       DefaultMinSpacing,
		ExpansionFactor:  DefaultExpansionFactor,
		MaxRealignPasses: DefaultMaxRealignPasses,
	}
}

// WithDefaults returns c with every zero field replaced by its default.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.BaseSpacing == 0 {
		c.BaseSpacing = d.BaseSpacing
	}
	if c.SpouseSpacing == 0 {
		c.SpouseSpacing = d.SpouseSpacing
	}
	if c.VerticalSpacing == 0 {
		c.VerticalSpacing = d.VerticalSpacing
	}
	if c.MinSpacing == 0 {
		c.MinSpacing = d.MinSpacing
	}
	if c.ExpansionFactor == 0 {
		c.ExpansionFactor = d.ExpansionFactor
	}
	if c.MaxRealignPasses == 0 {
		c.MaxRealignPasses = d.MaxRealignPasses
	}
	return c
}

// Validate checks the configuration for values that make a layout
// meaningless. It is stricter than [Compute], which only rejects values it
// cannot compute with: Validate also requires
// MinSpacing <= SpouseSpacing <= BaseSpacing and an ExpansionFactor above 1.
func (c Config) Validate() error {
	if err := c.check(); err != nil {
		return err
	}
	if c.MinSpacing > c.SpouseSpacing || c.SpouseSpacing > c.BaseSpacing {
		return kerrors.New(kerrors.ErrCodeInvalidConfig,
			"spacing must satisfy min (%g) <= spouse (%g) <= base (%g)",
			c.MinSpacing, c.SpouseSpacing, c.BaseSpacing)
	}
	if c.ExpansionFactor <= 1 {
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "expansion factor must be greater than 1, got %g", c.ExpansionFactor)
	}
	return nil
}

// check rejects negative and non-finite values.
func (c Config) check() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"base_spacing", c.BaseSpacing},
		{"spouse_spacing", c.SpouseSpacing},
		{"vertical_spacing", c.VerticalSpacing},
		{"min_spacing", c.MinSpacing},
		{"expansion_factor", c.ExpansionFactor},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v <= 0 {
			return kerrors.New(kerrors.ErrCodeInvalidConfig, "%s must be a positive number, got %g", f.name, f.v)
		}
	}
	if c.MaxRealignPasses < 0 {
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "max_realign_passes must not be negative, got %d", c.MaxRealignPasses)
	}
	return nil
}
