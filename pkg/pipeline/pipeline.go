// Package pipeline runs the load → layout → render sequence shared by the
// CLI and the HTTP API.
//
// Each stage can run on its own. A [Runner] adds caching: layouts are keyed
// by the hash of the people document and every option that changes the
// result, renderings by the hash of the layout and the render options.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, "family.toml", pipeline.Options{
//		Root:    "anna",
//		Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//		return err
//	}
//	svg := res.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kinship/pkg/cache"
	kerrors "github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/family"
	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/labels"
	"github.com/matzehuels/kinship/pkg/layout"
)

// =============================================================================
// Formats
// =============================================================================

// Output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatSVG, FormatDOT, FormatJSON, FormatText}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "invalid format %q (must be one of: svg, dot, json, txt)", format)
	}
	return nil
}

// ValidateFormats checks every format in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Relations extends the built-in label keyword table.
type Relations struct {
	// Types maps a relation type name ("parent", "child", "spouse",
	// "sibling") to extra keywords.
	Types map[string][]string `json:"types,omitempty" mapstructure:"types"`

	// Exclude lists extra tokens that force a label to be unclassified.
	Exclude []string `json:"exclude,omitempty" mapstructure:"exclude"`
}

// IsZero reports whether r adds nothing to the default table.
func (r Relations) IsZero() bool { return len(r.Types) == 0 && len(r.Exclude) == 0 }

// Classifier returns the classifier for the default table merged with r.
func (r Relations) Classifier() *family.Classifier {
	if r.IsZero() {
		return family.DefaultClassifier()
	}
	return family.NewClassifier(family.DefaultKeywords().Merge(family.KeywordsFromNames(r.Types, r.Exclude)))
}

// Options configures a pipeline run. It is also the body of API requests.
type Options struct {
	// Root overrides the root named in the people document.
	Root string `json:"root,omitempty"`

	// Language is a BCP 47 tag for relationship labels.
	Language string `json:"language,omitempty"`

	Config    layout.Config `json:"config,omitzero"`
	Relations Relations     `json:"relations,omitzero"`

	// Snapshots keeps the growth sequence in the layout.
	Snapshots bool `json:"snapshots,omitempty"`

	Formats []string `json:"formats,omitempty"`
	Labels  bool     `json:"labels,omitempty"`

	// Frame draws snapshot Frame (1-based) instead of the final layout.
	Frame int `json:"frame,omitempty"`

	// Refresh skips cache lookups but still stores fresh results.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

var discardLogger = log.NewWithOptions(io.Discard, log.Options{})

// SetLayoutDefaults fills in unset layout options.
func (o *Options) SetLayoutDefaults() {
	o.Config = o.Config.WithDefaults()
	if o.Language == "" {
		o.Language = "en"
	}
	if o.Logger == nil {
		o.Logger = discardLogger
	}
}

// ValidateForLayout applies layout defaults and validates them.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if _, err := labels.Parse(o.Language); err != nil {
		return err
	}
	return o.Config.Validate()
}

// SetRenderDefaults fills in unset render options.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = discardLogger
	}
}

// ValidateForRender applies render defaults and validates them.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Frame < 0 {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "frame must not be negative, got %d", o.Frame)
	}
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults validates the options for a full run.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// LayoutKeyOpts returns the cache key options for a layout around root.
func (o *Options) LayoutKeyOpts(root string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Root:      root,
		Language:  o.Language,
		Base:      o.Config.BaseSpacing,
		Spouse:    o.Config.SpouseSpacing,
		Vertical:  o.Config.VerticalSpacing,
		Min:       o.Config.MinSpacing,
		Expansion: o.Config.ExpansionFactor,
		Passes:    o.Config.MaxRealignPasses,
		Snapshots: o.Snapshots,
	}
}

// ArtifactKeyOpts returns the cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Labels: o.Labels, Frame: o.Frame}
}

// relationsHash returns a stable hash of r, or "" for the default table.
func relationsHash(r Relations) string {
	if r.IsZero() {
		return ""
	}
	data, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// =============================================================================
// Results
// =============================================================================

// Result holds the outputs of [Runner.Execute].
type Result struct {
	Input     *Input
	Layout    graph.Layout
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds counts and timings of a run.
type Stats struct {
	Persons     int
	Virtual     int
	Generations int
	Snapshots   int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

func (s Stats) String() string {
	return fmt.Sprintf("%d persons (%d virtual) in %d generations", s.Persons, s.Virtual, s.Generations)
}
