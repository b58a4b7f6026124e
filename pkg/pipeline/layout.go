package pipeline

import (
	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/labels"
	"github.com/matzehuels/kinship/pkg/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the layout of in around the selected root and
// converts it to its serialized form. degrees may be nil; when set it must
// only ever be used with inputs of the same Hash.
func GenerateLayout(in *Input, opts Options, degrees *layout.DegreeCache) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	root, err := in.Root(opts.Root)
	if err != nil {
		return graph.Layout{}, err
	}
	tag, err := labels.Parse(opts.Language)
	if err != nil {
		return graph.Layout{}, err
	}

	res, err := layout.Compute(in.People, root, layout.Options{
		Config:   opts.Config,
		Language: tag,
		Degrees:  degrees,
		Logger:   opts.Logger,
	})
	if err != nil {
		return graph.Layout{}, err
	}

	l, err := graph.FromResult(res, tag, opts.Snapshots)
	if err != nil {
		return graph.Layout{}, err
	}
	l.InputHash = in.Hash
	return l, nil
}
