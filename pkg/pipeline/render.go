package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/kinship/pkg/graph"
	"github.com/matzehuels/kinship/pkg/render"
)

// Render produces every format in opts.Formats from l.
func Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	ropts := render.Options{Labels: opts.Labels, Frame: opts.Frame - 1}
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = render.ToDOT(l, ropts)
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = render.RenderSVG(ctx, dot)
			}
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatText:
			frame := l.Final()
			if i := opts.Frame - 1; i >= 0 && i < len(l.Snapshots) {
				frame = l.Snapshots[i]
			}
			data = []byte(render.Text(l, frame, render.TextOptions{Origin: render.Origin(l)}))
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
