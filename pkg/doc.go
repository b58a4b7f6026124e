// Package pkg provides the core libraries for kinship family tree layouts.
//
// # Overview
//
// Kinship places the members of a family around one chosen person, the
// root. Every person gets a deterministic position, a generation relative
// to the root and a localised label describing how they are related
// ("Großmutter", "cousin once removed"). The pkg directory is organized
// into three areas:
//
//  1. Domain: [family], [labels] and [layout]
//  2. Data: [io], [graph], [cache] and [store]
//  3. Orchestration: [pipeline], [render] and [api]
//
// # Architecture
//
// The typical data flow:
//
//	people file (.toml/.yaml/.json)
//	         ↓
//	    [io] (decode) → [family] (classify labels, link persons)
//	         ↓
//	    [layout] (degrees, placement, realignment, relationships)
//	         ↓
//	    [graph] (serializable layout)
//	         ↓
//	    [render] → SVG / DOT / JSON / text
//
// [pipeline] runs these stages with caching; [api] exposes them over HTTP
// and keeps results in a [store].
//
// # Quick Start
//
//	doc, _ := io.ImportPeople("family.toml")
//	people, _ := doc.Build(nil)
//
//	res, err := layout.Compute(people, doc.Root, layout.Options{
//	    Config:   layout.DefaultConfig(),
//	    Language: language.German,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, p := range res.Positions {
//	    fmt.Printf("%-10s gen %+d  x=%v  %s\n", p.ID(), p.Generation, p.X, p.Relationship.Label)
//	}
//
// Or through the pipeline, which also renders and caches:
//
//	r := pipeline.NewRunner(nil, nil, logger)
//	res, err := r.Execute(ctx, "family.toml", pipeline.Options{Formats: []string{"svg"}})
//
// # Supporting Packages
//
//   - [errors]: error codes shared by every layer
//   - [observability]: hooks for load, layout, render, cache and HTTP events
//   - [httputil]: JSON error handling and graceful shutdown for [api]
//   - [buildinfo]: version stamping
//
// [family]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/family
// [labels]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/labels
// [layout]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/layout
// [io]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/io
// [graph]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/graph
// [cache]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/store
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/render
// [api]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/kinship/pkg/buildinfo
package pkg
