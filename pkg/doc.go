// Package pkg provides the core libraries for the StarChart admin console.
//
// # Overview
//
// StarChart turns the sector data of a running game universe into navigable
// star maps for administrators. The pkg directory is organized into three
// main areas:
//
//  1. Domain logic (region allocation, star map construction, viewport
//     fitting, rendering)
//  2. Infrastructure (caching, HTTP retry, structured errors, observability)
//  3. External collaborators (universe service client, draft stores)
//
// # Architecture
//
// The typical data flow through StarChart:
//
//	Universe Service (sector records)
//	         ↓
//	    [starmap] package (proximity graph + warp tunnels)
//	         ↓
//	    [starmap] viewport fit (pan/zoom transform)
//	         ↓
//	    [render] package (DOT, SVG, JSON artifacts)
//
// # Quick Start
//
// Fetch sectors and render a star map:
//
//	import (
//	    "context"
//	    "github.com/meridian/starchart/pkg/pipeline"
//	    "github.com/meridian/starchart/pkg/universe"
//	)
//
//	client, _ := universe.New("http://localhost:8080", token)
//	runner := pipeline.NewRunner(client, nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    GalaxyID: galaxyID,
//	    Formats:  []string{"svg"},
//	})
//
// # Main Packages
//
// [allocator] - Proportional share groups with automatic redistribution,
// used to split a galaxy's sectors across regions.
//
// [starmap] - Star map construction (proximity edges, seeded long-range
// connectors) and viewport fitting.
//
// [sector] and [galaxy] - Sector records, sector type taxonomy, and galaxy
// generation configuration.
//
// [render] - DOT, SVG (Graphviz), and JSON artifact generation.
//
// [pipeline] - The fetch → build → fit → render pipeline with per-stage
// caching, shared by the CLI and the HTTP API.
//
// [universe] - HTTP client for the external galaxy-generation service.
//
// [drafts] - Saved generation configurations with file and MongoDB backends.
//
// [cache] - Content-addressed cache with file, Redis, and null backends.
//
// [errors], [httputil], [observability], [buildinfo] - Structured errors
// with machine-readable codes, HTTP retry with backoff, instrumentation
// hooks, and build version metadata.
//
// [allocator]: https://pkg.go.dev/github.com/meridian/starchart/pkg/allocator
// [starmap]: https://pkg.go.dev/github.com/meridian/starchart/pkg/starmap
// [sector]: https://pkg.go.dev/github.com/meridian/starchart/pkg/sector
// [galaxy]: https://pkg.go.dev/github.com/meridian/starchart/pkg/galaxy
// [render]: https://pkg.go.dev/github.com/meridian/starchart/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/meridian/starchart/pkg/pipeline
// [universe]: https://pkg.go.dev/github.com/meridian/starchart/pkg/universe
// [drafts]: https://pkg.go.dev/github.com/meridian/starchart/pkg/drafts
// [cache]: https://pkg.go.dev/github.com/meridian/starchart/pkg/cache
// [errors]: https://pkg.go.dev/github.com/meridian/starchart/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/meridian/starchart/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/meridian/starchart/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/meridian/starchart/pkg/buildinfo
package pkg
