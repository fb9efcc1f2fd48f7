// Package pkg provides the core libraries for Colstack column layout.
//
// # Overview
//
// Colstack partitions an ordered sequence of rectangular items into
// vertical columns, minimizing the rendered height under a column count
// limit and an optional available width. The pkg directory is organized
// into four main areas:
//
//  1. [column] - Domain logic (partition strategies, geometry, verification)
//  2. [manifest], [render], [store] - Input, output, and persistence
//  3. [cache], [errors], [observability] - Infrastructure
//  4. [pipeline], [server] - Orchestration and the HTTP service
//
// # Architecture
//
// The typical data flow through Colstack:
//
//	TOML/JSON Manifest
//	         ↓
//	    [manifest] package (parse + validate)
//	         ↓
//	    [column] package (partition + geometry)
//	         ↓
//	    [render] package (SVG, JSON document)
//	         ↓
//	    SVG/JSON output
//
// # Quick Start
//
// Partition items and render an SVG:
//
//	import (
//	    "github.com/mhartvig/colstack/pkg/column"
//	    "github.com/mhartvig/colstack/pkg/render"
//	)
//
//	// 1. Build the engine
//	items := []column.Item{{Width: 50, Height: 10}, {Width: 50, Height: 20}}
//	eng, _ := column.NewEngine(items, column.Spacing{Row: 4, Column: 8}, 2)
//
//	// 2. Solve
//	result, _ := eng.Solve(200)
//
//	// 3. Compute item geometry
//	layouts, _ := eng.LastItemLayouts()
//
//	// 4. Render to SVG
//	svg := render.SVG(result, layouts)
//
// # Main Packages
//
// [column] - The partition engine. Exact dynamic programming, greedy, and
// binary search strategies behind a common interface, plus item geometry
// and result verification.
//
// [manifest] - TOML and JSON input manifests with validation and defaults.
//
// [render] - SVG rendering with pluggable styles and a JSON document
// format for export and re-import.
//
// [cache] - Content-addressed result cache. File backend for the CLI,
// Redis for the service, null for tests.
//
// [store] - Layout persistence behind a small interface. In-memory for
// tests and single-process use, MongoDB for the service.
//
// [pipeline] - Complete load → solve → render pipeline used by both the
// CLI and the HTTP service. Ensures consistent behavior across entry
// points.
//
// [server] - chi-based HTTP service exposing solve and layout CRUD
// endpoints.
//
// [errors] - Error codes and wrapping shared by all packages.
//
// [observability] - Pluggable hooks for pipeline stages, cache access,
// and HTTP requests.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/column/...    # Specific package
//
// [column]: https://pkg.go.dev/github.com/mhartvig/colstack/pkg/column
// [manifest]: https://pkg.go.dev/github.com/mhartvig/colstack/pkg/manifest
// [render]: https://pkg.go.dev/github.com/mhartvig/colstack/pkg/render
// [cache]: https://pkg.go.dev/github.com/mhartvig/colstack/pkg/cache
// [store]: https://pkg.go.dev/github.com/mhartvig/colstack/pkg/store
// [pipeline]: https://pkg.go.dev/github.com/mhartvig/colstack/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/mhartvig/colstack/pkg/server
// [errors]: https://pkg.go.dev/github.com/mhartvig/colstack/pkg/errors
// [observability]: https://pkg.go.dev/github.com/mhartvig/colstack/pkg/observability
package pkg
