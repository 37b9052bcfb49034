// Package pkg provides the core libraries for photocal page building.
//
// # Overview
//
// Photocal turns a year of photo folders into printable calendar pages:
// one photo per day, Monday-aligned grids, and a world map marking the
// month's location. The pkg directory is organized into four main
// areas:
//
//  1. [calendar], [geo] - Domain engines (grids, ISO weeks, projection)
//  2. [manifest], [location], [observations], [page] - Data layers
//  3. [cache], [config], [errors], [observability] - Infrastructure
//  4. [pipeline] - Orchestration (compose → render)
//
// # Architecture
//
// The typical data flow through photocal:
//
//	photo_information.txt + README.md / locations.yaml
//	         ↓
//	    [manifest] + [location] packages (load inputs)
//	         ↓
//	    [calendar] package (grid structure + photo keys)
//	         ↓
//	    [geo] + [worldmap] packages (project + mark the location)
//	         ↓
//	    [page] month document + map SVG output
//
// # Quick Start
//
// Most callers go through the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Year:  2026,
//	    Month: 1,
//	})
//
// The individual packages remain usable on their own for tooling that
// needs only one concern, like grid inspection or coordinate parsing.
package pkg
