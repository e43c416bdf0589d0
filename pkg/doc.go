// Package pkg provides the core libraries for flowpad diagram editing.
//
// # Overview
//
// Flowpad turns free-form text into editable flow diagrams: a parser
// infers nodes and edges from lines and arrows, a layered layout engine
// arranges them, and renderers draw the result. The pkg directory is
// organized along that data flow:
//
//  1. [parse] - Text-to-graph inference (relation and sequential modes)
//  2. [diagram] - The session state model and editing operations
//  3. [layout] - Layered auto-layout and edge reattachment
//  4. [render] - SVG/PNG/DOT output sinks
//  5. [export], [share], [store] - Interchange JSON, share tokens, persistence
//  6. [config], [errors], [buildinfo] - Cross-cutting support
//
// # Architecture
//
// The typical data flow:
//
//	Free-form text
//	         ↓
//	    [parse] package (infer nodes and edges)
//	         ↓
//	    [diagram] package (session state, editing operations)
//	         ↓
//	    [layout] package (rank, order, place, reattach)
//	         ↓
//	    [render] / [export] / [share] output
//
// # Quick Start
//
// Generate and render a diagram from text:
//
//	import (
//	    "github.com/flowpad/flowpad/pkg/diagram"
//	    "github.com/flowpad/flowpad/pkg/layout"
//	    "github.com/flowpad/flowpad/pkg/parse"
//	    "github.com/flowpad/flowpad/pkg/render"
//	)
//
//	result := parse.Parse("fetch -> decode -> store")
//	st := diagram.FromGraph(result.Nodes, result.Edges, diagram.TopToBottom, "light")
//	if err := layout.AutoLayout(st, nil); err != nil {
//	    return err
//	}
//	svg := render.SVG(st)
package pkg
