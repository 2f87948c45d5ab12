// Package pkg provides the libraries behind textblock, a layout engine for
// rectangular blocks of monospaced text.
//
// # Overview
//
// A block is a rectangle of display columns. Blocks are padded, joined side
// by side or on top of each other, and overlaid, always producing another
// rectangle. Wide characters (CJK, emoji) take two columns and combining
// marks none, so rendered blocks line up in a terminal.
//
// # Architecture
//
// The typical data flow:
//
//	TOML/JSON layout document
//	         ↓
//	    [document] package (parse + validate the node tree)
//	         ↓
//	    [block] package (compose the tree into one block)
//	         ↓
//	    text / JSON / DOT / SVG output
//
// # Quick Start
//
// Compose blocks directly:
//
//	name := block.OfText("Textblock")
//	box := block.Must(block.Empty(3, 2, '#'))
//	fmt.Println(box.BesideCenterTop(name, ' '))
//
// Or render a document through the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, _ := runner.Render(ctx, pipeline.Request{Source: src, Syntax: "toml"})
//	os.Stdout.Write(res.Output)
//
// # Main Packages
//
// [block] - Immutable text blocks: construction, padding, joins, overlay and
// rendering.
//
// [width] - Display width of strings and grapheme clusters.
//
// [document] - Layout documents in TOML or JSON, their validation, and the
// composition tree as Graphviz DOT or SVG.
//
// [pipeline] - Parse → layout → render with caching, shared by the CLI and
// the HTTP service.
//
// [cache] - Render cache backends: file, Redis and a no-op cache.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [buildinfo] - Version information set at build time.
//
// [block]: https://pkg.go.dev/github.com/matzehuels/textblock/pkg/block
// [width]: https://pkg.go.dev/github.com/matzehuels/textblock/pkg/width
// [document]: https://pkg.go.dev/github.com/matzehuels/textblock/pkg/document
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/textblock/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/textblock/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/textblock/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/textblock/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/textblock/pkg/buildinfo
package pkg
