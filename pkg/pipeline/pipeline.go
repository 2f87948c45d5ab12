// Package pipeline renders layout documents.
//
// This package implements the parse → layout → render pipeline shared by the
// CLI and the HTTP service, so that both validate, cache and log renders the
// same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: decode a TOML or JSON document (package document)
//  2. Layout: compose the document into a block (package block)
//  3. Render: produce the requested output format
//
// A [Runner] wraps the stages with a cache keyed on the document source and
// the options that affect the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, pipeline.Request{
//	    Source: src,
//	    Syntax: "toml",
//	    Format: pipeline.FormatText,
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"time"

	"github.com/matzehuels/textblock/pkg/errors"
)

// Format constants for output formats.
const (
	// FormatText is the composed block, one line per row.
	FormatText = "text"
	// FormatJSON is the composed block as {"width", "height", "lines"}.
	FormatJSON = "json"
	// FormatDOT is the composition tree in Graphviz DOT.
	FormatDOT = "dot"
	// FormatSVG is the composition tree rendered to SVG.
	FormatSVG = "svg"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatDOT, FormatSVG}

// MaxSourceSize bounds the size of a document accepted by the pipeline.
const MaxSourceSize = 1 << 20

// Request describes one render.
type Request struct {
	// Source is the document text.
	Source []byte `json:"-"`
	// Syntax is "toml" or "json".
	Syntax string `json:"syntax"`
	// Format is one of Formats. Empty means FormatText.
	Format string `json:"format,omitempty"`
	// Refresh skips the cache lookup; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`
}

// Validate checks the request and applies defaults.
func (r *Request) Validate() error {
	if r.Format == "" {
		r.Format = FormatText
	}
	if err := errors.ValidateFormat(r.Format, Formats...); err != nil {
		return err
	}
	if len(r.Source) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "empty document")
	}
	if len(r.Source) > MaxSourceSize {
		return errors.New(errors.ErrCodeInvalidInput, "document too large (%d bytes, max %d)", len(r.Source), MaxSourceSize)
	}
	return nil
}

// Result contains the output of a render.
type Result struct {
	// Output is the rendered document in the requested format.
	Output []byte `json:"output"`
	// Width and Height are the size of the composed block.
	Width  int `json:"width"`
	Height int `json:"height"`
	// Cached reports whether the output came from the cache.
	Cached bool `json:"-"`
	// Stats contains timing and size information. It is zero for cached
	// results.
	Stats Stats `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}
