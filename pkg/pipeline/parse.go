package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/textblock/pkg/document"
	"github.com/matzehuels/textblock/pkg/observability"
)

// Parse decodes a document and reports the stage to the pipeline hooks.
func Parse(ctx context.Context, src []byte, syntax string) (*document.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, syntax, len(src))
	start := time.Now()

	doc, err := document.Parse(src, syntax)

	nodes := 0
	if doc != nil {
		nodes = doc.Root.Count()
	}
	hooks.OnParseComplete(ctx, syntax, nodes, time.Since(start), err)
	return doc, err
}
