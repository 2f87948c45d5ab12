package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/textblock/pkg/block"
	"github.com/matzehuels/textblock/pkg/document"
	"github.com/matzehuels/textblock/pkg/observability"
)

// Layout composes a parsed document into a block.
func Layout(ctx context.Context, doc *document.Document) (block.Block, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, doc.Root.Count())
	start := time.Now()

	b, err := document.Build(doc)

	hooks.OnBuildComplete(ctx, b.Width(), b.Height(), time.Since(start), err)
	return b, err
}
