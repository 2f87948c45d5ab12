package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/textblock/pkg/block"
	"github.com/matzehuels/textblock/pkg/document"
	"github.com/matzehuels/textblock/pkg/errors"
	"github.com/matzehuels/textblock/pkg/observability"
)

// blockJSON is the FormatJSON rendering of a block.
type blockJSON struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Lines  []string `json:"lines"`
}

// Render produces the output for one format. Text and JSON render the
// composed block; DOT and SVG render the document's composition tree.
func Render(ctx context.Context, doc *document.Document, b block.Block, format string) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	out, err := render(ctx, doc, b, format)

	hooks.OnRenderComplete(ctx, format, len(out), time.Since(start), err)
	return out, err
}

func render(ctx context.Context, doc *document.Document, b block.Block, format string) ([]byte, error) {
	switch format {
	case FormatText:
		var buf bytes.Buffer
		if _, err := b.WriteTo(&buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render text")
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.Marshal(blockJSON{Width: b.Width(), Height: b.Height(), Lines: b.Lines()})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render json")
		}
		return data, nil
	case FormatDOT:
		return []byte(document.ToDOT(doc)), nil
	case FormatSVG:
		svg, err := document.RenderSVG(ctx, document.ToDOT(doc))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
		return svg, nil
	}
	return nil, errors.ValidateFormat(format, Formats...)
}
