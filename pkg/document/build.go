package document

import (
	"fmt"

	"github.com/matzehuels/textblock/pkg/block"
	"github.com/matzehuels/textblock/pkg/errors"
)

// Layout limits. A node whose block would be wider or higher than
// MaxDimension, or hold more than MaxArea cells, fails with
// ErrCodeInvalidLayout before the block is allocated.
const (
	MaxDimension = 10000
	MaxArea      = 1 << 22
)

// Build composes the document into a block.
func Build(doc *Document) (block.Block, error) {
	if doc == nil || doc.Root.Kind == "" {
		return block.Block{}, errors.New(errors.ErrCodeInvalidLayout, "document has no root node")
	}
	s, err := scope{fill: ' ', transparent: ' '}.with("document", doc.Fill, doc.Transparent)
	if err != nil {
		return block.Block{}, err
	}
	return build(doc.Root, "root", s)
}

// scope carries the characters inherited from enclosing nodes.
type scope struct {
	fill        rune
	transparent rune
}

func (s scope) with(path, fill, transparent string) (scope, error) {
	if fill != "" {
		r, err := errors.ValidateChar("fill", fill)
		if err != nil {
			return s, at(path, err)
		}
		s.fill = r
	}
	if transparent != "" {
		r, err := errors.ValidateChar("transparent", transparent)
		if err != nil {
			return s, at(path, err)
		}
		s.transparent = r
	}
	return s, nil
}

// at prefixes err's message with the node path and keeps its code.
func at(path string, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInvalidLayout
	}
	return errors.New(code, "%s: %s", path, errors.UserMessage(err))
}

func layoutError(path, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidLayout, "%s: %s", path, fmt.Sprintf(format, args...))
}

// checkSize rejects a w x h block that exceeds the layout limits. Negative
// sizes are left to the block package to report.
func checkSize(path string, w, h int) error {
	switch {
	case w < 0 || h < 0:
		return nil
	case w > MaxDimension || h > MaxDimension:
		return layoutError(path, "%dx%d block exceeds the maximum dimension of %d", w, h, MaxDimension)
	case w*h > MaxArea:
		return layoutError(path, "%dx%d block exceeds the maximum area of %d cells", w, h, MaxArea)
	}
	return nil
}

func checked(b block.Block, path string) (block.Block, error) {
	if err := checkSize(path, b.Width(), b.Height()); err != nil {
		return block.Block{}, err
	}
	return b, nil
}

func build(n Node, path string, s scope) (block.Block, error) {
	s, err := s.with(path, n.Fill, n.Transparent)
	if err != nil {
		return block.Block{}, err
	}

	switch n.Kind {
	case KindText, KindLines, KindEmpty:
		if len(n.Children) > 0 {
			return block.Block{}, layoutError(path, "%s node cannot have children", n.Kind)
		}
	case KindPad:
		if len(n.Children) != 1 {
			return block.Block{}, layoutError(path, "pad node needs exactly one child, got %d", len(n.Children))
		}
	}

	switch n.Kind {
	case KindText:
		return checked(block.OfText(n.Text).WithFill(s.fill), path)
	case KindLines:
		return checked(block.Block{}.WithFill(s.fill).AddMultipleTexts(n.Lines...), path)
	case KindEmpty:
		if err := checkSize(path, n.Width, n.Height); err != nil {
			return block.Block{}, err
		}
		b, err := block.Empty(n.Width, n.Height, s.fill)
		if err != nil {
			return block.Block{}, at(path, err)
		}
		return b, nil
	case KindPad:
		child, err := build(n.Children[0], path+".children[0]", s)
		if err != nil {
			return block.Block{}, err
		}
		return pad(child, n, path, s.fill)
	case KindBeside:
		join, err := besideJoin(n.Align)
		if err != nil {
			return block.Block{}, at(path, err)
		}
		return fold(n.Children, path, s, join, true)
	case KindStack:
		join, err := stackJoin(n.Align)
		if err != nil {
			return block.Block{}, at(path, err)
		}
		return fold(n.Children, path, s, join, false)
	case KindOverlay:
		return overlay(n.Children, path, s)
	case "":
		return block.Block{}, layoutError(path, "missing kind")
	}
	return block.Block{}, layoutError(path, "unknown kind %q", n.Kind)
}

type joinFunc func(a, b block.Block, fill rune) block.Block

func besideJoin(align string) (joinFunc, error) {
	switch align {
	case "", "top":
		return block.Block.BesideTop, nil
	case "bottom":
		return block.Block.BesideBottom, nil
	case "center-top":
		return block.Block.BesideCenterTop, nil
	case "center-bottom":
		return block.Block.BesideCenterBottom, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidLayout, "invalid beside align %q", align)
}

func stackJoin(align string) (joinFunc, error) {
	switch align {
	case "", "left":
		return block.Block.StackLeft, nil
	case "right":
		return block.Block.StackRight, nil
	case "center-left":
		return block.Block.StackCenterLeft, nil
	case "center-right":
		return block.Block.StackCenterRight, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidLayout, "invalid stack align %q", align)
}

// fold joins children left to right, or top to bottom unless beside is set.
func fold(children []Node, path string, s scope, join joinFunc, beside bool) (block.Block, error) {
	acc := block.Block{}.WithFill(s.fill)
	for i, c := range children {
		b, err := build(c, fmt.Sprintf("%s.children[%d]", path, i), s)
		if err != nil {
			return block.Block{}, err
		}
		w, h := max(acc.Width(), b.Width()), acc.Height()+b.Height()
		if beside {
			w, h = acc.Width()+b.Width(), max(acc.Height(), b.Height())
		}
		if err := checkSize(path, w, h); err != nil {
			return block.Block{}, err
		}
		acc = join(acc, b, s.fill)
	}
	return acc, nil
}

// overlay composites children back to front so that the first child ends
// up in front of all the others.
func overlay(children []Node, path string, s scope) (block.Block, error) {
	built := make([]block.Block, len(children))
	w, h := 0, 0
	for i, c := range children {
		b, err := build(c, fmt.Sprintf("%s.children[%d]", path, i), s)
		if err != nil {
			return block.Block{}, err
		}
		built[i] = b
		w, h = max(w, b.Width()), max(h, b.Height())
	}
	if err := checkSize(path, w, h); err != nil {
		return block.Block{}, err
	}
	if len(built) == 0 {
		return block.Block{}.WithFill(s.fill), nil
	}
	acc := built[len(built)-1]
	for i := len(built) - 2; i >= 0; i-- {
		acc = built[i].InFrontOf(acc, s.transparent)
	}
	return acc, nil
}

func pad(b block.Block, n Node, path string, fill rune) (block.Block, error) {
	steps := []struct {
		side   block.Side
		amount int
	}{
		{block.Top, n.Top},
		{block.Bottom, n.Bottom},
		{block.Left, n.Left},
		{block.Right, n.Right},
	}
	for _, v := range []int{n.Top, n.Bottom, n.Left, n.Right, n.Width, n.Height} {
		if v > MaxDimension {
			return block.Block{}, layoutError(path, "pad of %d exceeds the maximum dimension of %d", v, MaxDimension)
		}
	}
	w := max(b.Width()+max(n.Left, 0)+max(n.Right, 0), n.Width)
	h := max(b.Height()+max(n.Top, 0)+max(n.Bottom, 0), n.Height)
	if err := checkSize(path, w, h); err != nil {
		return block.Block{}, err
	}

	var err error
	for _, st := range steps {
		if b, err = b.Pad(st.side, st.amount, fill); err != nil {
			return block.Block{}, at(path, err)
		}
	}

	switch n.Align {
	case "", "left":
		b, err = b.PadToWidthRight(n.Width, fill)
	case "right":
		b, err = b.PadToWidthLeft(n.Width, fill)
	default:
		return block.Block{}, layoutError(path, "invalid pad align %q", n.Align)
	}
	if err != nil {
		return block.Block{}, at(path, err)
	}

	switch n.VAlign {
	case "", "top":
		b, err = b.PadToHeightBottom(n.Height, fill)
	case "bottom":
		b, err = b.PadToHeightTop(n.Height, fill)
	default:
		return block.Block{}, layoutError(path, "invalid pad valign %q", n.VAlign)
	}
	if err != nil {
		return block.Block{}, at(path, err)
	}
	return b, nil
}
