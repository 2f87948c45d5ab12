// Package block composes rectangular blocks of multi-line text.
//
// A [Block] is an immutable grid of display cells: every row is exactly
// [Block.Width] terminal columns wide and there are [Block.Height] rows.
// Widths are measured with Unicode display width (see package width), so a
// CJK ideograph takes two columns and a combining accent takes none.
//
// # Construction
//
// Blocks are built from text with [OfText] or from any value with [Of]:
//
//	b := block.OfText("AB\nC") // 2x2, second row padded: "C "
//	n := block.Of(42)          // 2x1
//
// [Empty] creates a block of a given size filled with one character.
//
// # Composition
//
// Every operation returns a new Block and leaves its inputs untouched:
//
//   - Padding: [Block.PadTop], [Block.PadBottom], [Block.PadLeft], [Block.PadRight]
//   - Horizontal joins: [Block.BesideTop], [Block.BesideBottom], and the centred variants
//   - Vertical joins: [Block.StackLeft], [Block.StackRight], and the centred variants
//   - Overlay: [Block.InFrontOf] composites a block over another, treating one
//     character as transparent
//
// Operations that introduce empty space take the fill character explicitly;
// a block's own default fill ([Block.Fill]) is only used when the block is
// grown by [Block.AddMultipleTexts] or extended under an overlay.
//
// # Errors
//
// Only operations that take a size can fail. A negative width, height or
// padding amount yields an error with code [ErrInvalidDimension]. Joins and
// overlays never fail.
//
// # Concurrency
//
// Blocks are values with no mutable state. Derived blocks share row storage
// with their inputs, which is safe because rows are never written after a
// block is constructed. A Block may be used from any number of goroutines.
package block
