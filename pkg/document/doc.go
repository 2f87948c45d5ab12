// Package document describes text block layouts as data.
//
// A [Document] is a tree of [Node] values read from TOML or JSON. Leaf nodes
// produce blocks from text; inner nodes pad, join or overlay the blocks of
// their children. [Build] composes the tree into a single [block.Block].
//
// # Format
//
//	fill = " "
//	transparent = "*"
//
//	[root]
//	kind = "stack"
//	align = "center-left"
//
//	  [[root.children]]
//	  kind = "text"
//	  text = "Title"
//
//	  [[root.children]]
//	  kind = "pad"
//	  left = 2
//	    [[root.children.children]]
//	    kind = "lines"
//	    lines = ["first", "second"]
//
// The same tree in JSON uses the same field names.
//
// # Node kinds
//
//   - text: one block from Text (may contain line breaks)
//   - lines: one row per entry of Lines
//   - empty: Width x Height cells of the fill
//   - pad: one child, padded by Top, Bottom, Left, Right and then up to the
//     Width and Height targets (Align picks left|right, VAlign top|bottom)
//   - beside: children left to right, Align top|bottom|center-top|center-bottom
//   - stack: children top to bottom, Align left|right|center-left|center-right
//   - overlay: children front to back, the first child in front
//
// Any node may set Fill or Transparent; the value applies to that node and
// its descendants.
//
// # Errors
//
// Structural problems are reported with code INVALID_LAYOUT and the path of
// the offending node (e.g. "root.children[1]"). Negative sizes keep the
// INVALID_DIMENSION code of package block.
//
// # Visualization
//
// [ToDOT] renders the composition tree as Graphviz DOT and [RenderSVG] turns
// DOT into SVG.
package document
