// Package width measures text in terminal display columns.
//
// Widths follow the Unicode East-Asian width rules as implemented by
// [github.com/rivo/uniseg]: wide and fullwidth characters (CJK ideographs,
// most emoji) occupy two columns, combining marks and other zero-width
// characters occupy none, and everything else occupies one. Measurement is
// done per grapheme cluster, so a base character followed by combining marks
// counts once.
//
// Control characters are not interpreted. Every C0 control, including tab
// and escape, measures zero columns, so callers that want tab stops must
// expand tabs to spaces before measuring or building blocks.
package width

import "github.com/rivo/uniseg"

// Cluster is a single user-perceived character together with the number of
// columns it occupies.
type Cluster struct {
	Text  string
	Width int
}

// String returns the display width of s. The empty string has width 0.
func String(s string) int {
	if s == "" {
		return 0
	}
	return uniseg.StringWidth(s)
}

// Rune returns the display width of a single rune.
func Rune(r rune) int {
	return uniseg.StringWidth(string(r))
}

// Clusters splits s into grapheme clusters and reports the width of each.
// The widths sum to String(s).
func Clusters(s string) []Cluster {
	if s == "" {
		return nil
	}
	out := make([]Cluster, 0, len(s))
	state := -1
	for s != "" {
		var c string
		var w int
		c, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, Cluster{Text: c, Width: w})
	}
	return out
}
