package document

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/textblock/pkg/errors"
)

func text(s string) Node { return Node{Kind: KindText, Text: s} }

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want []string
	}{
		{
			name: "text",
			doc:  Document{Root: text("AB\nC")},
			want: []string{"AB", "C "},
		},
		{
			name: "beside default align",
			doc:  Document{Root: Node{Kind: KindBeside, Children: []Node{text("X"), text("Y\nZ")}}},
			want: []string{"XY", " Z"},
		},
		{
			name: "beside bottom with fill",
			doc:  Document{Fill: "-", Root: Node{Kind: KindBeside, Align: "bottom", Children: []Node{text("X"), text("Y\nZ")}}},
			want: []string{"-Y", "XZ"},
		},
		{
			name: "stack right",
			doc:  Document{Root: Node{Kind: KindStack, Align: "right", Children: []Node{text("AB"), text("C")}}},
			want: []string{"AB", " C"},
		},
		{
			name: "stack center right",
			doc:  Document{Fill: ".", Root: Node{Kind: KindStack, Align: "center-right", Children: []Node{text("abcd"), text("x")}}},
			want: []string{"abcd", "..x."},
		},
		{
			name: "empty",
			doc:  Document{Root: Node{Kind: KindEmpty, Width: 3, Height: 2, Fill: "#"}},
			want: []string{"###", "###"},
		},
		{
			name: "lines",
			doc:  Document{Root: Node{Kind: KindLines, Lines: []string{"one", "three"}}},
			want: []string{"one  ", "three"},
		},
		{
			name: "pad sides",
			doc:  Document{Root: Node{Kind: KindPad, Top: 1, Left: 2, Fill: ".", Children: []Node{text("x")}}},
			want: []string{"...", "..x"},
		},
		{
			name: "pad to width right aligned",
			doc:  Document{Root: Node{Kind: KindPad, Width: 5, Align: "right", Children: []Node{text("42")}}},
			want: []string{"   42"},
		},
		{
			name: "pad to height bottom aligned",
			doc:  Document{Root: Node{Kind: KindPad, Height: 3, VAlign: "bottom", Fill: "~", Children: []Node{text("x")}}},
			want: []string{"~", "~", "x"},
		},
		{
			name: "overlay first child in front",
			doc: Document{Transparent: "*", Root: Node{Kind: KindOverlay, Children: []Node{
				text("O*"),
				text("XY"),
			}}},
			want: []string{"OY"},
		},
		{
			name: "overlay three layers",
			doc: Document{Root: Node{Kind: KindOverlay, Transparent: ".", Children: []Node{
				text("a.."),
				text(".b."),
				text("..c"),
			}}},
			want: []string{"abc"},
		},
		{
			name: "no children",
			doc:  Document{Root: Node{Kind: KindBeside}},
			want: []string{},
		},
		{
			name: "fill inherited by descendants",
			doc: Document{Root: Node{Kind: KindStack, Fill: "+", Children: []Node{
				text("abc"),
				{Kind: KindBeside, Children: []Node{text("d"), text("e\nf")}},
			}}},
			want: []string{"abc", "de+", "+f+"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(&tt.doc)
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if lines := got.Lines(); !reflect.DeepEqual(lines, tt.want) {
				t.Errorf("Build() = %q, want %q", lines, tt.want)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		code errors.Code
		path string
	}{
		{name: "nil document", doc: nil, code: errors.ErrCodeInvalidLayout},
		{name: "no root", doc: &Document{}, code: errors.ErrCodeInvalidLayout},
		{
			name: "unknown kind",
			doc:  &Document{Root: Node{Kind: KindStack, Children: []Node{text("a"), {Kind: "circle"}}}},
			code: errors.ErrCodeInvalidLayout,
			path: "root.children[1]",
		},
		{
			name: "missing kind",
			doc:  &Document{Root: Node{Kind: KindBeside, Children: []Node{{Text: "a"}}}},
			code: errors.ErrCodeInvalidLayout,
			path: "root.children[0]",
		},
		{
			name: "pad without child",
			doc:  &Document{Root: Node{Kind: KindPad, Left: 1}},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "text with children",
			doc:  &Document{Root: Node{Kind: KindText, Children: []Node{text("a")}}},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "bad beside align",
			doc:  &Document{Root: Node{Kind: KindBeside, Align: "left"}},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "bad stack align",
			doc:  &Document{Root: Node{Kind: KindStack, Align: "top"}},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "bad pad align",
			doc:  &Document{Root: Node{Kind: KindPad, Align: "middle", Children: []Node{text("a")}}},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "negative empty",
			doc:  &Document{Root: Node{Kind: KindStack, Children: []Node{{Kind: KindEmpty, Width: -1}}}},
			code: errors.ErrCodeInvalidDimension,
			path: "root.children[0]",
		},
		{
			name: "negative pad",
			doc:  &Document{Root: Node{Kind: KindPad, Top: -2, Children: []Node{text("a")}}},
			code: errors.ErrCodeInvalidDimension,
			path: "root",
		},
		{
			name: "deep error path",
			doc: &Document{Root: Node{Kind: KindStack, Children: []Node{
				text("a"),
				{Kind: KindPad, Children: []Node{{Kind: KindEmpty, Height: -1}}},
			}}},
			code: errors.ErrCodeInvalidDimension,
			path: "root.children[1].children[0]",
		},
		{
			name: "empty over area",
			doc:  &Document{Root: Node{Kind: KindEmpty, Width: 4000, Height: 4000}},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "empty over dimension",
			doc:  &Document{Root: Node{Kind: KindBeside, Children: []Node{{Kind: KindEmpty, Width: 2000000000, Height: 1}}}},
			code: errors.ErrCodeInvalidLayout,
			path: "root.children[0]",
		},
		{
			name: "huge pad amount",
			doc:  &Document{Root: Node{Kind: KindPad, Left: 2000000000, Children: []Node{text("a")}}},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "pad target over area",
			doc:  &Document{Root: Node{Kind: KindPad, Width: 5000, Height: 5000, Children: []Node{text("a")}}},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "pad sides over area",
			doc:  &Document{Root: Node{Kind: KindPad, Top: 3000, Left: 3000, Children: []Node{text("a")}}},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "beside grows too wide",
			doc: &Document{Root: Node{Kind: KindBeside, Children: []Node{
				{Kind: KindEmpty, Width: 6000, Height: 1},
				{Kind: KindEmpty, Width: 6000, Height: 1},
			}}},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "beside of tall and wide",
			doc: &Document{Root: Node{Kind: KindBeside, Children: []Node{
				{Kind: KindEmpty, Width: 0, Height: 9000},
				{Kind: KindEmpty, Width: 9000, Height: 1},
			}}},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "stack over area",
			doc: &Document{Root: Node{Kind: KindStack, Children: []Node{
				{Kind: KindEmpty, Width: 5000, Height: 500},
				{Kind: KindEmpty, Width: 5000, Height: 500},
			}}},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "overlay over area",
			doc: &Document{Root: Node{Kind: KindOverlay, Children: []Node{
				{Kind: KindEmpty, Width: 5000, Height: 1},
				{Kind: KindEmpty, Width: 1, Height: 5000},
			}}},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "text line too wide",
			doc:  &Document{Root: text(strings.Repeat("x", MaxDimension+1))},
			code: errors.ErrCodeInvalidLayout,
			path: "root",
		},
		{
			name: "bad fill",
			doc:  &Document{Fill: "ab", Root: text("x")},
			code: errors.ErrCodeInvalidInput,
			path: "document",
		},
		{
			name: "bad node transparent",
			doc:  &Document{Root: Node{Kind: KindOverlay, Transparent: "\t"}},
			code: errors.ErrCodeInvalidInput,
			path: "root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.doc)
			if err == nil {
				t.Fatal("Build() should fail")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
			if tt.path != "" && !strings.HasPrefix(errors.UserMessage(err), tt.path+":") {
				t.Errorf("message %q should start with %q", errors.UserMessage(err), tt.path)
			}
		})
	}
}

func TestBuildAtLimits(t *testing.T) {
	docs := map[string]Document{
		"widest":  {Root: Node{Kind: KindEmpty, Width: MaxDimension, Height: 1}},
		"tallest": {Root: Node{Kind: KindEmpty, Width: 1, Height: MaxDimension}},
		"largest": {Root: Node{Kind: KindPad, Width: 2048, Height: 2048, Children: []Node{text("a")}}},
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			b, err := Build(&doc)
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if b.Width()*b.Height() > MaxArea {
				t.Errorf("Build() gave %dx%d, over the area limit", b.Width(), b.Height())
			}
		})
	}
}
