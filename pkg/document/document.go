package document

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/textblock/pkg/errors"
)

// Node kinds.
const (
	KindText    = "text"
	KindLines   = "lines"
	KindEmpty   = "empty"
	KindPad     = "pad"
	KindBeside  = "beside"
	KindStack   = "stack"
	KindOverlay = "overlay"
)

// Input syntaxes accepted by [Parse].
const (
	SyntaxTOML = "toml"
	SyntaxJSON = "json"
)

// Document is a layout: defaults plus a tree of nodes.
type Document struct {
	// Fill is the default fill character for padding and joins.
	// Empty means a space.
	Fill string `toml:"fill,omitempty" json:"fill,omitempty"`
	// Transparent is the default transparent character for overlays.
	// Empty means a space.
	Transparent string `toml:"transparent,omitempty" json:"transparent,omitempty"`
	Root        Node   `toml:"root" json:"root"`
}

// Node is one element of the composition tree. Which fields apply depends
// on Kind; see the package documentation.
type Node struct {
	Kind        string   `toml:"kind" json:"kind"`
	Text        string   `toml:"text,omitempty" json:"text,omitempty"`
	Lines       []string `toml:"lines,omitempty" json:"lines,omitempty"`
	Width       int      `toml:"width,omitempty" json:"width,omitempty"`
	Height      int      `toml:"height,omitempty" json:"height,omitempty"`
	Top         int      `toml:"top,omitempty" json:"top,omitempty"`
	Bottom      int      `toml:"bottom,omitempty" json:"bottom,omitempty"`
	Left        int      `toml:"left,omitempty" json:"left,omitempty"`
	Right       int      `toml:"right,omitempty" json:"right,omitempty"`
	Align       string   `toml:"align,omitempty" json:"align,omitempty"`
	VAlign      string   `toml:"valign,omitempty" json:"valign,omitempty"`
	Fill        string   `toml:"fill,omitempty" json:"fill,omitempty"`
	Transparent string   `toml:"transparent,omitempty" json:"transparent,omitempty"`
	Children    []Node   `toml:"children,omitempty" json:"children,omitempty"`
}

// Count returns the number of nodes in the subtree rooted at n.
func (n Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// ParseTOML decodes a document from TOML. Keys that do not belong to the
// format are rejected.
func ParseTOML(data []byte) (*Document, error) {
	var doc Document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return &doc, nil
}

// ParseJSON decodes a document from JSON. Unknown fields are rejected.
func ParseJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse JSON")
	}
	return &doc, nil
}

// Parse decodes a document in the given syntax ("toml" or "json").
func Parse(data []byte, syntax string) (*Document, error) {
	switch syntax {
	case SyntaxTOML:
		return ParseTOML(data)
	case SyntaxJSON:
		return ParseJSON(data)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported syntax: %q", syntax)
}

// SyntaxOf picks the syntax for a file name by its extension.
func SyntaxOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return SyntaxTOML, nil
	case ".json":
		return SyntaxJSON, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "cannot tell layout syntax from %q (want .toml or .json)", filepath.Base(path))
}

// Load reads and parses a document file, choosing the syntax by extension.
func Load(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	syntax, err := SyntaxOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "layout file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return Parse(data, syntax)
}

// EncodeTOML writes the document back out as TOML.
func (d *Document) EncodeTOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode TOML")
	}
	return buf.Bytes(), nil
}
