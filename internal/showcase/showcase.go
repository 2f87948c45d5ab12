// Package showcase holds demonstration layouts built with package block.
// They back the "demo" command, the viewer and the HTTP service's /demo
// endpoint.
package showcase

import (
	"sort"

	"github.com/matzehuels/textblock/pkg/block"
	"github.com/matzehuels/textblock/pkg/errors"
)

var demos = map[string]func() block.Block{
	"invoice": func() block.Block { return RenderInvoice(SampleInvoice()) },
	"maths":   Maths,
	"boxes":   Boxes,
}

// Names returns the names of the available demos in sorted order.
func Names() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup renders the demo with the given name.
func Lookup(name string) (block.Block, error) {
	if err := errors.ValidateName(name); err != nil {
		return block.Block{}, err
	}
	demo, ok := demos[name]
	if !ok {
		return block.Block{}, errors.New(errors.ErrCodeNotFound, "no demo named %q", name)
	}
	return demo(), nil
}
