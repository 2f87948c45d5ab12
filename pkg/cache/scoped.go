package cache

// ScopedKeyer wraps a Keyer with a prefix so that several services, or
// several versions of one, can share a backend without seeing each other's
// entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "textblock:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(sourceHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(sourceHash, opts)
}
