package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects can share one
// Redis instance without colliding.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "wfgraph:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// Prefix returns the scope prefix.
func (k *ScopedKeyer) Prefix() string { return k.prefix }

// NormalizeKey generates a prefixed key for normalized graphs.
func (k *ScopedKeyer) NormalizeKey(graphHash string, opts NormalizeKeyOpts) string {
	return k.prefix + k.inner.NormalizeKey(graphHash, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// AnalysisKey generates a prefixed key for analysis caching.
func (k *ScopedKeyer) AnalysisKey(graphHash string, opts AnalysisKeyOpts) string {
	return k.prefix + k.inner.AnalysisKey(graphHash, opts)
}
