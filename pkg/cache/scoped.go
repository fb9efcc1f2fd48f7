package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. The
// service uses this to keep separate cache namespaces per API tenant while
// sharing one Redis instance.
//
// Example usage:
//
//	// Tenant-specific keys
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
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

// SolveKey generates a prefixed key for a solve result.
func (k *ScopedKeyer) SolveKey(itemsHash string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(itemsHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(solveHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(solveHash, opts)
}
