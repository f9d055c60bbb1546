// Package room derives chat room identifiers.
package room

// ID returns the room identifier for a pair of participant UIDs: the two
// UIDs sorted lexicographically and joined with "_". The derivation is
// symmetric, ID(a, b) == ID(b, a), and stable for the lifetime of both
// UIDs. Behavior is undefined for empty UIDs; callers must guard before
// invoking.
//
// Firebase UIDs are alphanumeric and never contain the delimiter, which
// is what keeps the scheme collision-free. Existing room documents are
// keyed by it, so it must not change.
func ID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}
