package fs

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// Hasher computes content digests used to decide whether a file must be rewritten.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Sum returns the XXHash of data.
func (h *Hasher) Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Equal reports whether a and b hold the same bytes.
// The digests rule out most differences before the full comparison.
func (h *Hasher) Equal(a, b []byte) bool {
	if len(a) != len(b) || h.Sum(a) != h.Sum(b) {
		return false
	}
	return bytes.Equal(a, b)
}
