package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine hashes content together with option tags: H(content || tag1 || tag2 ...).
// Cache keys use it so the same document parsed with other options gets another key.
func Combine(content Digest, tags ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, tag := range tags {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(tag))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
