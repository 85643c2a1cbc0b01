// Package bloom provides probabilistic membership tracking for crawl
// frontier deduplication keyed by canonical URL keys.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// KeySet tracks canonical keys that have been enqueued. Membership may
// report false positives (a fresh URL mistaken for a seen one) but never
// false negatives, which biases the crawl toward never re-fetching.
type KeySet struct {
	f *bloom.BloomFilter
}

// NewKeySet creates a key set sized for n expected keys with the given
// false positive rate.
func NewKeySet(n uint, fpRate float64) *KeySet {
	return &KeySet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a canonical key.
func (s *KeySet) Add(key string) {
	s.f.AddString(key)
}

// Has returns true if the key might have been added.
func (s *KeySet) Has(key string) bool {
	return s.f.TestString(key)
}

// EstimatedCount returns the approximate number of keys added.
func (s *KeySet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
