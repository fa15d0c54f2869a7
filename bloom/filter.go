// Package bloom provides search key membership filters using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/doxsearch"
)

// DefaultFalsePositiveRate is the false positive rate used by KeyFilter.
const DefaultFalsePositiveRate = 0.01

// Ensure Filter implements doxsearch.KeyFilter at compile time.
var _ doxsearch.KeyFilter = (*Filter)(nil)

// Filter wraps a Bloom filter for index key membership.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected keys
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// KeyFilter returns a constructor suitable for doxsearch.WithKeyFilter.
// A non-positive fpRate selects DefaultFalsePositiveRate.
func KeyFilter(fpRate float64) func(n uint) doxsearch.KeyFilter {
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFalsePositiveRate
	}
	return func(n uint) doxsearch.KeyFilter {
		return NewFilter(n, fpRate)
	}
}

// Add adds a key to the filter.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Test returns true if the key might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(key string) bool {
	return f.f.TestString(key)
}
