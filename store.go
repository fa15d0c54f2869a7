package doxsearch

import (
	"iter"
	"slices"
	"strings"
)

// KeyFilter is a probabilistic set of keys. Test may report false positives
// but never false negatives.
type KeyFilter interface {
	Add(key string)
	Test(key string) bool
}

// LoadOption configures Load and LoadRecords.
type LoadOption func(*loadConfig)

type loadConfig struct {
	newFilter func(n uint) KeyFilter
}

// WithKeyFilter makes the store consult a key filter, sized for n keys,
// before its key map on exact lookups.
func WithKeyFilter(newFilter func(n uint) KeyFilter) LoadOption {
	return func(c *loadConfig) {
		c.newFilter = newFilter
	}
}

// Store is an immutable, in-memory search index for one documentation build.
// It is safe for concurrent use by multiple goroutines once constructed.
type Store struct {
	records     []TokenRecord // sorted by key
	byKey       map[string]int
	filter      KeyFilter
	fingerprint string
	entryCount  int
}

// Load validates raw index data and returns a store.
// Returns a *ParseError if the data does not have the expected shape.
func Load(raw []any, opts ...LoadOption) (*Store, error) {
	records, err := ParseRecords(raw)
	if err != nil {
		return nil, err
	}
	return newStore(records, opts)
}

// LoadRecords validates typed records and returns a store.
// Keys are lowercased; a duplicate key is reported as a *ParseError.
func LoadRecords(records []TokenRecord, opts ...LoadOption) (*Store, error) {
	owned := make([]TokenRecord, len(records))
	for i, r := range records {
		r = r.clone()
		r.Key = lowerKey(r.Key)
		if r.Key == "" {
			return nil, parseErrorf(i, "", "key is empty")
		}
		if len(r.Entries) == 0 {
			return nil, parseErrorf(i, r.Key, "record has no entries")
		}
		owned[i] = r
	}
	return newStore(owned, opts)
}

func newStore(records []TokenRecord, opts []LoadOption) (*Store, error) {
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	byKey := make(map[string]int, len(records))
	for i, r := range records {
		if _, dup := byKey[r.Key]; dup {
			return nil, parseErrorf(i, r.Key, "duplicate key")
		}
		byKey[r.Key] = i
	}

	slices.SortFunc(records, func(a, b TokenRecord) int {
		return strings.Compare(a.Key, b.Key)
	})

	s := &Store{
		records:     records,
		byKey:       make(map[string]int, len(records)),
		fingerprint: HashRecords(records),
	}
	for i, r := range records {
		s.byKey[r.Key] = i
		s.entryCount += len(r.Entries)
	}

	if cfg.newFilter != nil {
		s.filter = cfg.newFilter(uint(max(len(records), 1)))
		for _, r := range records {
			s.filter.Add(r.Key)
		}
	}

	return s, nil
}

// Lookup returns the entries of every record whose key contains query,
// compared case-insensitively. Results are ordered by ascending key, then by
// each key's original entry order. An empty query matches nothing.
//
// The returned sequence is lazy and may be iterated any number of times.
func (s *Store) Lookup(query string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for r := range s.LookupRecords(query) {
			for _, e := range r.Entries {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// LookupRecords is like Lookup but yields whole records, so callers can
// group entries by key.
func (s *Store) LookupRecords(query string) iter.Seq[TokenRecord] {
	q := strings.ToLower(query)
	return func(yield func(TokenRecord) bool) {
		if q == "" {
			return
		}
		for _, r := range s.records {
			if !strings.Contains(r.Key, q) {
				continue
			}
			if !yield(r.clone()) {
				return
			}
		}
	}
}

// ExactLookup returns the entries for key, or nil if the key is absent.
func (s *Store) ExactLookup(key string) []Entry {
	key = lowerKey(key)
	if s.filter != nil && !s.filter.Test(key) {
		return nil
	}
	i, ok := s.byKey[key]
	if !ok {
		return nil
	}
	return slices.Clone(s.records[i].Entries)
}

// Records returns all records in key order.
func (s *Store) Records() iter.Seq[TokenRecord] {
	return func(yield func(TokenRecord) bool) {
		for _, r := range s.records {
			if !yield(r.clone()) {
				return
			}
		}
	}
}

// Keys returns all keys in ascending order.
func (s *Store) Keys() []string {
	keys := make([]string, len(s.records))
	for i, r := range s.records {
		keys[i] = r.Key
	}
	return keys
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// EntryCount returns the total number of entries across all records.
func (s *Store) EntryCount() int {
	return s.entryCount
}

// Fingerprint returns a content hash of the store. Stores built from the
// same records, in any input order, share a fingerprint.
func (s *Store) Fingerprint() string {
	return s.fingerprint
}

func lowerKey(key string) string {
	return strings.ToLower(key)
}
