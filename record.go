package doxsearch

import "slices"

// Entry represents one reference to a documentation location.
type Entry struct {
	Label string `json:"label"`
	Page  string `json:"page"`

	// ParentLabel names the enclosing page or symbol, e.g. the struct or file
	// that declares the entry. Empty when the source has no parent context.
	ParentLabel string `json:"parentLabel,omitempty"`

	// ParentFrame mirrors the Doxygen link-target flag: the page opens in
	// the parent frame rather than the search results frame.
	ParentFrame bool `json:"parentFrame,omitempty"`
}

// TokenRecord represents one searchable key and its documentation entries.
// Entries keep the order produced by the documentation generator.
type TokenRecord struct {
	Key          string  `json:"key"`
	DisplayLabel string  `json:"displayLabel"`
	Entries      []Entry `json:"entries"`
}

// Validate returns an error if the record contains invalid fields.
func (r *TokenRecord) Validate() error {
	if r.Key == "" {
		return Errorf(EINVALID, "record key required")
	}
	if len(r.Entries) == 0 {
		return Errorf(EINVALID, "record %q has no entries", r.Key)
	}
	return nil
}

// clone returns a deep copy so callers cannot reach the store's backing arrays.
func (r TokenRecord) clone() TokenRecord {
	r.Entries = slices.Clone(r.Entries)
	return r
}
