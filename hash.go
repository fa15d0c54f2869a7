package doxsearch

import (
	"encoding/hex"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// HashRecords computes an xxHash fingerprint of records and returns it as a
// hex string. Records are hashed in key order; entry order is significant.
// Entry.ParentFrame is left out so that an index exported in canonical form
// keeps its fingerprint when imported again.
func HashRecords(records []TokenRecord) string {
	sorted := make([]*TokenRecord, len(records))
	for i := range records {
		sorted[i] = &records[i]
	}
	slices.SortFunc(sorted, func(a, b *TokenRecord) int {
		return strings.Compare(a.Key, b.Key)
	})

	d := xxhash.New()
	for _, r := range sorted {
		writeField(d, r.Key)
		writeField(d, r.DisplayLabel)
		for _, e := range r.Entries {
			writeField(d, e.Label)
			writeField(d, e.Page)
			writeField(d, e.ParentLabel)
		}
		// Record separator keeps entry boundaries unambiguous.
		_, _ = d.Write([]byte{0x1e})
	}
	return hex.EncodeToString(d.Sum(nil))
}

func writeField(d *xxhash.Digest, s string) {
	_, _ = d.WriteString(s)
	_, _ = d.Write([]byte{0x1f})
}
