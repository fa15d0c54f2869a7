package doxsearch_test

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/fwojciec/doxsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doxygenEntry builds an entry triple the way goja exports it.
func doxygenEntry(page string, parent string) []any {
	return []any{page, int64(1), parent}
}

// neorv32Index mirrors a slice of the NEORV32 all_a.js search data.
func neorv32Index() []any {
	return []any{
		[]any{"irq_5fpending_10", []any{"IRQ_PENDING",
			doxygenEntry("../structneorv32__gpio__t.html#a27a1d5fa04dd4d32065c2ca4ca4f60c5", "neorv32_gpio_t")}},
		[]any{"io_5fbase_5faddress_8", []any{"IO_BASE_ADDRESS",
			doxygenEntry("../neorv32_8h.html#a1eb0cb7fed7e154e15cb4009880a879c", "neorv32.h")}},
		[]any{"irq_5fenable_9", []any{"IRQ_ENABLE",
			doxygenEntry("../structneorv32__gpio__t.html#a666113da2d16d02acf65bb2d0197d99a", "neorv32_gpio_t")}},
		[]any{"input_5fdata_1", []any{"input_data",
			doxygenEntry("../example_2demo__cfu_2main_8c.html#a2e2ccb9136736a673dbef71f207e97a0", "main.c")}},
		[]any{"implementation_20results_0", []any{"FPGA Implementation Results",
			[]any{"../md_README.html#autotoc_md4", int64(1), ""}}},
	}
}

func mustLoad(t *testing.T, raw []any, opts ...doxsearch.LoadOption) *doxsearch.Store {
	t.Helper()
	store, err := doxsearch.Load(raw, opts...)
	require.NoError(t, err)
	return store
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads doxygen shaped data", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index())

		assert.Equal(t, 5, store.Len())
		assert.Equal(t, 5, store.EntryCount())
		assert.Equal(t, []string{
			"implementation results",
			"input_data",
			"io_base_address",
			"irq_enable",
			"irq_pending",
		}, store.Keys())
	})

	t.Run("loads canonical shaped data", func(t *testing.T) {
		t.Parallel()

		raw := []any{
			[]any{"GPIO", []any{"gpio", []any{
				[]any{"GPIO", "../group__gpio.html", nil},
				[]any{"gpio_t", "../structgpio.html", "neorv32.h"},
			}}},
		}

		store := mustLoad(t, raw)

		entries := store.ExactLookup("gpio")
		require.Len(t, entries, 2)
		assert.Equal(t, doxsearch.Entry{Label: "GPIO", Page: "../group__gpio.html"}, entries[0])
		assert.Equal(t, doxsearch.Entry{Label: "gpio_t", Page: "../structgpio.html", ParentLabel: "neorv32.h"}, entries[1])
	})

	t.Run("keeps doxygen entry metadata", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index())

		entries := store.ExactLookup("irq_enable")
		require.Len(t, entries, 1)
		assert.Equal(t, "IRQ_ENABLE", entries[0].Label)
		assert.Equal(t, "neorv32_gpio_t", entries[0].ParentLabel)
		assert.True(t, entries[0].ParentFrame)
	})

	t.Run("accepts an empty index", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, []any{})

		assert.Equal(t, 0, store.Len())
		assert.Empty(t, slices.Collect(store.Lookup("a")))
	})

	t.Run("fails on duplicate keys", func(t *testing.T) {
		t.Parallel()

		raw := append(neorv32Index(),
			[]any{"irq_5fenable_42", []any{"IRQ_ENABLE", doxygenEntry("../other.html", "")}})

		_, err := doxsearch.Load(raw)

		var pe *doxsearch.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 5, pe.Index)
		assert.Equal(t, "irq_enable", pe.Key)
		assert.Equal(t, doxsearch.EINVALID, doxsearch.ErrorCode(err))
	})

	t.Run("fails on malformed shapes", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			item any
		}{
			{"record not an array", "irq"},
			{"record with wrong arity", []any{"irq", []any{"IRQ", doxygenEntry("a.html", "")}, "extra"}},
			{"non-string key", []any{int64(4), []any{"IRQ", doxygenEntry("a.html", "")}}},
			{"display part not an array", []any{"irq_0", "IRQ"}},
			{"missing entries", []any{"irq_0", []any{"IRQ"}}},
			{"non-string display label", []any{"irq_0", []any{nil, doxygenEntry("a.html", "")}}},
			{"empty canonical entries", []any{"irq", []any{"IRQ", []any{}}}},
			{"canonical entry with wrong arity", []any{"irq", []any{"IRQ", []any{[]any{"IRQ", "a.html"}}}}},
			{"canonical entry with numeric page", []any{"irq", []any{"IRQ", []any{[]any{"IRQ", int64(1), nil}}}}},
			{"canonical entry with numeric parent", []any{"irq", []any{"IRQ", []any{[]any{"IRQ", "a.html", int64(3)}}}}},
			{"doxygen entry not an array", []any{"irq_0", []any{"IRQ", "a.html"}}},
			{"doxygen entry with wrong arity", []any{"irq_0", []any{"IRQ", []any{"a.html", int64(1)}}}},
			{"doxygen entry with string flag", []any{"irq_0", []any{"IRQ", []any{"a.html", "1", ""}}}},
			{"key empty after decoding", []any{"_0", []any{"IRQ", doxygenEntry("a.html", "")}}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				_, err := doxsearch.Load([]any{tt.item})

				var pe *doxsearch.ParseError
				require.True(t, errors.As(err, &pe), "expected ParseError, got %v", err)
				assert.Equal(t, 0, pe.Index)
			})
		}
	})
}

func TestLoadRecords(t *testing.T) {
	t.Parallel()

	t.Run("lowercases keys and sorts records", func(t *testing.T) {
		t.Parallel()

		store, err := doxsearch.LoadRecords([]doxsearch.TokenRecord{
			{Key: "Zeta", DisplayLabel: "Zeta", Entries: []doxsearch.Entry{{Label: "Zeta", Page: "z.html"}}},
			{Key: "alpha", DisplayLabel: "alpha", Entries: []doxsearch.Entry{{Label: "alpha", Page: "a.html"}}},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "zeta"}, store.Keys())
	})

	t.Run("does not alias caller records", func(t *testing.T) {
		t.Parallel()

		records := []doxsearch.TokenRecord{
			{Key: "alpha", DisplayLabel: "alpha", Entries: []doxsearch.Entry{{Label: "alpha", Page: "a.html"}}},
		}
		store, err := doxsearch.LoadRecords(records)
		require.NoError(t, err)

		records[0].Entries[0].Page = "changed.html"

		assert.Equal(t, "a.html", store.ExactLookup("alpha")[0].Page)
	})

	t.Run("fails on record without entries", func(t *testing.T) {
		t.Parallel()

		_, err := doxsearch.LoadRecords([]doxsearch.TokenRecord{{Key: "alpha", DisplayLabel: "alpha"}})

		var pe *doxsearch.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "alpha", pe.Key)
	})

	t.Run("fails on keys that collide after lowercasing", func(t *testing.T) {
		t.Parallel()

		_, err := doxsearch.LoadRecords([]doxsearch.TokenRecord{
			{Key: "GPIO", DisplayLabel: "GPIO", Entries: []doxsearch.Entry{{Label: "GPIO", Page: "a.html"}}},
			{Key: "gpio", DisplayLabel: "gpio", Entries: []doxsearch.Entry{{Label: "gpio", Page: "b.html"}}},
		})

		var pe *doxsearch.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 1, pe.Index)
	})
}

func TestStore_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("returns matches in key order", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index())

		entries := slices.Collect(store.Lookup("irq_"))

		require.Len(t, entries, 2)
		assert.Equal(t, "IRQ_ENABLE", entries[0].Label)
		assert.Equal(t, "IRQ_PENDING", entries[1].Label)
	})

	t.Run("matches substrings case-insensitively", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index())

		var labels []string
		for e := range store.Lookup("BASE") {
			labels = append(labels, e.Label)
		}

		assert.Equal(t, []string{"IO_BASE_ADDRESS"}, labels)
	})

	t.Run("empty query matches nothing", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index())

		assert.Empty(t, slices.Collect(store.Lookup("")))
	})

	t.Run("no match yields an empty sequence", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index())

		assert.Empty(t, slices.Collect(store.Lookup("uart")))
	})

	t.Run("is idempotent and restartable", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index())
		seq := store.Lookup("i")

		first := slices.Collect(seq)
		second := slices.Collect(seq)
		third := slices.Collect(store.Lookup("i"))

		assert.Len(t, first, 5)
		assert.Equal(t, first, second)
		assert.Equal(t, first, third)
	})

	t.Run("preserves entry order within a key", func(t *testing.T) {
		t.Parallel()

		raw := []any{
			[]any{"main_0", []any{"main",
				doxygenEntry("../demo__gpio_2main_8c.html#main", "main.c"),
				doxygenEntry("../demo__blink_2main_8c.html#main", "main.c"),
				doxygenEntry("../demo__cfu_2main_8c.html#main", "main.c"),
			}},
		}
		store := mustLoad(t, raw)

		var pages []string
		for e := range store.Lookup("mai") {
			pages = append(pages, e.Page)
		}

		assert.Equal(t, []string{
			"../demo__gpio_2main_8c.html#main",
			"../demo__blink_2main_8c.html#main",
			"../demo__cfu_2main_8c.html#main",
		}, pages)
	})

	t.Run("stops when the consumer stops", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index())

		var count int
		for range store.Lookup("i") {
			count++
			if count == 2 {
				break
			}
		}

		assert.Equal(t, 2, count)
	})

	t.Run("is safe for concurrent readers", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index())
		want := slices.Collect(store.Lookup("irq"))

		var wg sync.WaitGroup
		results := make([][]doxsearch.Entry, 8)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = slices.Collect(store.Lookup("irq"))
			}()
		}
		wg.Wait()

		for _, got := range results {
			assert.Equal(t, want, got)
		}
	})
}

func TestStore_LookupRecords(t *testing.T) {
	t.Parallel()

	store := mustLoad(t, neorv32Index())

	var keys []string
	for r := range store.LookupRecords("irq") {
		keys = append(keys, r.Key)
		r.Entries[0].Label = "mutated"
	}

	assert.Equal(t, []string{"irq_enable", "irq_pending"}, keys)
	assert.Equal(t, "IRQ_ENABLE", store.ExactLookup("irq_enable")[0].Label)
}

func TestStore_ExactLookup(t *testing.T) {
	t.Parallel()

	t.Run("returns the single entry for io_base_address", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index())

		entries := store.ExactLookup("io_base_address")

		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Page, "neorv32_8h.html")
		assert.Equal(t, "IO_BASE_ADDRESS", entries[0].Label)
	})

	t.Run("returns empty for absent key", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index())

		assert.Empty(t, store.ExactLookup("nonexistent_token"))
	})

	t.Run("does not match substrings", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index())

		assert.Empty(t, store.ExactLookup("irq_"))
	})

	t.Run("returns every supplied entry for every key", func(t *testing.T) {
		t.Parallel()

		records := []doxsearch.TokenRecord{
			{Key: "gpio", DisplayLabel: "gpio", Entries: []doxsearch.Entry{
				{Label: "GPIO", Page: "a.html"},
				{Label: "gpio", Page: "b.html", ParentLabel: "neorv32.h"},
			}},
			{Key: "uart", DisplayLabel: "uart", Entries: []doxsearch.Entry{
				{Label: "UART", Page: "c.html"},
			}},
		}
		store, err := doxsearch.LoadRecords(records)
		require.NoError(t, err)

		for _, r := range records {
			assert.Equal(t, r.Entries, store.ExactLookup(r.Key))
		}
	})

	t.Run("consults the key filter", func(t *testing.T) {
		t.Parallel()

		filter := &setFilter{keys: map[string]bool{}}
		var sized uint
		store := mustLoad(t, neorv32Index(), doxsearch.WithKeyFilter(func(n uint) doxsearch.KeyFilter {
			sized = n
			return filter
		}))

		assert.Equal(t, uint(5), sized)
		assert.True(t, filter.keys["irq_enable"])
		assert.Len(t, store.ExactLookup("irq_enable"), 1)
		assert.Empty(t, store.ExactLookup("irq_missing"))
		assert.Contains(t, filter.tested, "irq_missing")
	})

	t.Run("tolerates filter false positives", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index(), doxsearch.WithKeyFilter(func(uint) doxsearch.KeyFilter {
			return alwaysFilter{}
		}))

		assert.Empty(t, store.ExactLookup("irq_missing"))
	})
}

func TestStore_Fingerprint(t *testing.T) {
	t.Parallel()

	t.Run("is independent of input order", func(t *testing.T) {
		t.Parallel()

		raw := neorv32Index()
		reversed := slices.Clone(raw)
		slices.Reverse(reversed)

		a := mustLoad(t, raw)
		b := mustLoad(t, reversed)

		assert.NotEmpty(t, a.Fingerprint())
		assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("changes with content", func(t *testing.T) {
		t.Parallel()

		a := mustLoad(t, neorv32Index())
		b := mustLoad(t, neorv32Index()[:4])

		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("matches HashRecords", func(t *testing.T) {
		t.Parallel()

		store := mustLoad(t, neorv32Index())

		assert.Equal(t, doxsearch.HashRecords(slices.Collect(store.Records())), store.Fingerprint())
	})
}

type setFilter struct {
	keys   map[string]bool
	tested []string
}

func (f *setFilter) Add(key string) { f.keys[key] = true }

func (f *setFilter) Test(key string) bool {
	f.tested = append(f.tested, key)
	return f.keys[key]
}

type alwaysFilter struct{}

func (alwaysFilter) Add(string)       {}
func (alwaysFilter) Test(string) bool { return true }
