package etree_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/fwojciec/doxsearch"
	"github.com/fwojciec/doxsearch/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	t.Run("groups documents by lowercase name", func(t *testing.T) {
		t.Parallel()

		src, err := os.ReadFile("testdata/searchdata.xml")
		require.NoError(t, err)

		records, err := etree.NewDecoder().Decode(context.Background(), src)

		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, "neorv32.h", records[0].Key)
		assert.Equal(t, "io_base_address", records[1].Key)
		assert.Equal(t, "irq_enable", records[2].Key)
		assert.Equal(t, "IRQ_ENABLE", records[2].DisplayLabel)
		assert.Equal(t, []doxsearch.Entry{
			{Label: "IRQ_ENABLE", Page: "structneorv32__gpio__t.html#a66e3a5b1c1", ParentLabel: "neorv32_gpio_t"},
			{Label: "irq_enable", Page: "structneorv32__gpio__irq__t.html#a7b", ParentLabel: "neorv32_gpio_irq_t"},
		}, records[2].Entries)
	})

	t.Run("appends arguments to labels", func(t *testing.T) {
		t.Parallel()

		src, err := os.ReadFile("testdata/searchdata.xml")
		require.NoError(t, err)

		records, err := etree.NewDecoder().Decode(context.Background(), src)

		require.NoError(t, err)
		assert.Equal(t, "neorv32_gpio_pin_set(int pin, int value)", records[3].Entries[0].Label)
		assert.Empty(t, records[3].Entries[0].ParentLabel)
	})

	t.Run("loads into a store", func(t *testing.T) {
		t.Parallel()

		src, err := os.ReadFile("testdata/searchdata.xml")
		require.NoError(t, err)
		records, err := etree.NewDecoder().Decode(context.Background(), src)
		require.NoError(t, err)

		store, err := doxsearch.LoadRecords(records)

		require.NoError(t, err)
		entries := store.ExactLookup("IO_BASE_ADDRESS")
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Page, "neorv32_8h.html")
	})

	t.Run("returns ParseError for malformed XML", func(t *testing.T) {
		t.Parallel()

		_, err := etree.NewDecoder().Decode(context.Background(), []byte("<add><doc"))

		var pe *doxsearch.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, doxsearch.EINVALID, doxsearch.ErrorCode(err))
	})

	t.Run("returns ParseError for unexpected root", func(t *testing.T) {
		t.Parallel()

		_, err := etree.NewDecoder().Decode(context.Background(), []byte("<urlset></urlset>"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "urlset")
	})

	t.Run("reports position of document without url", func(t *testing.T) {
		t.Parallel()

		src := `<add>
			<doc><field name="name">GPIO</field><field name="url">group__gpio.html</field></doc>
			<doc><field name="name">UART</field></doc>
		</add>`

		_, err := etree.NewDecoder().Decode(context.Background(), []byte(src))

		var pe *doxsearch.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 1, pe.Index)
		assert.Equal(t, "UART", pe.Key)
	})
}
