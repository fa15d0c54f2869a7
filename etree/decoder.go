// Package etree decodes Doxygen's external search index (searchdata.xml).
package etree

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/doxsearch"
)

// Ensure Decoder implements doxsearch.Decoder at compile time.
var _ doxsearch.Decoder = (*Decoder)(nil)

// Decoder reads the <add><doc><field name="..."> documents Doxygen writes
// when EXTERNAL_SEARCH is enabled. Documents sharing a lowercase name are
// grouped into one record, entries in document order.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode implements doxsearch.Decoder.
func (d *Decoder) Decode(ctx context.Context, src []byte) ([]doxsearch.TokenRecord, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(bytes.NewReader(src)); err != nil {
		return nil, &doxsearch.ParseError{Index: -1, Reason: fmt.Sprintf("parsing search XML: %s", err)}
	}

	root := doc.Root()
	if root == nil {
		return nil, &doxsearch.ParseError{Index: -1, Reason: "empty search XML"}
	}
	if root.Tag != "add" {
		return nil, &doxsearch.ParseError{Index: -1, Reason: fmt.Sprintf("unexpected root element <%s>", root.Tag)}
	}

	var records []doxsearch.TokenRecord
	index := make(map[string]int)
	for i, el := range root.SelectElements("doc") {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fields := docFields(el)
		name := fields["name"]
		if name == "" {
			return nil, &doxsearch.ParseError{Index: i, Reason: "document has no name"}
		}
		if fields["url"] == "" {
			return nil, &doxsearch.ParseError{Index: i, Key: name, Reason: "document has no url"}
		}

		entry := doxsearch.Entry{
			Label:       name + fields["args"],
			Page:        fields["url"],
			ParentLabel: fields["tag"],
		}

		key := strings.ToLower(name)
		if j, ok := index[key]; ok {
			records[j].Entries = append(records[j].Entries, entry)
			continue
		}
		index[key] = len(records)
		records = append(records, doxsearch.TokenRecord{
			Key:          key,
			DisplayLabel: name,
			Entries:      []doxsearch.Entry{entry},
		})
	}
	return records, nil
}

// docFields returns the trimmed text of each named field. The first field
// with a given name wins.
func docFields(doc *etree.Element) map[string]string {
	fields := make(map[string]string)
	for _, f := range doc.SelectElements("field") {
		name := f.SelectAttrValue("name", "")
		if name == "" {
			continue
		}
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = strings.TrimSpace(f.Text())
	}
	return fields
}
