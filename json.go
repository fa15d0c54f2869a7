package doxsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
)

// Ensure JSONDecoder implements Decoder at compile time.
var _ Decoder = JSONDecoder{}

// JSONDecoder decodes search indexes in canonical JSON form.
type JSONDecoder struct{}

// Decode implements Decoder.
func (JSONDecoder) Decode(_ context.Context, src []byte) ([]TokenRecord, error) {
	raw, err := DecodeJSON(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	return ParseRecords(raw)
}

// DecodeJSON reads a search index in canonical JSON form and returns the raw
// nested arrays expected by Load.
func DecodeJSON(r io.Reader) ([]any, error) {
	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, &ParseError{Index: -1, Reason: "invalid JSON: " + err.Error()}
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, &ParseError{Index: -1, Reason: "index must be an array, got " + typeName(v)}
	}
	return raw, nil
}

// EncodeJSON writes records in canonical JSON form, one pair per line:
//
//	[key, [displayLabel, [[label, page, parentLabel|null], ...]]]
//
// The canonical form has no slot for Entry.ParentFrame, so the flag is not
// written and decodes as false.
func EncodeJSON(w io.Writer, records []TokenRecord) error {
	if _, err := io.WriteString(w, "[\n"); err != nil {
		return err
	}
	for i, r := range records {
		entries := make([]any, len(r.Entries))
		for j, e := range r.Entries {
			var parent any
			if e.ParentLabel != "" {
				parent = e.ParentLabel
			}
			entries[j] = []any{e.Label, e.Page, parent}
		}
		line, err := json.Marshal([]any{r.Key, []any{r.DisplayLabel, entries}})
		if err != nil {
			return err
		}
		if i < len(records)-1 {
			line = append(line, ',')
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}
