package doxsearch

// ParseRecords converts the generic nested arrays of a search index into
// typed records without building a store. Each pair is either in canonical form
//
//	[key, [displayLabel, [[label, page, parentLabel|null], ...]]]
//
// or in the form Doxygen writes into its searchData scripts
//
//	[key, [displayLabel, [page, flag, parentLabel], ...]]
//
// Doxygen keys are decoded with DecodeKey; canonical keys are lowercased.
// Doxygen-shaped keys must therefore be in Doxygen's escaped form, with
// "_5f" for an underscore and a trailing "_<n>" ordinal: an unescaped key
// such as "irq_ab" decodes to "irq" followed by the byte 0xab. Hand-written
// indexes should use the canonical form.
func ParseRecords(raw []any) ([]TokenRecord, error) {
	records := make([]TokenRecord, 0, len(raw))
	for i, item := range raw {
		rec, err := parsePair(i, item)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func parsePair(i int, item any) (TokenRecord, error) {
	pair, ok := item.([]any)
	if !ok {
		return TokenRecord{}, parseErrorf(i, "", "record must be an array, got %s", typeName(item))
	}
	if len(pair) != 2 {
		return TokenRecord{}, parseErrorf(i, "", "record must have 2 elements, got %d", len(pair))
	}
	rawKey, ok := pair[0].(string)
	if !ok {
		return TokenRecord{}, parseErrorf(i, "", "key must be a string, got %s", typeName(pair[0]))
	}
	display, ok := pair[1].([]any)
	if !ok {
		return TokenRecord{}, parseErrorf(i, rawKey, "display part must be an array, got %s", typeName(pair[1]))
	}
	if len(display) < 2 {
		return TokenRecord{}, parseErrorf(i, rawKey, "display part must hold a label and entries")
	}
	label, ok := display[0].(string)
	if !ok {
		return TokenRecord{}, parseErrorf(i, rawKey, "display label must be a string, got %s", typeName(display[0]))
	}

	rec := TokenRecord{DisplayLabel: label}
	var err error
	if isCanonical(display) {
		rec.Key = lowerKey(rawKey)
		rec.Entries, err = parseCanonicalEntries(i, rawKey, display[1].([]any))
	} else {
		rec.Key = DecodeKey(rawKey)
		rec.Entries, err = parseDoxygenEntries(i, rawKey, label, display[1:])
	}
	if err != nil {
		return TokenRecord{}, err
	}
	if rec.Key == "" {
		return TokenRecord{}, parseErrorf(i, rawKey, "key is empty")
	}
	return rec, nil
}

// isCanonical reports whether the display part wraps its entries in a single
// array of arrays rather than listing Doxygen entry triples inline.
func isCanonical(display []any) bool {
	if len(display) != 2 {
		return false
	}
	list, ok := display[1].([]any)
	if !ok {
		return false
	}
	if len(list) == 0 {
		return true
	}
	_, nested := list[0].([]any)
	return nested
}

func parseCanonicalEntries(i int, key string, list []any) ([]Entry, error) {
	if len(list) == 0 {
		return nil, parseErrorf(i, key, "record has no entries")
	}
	entries := make([]Entry, 0, len(list))
	for j, item := range list {
		fields, ok := item.([]any)
		if !ok {
			return nil, parseErrorf(i, key, "entry %d must be an array, got %s", j, typeName(item))
		}
		if len(fields) != 3 {
			return nil, parseErrorf(i, key, "entry %d must have 3 elements, got %d", j, len(fields))
		}
		label, ok := fields[0].(string)
		if !ok {
			return nil, parseErrorf(i, key, "entry %d label must be a string", j)
		}
		page, ok := fields[1].(string)
		if !ok {
			return nil, parseErrorf(i, key, "entry %d page must be a string", j)
		}
		var parent string
		switch v := fields[2].(type) {
		case nil:
		case string:
			parent = v
		default:
			return nil, parseErrorf(i, key, "entry %d parent label must be a string or null", j)
		}
		entries = append(entries, Entry{Label: label, Page: page, ParentLabel: parent})
	}
	return entries, nil
}

func parseDoxygenEntries(i int, key, label string, list []any) ([]Entry, error) {
	entries := make([]Entry, 0, len(list))
	for j, item := range list {
		fields, ok := item.([]any)
		if !ok {
			return nil, parseErrorf(i, key, "entry %d must be an array, got %s", j, typeName(item))
		}
		if len(fields) != 3 {
			return nil, parseErrorf(i, key, "entry %d must have 3 elements, got %d", j, len(fields))
		}
		page, ok := fields[0].(string)
		if !ok {
			return nil, parseErrorf(i, key, "entry %d page must be a string", j)
		}
		flag, ok := toNumber(fields[1])
		if !ok {
			return nil, parseErrorf(i, key, "entry %d target flag must be a number", j)
		}
		var parent string
		switch v := fields[2].(type) {
		case nil:
		case string:
			parent = v
		default:
			return nil, parseErrorf(i, key, "entry %d parent label must be a string or null", j)
		}
		entries = append(entries, Entry{Label: label, Page: page, ParentLabel: parent, ParentFrame: flag != 0})
	}
	return entries, nil
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case bool:
		return "boolean"
	case int, int64, float64:
		return "number"
	}
	return "unknown"
}
