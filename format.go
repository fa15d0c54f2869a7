package doxsearch

import "strings"

// LabelFormatter renders an entry label, which may carry HTML-escaped
// markup, into display text.
type LabelFormatter interface {
	FormatLabel(label string) (string, error)
}

// FormatRecord formats one record and its entries for terminal display.
// The header is the display label; each entry is listed with its page and,
// when present, its parent label. If formatter is nil, labels are printed
// as stored.
func FormatRecord(rec TokenRecord, formatter LabelFormatter) (string, error) {
	header, err := formatLabel(rec.DisplayLabel, formatter)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(header)
	for _, e := range rec.Entries {
		line, err := FormatEntry(e, formatter)
		if err != nil {
			return "", err
		}
		b.WriteString("\n  ")
		b.WriteString(line)
	}
	return b.String(), nil
}

// FormatEntry formats a single entry as "label  page  (parent)".
func FormatEntry(e Entry, formatter LabelFormatter) (string, error) {
	label, err := formatLabel(e.Label, formatter)
	if err != nil {
		return "", err
	}

	parts := []string{label, e.Page}
	if e.ParentLabel != "" {
		parts = append(parts, "("+e.ParentLabel+")")
	}
	return strings.Join(parts, "  "), nil
}

func formatLabel(label string, formatter LabelFormatter) (string, error) {
	if formatter == nil {
		return label, nil
	}
	return formatter.FormatLabel(label)
}
