package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/doxsearch"
)

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	store, err := loadStore(deps, c.Name)
	if err != nil {
		return reportError(deps, err)
	}

	formatter := c.formatter(deps)

	if c.Exact {
		entries := store.ExactLookup(c.Query)
		if len(entries) == 0 {
			fmt.Fprintf(deps.Stdout, "No entries for %q\n", c.Query)
			return nil
		}
		for _, e := range entries {
			line, err := doxsearch.FormatEntry(e, formatter)
			if err != nil {
				return reportError(deps, err)
			}
			fmt.Fprintln(deps.Stdout, line)
		}
		return nil
	}

	shown := 0
	more := false
	for rec := range store.LookupRecords(c.Query) {
		if c.Limit > 0 && shown == c.Limit {
			more = true
			break
		}
		text, err := doxsearch.FormatRecord(rec, formatter)
		if err != nil {
			return reportError(deps, err)
		}
		header, body, _ := strings.Cut(text, "\n")
		fmt.Fprintln(deps.Stdout, headerStyle.Render(header))
		fmt.Fprintln(deps.Stdout, body)
		shown++
	}

	if shown == 0 {
		fmt.Fprintf(deps.Stdout, "No matches for %q\n", c.Query)
		return nil
	}
	if more {
		fmt.Fprintln(deps.Stdout, dimStyle.Render(fmt.Sprintf("Showing first %d keys. Use --limit 0 to show all.", shown)))
	}
	return nil
}

func (c *LookupCmd) formatter(deps *Dependencies) doxsearch.LabelFormatter {
	switch {
	case c.Raw:
		return nil
	case c.Markdown:
		return deps.Markdown
	case c.Links:
		return deps.Links
	default:
		return deps.Plain
	}
}
