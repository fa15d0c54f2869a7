package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/doxsearch"
	"github.com/fwojciec/doxsearch/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	store, err := loadStore(deps, c.Name)
	if err != nil {
		return reportError(deps, err)
	}
	records := slices.Collect(store.Records())

	if c.File == "-" {
		if err := doxsearch.EncodeJSON(deps.Stdout, records); err != nil {
			return reportError(deps, err)
		}
		return nil
	}

	if err := fs.NewWriter(c.File).WriteRecords(records); err != nil {
		return reportError(deps, err)
	}

	fmt.Fprintf(deps.Stderr, "Exported %d keys to %s\n", len(records), c.File)
	return nil
}
