package main

import (
	"fmt"

	"github.com/fwojciec/doxsearch"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	builds, err := deps.Builds.FindBuilds(deps.Ctx, doxsearch.BuildFilter{})
	if err != nil {
		return reportError(deps, err)
	}

	if len(builds) == 0 {
		fmt.Fprintln(deps.Stdout, "No builds found. Use 'doxsearch import' to create one.")
		return nil
	}

	for _, b := range builds {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d keys  %d entries  %s\n",
			b.ID, b.Name, b.RecordCount, b.EntryCount, b.Source)
	}

	return nil
}
