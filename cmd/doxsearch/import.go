package main

import (
	"fmt"

	"github.com/fwojciec/doxsearch"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	records, err := deps.Sources.Read(deps.Ctx, c.Source)
	if err != nil {
		return reportError(deps, err)
	}

	build := &doxsearch.Build{
		Name:   c.Name,
		Source: c.Source,
	}
	save := deps.Builds.CreateBuild
	if c.Force {
		save = deps.Builds.ReplaceBuild
	}
	if err := save(deps.Ctx, build, records); err != nil {
		if doxsearch.ErrorCode(err) == doxsearch.ECONFLICT {
			fmt.Fprintf(deps.Stderr, "error: build %q already exists. Use --force to replace it.\n", c.Name)
			return err
		}
		return reportError(deps, err)
	}

	fmt.Fprintln(deps.Stdout, successStyle.Render(fmt.Sprintf("Imported build %q (%s)", build.Name, build.ID)))
	fmt.Fprintf(deps.Stdout, "  %d keys, %d entries\n", build.RecordCount, build.EntryCount)
	return nil
}
