package main

import (
	"fmt"

	"github.com/fwojciec/doxsearch"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return doxsearch.Errorf(doxsearch.EINVALID, "use --force to confirm deletion")
	}

	build, err := findBuild(deps, c.Name)
	if err != nil {
		return reportError(deps, err)
	}

	if err := deps.Builds.DeleteBuild(deps.Ctx, build.ID); err != nil {
		return reportError(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted build %q\n", build.Name)
	return nil
}
