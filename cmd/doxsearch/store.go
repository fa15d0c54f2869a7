package main

import (
	"github.com/fwojciec/doxsearch"
	"github.com/fwojciec/doxsearch/bloom"
)

// loadStore reads the records of the named build into an in-memory store.
func loadStore(deps *Dependencies, name string) (*doxsearch.Store, error) {
	build, err := findBuild(deps, name)
	if err != nil {
		return nil, err
	}

	records, err := deps.Builds.FindRecords(deps.Ctx, build.ID)
	if err != nil {
		return nil, err
	}

	return doxsearch.LoadRecords(records,
		doxsearch.WithKeyFilter(bloom.KeyFilter(bloom.DefaultFalsePositiveRate)))
}
