package main_test

import (
	"bytes"
	"context"

	"github.com/fwojciec/doxsearch"
	main "github.com/fwojciec/doxsearch/cmd/doxsearch"
	"github.com/fwojciec/doxsearch/mock"
)

func neorv32Records() []doxsearch.TokenRecord {
	return []doxsearch.TokenRecord{
		{Key: "io_base_address", DisplayLabel: "IO_BASE_ADDRESS", Entries: []doxsearch.Entry{
			{Label: "IO_BASE_ADDRESS", Page: "../neorv32_8h.html#a1eb", ParentLabel: "neorv32.h", ParentFrame: true},
		}},
		{Key: "irq_enable", DisplayLabel: "IRQ_ENABLE", Entries: []doxsearch.Entry{
			{Label: "IRQ_ENABLE", Page: "../structneorv32__gpio__t.html#a66", ParentLabel: "neorv32_gpio_t", ParentFrame: true},
		}},
		{Key: "irq_pending", DisplayLabel: "IRQ_PENDING", Entries: []doxsearch.Entry{
			{Label: "IRQ_PENDING", Page: "../structneorv32__gpio__t.html#a27", ParentLabel: "neorv32_gpio_t", ParentFrame: true},
		}},
		{Key: "introduction", DisplayLabel: "&lt;b&gt;NEORV32&lt;/b&gt; Introduction", Entries: []doxsearch.Entry{
			{Label: "&lt;b&gt;NEORV32&lt;/b&gt; Introduction", Page: "../md_README.html#autotoc_md7"},
		}},
	}
}

// buildCatalog returns a BuildService mock holding one build named "neorv32".
func buildCatalog() *mock.BuildService {
	return &mock.BuildService{
		FindBuildsFn: func(_ context.Context, filter doxsearch.BuildFilter) ([]*doxsearch.Build, error) {
			if filter.Name != nil && *filter.Name != "neorv32" {
				return nil, nil
			}
			return []*doxsearch.Build{{ID: "build-1", Name: "neorv32", Source: "/docs/search"}}, nil
		},
		FindRecordsFn: func(_ context.Context, buildID string) ([]doxsearch.TokenRecord, error) {
			if buildID != "build-1" {
				return nil, doxsearch.Errorf(doxsearch.ENOTFOUND, "build not found")
			}
			return neorv32Records(), nil
		},
	}
}

func testDeps(builds doxsearch.BuildService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Builds: builds,
	}, stdout, stderr
}
