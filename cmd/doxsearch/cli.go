package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/doxsearch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Builds   doxsearch.BuildService
	Sources  doxsearch.SourceReader
	Plain    doxsearch.LabelFormatter
	Links    doxsearch.LabelFormatter
	Markdown doxsearch.LabelFormatter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Import ImportCmd `cmd:"" help:"Import a Doxygen search index as a named build"`
	List   ListCmd   `cmd:"" help:"List imported builds"`
	Lookup LookupCmd `cmd:"" help:"Search a build for matching keys"`
	Keys   KeysCmd   `cmd:"" help:"List the keys of a build"`
	Export ExportCmd `cmd:"" help:"Write a build as a canonical JSON index"`
	Delete DeleteCmd `cmd:"" help:"Delete a build and its records"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Name        string        `arg:"" help:"Build name"`
	Source      string        `arg:"" help:"Search directory, index file, or URL of a published search/ directory"`
	Force       bool          `short:"f" help:"Replace an existing build with the same name"`
	Pattern     string        `default:"**/all_*.js" help:"Glob for index files when the source is a directory"`
	Section     string        `default:"all" help:"Search section to read from a published site"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent file limit"`
	RateLimit   float64       `default:"5" help:"Requests per second per host (0 disables)"`
	Timeout     time.Duration `default:"10s" help:"HTTP request timeout"`
	Retry       bool          `default:"true" negatable:"" help:"Retry failed requests with backoff"`
	MaxBodySize int64         `default:"33554432" help:"Largest accepted HTTP response in bytes"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Name     string `arg:"" help:"Build name"`
	Query    string `arg:"" help:"Substring to search for, or the full key with --exact"`
	Exact    bool   `short:"e" help:"Match the whole key"`
	Markdown bool   `short:"m" help:"Render labels as Markdown"`
	Links    bool   `short:"l" help:"Show link targets in plain text labels"`
	Raw      bool   `help:"Print labels as stored in the index"`
	Limit    int    `short:"n" default:"50" help:"Maximum number of keys to show (0 for all)"`
}

// KeysCmd is the "keys" subcommand.
type KeysCmd struct {
	Name   string `arg:"" help:"Build name"`
	Prefix string `short:"p" help:"Only show keys starting with prefix"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name string `arg:"" help:"Build name"`
	File string `arg:"" help:"Output file, or - for stdout"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Build name"`
	Force bool   `help:"Confirm deletion"`
}

// findBuild returns the build with the given name.
func findBuild(deps *Dependencies, name string) (*doxsearch.Build, error) {
	builds, err := deps.Builds.FindBuilds(deps.Ctx, doxsearch.BuildFilter{Name: &name, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(builds) == 0 {
		return nil, doxsearch.Errorf(doxsearch.ENOTFOUND, "build %q not found. Use 'doxsearch list' to see available builds.", name)
	}
	return builds[0], nil
}

// reportError writes err to stderr in the CLI's error format and returns it.
// Internal errors are printed in full since they usually come from the
// filesystem or network.
func reportError(deps *Dependencies, err error) error {
	msg := doxsearch.ErrorMessage(err)
	if doxsearch.ErrorCode(err) == doxsearch.EINTERNAL {
		msg = err.Error()
	}
	fmt.Fprintf(deps.Stderr, "error: %s\n", msg)
	return err
}
