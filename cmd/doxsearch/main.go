package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/doxsearch"
	"github.com/fwojciec/doxsearch/doxygen"
	"github.com/fwojciec/doxsearch/etree"
	"github.com/fwojciec/doxsearch/fs"
	"github.com/fwojciec/doxsearch/goquery"
	"github.com/fwojciec/doxsearch/htmltomarkdown"
	doxhttp "github.com/fwojciec/doxsearch/http"
	doxslog "github.com/fwojciec/doxsearch/slog"
	"github.com/fwojciec/doxsearch/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the build catalog.
	DB *sqlite.DB

	// Build catalog, exposed for end-to-end testing.
	BuildService doxsearch.BuildService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("doxsearch"),
		kong.Description("Search Doxygen documentation indexes from the terminal."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'doxsearch --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOXSEARCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.BuildService = doxslog.NewLoggingBuildService(sqlite.NewBuildService(m.DB), logger)
	deps.Builds = m.BuildService
	deps.Plain = goquery.NewFormatter()
	deps.Links = goquery.NewFormatter(goquery.WithLinks())
	deps.Markdown = htmltomarkdown.NewFormatter()

	if strings.HasPrefix(kongCtx.Command(), "import") {
		deps.Sources = newSourceReader(cli.Import, logger)
	}

	return kongCtx.Run(deps)
}

// newSourceReader wires the readers for local and published indexes.
func newSourceReader(cmd ImportCmd, logger *slog.Logger) doxsearch.SourceReader {
	parser := doxygen.NewParser()
	decoders := map[string]doxsearch.Decoder{
		".js":   parser,
		".json": doxsearch.JSONDecoder{},
		".xml":  etree.NewDecoder(),
	}

	local := fs.NewReader(decoders,
		fs.WithPattern(cmd.Pattern),
		fs.WithConcurrency(cmd.Concurrency),
	)

	var delays []time.Duration
	if cmd.Retry {
		delays = doxhttp.DefaultRetryDelays()
	}
	fetcher := doxhttp.NewRetryFetcher(
		doxslog.NewLoggingFetcher(
			doxhttp.NewFetcher(
				doxhttp.WithTimeout(cmd.Timeout),
				doxhttp.WithRateLimit(cmd.RateLimit),
				doxhttp.WithMaxBodySize(cmd.MaxBodySize),
			),
			logger,
		),
		delays,
	)
	remote := doxhttp.NewReader(fetcher, parser,
		doxhttp.WithSection(cmd.Section),
		doxhttp.WithConcurrency(cmd.Concurrency),
		doxhttp.WithDecoders(decoders),
	)

	return doxslog.NewLoggingSourceReader(NewSourceRouter(local, remote), logger)
}

func defaultDBPath() string {
	if path := os.Getenv("DOXSEARCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "doxsearch.db"
	}
	dir := filepath.Join(home, ".doxsearch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "doxsearch.db")
}
