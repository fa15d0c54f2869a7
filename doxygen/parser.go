// Package doxygen reads the JavaScript search index that Doxygen writes into
// the search/ directory of generated HTML documentation.
package doxygen

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/dop251/goja"
	"github.com/fwojciec/doxsearch"
)

// Ensure Parser implements doxsearch.Decoder at compile time.
var _ doxsearch.Decoder = (*Parser)(nil)

// DefaultEvalTimeout bounds the evaluation of a single search script.
const DefaultEvalTimeout = 5 * time.Second

// Parser evaluates Doxygen search scripts in a sandboxed goja runtime.
// A fresh runtime is created for every call, so a Parser is safe for
// concurrent use.
type Parser struct {
	timeout time.Duration
}

// Option configures a Parser.
type Option func(*Parser)

// WithEvalTimeout sets the maximum time a script may run.
// Defaults to DefaultEvalTimeout if not specified.
func WithEvalTimeout(d time.Duration) Option {
	return func(p *Parser) {
		p.timeout = d
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{timeout: DefaultEvalTimeout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse evaluates a searchData script (e.g. search/all_a.js) and returns the
// exported array in the raw form accepted by doxsearch.Load.
func (p *Parser) Parse(ctx context.Context, src []byte) ([]any, error) {
	vars, err := p.eval(ctx, src, "searchData")
	if err != nil {
		return nil, err
	}
	raw, ok := vars[0].([]any)
	if !ok {
		return nil, doxsearch.Errorf(doxsearch.EINVALID, "searchData is not an array")
	}
	return raw, nil
}

// Decode is like Parse but also converts the array into typed records.
func (p *Parser) Decode(ctx context.Context, src []byte) ([]doxsearch.TokenRecord, error) {
	raw, err := p.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	return doxsearch.ParseRecords(raw)
}

// Section describes one index category declared in searchdata.js.
type Section struct {
	ID    int
	Name  string // file prefix, e.g. "all"
	Chars string // first characters that have a results file
}

// Files returns the search script names of the section. Doxygen names each
// file after the position of its first character in Chars, written in hex.
func (s Section) Files() []string {
	n := utf8.RuneCountInString(s.Chars)
	files := make([]string, 0, n)
	for i := range n {
		files = append(files, fmt.Sprintf("%s_%x.js", s.Name, i))
	}
	return files
}

// Sections evaluates a searchdata.js script and returns its sections
// ordered by ID.
func (p *Parser) Sections(ctx context.Context, src []byte) ([]Section, error) {
	vars, err := p.eval(ctx, src, "indexSectionsWithContent", "indexSectionNames")
	if err != nil {
		return nil, err
	}

	contentMap, ok := vars[0].(map[string]any)
	if !ok {
		return nil, doxsearch.Errorf(doxsearch.EINVALID, "indexSectionsWithContent is not an object")
	}
	nameMap, ok := vars[1].(map[string]any)
	if !ok {
		return nil, doxsearch.Errorf(doxsearch.EINVALID, "indexSectionNames is not an object")
	}

	sections := make([]Section, 0, len(nameMap))
	for k, v := range nameMap {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, doxsearch.Errorf(doxsearch.EINVALID, "invalid section id %q", k)
		}
		name, ok := v.(string)
		if !ok {
			return nil, doxsearch.Errorf(doxsearch.EINVALID, "section %d name is not a string", id)
		}
		chars, _ := contentMap[k].(string)
		sections = append(sections, Section{ID: id, Name: name, Chars: chars})
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].ID < sections[j].ID })
	return sections, nil
}

// FindSection returns the section with the given name.
func FindSection(sections []Section, name string) (Section, bool) {
	for _, s := range sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// eval runs src and exports the named global variables.
func (p *Parser) eval(ctx context.Context, src []byte, names ...string) ([]any, error) {
	vm := goja.New()

	evalCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-evalCtx.Done():
			vm.Interrupt("evaluation timeout or cancelled")
		case <-done:
		}
	}()

	if _, err := vm.RunString(string(src)); err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("search script interrupted: %v", interrupted.Value())
		}
		return nil, doxsearch.Errorf(doxsearch.EINVALID, "invalid search script: %v", err)
	}

	vars := make([]any, len(names))
	for i, name := range names {
		v := vm.Get(name)
		if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
			return nil, doxsearch.Errorf(doxsearch.EINVALID, "search script does not define %s", name)
		}
		vars[i] = v.Export()
	}
	return vars, nil
}
