// Package goquery renders index labels as plain text.
package goquery

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/doxsearch"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Formatter implements doxsearch.LabelFormatter at compile time.
var _ doxsearch.LabelFormatter = (*Formatter)(nil)

// Formatter strips the markup Doxygen keeps in page titles, leaving the
// text a browser would show.
type Formatter struct {
	showLinks bool
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLinks appends the target of each link, in angle brackets, after its
// text.
func WithLinks() Option {
	return func(f *Formatter) {
		f.showLinks = true
	}
}

// NewFormatter creates a new Formatter.
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FormatLabel implements doxsearch.LabelFormatter.
func (f *Formatter) FormatLabel(label string) (string, error) {
	unescaped := html.UnescapeString(label)
	if !strings.Contains(unescaped, "<") {
		return collapse(unescaped), nil
	}

	container := &nethtml.Node{Type: nethtml.ElementNode, Data: "span", DataAtom: atom.Span}
	nodes, err := nethtml.ParseFragment(strings.NewReader(unescaped), container)
	if err != nil {
		return "", doxsearch.Errorf(doxsearch.EINVALID, "parse label %q: %s", label, err)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	doc := goquery.NewDocumentFromNode(container)
	if f.showLinks {
		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			a.AppendHtml(" &lt;" + html.EscapeString(href) + "&gt;")
		})
	}

	return collapse(doc.Text()), nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
