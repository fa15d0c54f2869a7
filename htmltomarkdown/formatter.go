// Package htmltomarkdown renders index labels as Markdown.
package htmltomarkdown

import (
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/doxsearch"
)

// Ensure Formatter implements doxsearch.LabelFormatter at compile time.
var _ doxsearch.LabelFormatter = (*Formatter)(nil)

// Formatter wraps html-to-markdown to turn the escaped markup Doxygen keeps
// in page titles into Markdown.
type Formatter struct {
	conv *converter.Converter
}

// NewFormatter creates a new Formatter.
func NewFormatter() *Formatter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Formatter{conv: conv}
}

// FormatLabel unescapes label and converts any inline HTML to Markdown.
// Labels without markup are returned unescaped.
func (f *Formatter) FormatLabel(label string) (string, error) {
	unescaped := html.UnescapeString(label)
	if !strings.Contains(unescaped, "<") {
		return unescaped, nil
	}

	result, err := f.conv.ConvertString(unescaped)
	if err != nil {
		return "", doxsearch.Errorf(doxsearch.EINVALID, "convert label %q: %s", label, err)
	}

	return strings.Join(strings.Fields(result), " "), nil
}
