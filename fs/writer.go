package fs

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/fwojciec/doxsearch"
)

// Writer writes records to disk as a canonical JSON index.
// Output is written to a temporary file next to the target and moved into
// place on success, so readers never observe a partial index.
type Writer struct {
	path string
}

// NewWriter creates a new Writer targeting path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) tempPath() string {
	return w.path + ".tmp"
}

// WriteRecords encodes records and atomically replaces the target file.
func (w *Writer) WriteRecords(records []doxsearch.TokenRecord) error {
	if w.path == "" {
		return doxsearch.Errorf(doxsearch.EINVALID, "output path required")
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}

	f, err := os.Create(w.tempPath())
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	if err := doxsearch.EncodeJSON(bw, records); err != nil {
		_ = f.Close()
		return w.abort(err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return w.abort(err)
	}
	if err := f.Close(); err != nil {
		return w.abort(err)
	}

	if err := os.Rename(w.tempPath(), w.path); err != nil {
		return w.abort(err)
	}
	return nil
}

func (w *Writer) abort(err error) error {
	_ = os.Remove(w.tempPath())
	return err
}
