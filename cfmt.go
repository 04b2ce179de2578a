// Package cfmt rewrites lines of C-family source that have grown past a column limit. It scans
// the source into a classified chunk stream, inserts newlines at the most appropriate split points
// and reindents the continuation lines. Token order is never changed.
package cfmt

import (
	"io"
)

// Format reads C-like source from r, splits every line past opts.CodeWidth and writes the result
// to w.
func Format(r io.Reader, w io.Writer, opts Options) error {
	sc, err := NewScanner(r)
	if err != nil {
		return err
	}

	list, err := sc.Scan()
	if err != nil {
		return err
	}

	if _, err := LimitWidth(list, opts); err != nil {
		return err
	}

	return Fprint(w, list)
}
