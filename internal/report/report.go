// Package report renders the state of a document and its history after a
// run, as JSON, aligned text, or a Go-syntax dump.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/editsys/internal/document"
	"github.com/dshills/editsys/internal/engine"
)

// Format selects the output form.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatDump Format = "dump"
)

// ParseFormat returns the format named s. "auto" is resolved by the caller
// and is not accepted here.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatText, FormatDump:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Report is the state printed after a run.
type Report struct {
	Document document.Snapshot
	History  engine.State
}

// Build captures the current state of doc and e.
func Build(doc *document.Document, e *engine.Engine) Report {
	return Report{
		Document: doc.Snapshot(),
		History:  e.State(),
	}
}

// Options tune the output.
type Options struct {
	// Pretty indents JSON output.
	Pretty bool
}

// Write renders r to w in format f.
func Write(w io.Writer, r Report, f Format, opts Options) error {
	var (
		out []byte
		err error
	)
	switch f {
	case FormatJSON:
		out, err = encodeJSON(r, opts.Pretty)
	case FormatText:
		out = encodeText(r)
	case FormatDump:
		out = encodeDump(r)
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
