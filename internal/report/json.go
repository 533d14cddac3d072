package report

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

type field struct {
	path  string
	value any
}

func encodeJSON(r Report, indent bool) ([]byte, error) {
	d, h := r.Document, r.History

	fields := []field{
		{"document.id", d.ID},
		{"document.title", d.Title},
		{"document.count", d.Count},
		{"document.flags", emptyIfNil(d.Flags)},
		{"document.tags", emptyIfNil(d.Tags)},
		{"document.items", []any{}},
		{"history.can_undo", h.CanUndo},
		{"history.can_redo", h.CanRedo},
		{"history.can_clear", h.CanClear},
		{"history.undo_count", h.UndoCount},
		{"history.redo_count", h.RedoCount},
		{"history.pause_depth", h.PauseDepth},
		{"history.batch_depth", h.BatchDepth},
		{"history.limit", h.Limit},
		{"history.listeners", h.Listeners},
		{"history.marks", emptyIfNil(h.Marks)},
	}
	for _, item := range d.Items {
		fields = append(fields, field{"document.items.-1", item})
	}

	out := []byte("{}")
	for _, f := range fields {
		var err error
		out, err = sjson.SetBytes(out, f.path, f.value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.path, err)
		}
	}

	if indent {
		return pretty.Pretty(out), nil
	}
	return append(pretty.Ugly(out), '\n'), nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
