package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// encodeText renders r as aligned "key  value" lines followed by an item
// table. Widths are measured in terminal cells, so wide and combining
// characters line up.
func encodeText(r Report) []byte {
	d, h := r.Document, r.History
	var buf bytes.Buffer

	rows := [][2]string{
		{"id", d.ID},
		{"title", d.Title},
		{"count", strconv.Itoa(d.Count)},
		{"flags", joinOr(d.Flags, "-")},
		{"tags", joinOr(d.Tags, "-")},
		{"undo", strconv.Itoa(h.UndoCount)},
		{"redo", strconv.Itoa(h.RedoCount)},
		{"pause depth", strconv.Itoa(h.PauseDepth)},
		{"batch depth", strconv.Itoa(h.BatchDepth)},
		{"limit", limitText(h.Limit)},
		{"listeners", strconv.Itoa(h.Listeners)},
		{"marks", joinOr(h.Marks, "-")},
	}

	keyWidth := 0
	for _, row := range rows {
		keyWidth = max(keyWidth, uniseg.StringWidth(row[0]))
	}
	for _, row := range rows {
		fmt.Fprintf(&buf, "%s  %s\n", pad(row[0], keyWidth), row[1])
	}

	if len(d.Items) == 0 {
		buf.WriteString("\nno items\n")
		return buf.Bytes()
	}

	nameWidth := uniseg.StringWidth("name")
	for _, item := range d.Items {
		nameWidth = max(nameWidth, uniseg.StringWidth(item.Name))
	}

	fmt.Fprintf(&buf, "\n%3s  %s  %5s  %7s  %5s\n", "#", pad("name", nameWidth), "added", "removed", "moved")
	for i, item := range d.Items {
		fmt.Fprintf(&buf, "%3d  %s  %5d  %7d  %5d\n", i+1, pad(item.Name, nameWidth), item.Added, item.Removed, item.Moved)
	}
	return buf.Bytes()
}

// pad right-pads s with spaces to width terminal cells.
func pad(s string, width int) string {
	if n := width - uniseg.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func joinOr(values []string, empty string) string {
	if len(values) == 0 {
		return empty
	}
	return strings.Join(values, ", ")
}

func limitText(n int) string {
	if n <= 0 {
		return "unbounded"
	}
	return strconv.Itoa(n)
}
