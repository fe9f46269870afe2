package output

import (
	"bytes"
	"strings"
	"text/tabwriter"
)

// TableWriter provides kubectl-style aligned column output using text/tabwriter.
type TableWriter struct {
	buf  bytes.Buffer
	w    *tabwriter.Writer
	rows int
}

// NewTableWriter creates a new TableWriter with standard kubectl-style settings.
// Settings: minwidth=0, tabwidth=0, padding=3, padchar=' ', flags=0
func NewTableWriter() *TableWriter {
	t := &TableWriter{}
	t.w = tabwriter.NewWriter(&t.buf, 0, 0, 3, ' ', 0)
	return t
}

// Header writes the header row with the given column names.
func (t *TableWriter) Header(columns ...string) {
	t.write(columns)
}

// Row writes a data row. Empty cells are shown as "-".
func (t *TableWriter) Row(values ...string) {
	cells := make([]string, len(values))
	for i, v := range values {
		if v == "" {
			v = "-"
		}
		cells[i] = v
	}
	t.write(cells)
}

func (t *TableWriter) write(cells []string) {
	t.rows++
	_, _ = t.w.Write([]byte(strings.Join(cells, "\t") + "\n"))
}

// String flushes the writer and returns the formatted output.
// Returns empty string if nothing was written.
func (t *TableWriter) String() string {
	if t.rows == 0 {
		return ""
	}
	_ = t.w.Flush()
	return strings.TrimSuffix(t.buf.String(), "\n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
