package cliutil

import (
	humanize "github.com/dustin/go-humanize"
	"github.com/shenwei356/stable"
)

// PlainTableStyle matches the plain, two-space-separated style the
// teacher's `unikmer info` command uses for its stats table.
var PlainTableStyle = &stable.TableStyle{
	Name:      "plain",
	HeaderRow: stable.RowStyle{Begin: "", Sep: "  ", End: ""},
	DataRow:   stable.RowStyle{Begin: "", Sep: "  ", End: ""},
	Padding:   "",
}

// NewTable builds a stable.Table with the given column headers. The
// style is chosen by the caller when rendering (e.g.
// tbl.Render(PlainTableStyle)).
func NewTable(columns []stable.Column) *stable.Table {
	tbl := stable.New()
	tbl.HeaderWithFormat(columns)
	return tbl
}

// Comma renders an integer count with thousands separators, matching
// the teacher's humanize.Comma usage in `unikmer info`/`unikmer stats`.
func Comma(n int) string {
	return humanize.Comma(int64(n))
}

// BoolStr renders a boolean the way the teacher's info table does:
// a caller-chosen true/false token pair.
func BoolStr(trueStr, falseStr string, v bool) string {
	if v {
		return trueStr
	}
	return falseStr
}
