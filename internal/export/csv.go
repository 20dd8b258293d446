package export

import "strings"

// Row is a record that can be written as a CSV line.
type Row interface {
	Columns() []string
	Values() []string
}

// ToCSV renders rows with a header taken from the first row's columns.
// Fields are joined with commas and never quoted; callers only pass
// catalog vocabulary, which holds no commas. Lines are separated by "\n"
// with no trailing newline. No rows yields an empty string.
func ToCSV[R Row](rows []R) string {
	if len(rows) == 0 {
		return ""
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(rows[0].Columns(), ","))
	for _, r := range rows {
		lines = append(lines, strings.Join(r.Values(), ","))
	}
	return strings.Join(lines, "\n")
}
