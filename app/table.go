package app

import (
	"io"

	"github.com/fbiville/markdown-table-formatter/pkg/markdown"
	"github.com/pkg/errors"
)

// writeTable renders rows as a pretty printed markdown table.
func writeTable(w io.Writer, columns []string, rows [][]string) error {
	table, err := markdown.NewTableFormatterBuilder().
		WithPrettyPrint().
		Build(columns...).
		Format(rows)
	if err != nil {
		return errors.Wrap(err, "failed to format table")
	}
	_, err = io.WriteString(w, table)
	return err
}
