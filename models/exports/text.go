package exports

import (
	"fmt"
	"io"
	"strings"
)

// WriteTextRows renders rows as tab separated lines, one record per line,
// which is the flat format the billing systems ingest.
func WriteTextRows(w io.Writer, rows [][]interface{}) error {
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		if _, err := io.WriteString(w, strings.Join(cells, "\t")+"\n"); err != nil {
			return err
		}
	}
	return nil
}
