package utils

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/facette/natsort"
)

// CSV rows are ordered by their first column in natural order, so that
// H.2_2.1.5 sorts before H.2_2.1.10.
type CSV [][]string

func (data CSV) Less(i, j int) bool {
	return natsort.Compare(data[i][0], data[j][0])
}

func (data CSV) Len() int {
	return len(data)
}
func (data CSV) Swap(i, j int) {
	data[i], data[j] = data[j], data[i]
}

// WriteAsCSV sorts data and writes it under a header line.
func WriteAsCSV(w io.Writer, data CSV, columns []string) error {
	sort.Sort(data)
	return WriteTable(w, data, columns)
}

// WriteTable writes rows in their given order.
func WriteTable(w io.Writer, rows [][]string, columns []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	return cw.WriteAll(rows)
}
