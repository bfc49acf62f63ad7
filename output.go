package main

import (
	"strconv"

	"github.com/wildstyl3r/crmrates/internal/utils"
)

// table is one CSV product of a run, saved as <dir>/<stem>_<fileSuffix>.csv.
type table struct {
	fileSuffix  string
	columnNames []string
	rows        utils.CSV
	// sorted tables are ordered naturally by their first column
	sorted bool
}

func (t *table) add(row ...string) {
	t.rows = append(t.rows, row)
}

func (t *table) save(outputDir, stem string) (err error) {
	f, err := utils.CreateOutput(outputDir, stem, t.fileSuffix)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if t.sorted {
		return utils.WriteAsCSV(f, t.rows, t.columnNames)
	}
	return utils.WriteTable(f, t.rows, t.columnNames)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'e', 8, 64)
}

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}

