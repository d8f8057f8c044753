// Package report writes batch results as a CSV table.
package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"go.uber.org/multierr"

	"github.com/mariorollojr/power-density-variables/internal/types"
	"github.com/mariorollojr/power-density-variables/internal/util"
)

// Header is the first row of every report. Column order is part of the file format.
var Header = []string{"Audio File", "Interval", "Average Power Density", "Peak Power Density"}

// Write emits the header and one row per window of every successful result.
// Intervals are numbered from 1. Failed results produce no rows.
func Write(w io.Writer, results []types.FileResult) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(Header); err != nil {
		return util.WrapError("write report header", err)
	}

	for _, r := range results {
		if !r.OK() {
			continue
		}
		for _, win := range r.Analysis.Windows {
			record := []string{
				r.Analysis.File,
				strconv.Itoa(win.Index + 1),
				formatPower(win.AveragePower),
				formatPower(win.PeakPower),
			}
			if err := cw.Write(record); err != nil {
				return util.WrapError("write report row", err)
			}
		}
	}

	cw.Flush()
	return util.WrapError("flush report", cw.Error())
}

// WriteFile creates or truncates path and writes the report to it.
func WriteFile(path string, results []types.FileResult) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return util.WrapError("create report", err)
	}
	defer func() {
		err = multierr.Append(err, util.WrapError("close report", f.Close()))
	}()

	return Write(f, results)
}

func formatPower(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
