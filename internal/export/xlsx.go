// Package export writes saved assessment results to spreadsheet files
// for offline analysis.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/finpulse/finpulse-cli/internal/model"
)

// WriteXLSX writes results to an .xlsx workbook with a summary sheet and
// a per-category breakdown sheet.
func WriteXLSX(path string, results []model.SavedResult) error {
	f := xlsx.NewFile()

	summary, err := f.AddSheet("Results")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}
	header := summary.AddRow()
	for _, h := range []string{"ID", "User", "Age", "Age Bucket", "Total Score", "Max Score", "Percentage", "Created At"} {
		header.AddCell().Value = h
	}
	for _, r := range results {
		row := summary.AddRow()
		row.AddCell().Value = r.ID
		row.AddCell().Value = r.UserID
		row.AddCell().SetInt(r.Age)
		row.AddCell().Value = r.AgeBucket
		row.AddCell().SetInt(r.Result.TotalScore)
		row.AddCell().SetInt(r.Result.MaxScore)
		row.AddCell().SetInt(r.Result.Percentage)
		row.AddCell().Value = r.CreatedAt.UTC().Format("2006-01-02 15:04:05")
	}

	breakdowns, err := f.AddSheet("Breakdowns")
	if err != nil {
		return eris.Wrap(err, "export: add breakdown sheet")
	}
	bHeader := breakdowns.AddRow()
	for _, h := range []string{"Result ID", "Section", "Score", "Max Score"} {
		bHeader.AddCell().Value = h
	}
	for _, r := range results {
		for _, b := range r.Result.Breakdowns {
			row := breakdowns.AddRow()
			row.AddCell().Value = r.ID
			row.AddCell().Value = b.Section
			row.AddCell().SetInt(b.Score)
			row.AddCell().SetInt(b.MaxScore)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}
