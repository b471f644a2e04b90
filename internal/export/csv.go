package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/finpulse/finpulse-cli/internal/model"
)

// WriteCSV writes results as a flat csv, one row per result with the
// per-category scores as extra columns in breakdown order.
func WriteCSV(path string, results []model.SavedResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	header := []string{"id", "user_id", "age", "age_bucket", "total_score", "max_score", "percentage", "created_at"}
	if len(results) > 0 {
		for _, b := range results[0].Result.Breakdowns {
			header = append(header, b.Section)
		}
	}
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	for _, r := range results {
		row := []string{
			r.ID,
			r.UserID,
			strconv.Itoa(r.Age),
			r.AgeBucket,
			strconv.Itoa(r.Result.TotalScore),
			strconv.Itoa(r.Result.MaxScore),
			strconv.Itoa(r.Result.Percentage),
			r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		for _, b := range r.Result.Breakdowns {
			row = append(row, strconv.Itoa(b.Score))
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "export: flush csv")
}
