package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/finpulse/finpulse-cli/internal/model"
)

var (
	strongColor = color.New(color.FgGreen, color.Bold)
	okColor     = color.New(color.FgYellow)
	weakColor   = color.New(color.FgRed, color.Bold)
)

// gradeColor picks a color by how much of the category maximum was earned.
func gradeColor(score, max int) *color.Color {
	if max == 0 {
		return okColor
	}
	switch ratio := float64(score) / float64(max); {
	case ratio >= 0.75:
		return strongColor
	case ratio >= 0.4:
		return okColor
	default:
		return weakColor
	}
}

func renderScoreTable(w io.Writer, result model.TotalScoreResult) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Score", "Max", "Pct"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, b := range result.Breakdowns {
		pct := 0
		if b.MaxScore > 0 {
			pct = 100 * b.Score / b.MaxScore
		}
		data = append(data, []string{
			b.Section,
			gradeColor(b.Score, b.MaxScore).Sprint(strconv.Itoa(b.Score)),
			strconv.Itoa(b.MaxScore),
			strconv.Itoa(pct) + "%",
		})
	}
	data = append(data, []string{
		"Total",
		gradeColor(result.TotalScore, result.MaxScore).Sprint(strconv.Itoa(result.TotalScore)),
		strconv.Itoa(result.MaxScore),
		strconv.Itoa(result.Percentage) + "%",
	})

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func renderDetails(w io.Writer, result model.TotalScoreResult) {
	for _, b := range result.Breakdowns {
		fmt.Fprintf(w, "\n%s\n", color.New(color.Bold).Sprint(b.Section))
		for _, d := range b.Details {
			switch {
			case strings.HasPrefix(d, "+"):
				fmt.Fprintf(w, "  %s\n", strongColor.Sprint(d))
			case strings.HasPrefix(d, "!"):
				fmt.Fprintf(w, "  %s\n", okColor.Sprint(d))
			default:
				fmt.Fprintf(w, "  %s\n", weakColor.Sprint(d))
			}
		}
	}
}

func renderRecommendations(w io.Writer, cats []model.RecommendationCategory) {
	if len(cats) == 0 {
		fmt.Fprintln(w, "No recommendations for this profile.")
		return
	}
	for _, cat := range cats {
		fmt.Fprintf(w, "\n%s\n%s\n", color.New(color.Bold).Sprint(cat.Title), cat.Description)
		for _, p := range cat.Products {
			fmt.Fprintf(w, "  - %s: %s\n", strongColor.Sprint(p.Name), p.Description)
			if p.ApplicationLink != "" {
				fmt.Fprintf(w, "    %s\n", p.ApplicationLink)
			}
		}
	}
}
