package percentile

import (
	"math"

	"github.com/finpulse/finpulse-cli/internal/model"
)

// MinGroupSize is the smallest peer sample that yields percentiles.
// Below this, only the group size is reported so thin samples never
// masquerade as meaningful rankings.
const MinGroupSize = 100

// Compute ranks a scored result against a peer sample drawn from the
// same age bracket. A percentile is the share of peers scoring strictly
// below the user, rounded to the nearest whole number, so a user tied
// with everyone lands at 0 and beating everyone lands at 100.
//
// Category percentiles only count peers who have a score recorded for
// that category, so stored results from older rule revisions do not
// drag denominators.
func Compute(ageBucket string, result model.TotalScoreResult, peers []model.PeerRecord) model.PercentileResult {
	out := model.PercentileResult{
		AgeBucket: ageBucket,
		GroupSize: len(peers),
	}
	if len(peers) < MinGroupSize {
		return out
	}

	below := 0
	for _, p := range peers {
		if p.TotalScore < result.TotalScore {
			below++
		}
	}
	total := roundedShare(below, len(peers))
	out.TotalPercentile = &total

	out.CategoryPercentiles = make(map[string]int, len(result.Breakdowns))
	for _, b := range result.Breakdowns {
		var catBelow, catTotal int
		for _, p := range peers {
			s, ok := p.CategoryScore(b.Section)
			if !ok {
				continue
			}
			catTotal++
			if s < b.Score {
				catBelow++
			}
		}
		if catTotal == 0 {
			continue
		}
		out.CategoryPercentiles[b.Section] = roundedShare(catBelow, catTotal)
	}

	return out
}

func roundedShare(below, total int) int {
	return int(math.Round(100 * float64(below) / float64(total)))
}
