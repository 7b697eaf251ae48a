package stats

import (
	"fmt"
	"sort"

	"github.com/sells-group/modelrate-cli/internal/model"
)

// SuccessRates joins the two per-model count tables. The connected counts
// drive the join: every model there yields exactly one result, with the
// intention count defaulting to zero when absent. Models that appear only on
// the intention side are dropped — the rate is only meaningful relative to a
// connected-call denominator. Output is sorted ascending by model name.
func SuccessRates(connected, intention []model.ModelCount) []model.RateResult {
	intentionByModel := make(map[string]int, len(intention))
	for _, c := range intention {
		intentionByModel[c.ModelName] = c.Count
	}

	results := make([]model.RateResult, 0, len(connected))
	for _, c := range connected {
		intentionCount := intentionByModel[c.ModelName]
		rate := float64(intentionCount) / float64(c.Count) * 100
		results = append(results, model.RateResult{
			ModelName:      c.ModelName,
			IntentionCount: intentionCount,
			ConnectedCount: c.Count,
			SuccessRate:    fmt.Sprintf("%.2f%%", rate),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ModelName < results[j].ModelName
	})

	return results
}
