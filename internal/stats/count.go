// Package stats aggregates matched phone records into per-model counts and
// joins the two funnel stages into success rates.
package stats

import (
	"sort"

	"github.com/sells-group/modelrate-cli/internal/model"
)

// CountByModel aggregates records into one count per distinct model name,
// excluding records with an empty model name. Output is sorted ascending by
// model name using plain byte ordering so results are reproducible across
// environments.
func CountByModel(records []model.PhoneRecord) []model.ModelCount {
	byModel := make(map[string]int)
	for _, rec := range records {
		if rec.ModelName == "" {
			continue
		}
		byModel[rec.ModelName]++
	}

	counts := make([]model.ModelCount, 0, len(byModel))
	for name, n := range byModel {
		counts = append(counts, model.ModelCount{ModelName: name, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].ModelName < counts[j].ModelName
	})

	return counts
}
