// Package areafilter partitions spreadsheet rows into usable and blocked
// sets based on membership of a designated area column in a configured
// blocklist.
package areafilter

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// minColumns is the narrowest row the filter accepts; the source sheets
// carry at least name, number, and area columns.
const minColumns = 3

// PartitionResult holds the two row sets plus the informational report of
// blocked areas that matched nothing. Row order and cell content are
// preserved from the input; trimming applies to the comparison only.
type PartitionResult struct {
	Usable         [][]string
	Blocked        [][]string
	UnmatchedAreas []string
}

// ParseBlockedAreas parses a comma-separated blocklist value into a set.
// Entries are trimmed and empties dropped. The value is data, never code;
// an empty result is a configuration error since the filter would be a
// no-op.
func ParseBlockedAreas(s string) (map[string]struct{}, error) {
	blocked := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		blocked[name] = struct{}{}
	}
	if len(blocked) == 0 {
		return nil, eris.New("areafilter: blocked area list is empty; set area_filter.blocked_areas or --blocked-areas")
	}
	return blocked, nil
}

// Partition routes each row by whether the trimmed value of the area column
// is in the blocked set. A row narrower than three columns, or too narrow
// to hold the area column, fails the whole file as a configuration error.
func Partition(rows [][]string, areaCol int, blocked map[string]struct{}) (*PartitionResult, error) {
	if areaCol < 0 {
		return nil, eris.Errorf("areafilter: area column index %d is negative", areaCol)
	}

	required := minColumns
	if areaCol+1 > required {
		required = areaCol + 1
	}

	matched := make(map[string]bool, len(blocked))

	result := &PartitionResult{}
	for i, row := range rows {
		if len(row) < required {
			return nil, eris.Errorf("areafilter: row %d has %d columns, need at least %d", i+1, len(row), required)
		}

		area := strings.TrimSpace(row[areaCol])
		if _, ok := blocked[area]; ok {
			matched[area] = true
			result.Blocked = append(result.Blocked, row)
		} else {
			result.Usable = append(result.Usable, row)
		}
	}

	for name := range blocked {
		if !matched[name] {
			result.UnmatchedAreas = append(result.UnmatchedAreas, name)
		}
	}
	sort.Strings(result.UnmatchedAreas)

	return result, nil
}
