package logistics

import (
	"math"
	"math/rand"
	"sort"
)

// ScenarioStats summarises how a packed schedule holds up when location
// demand deviates from the planned headcounts.
type ScenarioStats struct {
	Scenarios         int     `json:"scenarios"`
	ExpectedShortfall float64 `json:"expectedShortfall"`
	WorstShortfall    int     `json:"worstShortfall"`
}

// EvaluateScenarios samples demand noise per destination and measures the
// headcount the scheduled capacity cannot carry. The schedule stays fixed
// across scenarios; each one scales every destination's planned demand by an
// independent normal multiplier with the given sigma, floored at zero.
// Zero scenarios returns zero-valued stats.
func EvaluateScenarios(sol *Solution, teams []TeamRequest, scenarios int, sigma float64, src rand.Source) ScenarioStats {
	stats := ScenarioStats{Scenarios: scenarios}
	if scenarios <= 0 {
		return stats
	}

	demand := map[string]int{}
	var dests []string
	for _, t := range teams {
		if _, seen := demand[t.Destination]; !seen {
			dests = append(dests, t.Destination)
		}
		demand[t.Destination] += t.Size
	}
	// Fixed draw order keeps runs reproducible for a given seed.
	sort.Strings(dests)

	capacity := map[string]int{}
	for _, f := range sol.Flights {
		capacity[f.Destination] += f.Seats
	}

	rng := rand.New(src)
	totalShortfall := 0
	for s := 0; s < scenarios; s++ {
		shortfall := 0
		for _, dest := range dests {
			base := demand[dest]
			mult := 1 + rng.NormFloat64()*sigma
			if mult < 0 {
				mult = 0
			}
			sampled := int(math.Round(float64(base) * mult))
			if unmet := sampled - capacity[dest]; unmet > 0 {
				shortfall += unmet
			}
		}
		totalShortfall += shortfall
		if shortfall > stats.WorstShortfall {
			stats.WorstShortfall = shortfall
		}
	}

	stats.ExpectedShortfall = float64(totalShortfall) / float64(scenarios)
	return stats
}
