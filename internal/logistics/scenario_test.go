package logistics_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldplan/fieldplan/internal/logistics"
)

func TestEvaluateScenarios_ZeroScenarios(t *testing.T) {
	t.Parallel()

	teams := []logistics.TeamRequest{{Name: "ops", Size: 6, Destination: "platform-a"}}
	sol := &logistics.Solution{}

	stats := logistics.EvaluateScenarios(sol, teams, 0, 0.2, rand.NewSource(1))
	assert.Equal(t, logistics.ScenarioStats{}, stats)
}

func TestEvaluateScenarios_ZeroSigmaIsExact(t *testing.T) {
	t.Parallel()

	teams := []logistics.TeamRequest{
		{Name: "ops", Size: 10, Destination: "platform-a"},
	}
	// Only 8 of the 10 planned heads have seats.
	sol := &logistics.Solution{
		Flights: []logistics.Flight{
			{TailNumber: "LN-OHA", Destination: "platform-a", Seats: 8, SeatsUsed: 8},
		},
	}

	stats := logistics.EvaluateScenarios(sol, teams, 200, 0, rand.NewSource(1))
	assert.Equal(t, 200, stats.Scenarios)
	assert.Equal(t, 2.0, stats.ExpectedShortfall)
	assert.Equal(t, 2, stats.WorstShortfall)
}

func TestEvaluateScenarios_SufficientCapacityZeroSigma(t *testing.T) {
	t.Parallel()

	teams := []logistics.TeamRequest{
		{Name: "ops", Size: 6, Destination: "platform-a"},
	}
	sol := &logistics.Solution{
		Flights: []logistics.Flight{
			{TailNumber: "LN-OHA", Destination: "platform-a", Seats: 12, SeatsUsed: 6},
		},
	}

	stats := logistics.EvaluateScenarios(sol, teams, 100, 0, rand.NewSource(1))
	assert.Equal(t, 0.0, stats.ExpectedShortfall)
	assert.Equal(t, 0, stats.WorstShortfall)
}

func TestEvaluateScenarios_SameSeedSameStats(t *testing.T) {
	t.Parallel()

	teams := []logistics.TeamRequest{
		{Name: "ops", Size: 10, Destination: "platform-a"},
		{Name: "maint", Size: 7, Destination: "fpso-north"},
	}
	sol := &logistics.Solution{
		Flights: []logistics.Flight{
			{TailNumber: "LN-OHA", Destination: "platform-a", Seats: 10, SeatsUsed: 10},
			{TailNumber: "LN-OHB", Destination: "fpso-north", Seats: 8, SeatsUsed: 7},
		},
	}

	s1 := logistics.EvaluateScenarios(sol, teams, 500, 0.3, rand.NewSource(99))
	s2 := logistics.EvaluateScenarios(sol, teams, 500, 0.3, rand.NewSource(99))
	assert.Equal(t, s1, s2)

	// With 30% demand noise on tight capacity, some scenario must overflow.
	require.Greater(t, s1.WorstShortfall, 0)
	assert.Greater(t, s1.ExpectedShortfall, 0.0)
	assert.GreaterOrEqual(t, float64(s1.WorstShortfall), s1.ExpectedShortfall)
}
