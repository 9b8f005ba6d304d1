// Package logistics packs staff teams onto helicopter flights. Teams are
// indivisible and every flight serves exactly one offshore destination.
package logistics

import (
	"errors"
	"sort"
)

// ErrNoFleet is returned when teams need transport but no helicopter is available.
var ErrNoFleet = errors.New("no helicopters available")

// TeamRequest is one indivisible team awaiting transport.
type TeamRequest struct {
	Name        string `json:"name"`
	Size        int    `json:"size"`
	Destination string `json:"destination"`
}

// HelicopterSpec is an available airframe. Helicopters fly multiple
// rotations, so a spec may back any number of flights.
type HelicopterSpec struct {
	TailNumber string `json:"tailNumber"`
	Seats      int    `json:"seats"`
}

// Flight is one manifest: a helicopter rotation to a single destination.
type Flight struct {
	TailNumber  string   `json:"tailNumber"`
	Destination string   `json:"destination"`
	Teams       []string `json:"teams"`
	SeatsUsed   int      `json:"seatsUsed"`
	Seats       int      `json:"seats"`
}

// Solution is the packed flight schedule.
type Solution struct {
	Flights    []Flight `json:"flights"`
	Unassigned []string `json:"unassigned"` // teams larger than every airframe
	EmptySeats int      `json:"emptySeats"`
}

// Solve packs teams onto flights, first-fit-decreasing by team size within
// each destination. New flights use the best-fitting airframe (smallest seat
// count that still holds the team). Teams that fit no airframe at all are
// reported unassigned, never split.
func Solve(teams []TeamRequest, fleet []HelicopterSpec) (*Solution, error) {
	sol := &Solution{Flights: []Flight{}, Unassigned: []string{}}
	if len(teams) == 0 {
		return sol, nil
	}
	if len(fleet) == 0 {
		return nil, ErrNoFleet
	}

	byDest := map[string][]TeamRequest{}
	var dests []string
	for _, t := range teams {
		if _, seen := byDest[t.Destination]; !seen {
			dests = append(dests, t.Destination)
		}
		byDest[t.Destination] = append(byDest[t.Destination], t)
	}
	sort.Strings(dests)

	for _, dest := range dests {
		group := byDest[dest]
		sort.SliceStable(group, func(a, b int) bool { return group[a].Size > group[b].Size })

		var open []Flight
		for _, t := range group {
			placed := false
			for i := range open {
				if open[i].Seats-open[i].SeatsUsed >= t.Size {
					open[i].Teams = append(open[i].Teams, t.Name)
					open[i].SeatsUsed += t.Size
					placed = true
					break
				}
			}
			if placed {
				continue
			}

			spec, ok := bestFit(fleet, t.Size)
			if !ok {
				sol.Unassigned = append(sol.Unassigned, t.Name)
				continue
			}
			open = append(open, Flight{
				TailNumber:  spec.TailNumber,
				Destination: dest,
				Teams:       []string{t.Name},
				SeatsUsed:   t.Size,
				Seats:       spec.Seats,
			})
		}
		sol.Flights = append(sol.Flights, open...)
	}

	for _, f := range sol.Flights {
		sol.EmptySeats += f.Seats - f.SeatsUsed
	}

	return sol, nil
}

// bestFit returns the airframe with the fewest seats still holding size.
func bestFit(fleet []HelicopterSpec, size int) (HelicopterSpec, bool) {
	best := HelicopterSpec{}
	found := false
	for _, h := range fleet {
		if h.Seats < size {
			continue
		}
		if !found || h.Seats < best.Seats {
			best = h
			found = true
		}
	}
	return best, found
}
