package planner

import "math"

// firstProjects picks the projects that open the plan on day zero. Only
// projects whose spud year precedes the period start qualify.
//
// balanced samples random combinations of the eligible projects and keeps the
// one whose summed peaks lands closest to the global mean; peak takes the
// single highest-peak project; random takes one uniformly.
func (p *Planner) firstProjects(strategy string, evals *int) ([]int, error) {
	startYear := p.startDate.Year()

	var eligible []int
	for i, pr := range p.portfolio.Projects {
		if pr.SpudYear < startYear {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleProject
	}

	switch strategy {
	case "balanced":
		best := []int{eligible[0]}
		bestGap := math.Inf(1)
		for it := 0; it < p.initialIters; it++ {
			combo := p.randomCombination(eligible)
			sum := 0.0
			for _, i := range combo {
				sum += p.portfolio.Peak(i)
			}
			*evals++
			if gap := math.Abs(sum - p.portfolio.GlobalMean); gap < bestGap {
				bestGap = gap
				best = combo
			}
		}
		return best, nil

	case "peak":
		best := eligible[0]
		for _, i := range eligible[1:] {
			*evals++
			if p.portfolio.Peak(i) > p.portfolio.Peak(best) {
				best = i
			}
		}
		return []int{best}, nil

	default: // random
		return []int{eligible[p.rng.Intn(len(eligible))]}, nil
	}
}

// nextProject picks the project to start on the given day from the unused
// set, honouring the spud constraint. Returns -1 when nothing is eligible.
//
// balanced picks the peak that best offsets the gap between the last daily
// output and the global mean; peak alternates between the highest and lowest
// remaining peak; random picks uniformly.
func (p *Planner) nextProject(strategy string, day int, lastProd float64, used []bool, call int, evals *int) int {
	var eligible []int
	for i := range p.portfolio.Projects {
		if !used[i] && p.eligibleAtDay(i, day) {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return -1
	}

	switch strategy {
	case "balanced":
		best := eligible[0]
		bestGap := math.Inf(1)
		for _, i := range eligible {
			*evals++
			gap := math.Abs(lastProd + p.portfolio.Peak(i) - p.portfolio.GlobalMean)
			if gap < bestGap {
				bestGap = gap
				best = i
			}
		}
		return best

	case "peak":
		wantHigh := call%2 == 0
		best := eligible[0]
		for _, i := range eligible[1:] {
			*evals++
			higher := p.portfolio.Peak(i) > p.portfolio.Peak(best)
			if higher == wantHigh {
				best = i
			}
		}
		return best

	default: // random
		return eligible[p.rng.Intn(len(eligible))]
	}
}

// randomCombination draws a non-empty random subset of the given indices.
func (p *Planner) randomCombination(pool []int) []int {
	k := 1 + p.rng.Intn(len(pool))
	perm := p.rng.Perm(len(pool))
	combo := make([]int, k)
	for j := 0; j < k; j++ {
		combo[j] = pool[perm[j]]
	}
	return combo
}
