package planner

import "sort"

// buildOrdered produces the deterministic execution sequence:
//
//   - projects whose spud year precedes the period start drill before day
//     zero and begin producing immediately;
//   - the remaining projects start on successive days after the period opens;
//   - within each group, longer drilling duration goes first, ties broken by
//     higher total production.
func (p *Planner) buildOrdered() []SequenceEntry {
	startYear := p.startDate.Year()

	var before, after []int
	for i, pr := range p.portfolio.Projects {
		if pr.SpudYear < startYear {
			before = append(before, i)
		} else {
			after = append(after, i)
		}
	}

	byDrillThenValue := func(idx []int) {
		sort.SliceStable(idx, func(a, b int) bool {
			da, db := p.portfolio.Projects[idx[a]].DrillDays, p.portfolio.Projects[idx[b]].DrillDays
			if da != db {
				return da > db
			}
			return p.portfolio.ProjectTotal(idx[a]) > p.portfolio.ProjectTotal(idx[b])
		})
	}
	byDrillThenValue(before)
	byDrillThenValue(after)

	sequence := make([]SequenceEntry, 0, len(p.portfolio.Projects))
	for _, i := range before {
		sequence = append(sequence, p.entry(i, 0))
	}
	for n, i := range after {
		sequence = append(sequence, p.entry(i, n+1))
	}

	return sequence
}
