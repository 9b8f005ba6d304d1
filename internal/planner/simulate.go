package planner

// activeProject tracks a producing project during simulation.
type activeProject struct {
	project  int
	startDay int
}

// simulate runs the day loop over a fixed sequence: each entry activates on
// its start day, produces along its curve, and retires once the effective
// window is exhausted.
func (p *Planner) simulate(sequence []SequenceEntry) *Result {
	// Map sequence entries back to portfolio indices by name; sequences are
	// built from this portfolio so every name resolves.
	byName := make(map[string]int, len(p.portfolio.Projects))
	for i, pr := range p.portfolio.Projects {
		byName[pr.Name] = i
	}

	var active []activeProject
	next := 0
	production := make([]float64, p.horizonDays)

	for day := 0; day < p.horizonDays; day++ {
		for next < len(sequence) && sequence[next].StartDay <= day {
			active = append(active, activeProject{project: byName[sequence[next].Name], startDay: day})
			next++
		}
		active = p.retireExhausted(active, day)
		production[day] = p.dailyOutput(active, day)
	}

	return &Result{
		Sequence:   sequence,
		Production: production,
		Total:      sum(production),
	}
}

// runIncremental builds the sequence as the simulation advances: the opening
// projects are chosen by the first-project strategy, then at most one new
// project starts per day, chosen against the previous day's output.
func (p *Planner) runIncremental(strategy string) (*Result, error) {
	evals := 0

	first, err := p.firstProjects(strategy, &evals)
	if err != nil {
		return nil, err
	}

	used := make([]bool, len(p.portfolio.Projects))
	var sequence []SequenceEntry
	var active []activeProject

	for _, i := range first {
		used[i] = true
		sequence = append(sequence, p.entry(i, 0))
		active = append(active, activeProject{project: i, startDay: 0})
	}

	remaining := len(p.portfolio.Projects) - len(first)
	production := make([]float64, p.horizonDays)
	production[0] = p.dailyOutput(active, 0)

	calls := 0
	for day := 1; day < p.horizonDays; day++ {
		if remaining > 0 {
			i := p.nextProject(strategy, day, production[day-1], used, calls, &evals)
			calls++
			if i >= 0 {
				used[i] = true
				remaining--
				sequence = append(sequence, p.entry(i, day))
				active = append(active, activeProject{project: i, startDay: day})
			}
		}
		active = p.retireExhausted(active, day)
		production[day] = p.dailyOutput(active, day)
	}

	return &Result{
		Sequence:    sequence,
		Production:  production,
		Total:       sum(production),
		Evaluations: evals,
	}, nil
}

func (p *Planner) retireExhausted(active []activeProject, day int) []activeProject {
	kept := active[:0]
	for _, a := range active {
		if day-a.startDay <= p.portfolio.Projects[a.project].Profile.LifespanDays() {
			kept = append(kept, a)
		}
	}
	return kept
}

func (p *Planner) dailyOutput(active []activeProject, day int) float64 {
	out := 0.0
	for _, a := range active {
		out += p.portfolio.Projects[a.project].Profile.Rate(float64(day - a.startDay))
	}
	return out
}

func sum(xs []float64) float64 {
	t := 0.0
	for _, x := range xs {
		t += x
	}
	return t
}
