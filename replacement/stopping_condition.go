package replacement

const IterationsCutoff = 5000

type Status string

const (
	StatusConverged Status = "converged"
	// StatusCutoff means the iteration cap stopped the search.
	StatusCutoff Status = "iteration-cutoff"
	// StatusExhausted means no position could take another player.
	StatusExhausted Status = "population-exhausted"
	// StatusCycle means the search started undoing its own moves.
	StatusCycle Status = "cycle"
)

func (s *Solver) maxIterations() int {
	if s.params.MaxIterations > 0 {
		return s.params.MaxIterations
	}
	return IterationsCutoff
}

// worse keeps the least healthy status seen across sides.
func worse(a, b Status) Status {
	rank := map[Status]int{StatusConverged: 0, StatusCycle: 1, StatusExhausted: 2, StatusCutoff: 3}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
