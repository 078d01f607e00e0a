package replacement

import "fmt"

func (s *Solver) fixedCount(sd side) (Status, error) {
	for _, pos := range sd.searchable {
		n, ok := s.params.Counts[pos]
		if !ok {
			return "", fmt.Errorf("%w: roster count for %s", ErrMissingParameter, pos)
		}
		s.setCount(pos, n)
	}
	return StatusConverged, nil
}

func (s *Solver) fixedThreshold(sd side) (Status, error) {
	for _, pos := range sd.searchable {
		rate, ok := s.params.Thresholds[pos]
		if !ok {
			return "", fmt.Errorf("%w: replacement rate for %s", ErrMissingParameter, pos)
		}
		s.setRate(pos, rate)
	}
	return StatusConverged, nil
}
