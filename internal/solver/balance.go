package solver

import "math/rand"

// Reduction records one auto-balance decrement, in the order applied.
type Reduction struct {
	Student string `json:"student"`
	From    int    `json:"from"`
	To      int    `json:"to"`
}

// AutoBalance lowers student targets until aggregate demand fits the
// best-case capacity. Each step finds the students tied at the current
// maximum target (targets of 1 or less are never reduced) and picks one
// uniformly with the seeded generator. The same scenario and seed always
// yield the same reduction sequence.
//
// The returned remaining value is the deficit left over when no
// reducible student was available; callers must surface it by re-running
// the precheck rather than ignoring it.
func AutoBalance(sc *Scenario, seed int64) (reductions []Reduction, remaining int) {
	stats := sc.CapacityStats()
	deficit := stats.Demand - stats.Capacity
	if deficit <= 0 {
		return nil, 0
	}

	rng := rand.New(rand.NewSource(seed))
	for step := 0; step < deficit; step++ {
		maxTarget := 0
		for _, s := range sc.Students {
			if s.Target > 1 && s.Target > maxTarget {
				maxTarget = s.Target
			}
		}
		if maxTarget == 0 {
			return reductions, deficit - step
		}

		var tied []int
		for idx, s := range sc.Students {
			if s.Target == maxTarget {
				tied = append(tied, idx)
			}
		}

		victim := tied[rng.Intn(len(tied))]
		sc.Students[victim].Target--
		reductions = append(reductions, Reduction{
			Student: sc.Students[victim].Name,
			From:    maxTarget,
			To:      maxTarget - 1,
		})
	}
	return reductions, 0
}
