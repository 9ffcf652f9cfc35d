package solver

import "errors"

// Precheck sentinels. The service layer maps these onto its typed API
// errors; inside the package they stay plain so the core has no HTTP
// awareness.
var (
	ErrDemandExceedsCapacity        = errors.New("total demand exceeds best-case capacity")
	ErrVirtualDemandExceedsCapacity = errors.New("virtual demand exceeds best-case virtual capacity")
)

// CapacityStats is the arithmetic summary computed by the precheck and
// reported back with every solve, successful or not.
type CapacityStats struct {
	Capacity        int `json:"capacity"`
	Demand          int `json:"demand"`
	VirtualCapacity int `json:"virtual_capacity"`
	VirtualDemand   int `json:"virtual_demand"`
}

// CapacityStats derives the best-case capacity figures for the scenario.
// Working capacity assumes every interviewer takes only the minimum
// number of breaks.
func (sc *Scenario) CapacityStats() CapacityStats {
	working := sc.WorkingSlots()
	return CapacityStats{
		Capacity:        len(sc.Interviewers) * working,
		Demand:          sc.Demand(),
		VirtualCapacity: sc.VirtualCount() * working,
		VirtualDemand:   len(sc.Students) * sc.Quotas.MinVirtualPerStudent,
	}
}

// Precheck runs the cheap necessary-condition feasibility test. It never
// proves feasibility; a passing scenario can still be unsolvable, which
// the search engine will then establish.
func Precheck(sc *Scenario) (CapacityStats, error) {
	stats := sc.CapacityStats()
	if stats.Demand > stats.Capacity {
		return stats, ErrDemandExceedsCapacity
	}
	if stats.VirtualDemand > stats.VirtualCapacity {
		return stats, ErrVirtualDemandExceedsCapacity
	}
	return stats, nil
}
