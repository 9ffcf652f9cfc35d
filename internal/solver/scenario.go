// Package solver implements the interview assignment engine: feasibility
// prechecks, the auto-balance demand reducer, a propagation + backtracking
// search over the boolean assignment model, schedule extraction, and an
// independent schedule validator.
//
// The package is self-contained: it never touches HTTP, storage, or any
// shared state. Every solve builds its own scenario, random source, and
// search state, so concurrent requests are isolated by construction.
package solver

import (
	"fmt"
)

// Student is one interview candidate with an exact interview quota.
type Student struct {
	Name   string `json:"name"`
	Target int    `json:"target"`
}

// Interviewer is a physical table or a virtual (remote) interviewer.
type Interviewer struct {
	Name    string `json:"name"`
	Virtual bool   `json:"is_virtual"`
}

// Quotas carries the per-scenario scheduling configuration. Fixed-count
// policies are expressed as a degenerate range (min == max).
type Quotas struct {
	NumSlots             int `json:"num_slots"`
	BreaksMin            int `json:"breaks_min"`
	BreaksMax            int `json:"breaks_max"`
	MinVirtualPerStudent int `json:"min_virtual_per_student"`
	MaxVirtualPerStudent int `json:"max_virtual_per_student"`
}

// Scenario is an immutable solve input. Students and interviewers are
// addressed by their slice index everywhere inside the engine; the
// name lookup tables exist only for input resolution and reporting.
type Scenario struct {
	Students     []Student
	Interviewers []Interviewer
	Quotas       Quotas

	studentIndex     map[string]int
	interviewerIndex map[string]int
	virtualIdx       []int
}

// NewScenario validates the raw inputs and assigns stable integer indices.
func NewScenario(students []Student, interviewers []Interviewer, quotas Quotas) (*Scenario, error) {
	if quotas.NumSlots <= 0 {
		return nil, fmt.Errorf("num_slots must be positive, got %d", quotas.NumSlots)
	}
	if quotas.BreaksMin < 0 || quotas.BreaksMax < quotas.BreaksMin {
		return nil, fmt.Errorf("breaks range [%d,%d] is invalid", quotas.BreaksMin, quotas.BreaksMax)
	}
	if quotas.BreaksMin > quotas.NumSlots {
		return nil, fmt.Errorf("breaks_min %d exceeds num_slots %d", quotas.BreaksMin, quotas.NumSlots)
	}
	if quotas.MinVirtualPerStudent < 0 || quotas.MaxVirtualPerStudent < quotas.MinVirtualPerStudent {
		return nil, fmt.Errorf("virtual range [%d,%d] is invalid", quotas.MinVirtualPerStudent, quotas.MaxVirtualPerStudent)
	}
	if len(students) == 0 {
		return nil, fmt.Errorf("at least one student is required")
	}
	if len(interviewers) == 0 {
		return nil, fmt.Errorf("at least one interviewer is required")
	}

	sc := &Scenario{
		Students:         make([]Student, len(students)),
		Interviewers:     make([]Interviewer, len(interviewers)),
		Quotas:           quotas,
		studentIndex:     make(map[string]int, len(students)),
		interviewerIndex: make(map[string]int, len(interviewers)),
	}
	copy(sc.Students, students)
	copy(sc.Interviewers, interviewers)

	for idx, s := range sc.Students {
		if s.Name == "" {
			return nil, fmt.Errorf("student at position %d has no name", idx)
		}
		if s.Target < 0 {
			return nil, fmt.Errorf("student %s has negative target %d", s.Name, s.Target)
		}
		if _, dup := sc.studentIndex[s.Name]; dup {
			return nil, fmt.Errorf("duplicate student name %q", s.Name)
		}
		sc.studentIndex[s.Name] = idx
	}

	for idx, inv := range sc.Interviewers {
		if inv.Name == "" {
			return nil, fmt.Errorf("interviewer at position %d has no name", idx)
		}
		if _, dup := sc.interviewerIndex[inv.Name]; dup {
			return nil, fmt.Errorf("duplicate interviewer name %q", inv.Name)
		}
		sc.interviewerIndex[inv.Name] = idx
		if inv.Virtual {
			sc.virtualIdx = append(sc.virtualIdx, idx)
		}
	}

	return sc, nil
}

// VarCount reports the students x slots x interviewers indicator bound.
// Callers use it to reject oversized scenarios before a model is built.
func (sc *Scenario) VarCount() int {
	return len(sc.Students) * sc.Quotas.NumSlots * len(sc.Interviewers)
}

// Demand is the aggregate interview count requested by all students.
func (sc *Scenario) Demand() int {
	total := 0
	for _, s := range sc.Students {
		total += s.Target
	}
	return total
}

// WorkingSlots is the best-case number of interviewing slots per
// interviewer, assuming the minimum number of breaks.
func (sc *Scenario) WorkingSlots() int {
	return sc.Quotas.NumSlots - sc.Quotas.BreaksMin
}

// VirtualCount reports how many interviewers are virtual.
func (sc *Scenario) VirtualCount() int {
	return len(sc.virtualIdx)
}

// StudentIndex resolves a student name; reporting/path only, never used
// inside the search loop.
func (sc *Scenario) StudentIndex(name string) (int, bool) {
	idx, ok := sc.studentIndex[name]
	return idx, ok
}

// InterviewerIndex resolves an interviewer name.
func (sc *Scenario) InterviewerIndex(name string) (int, bool) {
	idx, ok := sc.interviewerIndex[name]
	return idx, ok
}
