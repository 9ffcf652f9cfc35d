package solver

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Status is the terminal state of one search run.
type Status int

const (
	// StatusFeasible means a satisfying assignment was found. There is no
	// objective function, so feasible and optimal are the same outcome.
	StatusFeasible Status = iota
	// StatusInfeasible means the search exhausted the space and proved
	// that no satisfying assignment exists.
	StatusInfeasible
	// StatusTimeout means the wall-clock budget ran out with feasibility
	// still unknown.
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Assignment is a satisfying solution in index-addressed form.
type Assignment struct {
	// StudentSlot[s][t] holds the interviewer index, or -1 when the
	// student waits at slot t.
	StudentSlot [][]int
	// InterviewerSlot[i][t] holds the student index, or -1 when the
	// interviewer is idle at slot t.
	InterviewerSlot [][]int
}

// Result reports the outcome of a solve run.
type Result struct {
	Status     Status
	Assignment *Assignment
	Nodes      int64
	Elapsed    time.Duration
}

// Engine runs propagation + backtracking search over a scenario. A zero
// value is usable; Seed only influences exploration order, so the same
// seed reproduces the same schedule within one engine version.
type Engine struct {
	Budget time.Duration
	Seed   int64
	Logger *zap.Logger
}

const (
	defaultBudget = 60 * time.Second
	// deadline is polled once per stride nodes to keep the hot loop cheap
	deadlineStride = 512
)

// Solve searches for any satisfying assignment. The context deadline, if
// earlier than the budget, bounds the search the same way the budget does.
func (e *Engine) Solve(ctx context.Context, sc *Scenario) *Result {
	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	budget := e.Budget
	if budget <= 0 {
		budget = defaultBudget
	}
	start := time.Now()
	deadline := start.Add(budget)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	// a student whose target is below the virtual minimum can never meet
	// the virtual quota, so the scenario is unsatisfiable outright
	if minV := sc.Quotas.MinVirtualPerStudent; minV > 0 {
		for _, s := range sc.Students {
			if s.Target < minV {
				logger.Debug("solver scenario unsatisfiable",
					zap.String("student", s.Name),
					zap.Int("target", s.Target),
					zap.Int("min_virtual", minV),
				)
				return &Result{Status: StatusInfeasible, Elapsed: time.Since(start)}
			}
		}
	}

	st := newSearchState(ctx, sc, e.Seed, deadline)
	found := st.search()
	elapsed := time.Since(start)

	result := &Result{Nodes: st.nodes, Elapsed: elapsed}
	switch {
	case found:
		result.Status = StatusFeasible
		result.Assignment = st.snapshot()
	case st.timedOut:
		result.Status = StatusTimeout
	default:
		result.Status = StatusInfeasible
	}

	logger.Debug("solver search finished",
		zap.String("status", result.Status.String()),
		zap.Int64("nodes", st.nodes),
		zap.Duration("elapsed", elapsed),
	)
	return result
}

// pair is one (slot, interviewer) placement candidate. ord is the position
// in the engine's seeded total order over pairs; per-student picks are
// forced to be strictly increasing in ord, which removes the permutation
// symmetry between a student's interchangeable interviews.
type pair struct {
	slot, inv, ord int
}

type searchState struct {
	sc      *Scenario
	ctx     context.Context
	numS    int
	numT    int
	numI    int
	workCap int

	perm []int // seeded interviewer visit order

	studentSlot [][]int  // numS x numT: interviewer idx or -1
	occupant    [][]int  // numI x numT: student idx or -1
	met         [][]bool // numS x numI
	assigned    []int    // interviews placed per student
	virtCount   []int    // virtual interviews placed per student
	work        []int    // interviews placed per interviewer

	remainingDemand int
	capLeft         int
	virtCapLeft     int
	virtNeedLeft    int

	minNextPair []int // per student symmetry-breaking floor

	deadline time.Time
	nodes    int64
	timedOut bool
}

func newSearchState(ctx context.Context, sc *Scenario, seed int64, deadline time.Time) *searchState {
	numS := len(sc.Students)
	numT := sc.Quotas.NumSlots
	numI := len(sc.Interviewers)

	st := &searchState{
		sc:          sc,
		ctx:         ctx,
		numS:        numS,
		numT:        numT,
		numI:        numI,
		workCap:     sc.WorkingSlots(),
		perm:        rand.New(rand.NewSource(seed)).Perm(numI),
		studentSlot: make([][]int, numS),
		occupant:    make([][]int, numI),
		met:         make([][]bool, numS),
		assigned:    make([]int, numS),
		virtCount:   make([]int, numS),
		work:        make([]int, numI),
		minNextPair: make([]int, numS),
		deadline:    deadline,
	}
	for s := 0; s < numS; s++ {
		st.studentSlot[s] = make([]int, numT)
		for t := range st.studentSlot[s] {
			st.studentSlot[s][t] = -1
		}
		st.met[s] = make([]bool, numI)
		st.remainingDemand += sc.Students[s].Target
	}
	for i := 0; i < numI; i++ {
		st.occupant[i] = make([]int, numT)
		for t := range st.occupant[i] {
			st.occupant[i][t] = -1
		}
	}
	st.capLeft = numI * st.workCap
	st.virtCapLeft = sc.VirtualCount() * st.workCap
	if minV := sc.Quotas.MinVirtualPerStudent; minV > 0 {
		st.virtNeedLeft = numS * minV
	}
	return st
}

// search looks for an assignment completing every student's target. It is
// chronological backtracking with fewest-candidates-first student
// selection and eager arithmetic pruning, which together implement the
// propagation the declarative model would perform.
func (st *searchState) search() bool {
	if st.remainingDemand == 0 {
		return st.virtualMinimaMet()
	}

	st.nodes++
	if st.nodes%deadlineStride == 0 {
		if time.Now().After(st.deadline) || st.ctx.Err() != nil {
			st.timedOut = true
			return false
		}
	}

	// aggregate bounds: demand must fit the remaining working capacity,
	// and outstanding virtual minima must fit virtual capacity
	if st.remainingDemand > st.capLeft {
		return false
	}
	if st.virtNeedLeft > st.virtCapLeft {
		return false
	}

	best := -1
	var bestCands []pair
	for s := 0; s < st.numS; s++ {
		need := st.sc.Students[s].Target - st.assigned[s]
		if need == 0 {
			continue
		}
		cands := st.candidates(s)
		if !st.viable(s, need, cands) {
			return false
		}
		if best == -1 || len(cands) < len(bestCands) {
			best = s
			bestCands = cands
		}
	}
	if best == -1 {
		return st.virtualMinimaMet()
	}

	for _, p := range bestCands {
		st.place(best, p)
		savedFloor := st.minNextPair[best]
		st.minNextPair[best] = p.ord + 1

		if st.search() {
			return true
		}

		st.minNextPair[best] = savedFloor
		st.unplace(best, p)
		if st.timedOut {
			return false
		}
	}
	return false
}

// candidates enumerates the open (slot, interviewer) pairs for the
// student's next interview, in seeded order, honouring the per-student
// ordinal floor. When every remaining interview is needed to reach the
// virtual minimum, physical interviewers drop out of the set so a
// physical pick can never crowd out the quota.
func (st *searchState) candidates(s int) []pair {
	maxV := st.sc.Quotas.MaxVirtualPerStudent
	need := st.sc.Students[s].Target - st.assigned[s]
	mustVirtual := st.sc.Quotas.MinVirtualPerStudent-st.virtCount[s] >= need
	floor := st.minNextPair[s]
	var out []pair
	for t := 0; t < st.numT; t++ {
		if st.studentSlot[s][t] != -1 {
			continue
		}
		base := t * st.numI
		if base+st.numI <= floor {
			continue
		}
		for pos := 0; pos < st.numI; pos++ {
			ord := base + pos
			if ord < floor {
				continue
			}
			i := st.perm[pos]
			if st.occupant[i][t] != -1 || st.met[s][i] || st.work[i] >= st.workCap {
				continue
			}
			if st.sc.Interviewers[i].Virtual {
				if st.virtCount[s] >= maxV {
					continue
				}
			} else if mustVirtual {
				continue
			}
			out = append(out, pair{slot: t, inv: i, ord: ord})
		}
	}
	return out
}

// viable checks whether the candidate set can still cover the student's
// remaining interviews: enough pairs, enough distinct slots, enough
// distinct interviewers, enough distinct virtual interviewers for the
// virtual minimum, and enough physical interviewers once the virtual
// maximum is saturated.
func (st *searchState) viable(s, need int, cands []pair) bool {
	if len(cands) < need {
		return false
	}
	needVirtual := st.sc.Quotas.MinVirtualPerStudent - st.virtCount[s]
	if needVirtual > need {
		return false
	}

	slotSeen := make(map[int]struct{}, len(cands))
	invSeen := make(map[int]struct{}, len(cands))
	virtuals, physicals := 0, 0
	for _, p := range cands {
		slotSeen[p.slot] = struct{}{}
		if _, ok := invSeen[p.inv]; !ok {
			invSeen[p.inv] = struct{}{}
			if st.sc.Interviewers[p.inv].Virtual {
				virtuals++
			} else {
				physicals++
			}
		}
	}
	if len(slotSeen) < need || len(invSeen) < need {
		return false
	}
	if needVirtual > 0 && virtuals < needVirtual {
		return false
	}
	needPhysical := need - (st.sc.Quotas.MaxVirtualPerStudent - st.virtCount[s])
	if needPhysical > 0 && physicals < needPhysical {
		return false
	}
	return true
}

// virtualMinimaMet confirms every student reached the virtual quota
// floor. Candidate filtering keeps this true along any completed branch;
// the check guards the success paths independently of that filtering.
func (st *searchState) virtualMinimaMet() bool {
	minV := st.sc.Quotas.MinVirtualPerStudent
	if minV == 0 {
		return true
	}
	for s := 0; s < st.numS; s++ {
		if st.virtCount[s] < minV {
			return false
		}
	}
	return true
}

func (st *searchState) place(s int, p pair) {
	st.studentSlot[s][p.slot] = p.inv
	st.occupant[p.inv][p.slot] = s
	st.met[s][p.inv] = true
	st.assigned[s]++
	st.work[p.inv]++
	st.remainingDemand--
	st.capLeft--
	if st.sc.Interviewers[p.inv].Virtual {
		st.virtCapLeft--
		if st.virtCount[s] < st.sc.Quotas.MinVirtualPerStudent {
			st.virtNeedLeft--
		}
		st.virtCount[s]++
	}
}

func (st *searchState) unplace(s int, p pair) {
	st.studentSlot[s][p.slot] = -1
	st.occupant[p.inv][p.slot] = -1
	st.met[s][p.inv] = false
	st.assigned[s]--
	st.work[p.inv]--
	st.remainingDemand++
	st.capLeft++
	if st.sc.Interviewers[p.inv].Virtual {
		st.virtCapLeft++
		st.virtCount[s]--
		if st.virtCount[s] < st.sc.Quotas.MinVirtualPerStudent {
			st.virtNeedLeft++
		}
	}
}

func (st *searchState) snapshot() *Assignment {
	a := &Assignment{
		StudentSlot:     make([][]int, st.numS),
		InterviewerSlot: make([][]int, st.numI),
	}
	for s := 0; s < st.numS; s++ {
		a.StudentSlot[s] = append([]int(nil), st.studentSlot[s]...)
	}
	for i := 0; i < st.numI; i++ {
		a.InterviewerSlot[i] = append([]int(nil), st.occupant[i]...)
	}
	return a
}
