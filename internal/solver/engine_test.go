package solver

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroSlackScenario(t *testing.T) *Scenario {
	t.Helper()
	sc, err := NewScenario(
		[]Student{{Name: "S1", Target: 2}, {Name: "S2", Target: 2}, {Name: "S3", Target: 2}},
		[]Interviewer{{Name: "P"}, {Name: "V", Virtual: true}},
		Quotas{NumSlots: 4, BreaksMin: 1, BreaksMax: 1, MinVirtualPerStudent: 1, MaxVirtualPerStudent: 1},
	)
	require.NoError(t, err)
	return sc
}

func TestSolveZeroSlackFeasible(t *testing.T) {
	sc := zeroSlackScenario(t)
	stats, err := Precheck(sc)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Capacity)
	assert.Equal(t, 6, stats.Demand)
	assert.Equal(t, 3, stats.VirtualCapacity)
	assert.Equal(t, 3, stats.VirtualDemand)

	engine := &Engine{Budget: 10 * time.Second, Seed: 7}
	result := engine.Solve(context.Background(), sc)
	require.Equal(t, StatusFeasible, result.Status)
	require.NotNil(t, result.Assignment)

	schedule := Extract(sc, result.Assignment)
	violations := Validate(ValidationInput{
		StudentRows:     schedule.StudentRows,
		InterviewerRows: schedule.InterviewerRows,
		Students:        sc.Students,
		Interviewers:    sc.Interviewers,
		Quotas:          sc.Quotas,
	})
	assert.Empty(t, violations)
}

func TestSolveHonoursAllInvariants(t *testing.T) {
	students := make([]Student, 8)
	for i := range students {
		students[i] = Student{Name: fmt.Sprintf("S%d", i+1), Target: 4}
	}
	interviewers := []Interviewer{
		{Name: "Alice"}, {Name: "Bob"}, {Name: "Carol"},
		{Name: "Remote-1", Virtual: true}, {Name: "Remote-2", Virtual: true},
	}
	sc, err := NewScenario(students, interviewers, Quotas{
		NumSlots: 10, BreaksMin: 1, BreaksMax: 2,
		MinVirtualPerStudent: 1, MaxVirtualPerStudent: 2,
	})
	require.NoError(t, err)

	engine := &Engine{Budget: 20 * time.Second, Seed: 42}
	result := engine.Solve(context.Background(), sc)
	require.Equal(t, StatusFeasible, result.Status)

	a := result.Assignment

	// exact targets and per-student no-repeat
	for s, student := range sc.Students {
		count := 0
		seen := map[int]bool{}
		virtual := 0
		for slot := 0; slot < sc.Quotas.NumSlots; slot++ {
			inv := a.StudentSlot[s][slot]
			if inv == -1 {
				continue
			}
			count++
			assert.False(t, seen[inv], "student %s meets interviewer %d twice", student.Name, inv)
			seen[inv] = true
			if sc.Interviewers[inv].Virtual {
				virtual++
			}
		}
		assert.Equal(t, student.Target, count, "student %s target", student.Name)
		assert.GreaterOrEqual(t, virtual, sc.Quotas.MinVirtualPerStudent)
		assert.LessOrEqual(t, virtual, sc.Quotas.MaxVirtualPerStudent)
	}

	// per-slot interviewer exclusivity, cross-checked between both views
	for slot := 0; slot < sc.Quotas.NumSlots; slot++ {
		for i := range sc.Interviewers {
			occ := a.InterviewerSlot[i][slot]
			if occ != -1 {
				assert.Equal(t, i, a.StudentSlot[occ][slot])
			}
		}
	}

	// interviewer work fits within num_slots minus minimum breaks
	for i := range sc.Interviewers {
		work := 0
		for slot := 0; slot < sc.Quotas.NumSlots; slot++ {
			if a.InterviewerSlot[i][slot] != -1 {
				work++
			}
		}
		assert.LessOrEqual(t, work, sc.Quotas.NumSlots-sc.Quotas.BreaksMin)
	}
}

func TestSolveProvesInfeasibility(t *testing.T) {
	// one interviewer cannot meet the same student twice, so a target of
	// two is unsatisfiable even though raw capacity allows it
	sc, err := NewScenario(
		[]Student{{Name: "S1", Target: 2}},
		[]Interviewer{{Name: "P"}},
		Quotas{NumSlots: 3},
	)
	require.NoError(t, err)

	_, err = Precheck(sc)
	require.NoError(t, err)

	result := (&Engine{Budget: 5 * time.Second}).Solve(context.Background(), sc)
	assert.Equal(t, StatusInfeasible, result.Status)
	assert.Nil(t, result.Assignment)
}

func TestSolveTimeoutReturnsWellFormedStatus(t *testing.T) {
	// demand far above the deadline-poll stride guarantees the budget is
	// inspected before the search can finish
	students := make([]Student, 60)
	for i := range students {
		students[i] = Student{Name: fmt.Sprintf("S%d", i+1), Target: 10}
	}
	interviewers := make([]Interviewer, 60)
	for i := range interviewers {
		interviewers[i] = Interviewer{Name: fmt.Sprintf("I%d", i+1)}
	}
	sc, err := NewScenario(students, interviewers, Quotas{NumSlots: 12})
	require.NoError(t, err)

	result := (&Engine{Budget: time.Nanosecond}).Solve(context.Background(), sc)
	assert.Equal(t, StatusTimeout, result.Status)
	assert.Nil(t, result.Assignment)
}

func TestSolveSeedReproducible(t *testing.T) {
	first := (&Engine{Budget: 10 * time.Second, Seed: 99}).Solve(context.Background(), zeroSlackScenario(t))
	second := (&Engine{Budget: 10 * time.Second, Seed: 99}).Solve(context.Background(), zeroSlackScenario(t))
	require.Equal(t, StatusFeasible, first.Status)
	require.Equal(t, StatusFeasible, second.Status)
	assert.Equal(t, first.Assignment, second.Assignment)
}

func TestSolveRespectsContextDeadline(t *testing.T) {
	students := make([]Student, 60)
	for i := range students {
		students[i] = Student{Name: fmt.Sprintf("S%d", i+1), Target: 10}
	}
	interviewers := make([]Interviewer, 60)
	for i := range interviewers {
		interviewers[i] = Interviewer{Name: fmt.Sprintf("I%d", i+1)}
	}
	sc, err := NewScenario(students, interviewers, Quotas{NumSlots: 12})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := (&Engine{Budget: time.Minute}).Solve(ctx, sc)
	assert.Equal(t, StatusTimeout, result.Status)
}

func TestSolveLastInterviewMeetsVirtualMinimum(t *testing.T) {
	sc, err := NewScenario(
		[]Student{{Name: "S1", Target: 1}},
		[]Interviewer{{Name: "P"}, {Name: "V", Virtual: true}},
		Quotas{NumSlots: 2, MinVirtualPerStudent: 1, MaxVirtualPerStudent: 1},
	)
	require.NoError(t, err)

	result := (&Engine{Budget: 10 * time.Second, Seed: 1}).Solve(context.Background(), sc)
	require.Equal(t, StatusFeasible, result.Status)
	require.NotNil(t, result.Assignment)

	virtual := 0
	for slot := 0; slot < sc.Quotas.NumSlots; slot++ {
		if inv := result.Assignment.StudentSlot[0][slot]; inv != -1 {
			require.True(t, sc.Interviewers[inv].Virtual, "only interview must be virtual")
			virtual++
		}
	}
	assert.Equal(t, 1, virtual)

	schedule := Extract(sc, result.Assignment)
	violations := Validate(ValidationInput{
		StudentRows:     schedule.StudentRows,
		InterviewerRows: schedule.InterviewerRows,
		Students:        sc.Students,
		Interviewers:    sc.Interviewers,
		Quotas:          sc.Quotas,
	})
	assert.Empty(t, violations)
}

func TestSolveRejectsTargetBelowVirtualMinimum(t *testing.T) {
	sc, err := NewScenario(
		[]Student{{Name: "S1", Target: 0}},
		[]Interviewer{{Name: "V", Virtual: true}},
		Quotas{NumSlots: 2, MinVirtualPerStudent: 1, MaxVirtualPerStudent: 1},
	)
	require.NoError(t, err)

	result := (&Engine{Budget: 10 * time.Second, Seed: 1}).Solve(context.Background(), sc)
	assert.Equal(t, StatusInfeasible, result.Status)
	assert.Nil(t, result.Assignment)
}
