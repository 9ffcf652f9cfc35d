package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScenarioRejectsBadInput(t *testing.T) {
	students := []Student{{Name: "S1", Target: 2}}
	interviewers := []Interviewer{{Name: "A"}}
	okQuotas := Quotas{NumSlots: 4, BreaksMin: 1, BreaksMax: 2}

	cases := []struct {
		name         string
		students     []Student
		interviewers []Interviewer
		quotas       Quotas
	}{
		{"zero slots", students, interviewers, Quotas{}},
		{"inverted breaks range", students, interviewers, Quotas{NumSlots: 4, BreaksMin: 3, BreaksMax: 1}},
		{"breaks exceed slots", students, interviewers, Quotas{NumSlots: 2, BreaksMin: 3, BreaksMax: 3}},
		{"inverted virtual range", students, interviewers, Quotas{NumSlots: 4, MinVirtualPerStudent: 2, MaxVirtualPerStudent: 1}},
		{"no students", nil, interviewers, okQuotas},
		{"no interviewers", students, nil, okQuotas},
		{"unnamed student", []Student{{Target: 1}}, interviewers, okQuotas},
		{"negative target", []Student{{Name: "S1", Target: -1}}, interviewers, okQuotas},
		{"duplicate student", []Student{{Name: "S1", Target: 1}, {Name: "S1", Target: 1}}, interviewers, okQuotas},
		{"duplicate interviewer", students, []Interviewer{{Name: "A"}, {Name: "A"}}, okQuotas},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewScenario(tc.students, tc.interviewers, tc.quotas)
			assert.Error(t, err)
		})
	}
}

func TestScenarioDerivedFigures(t *testing.T) {
	sc, err := NewScenario(
		[]Student{{Name: "S1", Target: 3}, {Name: "S2", Target: 2}},
		[]Interviewer{{Name: "A"}, {Name: "B"}, {Name: "V1", Virtual: true}},
		Quotas{NumSlots: 5, BreaksMin: 1, BreaksMax: 2, MinVirtualPerStudent: 1, MaxVirtualPerStudent: 1},
	)
	require.NoError(t, err)

	assert.Equal(t, 2*5*3, sc.VarCount())
	assert.Equal(t, 5, sc.Demand())
	assert.Equal(t, 4, sc.WorkingSlots())
	assert.Equal(t, 1, sc.VirtualCount())

	idx, ok := sc.StudentIndex("S2")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	_, ok = sc.StudentIndex("nobody")
	assert.False(t, ok)

	idx, ok = sc.InterviewerIndex("V1")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestPrecheckDetectsShortfalls(t *testing.T) {
	sc, err := NewScenario(
		[]Student{{Name: "S1", Target: 4}, {Name: "S2", Target: 4}},
		[]Interviewer{{Name: "A"}},
		Quotas{NumSlots: 5, BreaksMin: 1, BreaksMax: 1},
	)
	require.NoError(t, err)

	stats, err := Precheck(sc)
	assert.ErrorIs(t, err, ErrDemandExceedsCapacity)
	assert.Equal(t, 4, stats.Capacity)
	assert.Equal(t, 8, stats.Demand)
}

func TestPrecheckDetectsVirtualShortfall(t *testing.T) {
	// aggregate capacity is fine but there is no virtual interviewer to
	// satisfy the per-student virtual minimum
	sc, err := NewScenario(
		[]Student{{Name: "S1", Target: 1}},
		[]Interviewer{{Name: "A"}, {Name: "B"}},
		Quotas{NumSlots: 3, MinVirtualPerStudent: 1, MaxVirtualPerStudent: 1},
	)
	require.NoError(t, err)

	stats, err := Precheck(sc)
	assert.ErrorIs(t, err, ErrVirtualDemandExceedsCapacity)
	assert.Zero(t, stats.VirtualCapacity)
	assert.Equal(t, 1, stats.VirtualDemand)
}
