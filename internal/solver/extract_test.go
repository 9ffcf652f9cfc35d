package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableLetter(t *testing.T) {
	cases := map[int]string{
		0:  "A",
		1:  "B",
		25: "Z",
		26: "AA",
		27: "AB",
		51: "AZ",
		52: "BA",
	}
	for index, want := range cases {
		assert.Equal(t, want, TableLetter(index))
	}
}

func TestDisplayIDsFirstSeenOrder(t *testing.T) {
	ids := DisplayIDs([]Interviewer{
		{Name: "Acme"},
		{Name: "Remote-X", Virtual: true},
		{Name: "Globex"},
		{Name: "Remote-Y", Virtual: true},
	})
	assert.Equal(t, "A", ids["Acme"])
	assert.Equal(t, "B", ids["Globex"])
	assert.Equal(t, "Z-1", ids["Remote-X"])
	assert.Equal(t, "Z-2", ids["Remote-Y"])
}

func TestExtractLabelsBreaksUpToMaximum(t *testing.T) {
	sc, err := NewScenario(
		[]Student{{Name: "S1", Target: 1}},
		[]Interviewer{{Name: "A"}},
		Quotas{NumSlots: 4, BreaksMin: 1, BreaksMax: 2},
	)
	require.NoError(t, err)

	a := &Assignment{
		StudentSlot:     [][]int{{-1, 0, -1, -1}},
		InterviewerSlot: [][]int{{-1, 0, -1, -1}},
	}
	schedule := Extract(sc, a)

	assert.Equal(t, []string{"", "A", "", ""}, schedule.StudentRows["S1"])
	// three idle slots but only two may become breaks, earliest first
	assert.Equal(t, []string{BreakMarker, "S1", BreakMarker, ""}, schedule.InterviewerRows["A"])

	require.Len(t, schedule.Summaries, 1)
	s := schedule.Summaries[0]
	assert.Equal(t, "A", s.ID)
	assert.False(t, s.Virtual)
	assert.Equal(t, []int{1, 3}, s.BreakSlots)
}

func TestExtractSortsSummariesByID(t *testing.T) {
	sc, err := NewScenario(
		[]Student{{Name: "S1", Target: 2}},
		[]Interviewer{{Name: "Remote", Virtual: true}, {Name: "Desk"}},
		Quotas{NumSlots: 2, MinVirtualPerStudent: 1, MaxVirtualPerStudent: 1},
	)
	require.NoError(t, err)

	a := &Assignment{
		StudentSlot: [][]int{{0, 1}},
		InterviewerSlot: [][]int{
			{0, -1},
			{-1, 0},
		},
	}
	schedule := Extract(sc, a)

	require.Len(t, schedule.Summaries, 2)
	assert.Equal(t, "A", schedule.Summaries[0].ID)
	assert.Equal(t, "Desk", schedule.Summaries[0].Name)
	assert.Equal(t, "Z-1", schedule.Summaries[1].ID)
	assert.True(t, schedule.Summaries[1].Virtual)
}
