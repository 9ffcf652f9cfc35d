package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput(t *testing.T) ValidationInput {
	t.Helper()
	return ValidationInput{
		Students: []Student{{Name: "S1", Target: 2}, {Name: "S2", Target: 1}},
		Interviewers: []Interviewer{
			{Name: "A"},
			{Name: "V", Virtual: true},
		},
		Quotas: Quotas{NumSlots: 3, BreaksMin: 1, BreaksMax: 2, MinVirtualPerStudent: 0, MaxVirtualPerStudent: 1},
		StudentRows: map[string][]string{
			"S1": {"A", "V", ""},
			"S2": {"", "A", ""},
		},
		InterviewerRows: map[string][]string{
			"A": {"S1", "S2", BreakMarker},
			"V": {BreakMarker, "S1", BreakMarker},
		},
	}
}

func TestValidateAcceptsConsistentSchedule(t *testing.T) {
	assert.Empty(t, Validate(validInput(t)))
}

func TestValidateFlagsTargetMismatch(t *testing.T) {
	in := validInput(t)
	in.StudentRows["S1"] = []string{"A", "", ""}
	in.InterviewerRows = nil

	errs := Validate(in)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs, "S1: got 1 interviews, expected 2")
}

func TestValidateFlagsRepeatMeeting(t *testing.T) {
	in := validInput(t)
	in.StudentRows["S1"] = []string{"A", "A", ""}
	in.InterviewerRows = nil

	errs := Validate(in)
	assert.Contains(t, errs, "S1: meets A 2 times")
}

func TestValidateFlagsVirtualRange(t *testing.T) {
	in := validInput(t)
	in.Quotas.MinVirtualPerStudent = 1
	in.InterviewerRows = nil

	errs := Validate(in)
	assert.Contains(t, errs, "S2: 0 virtual interviews, need between 1 and 1")
}

func TestValidateFlagsDoubleBooking(t *testing.T) {
	in := validInput(t)
	in.StudentRows["S2"] = []string{"A", "", ""}
	in.InterviewerRows = nil

	errs := Validate(in)
	assert.Contains(t, errs, "slot #1: interviewer A double-booked")
}

func TestValidateFlagsUnknownNames(t *testing.T) {
	in := validInput(t)
	in.StudentRows["S2"] = []string{"", "Ghost", ""}
	in.StudentRows["Stranger"] = []string{"", "", ""}
	in.InterviewerRows = nil

	errs := Validate(in)
	assert.Contains(t, errs, `S2: assigned to unknown interviewer "Ghost"`)
	assert.Contains(t, errs, "Stranger: not part of this event")
}

func TestValidateFlagsMissingAndMisSizedRows(t *testing.T) {
	in := validInput(t)
	delete(in.StudentRows, "S2")
	in.StudentRows["S1"] = []string{"A", "V"}
	in.InterviewerRows = nil

	errs := Validate(in)
	assert.Contains(t, errs, "S2: missing from schedule")
	assert.Contains(t, errs, "S1: schedule row has 2 slots, expected 3")
}

func TestValidateFlagsBreakCountOutOfRange(t *testing.T) {
	in := validInput(t)
	in.InterviewerRows["A"] = []string{"S1", "S2", ""}

	errs := Validate(in)
	assert.Contains(t, errs, "A: 0 breaks, need between 1 and 2")
}

func TestValidateFlagsViewDisagreement(t *testing.T) {
	in := validInput(t)
	in.InterviewerRows["A"] = []string{"S2", "S2", BreakMarker}

	errs := Validate(in)
	assert.Contains(t, errs, "A: slot #1 lists S2 but the student schedule disagrees")
}
