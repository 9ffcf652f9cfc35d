package solver

import (
	"sort"
	"strconv"
)

// BreakMarker is the sentinel stored in interviewer rows for break slots.
const BreakMarker = "BREAK"

// InterviewerSummary pairs an interviewer with its display identifier and
// 1-based break slot positions.
type InterviewerSummary struct {
	Name       string `json:"name"`
	ID         string `json:"id"`
	Virtual    bool   `json:"is_virtual"`
	BreakSlots []int  `json:"break_slots"`
}

// Schedule is the solved assignment rendered into the per-student and
// per-interviewer views consumed by the API and exporters. It is a
// standalone value: mutating the scenario afterwards does not affect it.
type Schedule struct {
	// StudentRows maps student name to a num_slots-long sequence of
	// interviewer names; "" marks a waiting slot.
	StudentRows map[string][]string `json:"schedule_data"`
	// InterviewerRows maps interviewer name to a num_slots-long sequence
	// of student names, BreakMarker entries, or "".
	InterviewerRows map[string][]string `json:"interviewer_schedule"`
	// Summaries lists interviewers sorted by display ID; letters sort
	// before the "Z-" virtual identifiers.
	Summaries []InterviewerSummary `json:"interviewer_assignments"`
}

// TableLetter renders a zero-based physical interviewer ordinal as a
// spreadsheet-style letter sequence: A..Z, AA, AB, ...
func TableLetter(index int) string {
	letters := []byte{}
	n := index
	for {
		letters = append([]byte{byte('A' + n%26)}, letters...)
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return string(letters)
}

// DisplayIDs assigns identifiers by first-seen order: sequential letters
// for physical interviewers, "Z-1", "Z-2", ... for virtual ones.
func DisplayIDs(interviewers []Interviewer) map[string]string {
	ids := make(map[string]string, len(interviewers))
	physical, virtual := 0, 0
	for _, inv := range interviewers {
		if inv.Virtual {
			virtual++
			ids[inv.Name] = "Z-" + strconv.Itoa(virtual)
		} else {
			ids[inv.Name] = TableLetter(physical)
			physical++
		}
	}
	return ids
}

// Extract converts a satisfying assignment into its presentation views.
// Idle interviewer slots are labelled as breaks in slot order until the
// break maximum is reached; any remaining idle slots stay empty.
func Extract(sc *Scenario, a *Assignment) *Schedule {
	numT := sc.Quotas.NumSlots
	out := &Schedule{
		StudentRows:     make(map[string][]string, len(sc.Students)),
		InterviewerRows: make(map[string][]string, len(sc.Interviewers)),
	}

	for s, student := range sc.Students {
		row := make([]string, numT)
		for t := 0; t < numT; t++ {
			if inv := a.StudentSlot[s][t]; inv != -1 {
				row[t] = sc.Interviewers[inv].Name
			}
		}
		out.StudentRows[student.Name] = row
	}

	ids := DisplayIDs(sc.Interviewers)
	for i, inv := range sc.Interviewers {
		row := make([]string, numT)
		breaks := 0
		var breakSlots []int
		for t := 0; t < numT; t++ {
			switch occ := a.InterviewerSlot[i][t]; {
			case occ != -1:
				row[t] = sc.Students[occ].Name
			case breaks < sc.Quotas.BreaksMax:
				row[t] = BreakMarker
				breaks++
				breakSlots = append(breakSlots, t+1)
			}
		}
		out.InterviewerRows[inv.Name] = row
		out.Summaries = append(out.Summaries, InterviewerSummary{
			Name:       inv.Name,
			ID:         ids[inv.Name],
			Virtual:    inv.Virtual,
			BreakSlots: breakSlots,
		})
	}

	sort.Slice(out.Summaries, func(a, b int) bool {
		return out.Summaries[a].ID < out.Summaries[b].ID
	})
	return out
}
