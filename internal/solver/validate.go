package solver

import (
	"fmt"
	"sort"
)

// ValidationInput bundles a concrete schedule with the scenario it must
// satisfy. InterviewerRows is optional: externally edited schedules often
// carry only the student view, in which case break bookkeeping cannot be
// re-derived and is skipped.
type ValidationInput struct {
	StudentRows     map[string][]string
	InterviewerRows map[string][]string
	Students        []Student
	Interviewers    []Interviewer
	Quotas          Quotas
}

// Validate re-derives every schedule invariant from scratch. It takes no
// solver state on purpose: the schedule may come from storage or from a
// manual edit, not from a fresh solve. The returned list is ordered and
// human readable; an empty list means the schedule is valid.
func Validate(in ValidationInput) []string {
	var errs []string

	virtualNames := make(map[string]bool, len(in.Interviewers))
	knownInterviewers := make(map[string]bool, len(in.Interviewers))
	for _, inv := range in.Interviewers {
		knownInterviewers[inv.Name] = true
		if inv.Virtual {
			virtualNames[inv.Name] = true
		}
	}

	numT := in.Quotas.NumSlots

	for _, student := range in.Students {
		row, ok := in.StudentRows[student.Name]
		if !ok {
			errs = append(errs, fmt.Sprintf("%s: missing from schedule", student.Name))
			continue
		}
		if len(row) != numT {
			errs = append(errs, fmt.Sprintf("%s: schedule row has %d slots, expected %d", student.Name, len(row), numT))
			continue
		}

		assigned := 0
		virtual := 0
		seen := make(map[string]int, numT)
		for _, cell := range row {
			if cell == "" {
				continue
			}
			assigned++
			seen[cell]++
			if virtualNames[cell] {
				virtual++
			}
			if !knownInterviewers[cell] {
				errs = append(errs, fmt.Sprintf("%s: assigned to unknown interviewer %q", student.Name, cell))
			}
		}

		if assigned != student.Target {
			errs = append(errs, fmt.Sprintf("%s: got %d interviews, expected %d", student.Name, assigned, student.Target))
		}
		if virtual < in.Quotas.MinVirtualPerStudent || virtual > in.Quotas.MaxVirtualPerStudent {
			errs = append(errs, fmt.Sprintf("%s: %d virtual interviews, need between %d and %d",
				student.Name, virtual, in.Quotas.MinVirtualPerStudent, in.Quotas.MaxVirtualPerStudent))
		}
		for _, name := range sortedKeys(seen) {
			if seen[name] > 1 {
				errs = append(errs, fmt.Sprintf("%s: meets %s %d times", student.Name, name, seen[name]))
			}
		}
	}

	// unknown student rows, in name order for deterministic output
	var extras []string
	for name := range in.StudentRows {
		if _, ok := findStudent(in.Students, name); !ok {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		errs = append(errs, fmt.Sprintf("%s: not part of this event", name))
	}

	// per-slot exclusivity: interviewers across students must be distinct
	for t := 0; t < numT; t++ {
		booked := make(map[string]bool)
		for _, student := range in.Students {
			row := in.StudentRows[student.Name]
			if len(row) != numT || row[t] == "" {
				continue
			}
			if booked[row[t]] {
				errs = append(errs, fmt.Sprintf("slot #%d: interviewer %s double-booked", t+1, row[t]))
			}
			booked[row[t]] = true
		}
	}

	if in.InterviewerRows != nil {
		errs = append(errs, validateInterviewerRows(in)...)
	}

	return errs
}

func validateInterviewerRows(in ValidationInput) []string {
	var errs []string
	numT := in.Quotas.NumSlots
	for _, inv := range in.Interviewers {
		row, ok := in.InterviewerRows[inv.Name]
		if !ok {
			errs = append(errs, fmt.Sprintf("%s: missing from interviewer schedule", inv.Name))
			continue
		}
		if len(row) != numT {
			errs = append(errs, fmt.Sprintf("%s: interviewer row has %d slots, expected %d", inv.Name, len(row), numT))
			continue
		}

		breaks := 0
		for t, cell := range row {
			switch cell {
			case BreakMarker:
				breaks++
			case "":
			default:
				// the cell names a student; it must agree with that
				// student's own row
				studentRow, ok := in.StudentRows[cell]
				if !ok || t >= len(studentRow) || studentRow[t] != inv.Name {
					errs = append(errs, fmt.Sprintf("%s: slot #%d lists %s but the student schedule disagrees", inv.Name, t+1, cell))
				}
			}
		}
		if breaks < in.Quotas.BreaksMin || breaks > in.Quotas.BreaksMax {
			errs = append(errs, fmt.Sprintf("%s: %d breaks, need between %d and %d",
				inv.Name, breaks, in.Quotas.BreaksMin, in.Quotas.BreaksMax))
		}
	}
	return errs
}

func findStudent(students []Student, name string) (Student, bool) {
	for _, s := range students {
		if s.Name == name {
			return s, true
		}
	}
	return Student{}, false
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
