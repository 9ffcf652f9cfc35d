package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerday/interview-scheduler-api/internal/solver"
)

func TestGridDatasetAddsTotalsAndBreakMarkers(t *testing.T) {
	dataset := gridDataset("Student", map[string][]string{
		"Bob":   {"Alice", "", "Carol"},
		"Alice": {"", "Dave", ""},
	})

	require.Equal(t, []string{"Student", "Slot 1", "Slot 2", "Slot 3", "Total"}, dataset.Headers)
	require.Len(t, dataset.Rows, 2)

	// rows come out sorted by name
	assert.Equal(t, map[string]string{
		"Student": "Alice",
		"Slot 1":  solver.BreakMarker,
		"Slot 2":  "Dave",
		"Slot 3":  solver.BreakMarker,
		"Total":   "1",
	}, dataset.Rows[0])
	assert.Equal(t, map[string]string{
		"Student": "Bob",
		"Slot 1":  "Alice",
		"Slot 2":  solver.BreakMarker,
		"Slot 3":  "Carol",
		"Total":   "2",
	}, dataset.Rows[1])
}

func TestGridDatasetCountsAroundExistingBreaks(t *testing.T) {
	dataset := gridDataset("Interviewer", map[string][]string{
		"Panel-1": {"S1", solver.BreakMarker, "S2", "S3"},
		"Panel-2": {solver.BreakMarker, solver.BreakMarker, "S1"},
	})

	require.Equal(t, []string{"Interviewer", "Slot 1", "Slot 2", "Slot 3", "Slot 4", "Total"}, dataset.Headers)
	require.Len(t, dataset.Rows, 2)

	assert.Equal(t, "3", dataset.Rows[0]["Total"])
	assert.Equal(t, "1", dataset.Rows[1]["Total"])

	// the short row pads its missing trailing slot with the break marker
	assert.Equal(t, solver.BreakMarker, dataset.Rows[1]["Slot 4"])
}
