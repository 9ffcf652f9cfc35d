package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/careerday/interview-scheduler-api/internal/models"
	"github.com/careerday/interview-scheduler-api/internal/solver"
	appErrors "github.com/careerday/interview-scheduler-api/pkg/errors"
	"github.com/careerday/interview-scheduler-api/pkg/export"
)

// ExportView selects which side of the schedule grid gets rendered.
type ExportView string

const (
	ExportViewStudents     ExportView = "students"
	ExportViewInterviewers ExportView = "interviewers"
)

// ExportService renders stored schedules as downloadable documents.
type ExportService struct {
	schedules *ScheduleService
	events    eventLookup
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(schedules *ScheduleService, events eventLookup, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		schedules: schedules,
		events:    events,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

// CSV renders the chosen view of a stored schedule as CSV bytes.
func (s *ExportService) CSV(ctx context.Context, scheduleID string, view ExportView) ([]byte, string, error) {
	dataset, name, err := s.dataset(ctx, scheduleID, view)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return payload, name + ".csv", nil
}

// PDF renders the chosen view of a stored schedule as a PDF document.
func (s *ExportService) PDF(ctx context.Context, scheduleID string, view ExportView) ([]byte, string, error) {
	dataset, name, err := s.dataset(ctx, scheduleID, view)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.Render(dataset, name)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, name + ".pdf", nil
}

func (s *ExportService) dataset(ctx context.Context, scheduleID string, view ExportView) (export.Dataset, string, error) {
	schedule, err := s.schedules.Get(ctx, scheduleID)
	if err != nil {
		return export.Dataset{}, "", err
	}

	name := "schedule"
	if event, err := s.events.FindByID(ctx, schedule.EventID); err == nil {
		name = event.Name
	}

	switch view {
	case ExportViewInterviewers:
		dataset, err := interviewerDataset(schedule)
		return dataset, name + " interviewers", err
	case ExportViewStudents, "":
		dataset, err := studentDataset(schedule)
		return dataset, name + " students", err
	default:
		return export.Dataset{}, "", appErrors.Clone(appErrors.ErrValidation, "view must be students or interviewers")
	}
}

func studentDataset(schedule *models.Schedule) (export.Dataset, error) {
	var rows map[string][]string
	if err := json.Unmarshal(schedule.ScheduleData, &rows); err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode schedule payload")
	}
	return gridDataset("Student", rows), nil
}

func interviewerDataset(schedule *models.Schedule) (export.Dataset, error) {
	var rows map[string][]string
	if err := json.Unmarshal(schedule.InterviewerSchedule, &rows); err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode interviewer payload")
	}
	return gridDataset("Interviewer", rows), nil
}

// gridDataset turns a name-to-slots map into a sorted table with one
// column per slot plus a trailing interview count. Idle slots render as
// the break marker so readers can tell a gap from a missing cell.
func gridDataset(label string, grid map[string][]string) export.Dataset {
	slots := 0
	for _, row := range grid {
		if len(row) > slots {
			slots = len(row)
		}
	}

	headers := make([]string, 0, slots+2)
	headers = append(headers, label)
	for t := 1; t <= slots; t++ {
		headers = append(headers, fmt.Sprintf("Slot %d", t))
	}
	headers = append(headers, "Total")

	names := make([]string, 0, len(grid))
	for name := range grid {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]map[string]string, 0, len(names))
	for _, name := range names {
		record := map[string]string{label: name}
		total := 0
		for t := 0; t < slots; t++ {
			cell := ""
			if t < len(grid[name]) {
				cell = grid[name][t]
			}
			if cell == "" {
				cell = solver.BreakMarker
			}
			if cell != solver.BreakMarker {
				total++
			}
			record[fmt.Sprintf("Slot %d", t+1)] = cell
		}
		record["Total"] = strconv.Itoa(total)
		rows = append(rows, record)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
