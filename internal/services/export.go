package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
)

// exportHeader is the fixed column order of the CSV export.
var exportHeader = []string{
	"name", "email", "match_score", "category", "interview_score", "review", "status",
}

type ExportService interface {
	BuildRecords(candidates []models.Candidate) []models.ExportRecord
	WriteCSV(w io.Writer, records []models.ExportRecord) error
}

type exportService struct{}

func NewExportService() ExportService {
	return &exportService{}
}

// BuildRecords converts candidates into export rows, sorted by match score
// descending. Interview fields stay empty until a report exists.
func (e *exportService) BuildRecords(candidates []models.Candidate) []models.ExportRecord {
	sorted := make([]models.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return scoreOf(sorted[i]) > scoreOf(sorted[j])
	})

	records := make([]models.ExportRecord, 0, len(sorted))
	for _, c := range sorted {
		record := models.ExportRecord{
			Name:       c.Name,
			Email:      c.Email,
			MatchScore: scoreOf(c),
			Category:   c.Category,
			Status:     string(c.Status),
		}
		if c.InterviewScore != nil {
			record.InterviewScore = strconv.Itoa(*c.InterviewScore)
		}
		if c.Review != nil {
			record.Review = *c.Review
		}
		records = append(records, record)
	}

	return records
}

// WriteCSV implements ExportService.
func (e *exportService) WriteCSV(w io.Writer, records []models.ExportRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Name,
			r.Email,
			strconv.Itoa(r.MatchScore),
			r.Category,
			r.InterviewScore,
			r.Review,
			r.Status,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

func scoreOf(c models.Candidate) int {
	if c.MatchScore == nil {
		return 0
	}
	return *c.MatchScore
}
