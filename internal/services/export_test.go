package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohitcdry/automatic-recruitment-system/internal/models"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestBuildRecordsSortsByScore(t *testing.T) {
	svc := NewExportService()

	candidates := []models.Candidate{
		{Name: "Low", Email: "low@example.com", MatchScore: intPtr(40), Category: "Information Technology", Status: models.StatusScored},
		{Name: "High", Email: "high@example.com", MatchScore: intPtr(92), Category: "Information Technology", Status: models.StatusScored},
		{Name: "Unscored", Email: "none@example.com", Status: models.StatusFailed},
		{Name: "Mid", Email: "mid@example.com", MatchScore: intPtr(70), Category: "Finance/Accounting", Status: models.StatusScored},
	}

	records := svc.BuildRecords(candidates)

	require.Len(t, records, 4)
	assert.Equal(t, "High", records[0].Name)
	assert.Equal(t, "Mid", records[1].Name)
	assert.Equal(t, "Low", records[2].Name)
	assert.Equal(t, "Unscored", records[3].Name)
	assert.Equal(t, 0, records[3].MatchScore)
}

func TestBuildRecordsInterviewFields(t *testing.T) {
	svc := NewExportService()

	candidates := []models.Candidate{
		{
			Name:           "Interviewed",
			MatchScore:     intPtr(80),
			InterviewScore: intPtr(75),
			Review:         strPtr("Strengths: clear answers"),
			Status:         models.StatusShortlisted,
		},
		{Name: "Pending", MatchScore: intPtr(65), Status: models.StatusScored},
	}

	records := svc.BuildRecords(candidates)

	require.Len(t, records, 2)
	assert.Equal(t, "75", records[0].InterviewScore)
	assert.Equal(t, "Strengths: clear answers", records[0].Review)
	assert.Equal(t, "shortlisted", records[0].Status)

	// No report yet means empty columns, not zeros.
	assert.Equal(t, "", records[1].InterviewScore)
	assert.Equal(t, "", records[1].Review)
}

func TestWriteCSV(t *testing.T) {
	svc := NewExportService()

	records := []models.ExportRecord{
		{Name: "Jane Doe", Email: "jane@example.com", MatchScore: 85, Category: "Information Technology", Status: "scored"},
		{Name: "John, Jr.", Email: "john@example.com", MatchScore: 60, Category: "Hospitality", InterviewScore: "55", Review: "Weaknesses: vague", Status: "hold"},
	}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"name", "email", "match_score", "category", "interview_score", "review", "status"}, rows[0])
	assert.Equal(t, []string{"Jane Doe", "jane@example.com", "85", "Information Technology", "", "", "scored"}, rows[1])

	// Commas in fields survive the round trip.
	assert.Equal(t, "John, Jr.", rows[2][0])
	assert.Equal(t, "55", rows[2][4])
}

func TestWriteCSVEmpty(t *testing.T) {
	svc := NewExportService()

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
