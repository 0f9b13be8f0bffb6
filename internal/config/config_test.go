package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.FastModel)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.QualityModel)
	assert.Equal(t, "en-US-AriaNeural", cfg.Speech.Voice)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, 60, cfg.Screening.ShortlistThreshold)
	assert.Equal(t, 8*time.Minute, cfg.Interview.MaxDuration)
	assert.Equal(t, 10*time.Second, cfg.Worker.PollInterval)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SHORTLIST_THRESHOLD", "75")
	t.Setenv("INTERVIEW_MAX_DURATION", "15m")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("MAX_FILE_SIZE", "5242880")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 75, cfg.Screening.ShortlistThreshold)
	assert.Equal(t, 15*time.Minute, cfg.Interview.MaxDuration)
	assert.True(t, cfg.Server.LogJSON)
	assert.Equal(t, int64(5242880), cfg.Storage.MaxFileSize)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SHORTLIST_THRESHOLD", "not-a-number")
	t.Setenv("INTERVIEW_MAX_DURATION", "soon")
	t.Setenv("LOG_JSON", "yes please")

	cfg := Load()

	assert.Equal(t, 60, cfg.Screening.ShortlistThreshold)
	assert.Equal(t, 8*time.Minute, cfg.Interview.MaxDuration)
	assert.False(t, cfg.Server.LogJSON)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db.internal",
			Port:     "5433",
			User:     "ats",
			Password: "secret",
			DBName:   "recruitment",
		},
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=ats password=secret dbname=recruitment sslmode=disable",
		cfg.GetDatabaseDSN())
}
