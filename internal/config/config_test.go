package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMA_GRADING_LATE_PENALTY", "")
	t.Setenv("GEMA_GRADING_NOW", "")
	t.Setenv("GEMA_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.InDelta(t, 0.1, cfg.LatePenalty, 1e-12)
	require.Nil(t, cfg.PinnedNow)
	require.Equal(t, 120, cfg.RateLimit)
	require.False(t, cfg.AuthEnabled())
}

func TestLoadPinnedNowAndPenalty(t *testing.T) {
	t.Setenv("GEMA_GRADING_LATE_PENALTY", "0.2")
	t.Setenv("GEMA_GRADING_NOW", "2023-10-10T23:59:59Z")
	t.Setenv("GEMA_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.InDelta(t, 0.2, cfg.LatePenalty, 1e-12)
	require.True(t, cfg.AuthEnabled())

	expected := time.Date(2023, 10, 10, 23, 59, 59, 0, time.UTC)
	require.True(t, expected.Equal(cfg.Clock()()))
}

func TestLoadRejectsOutOfRangePenalty(t *testing.T) {
	t.Setenv("GEMA_GRADING_LATE_PENALTY", "1.5")
	t.Setenv("GEMA_GRADING_NOW", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsMalformedNow(t *testing.T) {
	t.Setenv("GEMA_GRADING_LATE_PENALTY", "")
	t.Setenv("GEMA_GRADING_NOW", "tomorrow")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadPinnedNowAcceptsZeroInstant(t *testing.T) {
	t.Setenv("GEMA_GRADING_LATE_PENALTY", "")
	t.Setenv("GEMA_GRADING_NOW", "0001-01-01T00:00:00Z")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.PinnedNow)
	require.True(t, cfg.Clock()().IsZero())
}
