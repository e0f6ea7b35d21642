package usecase

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("LoadConfig() defaults (-want,+got): %s", diff)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("TIDES_MAX_POINTS", "500")
	t.Setenv("TIDES_MAX_INTERVAL", "2h")
	t.Setenv("TIDES_SEARCH_RADIUS_KM", "12.5")
	t.Setenv("TIDES_DEFAULT_DATUM", "LAT")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxPoints)
	assert.Equal(t, 2*time.Hour, cfg.MaxInterval)
	assert.Equal(t, 12.5, cfg.SearchRadiusKm)
	assert.Equal(t, "LAT", cfg.DefaultDatum)
	assert.Equal(t, time.Minute, cfg.MinInterval)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("TIDES_MIN_INTERVAL", "3h")
	t.Setenv("TIDES_MAX_INTERVAL", "1h")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("TIDES_MAX_POINTS", "many")
	_, err = LoadConfig()
	assert.Error(t, err)
}
