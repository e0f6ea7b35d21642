package usecase

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.ngs.io/tides-core/internal/domain"
)

var ref = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

// harbour has a single 12h constituent with unit amplitude, valid for two days.
func harbour(t *testing.T, name string, coord domain.Coordinate) *domain.Location {
	t.Helper()

	loc, err := domain.NewLocation(name, coord, ref, ref.Add(48*time.Hour),
		[]domain.CorrectedConstituent{{Name: "X2", SpeedRadPerSec: 2 * math.Pi / 43200, AmplitudeM: 1}},
		map[string]float64{"MSL": 0.5, "LAT": -1.0})
	require.NoError(t, err)
	return loc
}

func newUseCase(t *testing.T, cfg Config) *PredictionUseCase {
	t.Helper()

	return NewPredictionUseCase(cfg, NewLocationIndex(
		harbour(t, "Tokyo", domain.Coordinate{Lat: 35.65, Lon: 139.77}),
		harbour(t, "Yokohama", domain.Coordinate{Lat: 35.45, Lon: 139.65}),
	))
}

// TestValidate tests request validation.
func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	valid := func() PredictionRequest {
		return PredictionRequest{
			StationID: ptr("Tokyo"),
			Start:     ref,
			End:       ref.Add(24 * time.Hour),
			Interval:  10 * time.Minute,
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *PredictionRequest)
		wantErr bool
	}{
		{"valid station", func(r *PredictionRequest) {}, false},
		{"valid lat/lon", func(r *PredictionRequest) { r.StationID, r.Lat, r.Lon = nil, ptr(35.0), ptr(139.0) }, false},
		{"no location", func(r *PredictionRequest) { r.StationID = nil }, true},
		{"empty station", func(r *PredictionRequest) { r.StationID = ptr("") }, true},
		{"both", func(r *PredictionRequest) { r.Lat, r.Lon = ptr(35.0), ptr(139.0) }, true},
		{"latitude", func(r *PredictionRequest) { r.StationID, r.Lat, r.Lon = nil, ptr(91.0), ptr(0.0) }, true},
		{"longitude", func(r *PredictionRequest) { r.StationID, r.Lat, r.Lon = nil, ptr(0.0), ptr(-181.0) }, true},
		{"reversed", func(r *PredictionRequest) { r.Start, r.End = r.End, r.Start }, true},
		{"empty range", func(r *PredictionRequest) { r.End = r.Start }, true},
		{"short interval", func(r *PredictionRequest) { r.Interval = time.Second }, true},
		{"long interval", func(r *PredictionRequest) { r.Interval = 7 * time.Hour }, true},
		{"long range", func(r *PredictionRequest) { r.End = r.Start.Add(400 * 24 * time.Hour) }, true},
		{"too many points", func(r *PredictionRequest) {
			r.Interval = time.Minute
			r.End = r.Start.Add(10 * 24 * time.Hour)
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)
			err := r.Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExecute_Station(t *testing.T) {
	uc := newUseCase(t, DefaultConfig())

	resp, err := uc.Execute(PredictionRequest{
		StationID: ptr("Tokyo"),
		Start:     ref,
		End:       ref.Add(23 * time.Hour),
		Interval:  time.Hour,
	})
	require.NoError(t, err)

	assert.Equal(t, "location", resp.Source)
	assert.Equal(t, "MSL", resp.Datum)
	assert.Equal(t, "35.650, 139.770 (Tokyo)", resp.Location)
	assert.Equal(t, []string{"X2"}, resp.Constituents)
	require.Len(t, resp.Predictions, 24)
	assert.Equal(t, PredictionPoint{Time: "2020-01-01T00:00:00Z", HeightM: 1}, resp.Predictions[0])
	assert.Equal(t, PredictionPoint{Time: "2020-01-01T06:00:00Z", HeightM: -1}, resp.Predictions[6])

	require.Len(t, resp.Extrema.Highs, 2)
	require.Len(t, resp.Extrema.Lows, 2)
	assert.Equal(t, PredictionPoint{Time: "2020-01-01T00:00:00Z", HeightM: 1}, resp.Extrema.Highs[0])
	for _, low := range resp.Extrema.Lows {
		assert.Equal(t, -1.0, low.HeightM)
	}
	assert.Equal(t, "harmonic_v1", resp.Meta["model"])
}

func TestExecute_Datum(t *testing.T) {
	uc := newUseCase(t, DefaultConfig())
	req := PredictionRequest{
		StationID: ptr("Yokohama"),
		Start:     ref,
		End:       ref.Add(12 * time.Hour),
		Interval:  6 * time.Hour,
		Datum:     "LAT",
	}

	resp, err := uc.Execute(req)
	require.NoError(t, err)
	assert.Equal(t, "LAT", resp.Datum)
	want := []PredictionPoint{
		{Time: "2020-01-01T00:00:00Z", HeightM: 2.5},
		{Time: "2020-01-01T06:00:00Z", HeightM: 0.5},
		{Time: "2020-01-01T12:00:00Z", HeightM: 2.5},
	}
	if diff := cmp.Diff(want, resp.Predictions); diff != "" {
		t.Errorf("LAT predictions (-want,+got): %s", diff)
	}

	// The configured default applies when the request names no datum.
	cfg := DefaultConfig()
	cfg.DefaultDatum = "LAT"
	req.Datum = ""
	resp, err = newUseCase(t, cfg).Execute(req)
	require.NoError(t, err)
	assert.Equal(t, "LAT", resp.Datum)
	if diff := cmp.Diff(want, resp.Predictions); diff != "" {
		t.Errorf("default datum predictions (-want,+got): %s", diff)
	}

	req.Datum = "CDL"
	_, err = uc.Execute(req)
	assert.ErrorIs(t, err, domain.ErrUnknownDatum)
}

func TestExecute_Nearest(t *testing.T) {
	uc := newUseCase(t, DefaultConfig())

	resp, err := uc.Execute(PredictionRequest{
		Lat:      ptr(35.44),
		Lon:      ptr(139.64),
		Start:    ref,
		End:      ref.Add(6 * time.Hour),
		Interval: time.Hour,
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Location, "Yokohama")

	_, err = uc.Execute(PredictionRequest{
		Lat:      ptr(34.69),
		Lon:      ptr(135.50),
		Start:    ref,
		End:      ref.Add(6 * time.Hour),
		Interval: time.Hour,
	})
	assert.ErrorIs(t, err, ErrLocationNotFound)

	_, err = uc.Execute(PredictionRequest{
		StationID: ptr("Osaka"),
		Start:     ref,
		End:       ref.Add(6 * time.Hour),
		Interval:  time.Hour,
	})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestExecute_OutsideEpoch(t *testing.T) {
	uc := newUseCase(t, DefaultConfig())

	_, err := uc.Execute(PredictionRequest{
		StationID: ptr("Tokyo"),
		Start:     ref.Add(40 * time.Hour),
		End:       ref.Add(50 * time.Hour),
		Interval:  time.Hour,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOutsideEpoch)

	var rangeErr *domain.RangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := newUseCase(t, DefaultConfig())
	_, err := uc.Execute(PredictionRequest{Start: ref, End: ref.Add(time.Hour), Interval: time.Minute})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request")
}

func TestRawExtremes(t *testing.T) {
	uc := NewPredictionUseCase(DefaultConfig(), nil)

	_, err := uc.RawExtremes(nil, ref, 24*time.Hour)
	assert.ErrorIs(t, err, ErrNoConstituents)

	// No amplitudes means no tide, not a failure.
	resp, err := uc.RawExtremes(&domain.ConstituentSet{Values: []domain.ComplexAmplitude{{}, {}}}, ref, 24*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, resp.Highs)
	assert.Empty(t, resp.Lows)

	set, err := domain.NewConstituentSet(domain.Coordinate{Lat: 35.65, Lon: 139.77}, []domain.ComplexAmplitude{
		{Re: 0.5, Im: -0.2},
		{Re: 0.1, Im: 0.15},
		{Re: 0.25, Im: 0.05},
		{Re: 0.18, Im: -0.1},
	})
	require.NoError(t, err)

	resp, err = uc.RawExtremes(set, ref, 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Highs)
	assert.Empty(t, resp.Lows)

	resp, err = uc.RawExtremes(set, ref, 3*24*time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Highs)
	assert.NotEmpty(t, resp.Lows)
	for _, h := range resp.Highs {
		_, err := time.Parse(time.RFC3339, h.Time)
		assert.NoError(t, err)
	}
}

func TestRawExtremes_WithoutM2(t *testing.T) {
	uc := NewPredictionUseCase(DefaultConfig(), nil)

	_, k1, ok := domain.LookupConstituent("K1")
	require.True(t, ok)
	values := make([]domain.ComplexAmplitude, k1+1)
	values[k1] = domain.ComplexAmplitude{Re: 0.2, Im: 0.1}
	set, err := domain.NewConstituentSet(domain.Coordinate{Lat: 21.3, Lon: -157.9}, values)
	require.NoError(t, err)
	require.True(t, set.IsZero())

	resp, err := uc.RawExtremes(set, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 48*time.Hour)
	require.NoError(t, err)
	// A diurnal tide turns about four times in two days.
	assert.NotEmpty(t, resp.Highs)
	assert.NotEmpty(t, resp.Lows)
	assert.InDelta(t, 4, len(resp.Highs)+len(resp.Lows), 1)
}

func TestExtrema_WarnsOnSignedSearchError(t *testing.T) {
	var buf bytes.Buffer
	uc := NewPredictionUseCase(DefaultConfig(), nil)
	uc.logger = slog.New(slog.NewTextHandler(&buf, nil))

	out := uc.extrema([]domain.Extreme{
		{Time: ref, HeightM: 1.2, Maximum: true, Error: 5 * time.Second, Steps: 10},
		{Time: ref.Add(6 * time.Hour), HeightM: -0.8, Error: -5 * time.Second, Steps: 10},
		{Time: ref.Add(12 * time.Hour), HeightM: 1.1, Maximum: true, Steps: 4},
	})

	assert.Len(t, out.Highs, 2)
	assert.Len(t, out.Lows, 1)
	assert.Equal(t, 2, strings.Count(buf.String(), "did not converge"))
}

func TestRoundToDecimal(t *testing.T) {
	tests := []struct {
		val       float64
		precision int
		expected  float64
	}{
		{1.23456, 3, 1.235},
		{-1.23456, 3, -1.235},
		{0.0004, 3, 0},
		{2.5, 0, 3},
		{-0.96, 1, -1},
	}

	for _, tt := range tests {
		if got := roundToDecimal(tt.val, tt.precision); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("roundToDecimal(%v, %d): expected %v, got %v", tt.val, tt.precision, tt.expected, got)
		}
	}
}
