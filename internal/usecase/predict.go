package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.ngs.io/tides-core/internal/domain"
	"go.ngs.io/tides-core/internal/metrics"
)

var (
	// ErrLocationNotFound is returned when no location matches the request.
	ErrLocationNotFound = errors.New("location not found")
	// ErrNoConstituents is returned when no raw constituent set is given.
	ErrNoConstituents = errors.New("no constituents")
)

// PredictionRequest encapsulates a tide prediction request
type PredictionRequest struct {
	// Location parameters (mutually exclusive with StationID)
	Lat *float64
	Lon *float64

	// Station name (mutually exclusive with Lat/Lon)
	StationID *string

	// Time range
	Start time.Time
	End   time.Time

	// Interval for sampled heights (e.g., 10 minutes)
	Interval time.Duration

	// Datum heights are reported against, e.g. "MSL", "LAT". Empty uses the configured default.
	Datum string
}

// PredictionResponse contains the tide prediction results
type PredictionResponse struct {
	Source       string            `json:"source"`
	Location     string            `json:"location"`
	Datum        string            `json:"datum"`
	Timezone     string            `json:"timezone"`
	Constituents []string          `json:"constituents"`
	Predictions  []PredictionPoint `json:"predictions"`
	Extrema      ExtremaResponse   `json:"extrema"`
	Meta         map[string]string `json:"meta"`
}

// PredictionPoint represents a single tide height
type PredictionPoint struct {
	Time    string  `json:"time"`
	HeightM float64 `json:"height_m"`
}

// ExtremaResponse contains high and low tides
type ExtremaResponse struct {
	Highs []PredictionPoint `json:"highs"`
	Lows  []PredictionPoint `json:"lows"`
}

// PredictionUseCase orchestrates tide prediction
type PredictionUseCase struct {
	cfg       Config
	locations *LocationIndex
	logger    *slog.Logger
}

// NewPredictionUseCase creates a new prediction use case
func NewPredictionUseCase(cfg Config, locations *LocationIndex) *PredictionUseCase {
	if locations == nil {
		locations = NewLocationIndex()
	}
	return &PredictionUseCase{
		cfg:       cfg,
		locations: locations,
		logger:    slog.Default().With(slog.String("component", "predict")),
	}
}

// Validate checks the request against the configured limits
func (r *PredictionRequest) Validate(cfg Config) error {
	// Check mutually exclusive parameters
	hasLatLon := r.Lat != nil && r.Lon != nil
	hasStationID := r.StationID != nil && *r.StationID != ""

	if !hasLatLon && !hasStationID {
		return fmt.Errorf("either lat/lon or station_id must be provided")
	}

	if hasLatLon && hasStationID {
		return fmt.Errorf("lat/lon and station_id are mutually exclusive")
	}

	if hasLatLon {
		if *r.Lat < -90 || *r.Lat > 90 {
			return fmt.Errorf("latitude must be between -90 and 90")
		}
		if *r.Lon < -180 || *r.Lon > 180 {
			return fmt.Errorf("longitude must be between -180 and 180")
		}
	}

	if !r.Start.Before(r.End) {
		return fmt.Errorf("start time must be before end time")
	}

	if r.Interval < cfg.MinInterval {
		return fmt.Errorf("interval must be at least %v", cfg.MinInterval)
	}
	if r.Interval > cfg.MaxInterval {
		return fmt.Errorf("interval must be at most %v", cfg.MaxInterval)
	}

	duration := r.End.Sub(r.Start)
	if duration > cfg.MaxRange {
		return fmt.Errorf("time range must be at most %v", cfg.MaxRange)
	}

	numPoints := int(duration / r.Interval)
	if numPoints > cfg.MaxPoints {
		return fmt.Errorf("too many prediction points (%d) - reduce time range or increase interval", numPoints)
	}

	return nil
}

func (uc *PredictionUseCase) resolve(req PredictionRequest) (*domain.Location, error) {
	if req.StationID != nil && *req.StationID != "" {
		loc, ok := uc.locations.ByName(*req.StationID)
		if !ok {
			return nil, fmt.Errorf("station %q: %w", *req.StationID, ErrLocationNotFound)
		}
		return loc, nil
	}

	at := domain.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
	loc, dist, ok := uc.locations.Nearest(at, uc.cfg.SearchRadiusKm)
	if !ok {
		return nil, fmt.Errorf("no location within %.0f km of (%.4f, %.4f): %w", uc.cfg.SearchRadiusKm, at.Lat, at.Lon, ErrLocationNotFound)
	}
	uc.logger.Debug("Resolved nearest location", slog.String("location", loc.String()), slog.Float64("distance_km", dist))
	return loc, nil
}

// Execute performs the tide prediction
func (uc *PredictionUseCase) Execute(req PredictionRequest) (*PredictionResponse, error) {
	if err := req.Validate(uc.cfg); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	loc, err := uc.resolve(req)
	if err != nil {
		return nil, err
	}

	// An empty datum reports against MSL without requiring an MSL entry.
	datum := req.Datum
	if datum == "" && uc.cfg.DefaultDatum != domain.MSLDatum {
		datum = uc.cfg.DefaultDatum
	}

	levels, err := loc.Heights(req.Start, req.End, req.Interval, datum)
	if err != nil {
		return nil, fmt.Errorf("failed to predict heights for %s: %w", loc, err)
	}
	extremes, err := loc.Extremes(req.Start, req.End, datum)
	if err != nil {
		return nil, fmt.Errorf("failed to find extremes for %s: %w", loc, err)
	}

	predictionPoints := make([]PredictionPoint, len(levels))
	for i, p := range levels {
		predictionPoints[i] = uc.point(p.Time, p.HeightM)
	}

	constituents := loc.Constituents()
	constituentNames := make([]string, len(constituents))
	for i, c := range constituents {
		constituentNames[i] = c.Name
	}

	if datum == "" {
		datum = domain.MSLDatum
	}

	response := &PredictionResponse{
		Source:       "location",
		Location:     loc.String(),
		Datum:        datum,
		Timezone:     "+00:00", // UTC
		Constituents: constituentNames,
		Predictions:  predictionPoints,
		Extrema:      uc.extrema(extremes),
		Meta: map[string]string{
			"model": "harmonic_v1",
		},
	}
	if loc.Copyright != "" {
		response.Meta["attribution"] = loc.Copyright
	}

	metrics.ObservePrediction(response.Source)
	uc.logger.Debug("Predicted tides",
		slog.String("location", response.Location),
		slog.String("datum", datum),
		slog.Int("points", len(predictionPoints)),
		slog.Int("extremes", len(extremes)))

	return response, nil
}

// RawExtremes finds the high and low tides of an uncorrected constituent set in
// [start, start+length). A set without amplitudes or a non-positive length gives
// no extremes.
func (uc *PredictionUseCase) RawExtremes(set *domain.ConstituentSet, start time.Time, length time.Duration) (*ExtremaResponse, error) {
	if set == nil {
		return nil, ErrNoConstituents
	}

	extrema := uc.extrema(set.Extremes(start, length))

	metrics.ObservePrediction("raw")
	uc.logger.Debug("Found raw extremes",
		slog.String("coordinate", fmt.Sprintf("%.3f, %.3f", set.Coordinate.Lat, set.Coordinate.Lon)),
		slog.Int("highs", len(extrema.Highs)),
		slog.Int("lows", len(extrema.Lows)))

	return &extrema, nil
}

func (uc *PredictionUseCase) extrema(extremes []domain.Extreme) ExtremaResponse {
	out := ExtremaResponse{
		Highs: make([]PredictionPoint, 0, len(extremes)/2+1),
		Lows:  make([]PredictionPoint, 0, len(extremes)/2+1),
	}
	for _, ex := range extremes {
		metrics.ObserveExtreme(ex.Kind(), ex.Steps, ex.Error)
		if ex.Error != 0 {
			uc.logger.Warn("Extreme search did not converge",
				slog.String("extreme", ex.String()),
				slog.Duration("error", ex.Error))
		}

		p := uc.point(ex.Time, ex.HeightM)
		if ex.Maximum {
			out.Highs = append(out.Highs, p)
		} else {
			out.Lows = append(out.Lows, p)
		}
	}
	return out
}

func (uc *PredictionUseCase) point(t time.Time, height float64) PredictionPoint {
	return PredictionPoint{
		Time:    t.UTC().Format(time.RFC3339),
		HeightM: roundToDecimal(height, uc.cfg.RoundDecimals),
	}
}

// Helper function to round to decimal places
func roundToDecimal(val float64, precision int) float64 {
	multiplier := math.Pow(10, float64(precision))
	return math.Round(val*multiplier) / multiplier
}
