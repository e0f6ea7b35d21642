package domain

import (
	"fmt"
	"time"
)

const (
	// LunarHour is one lunar hour rounded to whole seconds.
	LunarHour = 3726 * time.Second
	// falseExtremeWindow is the neighborhood checked on each side of a candidate.
	falseExtremeWindow = 3 * LunarHour * 2
	// MSLDatum names the mean sea level datum corrected constituents refer to.
	MSLDatum = "MSL"
)

// Location is the constituent and datum data for one place. Its constituents
// already carry their nodal corrections and are valid in [EpochStart, EpochEnd].
type Location struct {
	Name       string // Tide station name, empty when not a station.
	Copyright  string
	Coordinate Coordinate
	EpochStart time.Time
	EpochEnd   time.Time
	Datums     map[string]float64 // Datum heights in meters.

	constituents []CorrectedConstituent
	index        map[string]int
}

// NewLocation builds a location. Constituents keep their given order; a repeated
// name replaces the earlier entry in place.
func NewLocation(name string, coord Coordinate, epochStart, epochEnd time.Time, constituents []CorrectedConstituent, datums map[string]float64) (*Location, error) {
	if epochStart.After(epochEnd) {
		return nil, &RangeError{
			Op:     "new location",
			Reason: fmt.Sprintf("epoch start %s is after end %s", epochStart.Format(time.RFC3339), epochEnd.Format(time.RFC3339)),
			Err:    ErrInvalidEpoch,
		}
	}

	loc := &Location{
		Name:         name,
		Coordinate:   coord,
		EpochStart:   epochStart,
		EpochEnd:     epochEnd,
		Datums:       make(map[string]float64, len(datums)),
		constituents: make([]CorrectedConstituent, 0, len(constituents)),
		index:        make(map[string]int, len(constituents)),
	}
	for _, c := range constituents {
		loc.put(c)
	}
	for k, v := range datums {
		loc.Datums[k] = v
	}
	return loc, nil
}

func (l *Location) put(c CorrectedConstituent) {
	if i, ok := l.index[c.Name]; ok {
		l.constituents[i] = c
		return
	}
	l.index[c.Name] = len(l.constituents)
	l.constituents = append(l.constituents, c)
}

// Constituents returns the corrected constituents in insertion order.
func (l *Location) Constituents() []CorrectedConstituent {
	out := make([]CorrectedConstituent, len(l.constituents))
	copy(out, l.constituents)
	return out
}

// Constituent returns a constituent by name.
func (l *Location) Constituent(name string) (CorrectedConstituent, bool) {
	i, ok := l.index[name]
	if !ok {
		return CorrectedConstituent{}, false
	}
	return l.constituents[i], true
}

// TermsAt returns the location's harmonics. Corrections are baked in, so the
// result does not depend on t.
func (l *Location) TermsAt(_ time.Time) Harmonics {
	terms := make([]HarmonicTerm, len(l.constituents))
	for i, c := range l.constituents {
		terms[i] = HarmonicTerm{
			Name:           c.Name,
			AmplitudeM:     c.AmplitudeM,
			PhaseRad:       c.PhaseRad,
			SpeedRadPerSec: c.SpeedRadPerSec,
		}
	}
	return Harmonics{Reference: l.EpochStart, Terms: terms}
}

// DatumOffset returns the amount subtracted from MSL-relative heights to express
// them relative to datum. An empty datum means MSL.
func (l *Location) DatumOffset(datum string) (float64, error) {
	if datum == "" {
		return 0, nil
	}
	height, ok := l.Datums[datum]
	if !ok {
		return 0, &RangeError{Op: "datum", Reason: fmt.Sprintf("datum %q does not exist", datum), Err: ErrUnknownDatum}
	}
	return height - l.Datums[MSLDatum], nil
}

func (l *Location) checkRange(op string, start, end time.Time) error {
	if start.Before(l.EpochStart) || end.After(l.EpochEnd) {
		return &RangeError{
			Op: op,
			Reason: fmt.Sprintf("[%s, %s] not within [%s, %s]",
				start.Format(time.RFC3339), end.Format(time.RFC3339),
				l.EpochStart.Format(time.RFC3339), l.EpochEnd.Format(time.RFC3339)),
			Err: ErrOutsideEpoch,
		}
	}
	return nil
}

// HeightAt returns the height at t relative to datum.
func (l *Location) HeightAt(t time.Time, datum string) (float64, error) {
	if err := l.checkRange("height", t, t); err != nil {
		return 0, err
	}
	offset, err := l.DatumOffset(datum)
	if err != nil {
		return 0, err
	}
	return l.TermsAt(t).HeightAt(t) - offset, nil
}

// Heights samples heights relative to datum over [start, end] inclusive.
func (l *Location) Heights(start, end time.Time, step time.Duration, datum string) ([]TideLevel, error) {
	if err := l.checkRange("heights", start, end); err != nil {
		return nil, err
	}
	if step <= 0 {
		return nil, &RangeError{Op: "heights", Reason: fmt.Sprintf("step %v must be positive", step), Err: ErrInvalidStep}
	}
	offset, err := l.DatumOffset(datum)
	if err != nil {
		return nil, err
	}

	levels := GeneratePredictions(start, end, step, l.TermsAt(start))
	for i := range levels {
		levels[i].HeightM -= offset
	}
	return levels, nil
}

// Extremes returns the high and low tides in [start, end) relative to datum,
// ordered by time.
func (l *Location) Extremes(start, end time.Time, datum string) ([]Extreme, error) {
	if err := l.checkRange("extremes", start, end); err != nil {
		return nil, err
	}
	offset, err := l.DatumOffset(datum)
	if err != nil {
		return nil, err
	}

	opts := SearchOptions{Resolution: time.Second, MaxError: 0, MaxSteps: 10}
	candidates := FindExtremes(l, start, end, LunarHour, opts)
	for i := range candidates {
		candidates[i].HeightM -= offset
	}

	return FilterFalseExtremes(candidates, falseExtremeWindow), nil
}

func (l *Location) String() string {
	if l.Name == "" {
		return fmt.Sprintf("%6.3f, %6.3f", l.Coordinate.Lat, l.Coordinate.Lon)
	}
	return fmt.Sprintf("%6.3f, %6.3f (%s)", l.Coordinate.Lat, l.Coordinate.Lon, l.Name)
}
