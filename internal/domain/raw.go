package domain

import (
	"fmt"
	"math"
	"time"
)

// RawTile is the search tile length for raw constituent sets.
const RawTile = 3 * time.Hour

// ConstituentSet holds uncorrected complex amplitudes aligned by index with the
// constituent catalogue. Nodal corrections are applied when evaluating.
type ConstituentSet struct {
	Coordinate Coordinate
	Values     []ComplexAmplitude
	Nodal      NodalCorrection // Defaults to AstronomicalNodalCorrection.
}

// NewConstituentSet validates values against the catalogue size.
func NewConstituentSet(coord Coordinate, values []ComplexAmplitude) (*ConstituentSet, error) {
	if len(values) > len(catalogue) {
		return nil, fmt.Errorf("got %d constituent values, catalogue has %d", len(values), len(catalogue))
	}
	return &ConstituentSet{Coordinate: coord, Values: values}, nil
}

// IsZero reports whether the set is missing or its first constituent is zero,
// which marks a location without tidal data (land, or outside the model grid).
func (s *ConstituentSet) IsZero() bool {
	return s == nil || len(s.Values) == 0 || s.Values[0].IsZero()
}

// Empty reports whether no constituent has a non-zero amplitude.
func (s *ConstituentSet) Empty() bool {
	if s == nil {
		return true
	}
	for _, v := range s.Values {
		if !v.IsZero() {
			return false
		}
	}
	return true
}

func (s *ConstituentSet) nodal() NodalCorrection {
	if s.Nodal == nil {
		return AstronomicalNodalCorrection{}
	}
	return s.Nodal
}

// TermsAt folds the nodal correction computed at t into each constituent:
// f*(re*cos(a) - im*sin(a)) = f*|A|*cos(a + atan2(im, re)).
func (s *ConstituentSet) TermsAt(t time.Time) Harmonics {
	return s.withTable(s.nodal().Table(t))
}

func (s *ConstituentSet) withTable(tab *NodalTable) Harmonics {
	n := min(len(s.Values), len(catalogue))
	terms := make([]HarmonicTerm, n)
	for i, v := range s.Values[:n] {
		k := catalogue[i]
		nc := tab.At(i)
		terms[i] = HarmonicTerm{
			Name:           k.Name,
			AmplitudeM:     nc.F * v.Amplitude(),
			PhaseRad:       k.PhaseRad + nc.U + math.Atan2(v.Im, v.Re),
			SpeedRadPerSec: k.OmegaRadPerSec,
		}
	}
	return Harmonics{Reference: ConstituentEpoch, Terms: terms}
}

// HeightAt returns the height at t with nodal corrections computed for t.
func (s *ConstituentSet) HeightAt(t time.Time) float64 {
	return s.TermsAt(t).HeightAt(t)
}

// Extremes returns the high and low tides in [start, start+length), ordered by
// time. Nodal corrections are computed once at start. An empty set has none.
func (s *ConstituentSet) Extremes(start time.Time, length time.Duration) []Extreme {
	if s.Empty() {
		return []Extreme{}
	}
	opts := SearchOptions{Resolution: time.Millisecond, MaxError: 0, MaxSteps: 10}
	return FindExtremes(s, start, start.Add(length), RawTile, opts)
}

// DistanceKm returns the distance between the coordinates of two sets.
func (s *ConstituentSet) DistanceKm(o *ConstituentSet) float64 {
	return s.Coordinate.DistanceKm(o.Coordinate)
}
