package domain

import (
	"math"
	"time"
)

// TideLevel represents a single tide height prediction at a specific time.
type TideLevel struct {
	Time    time.Time
	HeightM float64
}

// HarmonicTerm is one constituent ready for evaluation: nodal correction, if any,
// is already folded into amplitude and phase.
type HarmonicTerm struct {
	Name           string
	AmplitudeM     float64
	PhaseRad       float64
	SpeedRadPerSec float64
}

// Harmonics is an ordered set of harmonic terms sharing one phase reference.
// Terms are summed in slice order.
type Harmonics struct {
	Reference time.Time
	Terms     []HarmonicTerm
}

// Derivatives holds the height (m) with its first (m/s) and second (m/s²) time derivatives.
type Derivatives struct {
	Height   float64
	DHeight  float64
	D2Height float64
}

// ConstituentSource yields the harmonic terms valid at an instant.
type ConstituentSource interface {
	TermsAt(t time.Time) Harmonics
}

var (
	_ ConstituentSource = Harmonics{}
	_ ConstituentSource = (*Location)(nil)
	_ ConstituentSource = (*ConstituentSet)(nil)
)

// TermsAt returns h unchanged.
func (h Harmonics) TermsAt(_ time.Time) Harmonics {
	return h
}

// seconds returns the elapsed seconds since the phase reference.
func (h Harmonics) seconds(t time.Time) float64 {
	return t.Sub(h.Reference).Seconds()
}

// HeightAt computes the tide height at t
// η(t) = Σ A_k * cos(ω_k * Δt + φ_k).
func (h Harmonics) HeightAt(t time.Time) float64 {
	return h.heightAtSeconds(h.seconds(t))
}

func (h Harmonics) heightAtSeconds(sec float64) float64 {
	height := 0.0
	for _, c := range h.Terms {
		height += c.AmplitudeM * math.Cos(sec*c.SpeedRadPerSec+c.PhaseRad)
	}
	return height
}

// Evaluate computes height and its first and second derivatives at t.
func (h Harmonics) Evaluate(t time.Time) Derivatives {
	return h.evaluateSeconds(h.seconds(t))
}

func (h Harmonics) evaluateSeconds(sec float64) Derivatives {
	var d Derivatives
	for _, c := range h.Terms {
		angle := sec*c.SpeedRadPerSec + c.PhaseRad
		cos := math.Cos(angle)
		sin := math.Sin(angle)

		amp := c.AmplitudeM
		d.Height += amp * cos
		amp *= -c.SpeedRadPerSec
		d.DHeight += amp * sin
		amp *= c.SpeedRadPerSec
		d.D2Height += amp * cos
	}
	return d
}

// GeneratePredictions samples heights over [start, end] inclusive at the given interval.
func GeneratePredictions(start, end time.Time, interval time.Duration, h Harmonics) []TideLevel {
	if interval <= 0 || end.Before(start) {
		return []TideLevel{}
	}
	predictions := make([]TideLevel, 0, int(end.Sub(start)/interval)+1)

	for t := start; !t.After(end); t = t.Add(interval) {
		predictions = append(predictions, TideLevel{
			Time:    t,
			HeightM: h.HeightAt(t),
		})
	}

	return predictions
}
