package domain

import (
	"fmt"
	"math"
	"time"
)

// ConstituentEpoch is the reference instant for the catalogue phases (Jan 1, 1992, 00:00 UTC).
var ConstituentEpoch = time.Date(1992, time.January, 1, 0, 0, 0, 0, time.UTC)

// Constituent represents a tidal constituent with its angular speed and reference phase.
type Constituent struct {
	Name           string  // E.g., "M2", "S2", "K1", "O1".
	OmegaRadPerSec float64 // Angular speed in radians per second.
	PhaseRad       float64 // Phase at ConstituentEpoch in radians.
}

// SpeedDegPerHr returns the angular speed in degrees per hour.
func (c Constituent) SpeedDegPerHr() float64 {
	return Rad2Deg(c.OmegaRadPerSec) * 3600.0
}

// catalogue lists the constituents in the fixed order complex amplitudes align to.
// References: NAVO.xls, Constituents-2006.pdf (XTide), R. Ray "ARGUMENTS"/"ASTROL".
//
// The order must not change: raw constituent sets index into it.
//
//nolint:gochecknoglobals // Read-only catalogue.
var catalogue = []Constituent{
	// Principal lunar semidiurnal.
	{"M2", 1.405189025757300e-4, 1.73155754567656},
	// Principal solar semidiurnal.
	{"S2", 1.454441043328608e-4, 0.0},
	// Lunisolar diurnal.
	{"K1", 7.292115854682399e-5, 0.173003673872453},
	// Principal lunar diurnal.
	{"O1", 6.759774402890599e-5, 1.55855387180411},
	// Larger lunar elliptic semidiurnal.
	{"N2", 1.378796995659399e-4, 6.05072124295143},
	// Principal solar diurnal.
	{"P1", 7.252294578603680e-5, 6.11018163330713},
	// Lunisolar semidiurnal.
	{"K2", 1.458423170936480e-4, 3.48760000133470},
	// Larger lunar elliptic diurnal.
	{"Q1", 6.495854101911592e-5, 5.87771756907898},
	{"2N2", 1.352404965561499e-4, 4.08669963304672},
	{"MU2", 1.355937008185992e-4, 3.46311509135312},
	{"NU2", 1.382329038283892e-4, 5.42713670125784},
	{"L2", 1.431581055855200e-4, 0.553986501991483},
	{"T2", 1.452450074605617e-4, 5.284193133561309e-2},
	{"J1", 7.556036155661405e-5, 2.13702528377717},
	{"M1", 7.028195553703394e-5, 2.43657509963318},
	{"OO1", 7.824457306474201e-5, 1.92904612953059},
	{"RHO1", 6.531174528156522e-5, 5.25413302738539},

	// Long period.
	{"MF", 5.323414517918014e-6, 1.75604245565814},
	{"MM", 2.639203009790057e-6, 1.96402160990471},
	{"SSA", 3.982127607872015e-7, 3.48760000133470},

	// Shallow water constituents.
	{"M4", 2.810378051514600e-4, 3.46311509135312},
	{"MS4", 2.859630069085908e-4, 1.73155754567656},
	{"MN4", 2.783986021416699e-4, 1.49909348144841},
	{"M6", 4.215567077271900e-4, 5.19467263702969},
	{"M8", 5.620756103029200e-4, 0.643044875526663},
	{"MK3", 2.134400611225540e-4, 1.90456121954902},
	{"S6", 4.363323129985823e-4, 0.0},
	{"2SM2", 1.503693060899916e-4, 4.55162776150302},
	{"2MK3", 2.081166466046360e-4, 3.29011141748067},
}

//nolint:gochecknoglobals // Built once from catalogue.
var catalogueIndex = func() map[string]int {
	idx := make(map[string]int, len(catalogue))
	for i, c := range catalogue {
		idx[c.Name] = i
	}
	return idx
}()

// NumConstituents is the size of the constituent catalogue.
func NumConstituents() int {
	return len(catalogue)
}

// Catalogue returns a copy of the constituent catalogue in index order.
func Catalogue() []Constituent {
	out := make([]Constituent, len(catalogue))
	copy(out, catalogue)
	return out
}

// LookupConstituent returns the catalogue entry and its index for a name.
func LookupConstituent(name string) (Constituent, int, bool) {
	i, ok := catalogueIndex[name]
	if !ok {
		return Constituent{}, -1, false
	}
	return catalogue[i], i, true
}

// GetConstituentSpeed returns the angular speed (deg/hour) for a given constituent name.
func GetConstituentSpeed(name string) (float64, bool) {
	c, _, ok := LookupConstituent(name)
	if !ok {
		return 0, false
	}
	return c.SpeedDegPerHr(), true
}

// ComplexAmplitude is the in-phase/quadrature form of a constituent at a location.
type ComplexAmplitude struct {
	Re float64
	Im float64
}

// IsZero reports whether both parts are zero.
func (c ComplexAmplitude) IsZero() bool {
	return c.Re == 0 && c.Im == 0
}

// Amplitude returns the magnitude in meters.
func (c ComplexAmplitude) Amplitude() float64 {
	return math.Hypot(c.Re, c.Im)
}

// Phase returns the phase lag in radians, in the range [0, 2π).
func (c ComplexAmplitude) Phase() float64 {
	phase := math.Atan2(-c.Im, c.Re)
	if phase < 0 {
		phase += 2 * math.Pi
	}
	return phase
}

func (c ComplexAmplitude) String() string {
	return fmt.Sprintf("%.3f%+.3fi", c.Re, c.Im)
}

// CorrectedConstituent is a constituent whose nodal correction is already folded
// into amplitude and phase. Valid only inside the owning location's epoch.
type CorrectedConstituent struct {
	Name           string
	SpeedRadPerSec float64
	PhaseRad       float64
	AmplitudeM     float64
}

// NewCorrectedConstituentDeg builds a corrected constituent from degree-based values.
func NewCorrectedConstituentDeg(name string, speedDegPerHr, phaseDeg, amplitudeM float64) CorrectedConstituent {
	return CorrectedConstituent{
		Name:           name,
		SpeedRadPerSec: speedDegPerHr / 180 * math.Pi / 3600,
		PhaseRad:       phaseDeg / 180 * math.Pi,
		AmplitudeM:     amplitudeM,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
