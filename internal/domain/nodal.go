package domain

import (
	"fmt"
	"math"
	"time"
)

// NodalEpoch is the reference for the nodal astronomical arguments (Jan 1, 2000, 00:00 UTC).
var NodalEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

const millisPerCentury = 100 * 365.25 * 24 * 3600 * 1000

// NodalFactor holds the amplitude factor f and phase correction u (radians).
type NodalFactor struct {
	F float64
	U float64
}

func newDirectFactor(t1, t2 float64) NodalFactor {
	return NodalFactor{F: math.Sqrt(t1*t1 + t2*t2), U: math.Atan(t1 / t2)}
}

// NodalTable holds the nodal factors of every catalogue constituent for one instant.
// Aliased constituents share a slot with their source entry.
type NodalTable struct {
	values []NodalFactor
	slot   []int
}

// At returns the factor for the catalogue constituent at index i.
func (t *NodalTable) At(i int) NodalFactor {
	return t.values[t.slot[i]]
}

// Get returns the factor for a named constituent.
func (t *NodalTable) Get(name string) (NodalFactor, bool) {
	_, i, ok := LookupConstituent(name)
	if !ok {
		return NodalFactor{}, false
	}
	return t.At(i), true
}

// SharesEntry reports whether two constituents reference the same table entry.
func (t *NodalTable) SharesEntry(a, b string) bool {
	_, i, okA := LookupConstituent(a)
	_, j, okB := LookupConstituent(b)
	return okA && okB && t.slot[i] == t.slot[j]
}

// NodalCorrection provides per-instant nodal factors for the constituent catalogue.
type NodalCorrection interface {
	// Table returns the factors for every catalogue constituent at t.
	Table(t time.Time) *NodalTable
}

// IdentityNodalCorrection returns no correction (f=1, u=0) for every constituent.
type IdentityNodalCorrection struct{}

// Table returns a table of unity factors.
func (IdentityNodalCorrection) Table(_ time.Time) *NodalTable {
	n := len(catalogue)
	tab := &NodalTable{values: make([]NodalFactor, n), slot: make([]int, n)}
	for i := range tab.values {
		tab.values[i] = NodalFactor{F: 1, U: 0}
		tab.slot[i] = i
	}
	return tab
}

// AstronomicalNodalCorrection derives nodal factors from the mean longitudes of
// the lunar node and lunar perigee.
type AstronomicalNodalCorrection struct{}

// Table computes the nodal factors at t.
func (AstronomicalNodalCorrection) Table(t time.Time) *NodalTable {
	return ComputeNodalCorrections(t)
}

// nodalArgs holds the trigonometric terms of N (lunar node) and P (lunar perigee).
type nodalArgs struct {
	sinN, cosN     float64
	sin2N, cos2N   float64
	sin3N, cos3N   float64
	sinP, cosP     float64
	sin2P, cos2P   float64
	sinPN, cosPN   float64
	sin2PN, cos2PN float64
}

// AstronomicalArguments holds the slowly varying lunar angles in radians, within [0, 2π).
type AstronomicalArguments struct {
	N float64 // Mean longitude of lunar ascending node.
	P float64 // Mean longitude of lunar perigee.
}

// CalculateAstronomicalArguments computes N and P at t from cubic polynomials in
// Julian centuries since NodalEpoch (Meeus).
func CalculateAstronomicalArguments(t time.Time) AstronomicalArguments {
	tc := float64(t.Sub(NodalEpoch).Milliseconds()) / millisPerCentury

	n := ((2.22222e-6*tc+2.0708e-3)*tc-1934.136261)*tc + 125.04452
	p := ((-1.249172e-5*tc-1.032e-2)*tc+4069.0137287)*tc + 83.3532465

	return AstronomicalArguments{
		N: Deg2Rad(normalizeDeg(n)),
		P: Deg2Rad(normalizeDeg(p)),
	}
}

// normalizeDeg maps an angle into [0, 360).
func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}

func newNodalArgs(a AstronomicalArguments) *nodalArgs {
	n, p := a.N, a.P
	return &nodalArgs{
		sinN: math.Sin(n), cosN: math.Cos(n),
		sin2N: math.Sin(2 * n), cos2N: math.Cos(2 * n),
		sin3N: math.Sin(3 * n), cos3N: math.Cos(3 * n),
		sinP: math.Sin(p), cosP: math.Cos(p),
		sin2P: math.Sin(2 * p), cos2P: math.Cos(2 * p),
		sinPN: math.Sin(p - n), cosPN: math.Cos(p - n),
		sin2PN: math.Sin(2*p - n), cos2PN: math.Cos(2*p - n),
	}
}

// ComputeNodalCorrections evaluates the nodal rule table at t. Every entry is
// stored before any rule that depends on it is evaluated.
func ComputeNodalCorrections(t time.Time) *NodalTable {
	args := newNodalArgs(CalculateAstronomicalArguments(t))

	n := len(catalogue)
	tab := &NodalTable{values: make([]NodalFactor, 0, n), slot: make([]int, n)}
	for i := range tab.slot {
		tab.slot[i] = -1
	}

	for _, r := range nodalRules {
		_, idx, _ := LookupConstituent(r.name)
		switch r.kind {
		case ruleAlias:
			tab.slot[idx] = tab.slot[mustIndex(r.base)]
			continue
		case ruleUnity:
			tab.values = append(tab.values, NodalFactor{F: 1, U: 0})
		case ruleDirect:
			tab.values = append(tab.values, newDirectFactor(r.terms(args)))
		case rulePower:
			b := tab.At(mustIndex(r.base))
			k := float64(r.power)
			tab.values = append(tab.values, NodalFactor{F: math.Pow(b.F, k), U: k * b.U})
		case ruleProduct:
			b1 := tab.At(mustIndex(r.base))
			b2 := tab.At(mustIndex(r.other))
			tab.values = append(tab.values, NodalFactor{F: b1.F * b2.F, U: b1.U + b2.U})
		}
		tab.slot[idx] = len(tab.values) - 1
	}
	return tab
}

func mustIndex(name string) int {
	_, i, ok := LookupConstituent(name)
	if !ok {
		panic(fmt.Sprintf("nodal rule references unknown constituent %q", name))
	}
	return i
}

//nolint:gochecknoinits // Validates the static rule table against the catalogue.
func init() {
	seen := make(map[string]bool, len(nodalRules))
	for _, r := range nodalRules {
		if _, _, ok := LookupConstituent(r.name); !ok {
			panic(fmt.Sprintf("nodal rule for unknown constituent %q", r.name))
		}
		for _, dep := range []string{r.base, r.other} {
			if dep != "" && !seen[dep] {
				panic(fmt.Sprintf("nodal rule %q depends on %q before it is defined", r.name, dep))
			}
		}
		seen[r.name] = true
	}
	if len(seen) != len(catalogue) {
		panic(fmt.Sprintf("nodal rules cover %d of %d constituents", len(seen), len(catalogue)))
	}
}
