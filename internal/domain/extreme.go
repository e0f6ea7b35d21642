package domain

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Extreme describes a high or low tide. Two extremes are the same event iff their times are equal.
type Extreme struct {
	Time    time.Time
	HeightM float64
	Maximum bool          // True for high tide, false for low tide.
	Error   time.Duration // Signed size of the last search step.
	Steps   int           // Number of search iterations.
}

// Kind returns "High" or "Low".
func (e Extreme) Kind() string {
	if e.Maximum {
		return "High"
	}
	return "Low"
}

// Compare orders extremes by time.
func (e Extreme) Compare(o Extreme) int {
	return e.Time.Compare(o.Time)
}

// Equal reports whether both extremes occur at the same instant.
func (e Extreme) Equal(o Extreme) bool {
	return e.Time.Equal(o.Time)
}

func (e Extreme) String() string {
	return fmt.Sprintf("%-4s: %s %+.2f (%v %d)", e.Kind(), e.Time.UTC().Format(time.RFC3339), e.HeightM, e.Error, e.Steps)
}

// SearchOptions bounds the extreme search. Times are handled as whole multiples
// of Resolution counted from the harmonics reference.
type SearchOptions struct {
	Resolution time.Duration
	MaxError   time.Duration
	MaxSteps   int
}

// tickEval evaluates derivatives at a tick offset from the harmonics reference.
type tickEval struct {
	h   Harmonics
	res time.Duration
}

func (e tickEval) at(tick int64) Derivatives {
	return e.h.evaluateSeconds(float64(tick) * e.res.Seconds())
}

func (e tickEval) time(tick int64) time.Time {
	return e.h.Reference.Add(time.Duration(tick) * e.res)
}

// FindExtreme searches [start, start+length] for a point where the first
// derivative vanishes. It returns false when the derivative has the same sign at
// both ends. Newton-Raphson steps on the derivative are used; a step that leaves
// the bracket (or cannot be taken because the second derivative is zero) falls
// back to bisection.
func FindExtreme(h Harmonics, start time.Time, length time.Duration, opts SearchOptions) (Extreme, bool) {
	res := opts.Resolution
	if res <= 0 {
		res = time.Second
	}
	a := int64(start.Sub(h.Reference) / res)
	return findExtremeTicks(tickEval{h: h, res: res}, a, int64(length/res), int64(opts.MaxError/res), opts.MaxSteps)
}

func findExtremeTicks(e tickEval, start, length, maxError int64, maxSteps int) (Extreme, bool) {
	a := start
	b := start + length

	fa := e.at(a)
	// Lower side of the interval is the extreme.
	if fa.DHeight == 0 {
		return e.extreme(a, fa, 0, 0), true
	}

	fb := e.at(b)
	// Upper side of the interval is the extreme.
	if fb.DHeight == 0 {
		return e.extreme(b, fb, 0, 0), true
	}

	// Both sides slope the same way: no sign change, so no extreme assumed in between.
	if fa.DHeight*fb.DHeight > 0 {
		return Extreme{}, false
	}

	var x int64
	xn := (a + b) / 2
	var fx Derivatives

	steps := 0
	for {
		x = xn
		fx = e.at(x)

		// Keep the sign change inside [a, b].
		if fa.DHeight*fx.DHeight < 0 {
			b = x
		} else {
			a = x
			fa = fx
		}

		next, ok := newtonStep(x, fx, e.res)
		if !ok || next < a || next > b {
			next = (a + b) / 2
		}
		xn = next

		steps++
		if abs64(xn-x) <= maxError || steps >= maxSteps {
			break
		}
	}

	fx = e.at(xn)
	return e.extreme(xn, fx, xn-x, steps), true
}

// newtonStep proposes x - f'(x)/f''(x) in ticks, truncated toward zero.
func newtonStep(x int64, fx Derivatives, res time.Duration) (int64, bool) {
	if fx.D2Height == 0 {
		return 0, false
	}
	delta := fx.DHeight / fx.D2Height / res.Seconds()
	if math.IsNaN(delta) || math.IsInf(delta, 0) || math.Abs(delta) > math.MaxInt64/2 {
		return 0, false
	}
	return x - int64(delta), true
}

func (e tickEval) extreme(tick int64, d Derivatives, errTicks int64, steps int) Extreme {
	return Extreme{
		Time:    e.time(tick),
		HeightM: d.Height,
		Maximum: d.D2Height < 0,
		Error:   time.Duration(errTicks) * e.res,
		Steps:   steps,
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// FindExtremes searches [start, end) of src tile by tile. Terms are taken once at start.
func FindExtremes(src ConstituentSource, start, end time.Time, tile time.Duration, opts SearchOptions) []Extreme {
	return tileExtremes(src.TermsAt(start), start, end, tile, opts)
}

// tileExtremes runs FindExtreme over consecutive tiles of [start, end) and returns
// the results ordered by time, keeping the first extreme found for any instant.
func tileExtremes(h Harmonics, start, end time.Time, tile time.Duration, opts SearchOptions) []Extreme {
	res := opts.Resolution
	if res <= 0 {
		res = time.Second
	}
	e := tickEval{h: h, res: res}

	from := int64(start.Sub(h.Reference) / res)
	to := int64(end.Sub(h.Reference) / res)
	step := int64(tile / res)
	if step <= 0 {
		return []Extreme{}
	}

	found := make([]Extreme, 0, (to-from)/step+1)
	for t := from; t < to; t += step {
		if ex, ok := findExtremeTicks(e, t, min(step, to-t), int64(opts.MaxError/res), opts.MaxSteps); ok {
			found = append(found, ex)
		}
	}
	return sortUnique(found)
}

// sortUnique orders extremes by time and drops later duplicates of the same instant.
func sortUnique(extremes []Extreme) []Extreme {
	slices.SortStableFunc(extremes, Extreme.Compare)
	return slices.CompactFunc(extremes, Extreme.Equal)
}

// FilterFalseExtremes drops candidates that are not the true local extreme within
// window on either side: a maximum lower than any neighbor, or a minimum higher
// than any neighbor. Input must be time ordered.
func FilterFalseExtremes(extremes []Extreme, window time.Duration) []Extreme {
	res := make([]Extreme, 0, len(extremes))
	for i, ex := range extremes {
		include := true
		for j := i + 1; j < len(extremes) && ex.Time.Add(window).After(extremes[j].Time); j++ {
			if dominated(ex, extremes[j]) {
				include = false
			}
		}
		for j := i - 1; j >= 0 && ex.Time.Add(-window).Before(extremes[j].Time); j-- {
			if dominated(ex, extremes[j]) {
				include = false
			}
		}
		if include {
			res = append(res, ex)
		}
	}
	return res
}

func dominated(ex, other Extreme) bool {
	return (ex.Maximum && ex.HeightM < other.HeightM) || (!ex.Maximum && ex.HeightM > other.HeightM)
}
