package optimizers

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/optimize"
)

const (
	// sufficient decrease
	wolfeC1 float64 = 1e-4
	// curvature
	wolfeC2 float64 = 0.9

	// the factor by which the step grows while bracketing
	wolfeGrowth float64 = 2

	// interpolated steps closer than this fraction of the interval to either end are replaced
	// by bisection
	wolfeSafeguard float64 = 0.1
)

var errNoDecrease = errors.New("Line search found no decrease before reaching its iteration limit")

type point struct {
	step, f, g float64
}

// strongWolfe is an optimize.Linesearcher finding a step that satisfies the strong Wolfe
// conditions, by first bracketing an acceptable interval and then zooming in on it with
// safeguarded cubic interpolation.
//
// The number of bracketing steps and of zoom steps are both bounded. When either bound is
// reached, the best point found so far is used instead, provided that it decreases the
// function.
type strongWolfe struct {
	maxSearch, maxZoom int

	origin point
	prev   point
	step   float64

	searchIter, zoomIter int

	zooming bool
	lo, hi  point

	// set when the search has ended at a point other than the most recently evaluated one,
	// which must then be evaluated again
	settling bool
}

func newStrongWolfe(maxSearch, maxZoom int) *strongWolfe {
	return &strongWolfe{maxSearch: maxSearch, maxZoom: maxZoom}
}

func (w *strongWolfe) Init(f, g, step float64) optimize.Operation {
	if step <= 0 {
		panic("strongWolfe: non-positive step")
	} else if g >= 0 {
		panic("strongWolfe: initial derivative is non-negative")
	}

	w.origin = point{0, f, g}
	w.prev = w.origin
	w.step = step
	w.searchIter, w.zoomIter = 0, 0
	w.zooming, w.settling = false, false

	return optimize.FuncEvaluation | optimize.GradEvaluation
}

func (w *strongWolfe) Iterate(f, g float64) (optimize.Operation, float64, error) {
	if w.settling {
		return optimize.MajorIteration, w.step, nil
	}

	cur := point{w.step, f, g}
	if w.zooming {
		return w.zoom(cur)
	}

	w.searchIter++
	if !w.sufficient(cur) || (w.searchIter > 1 && cur.f >= w.prev.f) {
		return w.startZoom(w.prev, cur)
	}

	if w.curvature(cur) {
		return optimize.MajorIteration, cur.step, nil
	} else if cur.g >= 0 {
		return w.startZoom(cur, w.prev)
	} else if w.searchIter >= w.maxSearch {
		return w.settle(cur)
	}

	w.prev = cur
	w.step = cur.step * wolfeGrowth
	return optimize.FuncEvaluation | optimize.GradEvaluation, w.step, nil
}

// sufficient returns whether p satisfies the sufficient decrease condition. Non-finite values
// never do.
func (w *strongWolfe) sufficient(p point) bool {
	return finite(p.f) && p.f <= w.origin.f+wolfeC1*p.step*w.origin.g
}

// curvature returns whether p satisfies the strong curvature condition.
func (w *strongWolfe) curvature(p point) bool {
	return math.Abs(p.g) <= -wolfeC2*w.origin.g
}

func (w *strongWolfe) startZoom(lo, hi point) (optimize.Operation, float64, error) {
	w.zooming = true
	w.lo, w.hi = lo, hi
	w.step = interpolate(lo, hi)
	return optimize.FuncEvaluation | optimize.GradEvaluation, w.step, nil
}

func (w *strongWolfe) zoom(cur point) (optimize.Operation, float64, error) {
	w.zoomIter++

	if !w.sufficient(cur) || cur.f >= w.lo.f {
		w.hi = cur
	} else {
		if w.curvature(cur) {
			return optimize.MajorIteration, cur.step, nil
		}

		if cur.g*(w.hi.step-w.lo.step) >= 0 {
			w.hi = w.lo
		}
		w.lo = cur
	}

	if w.zoomIter >= w.maxZoom {
		return w.settle(w.lo)
	}

	w.step = interpolate(w.lo, w.hi)
	return optimize.FuncEvaluation | optimize.GradEvaluation, w.step, nil
}

// settle ends the search at p, which must already have been evaluated.
func (w *strongWolfe) settle(p point) (optimize.Operation, float64, error) {
	if p.step == 0 {
		return 0, 0, errNoDecrease
	} else if p.step == w.step {
		return optimize.MajorIteration, p.step, nil
	}

	w.settling = true
	w.step = p.step
	return optimize.FuncEvaluation | optimize.GradEvaluation, w.step, nil
}

// interpolate returns the minimizer of the cubic matching the values and derivatives at both
// points, falling back to bisection if the cubic has no minimizer well inside the interval.
func interpolate(lo, hi point) float64 {
	mid := (lo.step + hi.step) / 2
	width := hi.step - lo.step
	if !finite(hi.f) || !finite(hi.g) || width == 0 {
		return mid
	}

	d1 := lo.g + hi.g - 3*(lo.f-hi.f)/(lo.step-hi.step)
	disc := d1*d1 - lo.g*hi.g
	if disc < 0 {
		return mid
	}

	d2 := math.Copysign(math.Sqrt(disc), width)
	step := hi.step - width*(hi.g+d2-d1)/(hi.g-lo.g+2*d2)

	// the interpolated step must be strictly inside the interval, away from its ends
	margin := wolfeSafeguard * math.Abs(width)
	low, high := math.Min(lo.step, hi.step), math.Max(lo.step, hi.step)
	if !finite(step) || step < low+margin || step > high-margin {
		return mid
	}

	return step
}
