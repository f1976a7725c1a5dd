package optimizers

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/optimize"
)

func TestBacktrackArmijo(t *testing.T) {
	fs := map[string]func(float64) float64{
		"quadratic": func(x float64) float64 { return (x - 2) * (x - 2) },
		"quartic":   func(x float64) float64 { return x * x * x * x },
		"cosine":    func(x float64) float64 { return math.Cos(3 * x) },
	}

	for name, f := range fs {
		for _, v := range []float64{-3, -0.5, 0.7, 4} {
			// derivative by central difference, as the direction only needs to be a descent
			g := (f(v+1e-6) - f(v-1e-6)) / 2e-6
			d := -g

			for _, s0 := range []float64{0.01, 1, 100} {
				for _, τ := range []float64{0.1, 0.5, 0.9} {
					const c = 0.5
					s, err := Backtrack(func(x float64) (float64, error) { return f(x), nil }, v, d, s0, τ, c)
					if err != nil {
						t.Fatal(err)
					}

					if s < 0 || s > s0 {
						t.Errorf("%s: Backtrack from v=%v, s=%v gave %v, outside of [0, s]", name, v, s0, s)
					}

					if f(v)-f(v+s*d) < s*(c*d*d) {
						t.Errorf("%s: Backtrack from v=%v, s=%v, τ=%v gave %v, failing the Armijo condition",
							name, v, s0, τ, s)
					}
				}
			}
		}
	}
}

func TestBacktrackTerminates(t *testing.T) {
	cases := map[string]func(float64) float64{
		"constant": func(float64) float64 { return 1 },
		"nan":      func(x float64) float64 { return math.NaN() },
		"wrong":    func(x float64) float64 { return x },
	}

	for name, f := range cases {
		calls := 0
		s, err := Backtrack(func(x float64) (float64, error) {
			calls++
			return f(x), nil
		}, 1, 1, 1, 0.5, 0.5)

		if err != nil {
			t.Fatal(err)
		}

		if s != 0 {
			t.Errorf("%s: Backtrack gave %v, want 0", name, s)
		}

		if calls > maxShrinks+1 {
			t.Errorf("%s: Backtrack evaluated %d times, more than %d", name, calls, maxShrinks+1)
		}
	}

	s, err := Backtrack(func(x float64) (float64, error) { return x * x, nil }, 1, 0, 1, 0.5, 0.5)
	if err != nil || s != 0 {
		t.Errorf("zero direction: Backtrack gave (%v, %v), want (0, nil)", s, err)
	}
}

// runWolfe drives the linesearcher along φ until it finishes, returning the final step.
func runWolfe(w *strongWolfe, φ func(a float64) (f, g float64), step float64) (float64, int, error) {
	f, g := φ(0)
	w.Init(f, g, step)

	evals := 0
	for {
		f, g = φ(step)
		evals++

		op, next, err := w.Iterate(f, g)
		if err != nil {
			return 0, evals, err
		} else if op == optimize.MajorIteration {
			return next, evals, nil
		}

		step = next
	}
}

func TestStrongWolfe(t *testing.T) {
	quadratic := func(a float64) (float64, float64) { return (a - 3) * (a - 3), 2 * (a - 3) }
	curved := func(a float64) (float64, float64) {
		return math.Exp(a) - 5*a, math.Exp(a) - 5
	}

	cases := []struct {
		name string
		φ    func(float64) (float64, float64)
		step float64
	}{
		{"quadratic/accept", quadratic, 1},
		{"quadratic/zoom", quadratic, 10},
		{"quadratic/expand", quadratic, 0.01},
		{"curved/zoom", curved, 5},
		{"curved/expand", curved, 0.001},
	}

	for _, c := range cases {
		w := newStrongWolfe(10, 10)
		step, evals, err := runWolfe(w, c.φ, c.step)
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}

		f0, g0 := c.φ(0)
		f, _ := c.φ(step)
		if f > f0+wolfeC1*step*g0 {
			t.Errorf("%s: step %v fails sufficient decrease (f = %v, f0 = %v)", c.name, step, f, f0)
		}

		if evals > 21 {
			t.Errorf("%s: took %d evaluations", c.name, evals)
		}
	}

	// the cubic is exact for a quadratic
	if step, _, _ := runWolfe(newStrongWolfe(10, 10), quadratic, 10); math.Abs(step-3) > 1e-12 {
		t.Errorf("quadratic from step 10: got %v, want 3", step)
	}
}

func TestStrongWolfeNoDecrease(t *testing.T) {
	// claims a descent direction, but only ever increases
	rising := func(a float64) (float64, float64) {
		if a == 0 {
			return 0, -1
		}
		return 10 + a, 1
	}

	if _, _, err := runWolfe(newStrongWolfe(10, 3), rising, 1); err != errNoDecrease {
		t.Errorf("got error %v, want %v", err, errNoDecrease)
	}
}

func TestStrongWolfeSettlesOnBestPoint(t *testing.T) {
	// strictly decreasing with a derivative too steep for the curvature condition, so that only
	// the bound on bracketing steps ends the search
	steep := func(a float64) (float64, float64) { return -a, -1 }

	step, _, err := runWolfe(newStrongWolfe(3, 10), steep, 1)
	if err != nil {
		t.Fatal(err)
	}

	if step != 4 {
		t.Errorf("got step %v, want 4 (the furthest point evaluated)", step)
	}
}

func TestInterpolateStaysInside(t *testing.T) {
	cases := []struct{ lo, hi point }{
		{point{0, 1, -1}, point{1, 2, 3}},
		{point{2, 0, 1}, point{0, 3, -5}},
		{point{0, 1, -1}, point{1, math.Inf(1), math.NaN()}},
		{point{1, 1, -1}, point{1, 1, -1}},
	}

	for _, c := range cases {
		a := interpolate(c.lo, c.hi)
		low, high := math.Min(c.lo.step, c.hi.step), math.Max(c.lo.step, c.hi.step)
		if a < low || a > high || math.IsNaN(a) {
			t.Errorf("interpolate(%v, %v) = %v, outside of [%v, %v]", c.lo, c.hi, a, low, high)
		}
	}
}
