package neuroflow

import (
	"math"
	"math/rand"
	"testing"
)

const gradTol float64 = 1e-4

func TestAnalyticMatchesApproximate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 3; trial++ {
		layers := feedForward()
		ws := NewWeights(layers, seeded(int64(trial)))
		xs, ys := randomSamples(rng, 5, 3, 2)
		ev := newEvaluator(layers, xs, ys, 0)

		ws.Each(func(e Entry) error {
			analytic := ev.analyticGradient(ws, e)
			approx, err := ev.approximateGradient(ws, e, DefaultDelta)
			if err != nil {
				t.Fatal(err)
			}

			for j := range analytic {
				if math.Abs(analytic[j]-approx[j]) > gradTol {
					t.Errorf("trial %d, %v, output %d: analytic %v, approximate %v", trial, e, j, analytic[j], approx[j])
				}
			}

			return nil
		})
	}
}

func TestSecondDerivative(t *testing.T) {
	const h = 1e-4
	layers := feedForward()
	ws := NewWeights(layers, seeded(9))
	xs, ys := randomSamples(rand.New(rand.NewSource(9)), 4, 3, 2)
	ev := newEvaluator(layers, xs, ys, 0)

	for _, e := range []Entry{{0, 0, 0}, {1, 3, 1}, {2, 1, 0}} {
		second, err := ev.secondDerivative(ws, e, 1e-3)
		if err != nil {
			t.Fatal(err)
		}

		v := ws.At(e)
		ws.Set(e, v+h)
		plus := ev.analyticGradient(ws, e)
		ws.Set(e, v-h)
		minus := ev.analyticGradient(ws, e)
		ws.Set(e, v)

		for j := range second {
			want := (plus[j] - minus[j]) / (2 * h)
			if math.Abs(second[j]-want) > gradTol {
				t.Errorf("%v, output %d: second derivative %v, want %v", e, j, second[j], want)
			}
		}
	}
}

func TestErrorVector(t *testing.T) {
	// a single linear layer with known weights
	layers := []Layer{Input(2), Output(1, &identity)}
	ws := NewWeights(layers, nil)
	ws[0].Set(0, 0, 1)
	ws[0].Set(1, 0, 2)

	xs := [][]float64{{1, 1}, {0, 1}}
	ys := [][]float64{{1}, {0}}
	ev := newEvaluator(layers, xs, ys, 2)

	// predictions 3 and 2: 0.5·(2² + 2²)
	if e := ev.errorVector(ws); len(e) != 1 || e[0] != 4 {
		t.Errorf("errorVector = %v, want [4]", e)
	}
}

var identity = testScaled(1)
