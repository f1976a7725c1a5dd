package neuroflow

import (
	"math"
	"math/rand"
)

// The activators package imports this one, so the tests define their own.

type testSigmoid struct{}

func (testSigmoid) TypeString() string      { return "test-sigmoid" }
func (testSigmoid) Value(x float64) float64 { return sigmoid(x) }
func (testSigmoid) Deriv(x float64) float64 { v := sigmoid(x); return v * (1 - v) }

type testTanh struct{}

func (testTanh) TypeString() string      { return "test-tanh" }
func (testTanh) Value(x float64) float64 { return math.Tanh(x) }
func (testTanh) Deriv(x float64) float64 { v := math.Tanh(x); return 1 - v*v }

// testScaled carries a parameter, to check that Stateful Activators are saved.
type testScaled float64

func (t *testScaled) TypeString() string      { return "test-scaled" }
func (t *testScaled) Value(x float64) float64 { return float64(*t) * x }
func (t *testScaled) Deriv(x float64) float64 { return float64(*t) }
func (t *testScaled) Get() interface{}        { return *t }
func (t *testScaled) Blank() interface{}      { return t }

func init() {
	list := []func() Activator{
		func() Activator { return testSigmoid{} },
		func() Activator { return testTanh{} },
		func() Activator { s := testScaled(1); return &s },
	}

	for _, f := range list {
		if err := RegisterActivator(f); err != nil {
			panic(err)
		}
	}
}

// randInit fills weights uniformly in [-1, 1) from a seeded source.
type randInit struct {
	rng *rand.Rand
}

func seeded(seed int64) randInit {
	return randInit{rand.New(rand.NewSource(seed))}
}

func (r randInit) Set(rows, cols int, ws []float64) {
	for i := range ws {
		ws[i] = 2*r.rng.Float64() - 1
	}
}

// sweepOptimizer runs the training loop with a fixed sweep.
type sweepOptimizer struct {
	sweep func(*Session, int) error
}

func (o sweepOptimizer) TypeString() string { return "test-sweep" }

func (o sweepOptimizer) Check(s Settings, recurrent bool) error { return nil }

func (o sweepOptimizer) Minimize(sess *Session) (State, error) {
	return sess.Loop(func(iter int) error { return o.sweep(sess, iter) })
}

func feedForward() []Layer {
	return []Layer{Input(3), Hidden(4, testTanh{}), Hidden(2, testSigmoid{}), Output(2, testSigmoid{})}
}

func recurrentLayers() []Layer {
	return []Layer{Input(2), Recurrent(3, testTanh{}), Output(1, testSigmoid{})}
}

func randomSamples(rng *rand.Rand, n, in, out int) (xs, ys [][]float64) {
	xs, ys = make([][]float64, n), make([][]float64, n)
	for i := range xs {
		xs[i], ys[i] = make([]float64, in), make([]float64, out)
		for j := range xs[i] {
			xs[i][j] = 2*rng.Float64() - 1
		}
		for j := range ys[i] {
			ys[i][j] = rng.Float64()
		}
	}

	return
}
