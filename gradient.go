package neuroflow

import (
	"github.com/pkg/errors"
	"github.com/sharnoff/neuroflow/utils"
	"gonum.org/v1/gonum/mat"
)

// DefaultDelta is the finite-difference step used when Settings.Approximation doesn't give one.
const DefaultDelta float64 = 1e-6

// analyticGradient returns the derivative of errorVector with respect to the weight at e,
// without perturbing it. For every sample, the sensitivity of the output to the weight is carried
// forward from the weight's layer by the chain rule:
//
//	dz = a_m · I        (I is zero except for a 1 at the weight)
//	da = act'(z_k) ⊙ dz
//	dz = da · W_k       (for each following layer)
//
// and is then multiplied by (prediction - target). The samples are reduced by summation.
//
// analyticGradient is only defined for feed-forward networks.
func (ev *evaluator) analyticGradient(ws Weights, e Entry) []float64 {
	terms := make([][]float64, len(ev.xs))
	utils.MultiThread(0, len(ev.xs), func(i int) {
		terms[i] = ev.sampleGradient(ws, e, i)
	}, 1, ev.threads)

	return sum(terms, ev.outputSize())
}

func (ev *evaluator) sampleGradient(ws Weights, e Entry, i int) []float64 {
	zs := flow(ev.layers, ws, ev.xs[i])
	last := len(ev.layers) - 1

	rows, cols := ws[e.Matrix].Dims()
	indicator := mat.NewDense(rows, cols, nil)
	indicator.Set(e.Row, e.Col, 1)

	dz := new(mat.Dense)
	dz.Mul(activate(ev.layers[e.Matrix], zs[e.Matrix]), indicator)

	var da *mat.Dense
	for k := e.Matrix + 1; k <= last; k++ {
		l, z := ev.layers[k], zs[k]

		da = new(mat.Dense)
		da.Apply(func(_, j int, v float64) float64 { return l.deriv(z.At(0, j)) * v }, dz)

		if k < last {
			dz = new(mat.Dense)
			dz.Mul(da, ws[k])
		}
	}

	prediction := activate(ev.layers[last], zs[last])
	g := make([]float64, ev.outputSize())
	for j := range g {
		g[j] = (prediction.At(0, j) - ev.ys[i].At(0, j)) * da.At(0, j)
	}

	return g
}

// approximateGradient returns the central finite-difference estimate of the derivative of
// errorVector with respect to the weight at e:
//
//	(E(v + Δ) - E(v - Δ)) / 2Δ
//
// The weight is restored to its original value before returning.
func (ev *evaluator) approximateGradient(ws Weights, e Entry, delta float64) ([]float64, error) {
	v := ws.At(e)

	var minus, plus []float64
	if err := ws.perturb(e, v-delta, func() error {
		minus = ev.errorVector(ws)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := ws.perturb(e, v+delta, func() error {
		plus = ev.errorVector(ws)
		return nil
	}); err != nil {
		return nil, err
	}

	g := make([]float64, len(plus))
	for j := range g {
		g[j] = (plus[j] - minus[j]) / (2 * delta)
	}

	return g, nil
}

// secondDerivative approximates the second derivative of errorVector with respect to the weight
// at e by taking the central difference of approximateGradient.
func (ev *evaluator) secondDerivative(ws Weights, e Entry, delta float64) ([]float64, error) {
	v := ws.At(e)

	var minus, plus []float64
	if err := ws.perturb(e, v-delta, func() (err error) {
		minus, err = ev.approximateGradient(ws, e, delta)
		return
	}); err != nil {
		return nil, errors.Wrapf(err, "Lower probe of second derivative failed\n")
	}

	if err := ws.perturb(e, v+delta, func() (err error) {
		plus, err = ev.approximateGradient(ws, e, delta)
		return
	}); err != nil {
		return nil, errors.Wrapf(err, "Upper probe of second derivative failed\n")
	}

	g := make([]float64, len(plus))
	for j := range g {
		g[j] = (plus[j] - minus[j]) / (2 * delta)
	}

	return g, nil
}
