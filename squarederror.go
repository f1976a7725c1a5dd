package neuroflow

import (
	"github.com/sharnoff/neuroflow/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// evaluator computes the error of a fixed set of samples for any weights. For recurrent networks
// the samples are the elements of a single sequence, in order.
type evaluator struct {
	layers    []Layer
	rec       []int
	recurrent bool

	xs, ys []*mat.Dense

	// the maximum number of goroutines used to compute independent samples
	threads int
}

func newEvaluator(layers []Layer, xs, ys [][]float64, threads int) *evaluator {
	return &evaluator{
		layers:    layers,
		rec:       recurrentIndexes(layers),
		recurrent: isRecurrent(layers),
		xs:        rows(xs),
		ys:        rows(ys),
		threads:   threads,
	}
}

func (ev *evaluator) outputSize() int {
	return ev.layers[len(ev.layers)-1].neurons
}

// halfSquared returns 0.5·(prediction - target)² for each value.
func halfSquared(prediction, target *mat.Dense) []float64 {
	_, n := prediction.Dims()
	e := make([]float64, n)
	for j := range e {
		d := prediction.At(0, j) - target.At(0, j)
		e[j] = 0.5 * d * d
	}

	return e
}

// sum adds the terms elementwise. Every term must have length n.
func sum(terms [][]float64, n int) []float64 {
	total := make([]float64, n)
	for _, t := range terms {
		floats.Add(total, t)
	}

	return total
}

// mean returns the average of the values.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return floats.Sum(values) / float64(len(values))
}

// errorVector returns the squared error summed over every sample, for each output value.
func (ev *evaluator) errorVector(ws Weights) []float64 {
	if ev.recurrent {
		outs := unfold(ev.layers, ev.rec, ws, newMemory(ev.layers), ev.xs)

		terms := make([][]float64, len(outs))
		for t := range outs {
			terms[t] = halfSquared(outs[t], ev.ys[t])
		}

		return sum(terms, ev.outputSize())
	}

	// each sample only writes to its own slot, so no locking is needed
	terms := make([][]float64, len(ev.xs))
	utils.MultiThread(0, len(ev.xs), func(i int) {
		terms[i] = halfSquared(predict(ev.layers, ws, ev.xs[i]), ev.ys[i])
	}, 1, ev.threads)

	return sum(terms, ev.outputSize())
}

// meanError is the mean over the output values of errorVector; this is the scalar minimized by
// training.
func (ev *evaluator) meanError(ws Weights) float64 {
	return mean(ev.errorVector(ws))
}
