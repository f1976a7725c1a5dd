package neuroflow

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// CorrectRound returns whether every output rounds (at 0.5) to its target. outs and targets
// must have the same length.
func CorrectRound(outs, targets []float64) bool {
	for i := range outs {
		r := 0.0
		if outs[i] >= 0.5 {
			r = 1
		}

		if r != targets[i] {
			return false
		}
	}

	return true
}

// CorrectHighest returns whether the largest output is at the same index as the largest target.
func CorrectHighest(outs, targets []float64) bool {
	return floats.MaxIdx(outs) == floats.MaxIdx(targets)
}

// CorrectWithin returns a function for Test that accepts outputs within tolerance of their
// targets.
func CorrectWithin(tolerance float64) func(outs, targets []float64) bool {
	return func(outs, targets []float64) bool {
		for i := range outs {
			if math.Abs(outs[i]-targets[i]) > tolerance {
				return false
			}
		}

		return true
	}
}

// Test evaluates the samples, given as to Train, returning the mean error and the fraction of
// samples that isCorrect accepts. For recurrent networks, every element of the sequence counts
// as a sample.
func (net *Network) Test(inputs, targets [][]float64, isCorrect func(outs, targets []float64) bool) (float64, float64, error) {
	if isCorrect == nil {
		return 0, 0, NilArgError{"isCorrect"}
	}

	net.mux.Lock()
	defer net.mux.Unlock()

	if err := checkData(net.layers, inputs, targets); err != nil {
		return 0, 0, errors.Wrapf(err, "Can't test network\n")
	}

	var outs []*mat.Dense
	if net.recurrent {
		outs = unfold(net.layers, net.rec, net.ws, net.mem, rows(inputs))
	} else {
		outs = make([]*mat.Dense, len(inputs))
		for i := range inputs {
			outs[i] = predict(net.layers, net.ws, row(inputs[i]))
		}
	}

	var correct int
	terms := make([][]float64, len(outs))
	for i, out := range outs {
		terms[i] = halfSquared(out, row(targets[i]))
		if isCorrect(mat.Row(nil, 0, out), targets[i]) {
			correct++
		}
	}

	cost := mean(sum(terms, net.OutputSize()))
	return cost, float64(correct) / float64(len(outs)), nil
}
