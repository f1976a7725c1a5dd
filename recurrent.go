package neuroflow

import (
	"gonum.org/v1/gonum/mat"
)

// memory is the state carried between the time steps of a sequence. Both slices are indexed by
// layer, with nil for layers that are not Recurrent.
type memory struct {
	// cells are the memory cells of each recurrent layer
	cells []*mat.Dense

	// outputs are the outputs of each recurrent layer at the previous time step
	outputs []*mat.Dense
}

func newMemory(layers []Layer) *memory {
	m := &memory{
		cells:   make([]*mat.Dense, len(layers)),
		outputs: make([]*mat.Dense, len(layers)),
	}

	for i, l := range layers {
		if l.kind == RecurrentLayer {
			m.cells[i] = mat.NewDense(1, l.neurons, nil)
			m.outputs[i] = mat.NewDense(1, l.neurons, nil)
		}
	}

	return m
}

// reset sets every cell and previous output back to zero.
func (m *memory) reset() {
	for i := range m.cells {
		if m.cells[i] != nil {
			m.cells[i].Zero()
			m.outputs[i].Zero()
		}
	}
}

// gate runs a single time step of the recurrent layer at index k, given its input z and its
// compressed weight matrix w. The layer's memory cell and previous output are updated.
func (m *memory) gate(k int, l Layer, w *mat.Dense, z *mat.Dense) *mat.Dense {
	n := l.neurons
	prev := m.outputs[k]
	cell := m.cells[k]

	subIn := w.Slice(0, n, 0, n)
	subGateIn := w.Slice(0, n, n, 2*n)
	subGateOut := w.Slice(0, n, 2*n, 3*n)

	var netIn, gateIn, gateOut mat.Dense

	netIn.Mul(prev, subIn)
	netIn.Add(&netIn, z)
	netIn.Apply(func(_, _ int, v float64) float64 { return l.activate(v) }, &netIn)

	gateIn.Mul(prev, subGateIn)
	gateIn.Add(&gateIn, z)
	gateIn.Apply(func(_, _ int, v float64) float64 { return sigmoid(v) }, &gateIn)

	gateOut.Mul(prev, subGateOut)
	gateOut.Add(&gateOut, z)
	gateOut.Apply(func(_, _ int, v float64) float64 { return sigmoid(v) }, &gateOut)

	netIn.MulElem(&netIn, &gateIn)
	cell.Add(&netIn, cell)

	out := activate(l, cell)
	out.MulElem(out, &gateOut)

	m.outputs[k] = out
	return out
}

// step propagates a single element of a sequence through the network, advancing the memory of
// each recurrent layer. rec is given by recurrentIndexes.
func step(layers []Layer, rec []int, ws Weights, mem *memory, x *mat.Dense) *mat.Dense {
	z := x
	last := len(layers) - 1

	for k := 0; ; k++ {
		var a *mat.Dense
		if layers[k].kind == RecurrentLayer {
			a = mem.gate(k, layers[k], ws[rec[k]], z)
		} else {
			a = activate(layers[k], z)
		}

		if k == last {
			return a
		}

		next := new(mat.Dense)
		next.Mul(a, ws[k])
		z = next
	}
}

// unfold resets the memory and then evaluates each element of the sequence in order, returning
// one output per element.
func unfold(layers []Layer, rec []int, ws Weights, mem *memory, xs []*mat.Dense) []*mat.Dense {
	mem.reset()

	outs := make([]*mat.Dense, len(xs))
	for t, x := range xs {
		outs[t] = step(layers, rec, ws, mem, x)
	}

	return outs
}
