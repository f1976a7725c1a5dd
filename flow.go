package neuroflow

import (
	"gonum.org/v1/gonum/mat"
)

// row copies the values into a new 1×n matrix.
func row(values []float64) *mat.Dense {
	data := make([]float64, len(values))
	copy(data, values)
	return mat.NewDense(1, len(data), data)
}

// rows converts each slice of values with row.
func rows(values [][]float64) []*mat.Dense {
	rs := make([]*mat.Dense, len(values))
	for i := range values {
		rs[i] = row(values[i])
	}

	return rs
}

// activate applies the layer's Activator to every element of z.
func activate(l Layer, z mat.Matrix) *mat.Dense {
	a := new(mat.Dense)
	a.Apply(func(_, _ int, v float64) float64 { return l.activate(v) }, z)
	return a
}

// flow propagates x through the feed-forward network, returning the input to each layer before
// its activation. The first element is x itself.
func flow(layers []Layer, ws Weights, x *mat.Dense) []*mat.Dense {
	zs := make([]*mat.Dense, len(layers))
	zs[0] = x

	for k := 0; k < len(layers)-1; k++ {
		a := activate(layers[k], zs[k])

		z := new(mat.Dense)
		z.Mul(a, ws[k])
		zs[k+1] = z
	}

	return zs
}

// predict returns the activated output of the feed-forward network for x.
func predict(layers []Layer, ws Weights, x *mat.Dense) *mat.Dense {
	zs := flow(layers, ws, x)
	last := len(layers) - 1
	return activate(layers[last], zs[last])
}
