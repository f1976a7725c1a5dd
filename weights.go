package neuroflow

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Weights is the set of matrices defining every connection of a Network. Index i, for i less
// than len(layers)-1, connects layer i to layer i+1 and has shape (neurons_i × neurons_i+1).
// After those, each Recurrent layer (in order) has one compressed matrix of shape (n × 3n),
// whose column blocks are the input transform, the input gate and the output gate.
type Weights []*mat.Dense

// Shape is the dimensions of a single weight matrix.
type Shape struct {
	Rows, Cols int
}

// Entry addresses a single weight.
type Entry struct {
	Matrix, Row, Col int
}

// Shapes returns the shapes of the weight matrices required by the layers. The layers are
// assumed to be valid, as given by CheckLayers.
func Shapes(layers []Layer) []Shape {
	shapes := make([]Shape, 0, len(layers))
	for i := 0; i < len(layers)-1; i++ {
		shapes = append(shapes, Shape{layers[i].neurons, layers[i+1].neurons})
	}

	for _, l := range layers {
		if l.kind == RecurrentLayer {
			shapes = append(shapes, Shape{l.neurons, 3 * l.neurons})
		}
	}

	return shapes
}

// recurrentIndexes returns, for each layer, the index of its compressed matrix in Weights, or -1
// if the layer is not Recurrent.
func recurrentIndexes(layers []Layer) []int {
	idx := make([]int, len(layers))
	next := len(layers) - 1
	for i, l := range layers {
		if l.kind == RecurrentLayer {
			idx[i] = next
			next++
		} else {
			idx[i] = -1
		}
	}

	return idx
}

// NewWeights allocates weights for the layers, filling each matrix with init.
func NewWeights(layers []Layer, init Initializer) Weights {
	shapes := Shapes(layers)
	ws := make(Weights, len(shapes))
	for i, s := range shapes {
		data := make([]float64, s.Rows*s.Cols)
		if init != nil {
			init.Set(s.Rows, s.Cols, data)
		}

		ws[i] = mat.NewDense(s.Rows, s.Cols, data)
	}

	return ws
}

// Check returns a *ConfigurationError if the weights do not have the shapes required by the
// layers.
func (ws Weights) Check(layers []Layer) error {
	shapes := Shapes(layers)
	if len(ws) != len(shapes) {
		return configErrorf("expected %d weight matrices, got %d", len(shapes), len(ws))
	}

	for i, s := range shapes {
		if ws[i] == nil {
			return configErrorf("weight matrix %d is nil", i)
		}

		if r, c := ws[i].Dims(); r != s.Rows || c != s.Cols {
			return configErrorf("weight matrix %d has shape %dx%d, expected %dx%d", i, r, c, s.Rows, s.Cols)
		}
	}

	return nil
}

// Clone returns a deep copy of the weights.
func (ws Weights) Clone() Weights {
	c := make(Weights, len(ws))
	for i, m := range ws {
		c[i] = mat.DenseCopyOf(m)
	}

	return c
}

// Size returns the total number of weights.
func (ws Weights) Size() int {
	size := 0
	for _, m := range ws {
		r, c := m.Dims()
		size += r * c
	}

	return size
}

// At returns the value of the weight at e.
func (ws Weights) At(e Entry) float64 {
	return ws[e.Matrix].At(e.Row, e.Col)
}

// Set changes the value of the weight at e.
func (ws Weights) Set(e Entry, v float64) {
	ws[e.Matrix].Set(e.Row, e.Col, v)
}

// Each calls f for every entry, in the order of Flatten: matrix by matrix, each row-major. Each
// stops at the first error returned by f.
func (ws Weights) Each(f func(Entry) error) error {
	for m := range ws {
		rows, cols := ws[m].Dims()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if err := f(Entry{m, r, c}); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// perturb sets the weight at e to v for the duration of fn. The original value is restored on
// every exit path, including a panic inside fn.
func (ws Weights) perturb(e Entry, v float64, fn func() error) error {
	m := ws[e.Matrix]
	original := m.At(e.Row, e.Col)
	m.Set(e.Row, e.Col, v)
	defer m.Set(e.Row, e.Col, original)

	return fn()
}

// Flatten returns every weight in a single slice, matrix by matrix, each in row-major order.
func (ws Weights) Flatten() []float64 {
	flat := make([]float64, 0, ws.Size())
	for _, m := range ws {
		raw := m.RawMatrix()
		for r := 0; r < raw.Rows; r++ {
			flat = append(flat, raw.Data[r*raw.Stride:r*raw.Stride+raw.Cols]...)
		}
	}

	return flat
}

// SetFlat overwrites the weights in place with the values in flat, which must be in the order
// given by Flatten.
func (ws Weights) SetFlat(flat []float64) error {
	if len(flat) != ws.Size() {
		return SizeMismatchError{ws.Size(), len(flat), "flattened weights"}
	}

	i := 0
	for _, m := range ws {
		raw := m.RawMatrix()
		for r := 0; r < raw.Rows; r++ {
			copy(raw.Data[r*raw.Stride:r*raw.Stride+raw.Cols], flat[i:i+raw.Cols])
			i += raw.Cols
		}
	}

	return nil
}

// Unflatten reconstructs the weights for the layers from a slice given by Flatten.
func Unflatten(layers []Layer, flat []float64) (Weights, error) {
	ws := NewWeights(layers, nil)
	if err := ws.SetFlat(flat); err != nil {
		return nil, errors.Wrapf(err, "Can't unflatten weights\n")
	}

	return ws, nil
}
