package neuroflow

import (
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Network is a layered neural network together with the Optimizer that trains it. All methods
// are safe for concurrent use; calls on a single Network are serialized.
type Network struct {
	mux sync.Mutex

	layers    []Layer
	rec       []int
	recurrent bool

	ws       Weights
	settings Settings
	opt      Optimizer

	// memory used by Evaluate and EvaluateSequence
	mem *memory
}

// New constructs a Network from the sequence of layers. If opt is nil, the default Optimizer is
// used (set by importing the subpackage "optimizers"). If wp is nil, the weights are filled by
// the default Initializer (set by importing the subpackage "initializers").
//
// New returns a *ConfigurationError if the layers are invalid, if the Optimizer does not support
// the Settings, or if the WeightProvider gives weights of the wrong shapes.
func New(layers []Layer, s Settings, opt Optimizer, wp WeightProvider) (*Network, error) {
	if err := CheckLayers(layers); err != nil {
		return nil, err
	}

	if err := s.check(layers); err != nil {
		return nil, err
	}

	if opt == nil {
		if opt = defaultOptimizer(); opt == nil {
			return nil, ErrNoOptimizer
		}
	}

	recurrent := isRecurrent(layers)
	if err := opt.Check(s, recurrent); err != nil {
		return nil, err
	}

	if wp == nil {
		init := defaultInitializer()
		if init == nil {
			return nil, ErrNoInitializer
		}

		wp = FromInitializer(init)
	}

	ws, err := wp.Weights(layers)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to get initial weights\n")
	}

	if err = ws.Check(layers); err != nil {
		return nil, err
	}

	ls := make([]Layer, len(layers))
	copy(ls, layers)

	return &Network{
		layers:    ls,
		rec:       recurrentIndexes(ls),
		recurrent: recurrent,
		ws:        ws,
		settings:  s.clone(),
		opt:       opt,
		mem:       newMemory(ls),
	}, nil
}

// Layers returns a copy of the layers of the Network.
func (net *Network) Layers() []Layer {
	ls := make([]Layer, len(net.layers))
	copy(ls, net.layers)
	return ls
}

// Weights returns a copy of the current weights of the Network.
func (net *Network) Weights() Weights {
	net.mux.Lock()
	defer net.mux.Unlock()

	return net.ws.Clone()
}

// Settings returns a copy of the Settings the Network was constructed with.
func (net *Network) Settings() Settings {
	return net.settings.clone()
}

func (net *Network) Optimizer() Optimizer {
	return net.opt
}

// Recurrent returns whether or not the Network has any Recurrent layers.
func (net *Network) Recurrent() bool {
	return net.recurrent
}

// InputSize returns the number of values expected as input.
func (net *Network) InputSize() int {
	return net.layers[0].neurons
}

// OutputSize returns the number of values given as output.
func (net *Network) OutputSize() int {
	return net.layers[len(net.layers)-1].neurons
}

// checkData returns an error if xs and ys are not a non-empty set of matching samples for the
// layers.
func checkData(layers []Layer, xs, ys [][]float64) error {
	if len(xs) == 0 {
		return ErrEmptyData
	} else if len(xs) != len(ys) {
		return SizeMismatchError{len(xs), len(ys), "number of targets"}
	}

	in, out := layers[0].neurons, layers[len(layers)-1].neurons
	for i := range xs {
		if len(xs[i]) != in {
			return errors.Wrapf(SizeMismatchError{in, len(xs[i]), "inputs"}, "Sample %d\n", i)
		} else if len(ys[i]) != out {
			return errors.Wrapf(SizeMismatchError{out, len(ys[i]), "targets"}, "Sample %d\n", i)
		}
	}

	return nil
}

// Train adjusts the weights of the Network to minimize the error of the samples, returning the
// state in which training finished. For feed-forward networks, each pair of inputs and targets
// is an independent sample; for recurrent networks, the inputs are a single sequence with one
// target per element.
//
// The weights are changed in place, and are kept even if training fails.
func (net *Network) Train(inputs, targets [][]float64) (State, error) {
	net.mux.Lock()
	defer net.mux.Unlock()

	if err := checkData(net.layers, inputs, targets); err != nil {
		return Running, errors.Wrapf(err, "Can't train network\n")
	}

	sess := newSession(net.layers, net.ws, net.settings, inputs, targets)
	state, err := net.opt.Minimize(sess)
	if err != nil {
		return state, errors.Wrapf(err, "Training with %q failed\n", net.opt.TypeString())
	}

	return state, nil
}

// Error returns the mean error of the samples with the current weights, given the same way as
// to Train.
func (net *Network) Error(inputs, targets [][]float64) (float64, error) {
	net.mux.Lock()
	defer net.mux.Unlock()

	if err := checkData(net.layers, inputs, targets); err != nil {
		return 0, errors.Wrapf(err, "Can't get error\n")
	}

	return newEvaluator(net.layers, inputs, targets, net.settings.Parallelism).meanError(net.ws), nil
}

// Evaluate returns the output of the Network for the input. Recurrent networks treat the input
// as a sequence of length one.
func (net *Network) Evaluate(input []float64) ([]float64, error) {
	net.mux.Lock()
	defer net.mux.Unlock()

	if len(input) != net.InputSize() {
		return nil, SizeMismatchError{net.InputSize(), len(input), "inputs"}
	}

	var out *mat.Dense
	if net.recurrent {
		out = unfold(net.layers, net.rec, net.ws, net.mem, []*mat.Dense{row(input)})[0]
	} else {
		out = predict(net.layers, net.ws, row(input))
	}

	return mat.Row(nil, 0, out), nil
}

// EvaluateSequence returns the output of the recurrent Network for each element of the
// sequence. The memory of each Recurrent layer is reset beforehand, so the result depends only
// on the inputs and the weights. It returns ErrNotRecurrent if the Network has no Recurrent
// layers.
func (net *Network) EvaluateSequence(inputs [][]float64) ([][]float64, error) {
	net.mux.Lock()
	defer net.mux.Unlock()

	if !net.recurrent {
		return nil, ErrNotRecurrent
	}

	for i := range inputs {
		if len(inputs[i]) != net.InputSize() {
			return nil, errors.Wrapf(SizeMismatchError{net.InputSize(), len(inputs[i]), "inputs"}, "Element %d\n", i)
		}
	}

	outs := unfold(net.layers, net.rec, net.ws, net.mem, rows(inputs))

	values := make([][]float64, len(outs))
	for t := range outs {
		values[t] = mat.Row(nil, 0, outs[t])
	}

	return values, nil
}
