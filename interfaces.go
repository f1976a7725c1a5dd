package neuroflow

import (
	"sync"
)

// Optimizer is the strategy that trains the weights of a Network. The provided implementations
// are in the subpackage "optimizers".
type Optimizer interface {
	// TypeString returns the string corresponding to the type of the Optimizer.
	// For example: the Optimizer "LBFGS" should return "lbfgs", or something
	// to that effect.
	TypeString() string

	// Check is called once, when the Network is constructed. It should return a
	// *ConfigurationError (typically from SettingsNotSupported) if the Optimizer cannot train a
	// network of the given kind with the given Settings.
	Check(s Settings, recurrent bool) error

	// Minimize trains the weights held by the Session, returning the state it finished in. The
	// loop given by *Session.Loop is available to Optimizers that adjust weights in sweeps.
	Minimize(*Session) (State, error)
}

// Initializer dictates how the weights of a single matrix will be set, given its dimensions and
// a blank slice (in row-major order) to hold the weights.
type Initializer interface {
	Set(rows, cols int, ws []float64)
}

// WeightProvider supplies the initial weights of a Network. It is called exactly once, during
// New. Weights itself is a WeightProvider, giving a copy of its values.
type WeightProvider interface {
	Weights(layers []Layer) (Weights, error)
}

// HyperParameter is a value that may change over the course of training, such as the learning
// rate. Implementations are in the subpackage "hyperparams".
type HyperParameter interface {
	TypeString() string
	Value(iter int) float64
}

// Weights returns a copy of ws, after checking that it fits the layers.
func (ws Weights) Weights(layers []Layer) (Weights, error) {
	if err := ws.Check(layers); err != nil {
		return nil, err
	}

	return ws.Clone(), nil
}

type initProvider struct {
	init Initializer
}

// FromInitializer returns a WeightProvider that fills every matrix with the Initializer.
func FromInitializer(init Initializer) WeightProvider {
	return initProvider{init}
}

func (p initProvider) Weights(layers []Layer) (Weights, error) {
	if p.init == nil {
		return nil, NilArgError{"Initializer"}
	}

	return NewWeights(layers, p.init), nil
}

var defaults struct {
	sync.RWMutex
	init       Initializer
	opt        func() Optimizer
	optimizers map[string]func() Optimizer
}

// SetDefaultInitializer sets the Initializer used when New is given a nil WeightProvider. The
// subpackage "initializers" sets a uniform default when imported.
func SetDefaultInitializer(init Initializer) {
	defaults.Lock()
	defaults.init = init
	defaults.Unlock()
}

// SetDefaultOptimizer sets the Optimizer used when New is given a nil Optimizer. The subpackage
// "optimizers" sets the backtracking line search as the default when imported.
func SetDefaultOptimizer(f func() Optimizer) {
	defaults.Lock()
	defaults.opt = f
	defaults.Unlock()
}

// RegisterOptimizer makes the Optimizer returned by f available through OptimizerByName, under
// its TypeString.
func RegisterOptimizer(f func() Optimizer) error {
	if f == nil {
		return NilArgError{"Optimizer constructor"}
	}

	o := f()
	if o == nil {
		return ErrRegisterNilReturn
	}

	defaults.Lock()
	defer defaults.Unlock()

	if defaults.optimizers == nil {
		defaults.optimizers = make(map[string]func() Optimizer)
	} else if _, ok := defaults.optimizers[o.TypeString()]; ok {
		return ErrRegisterDuplicate
	}

	defaults.optimizers[o.TypeString()] = f
	return nil
}

// OptimizerByName returns a new Optimizer of the registered type, or ErrUnknownType.
func OptimizerByName(name string) (Optimizer, error) {
	defaults.RLock()
	f := defaults.optimizers[name]
	defaults.RUnlock()

	if f == nil {
		return nil, ErrUnknownType
	}

	return f(), nil
}

func defaultOptimizer() Optimizer {
	defaults.RLock()
	defer defaults.RUnlock()

	if defaults.opt == nil {
		return nil
	}

	return defaults.opt()
}

func defaultInitializer() Initializer {
	defaults.RLock()
	defer defaults.RUnlock()

	return defaults.init
}
