package hyperparams

import (
	nf "github.com/sharnoff/neuroflow"
)

// ByName returns the HyperParameter with the given TypeString and a single value: Constant for
// "constant", and Step (with no steps added) for "step". This allows schedules to be chosen
// from configuration files.
func ByName(name string, value float64) (nf.HyperParameter, error) {
	list := map[string]func(float64) nf.HyperParameter{
		Constant(0).TypeString(): func(v float64) nf.HyperParameter { return Constant(v) },
		Step(0).TypeString():     func(v float64) nf.HyperParameter { return Step(v) },
	}

	f, ok := list[name]
	if !ok {
		return nil, nf.ErrUnknownType
	}

	return f(value), nil
}
