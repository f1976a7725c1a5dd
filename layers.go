package neuroflow

import (
	"fmt"
)

// Kind is the discriminant of a Layer.
type Kind int8

const (
	InputLayer Kind = iota
	HiddenLayer
	RecurrentLayer
	OutputLayer
)

func (k Kind) String() string {
	switch k {
	case InputLayer:
		return "input"
	case HiddenLayer:
		return "hidden"
	case RecurrentLayer:
		return "recurrent"
	case OutputLayer:
		return "output"
	}

	return fmt.Sprintf("Kind(%d)", int8(k))
}

// Layer is one element of the ordered architecture of a Network. Layers are values; they are
// created by Input, Hidden, Recurrent and Output and cannot be changed afterwards.
//
// A valid architecture is exactly one Input layer first, exactly one Output layer last, and any
// number of Hidden or Recurrent layers in between. This is checked by CheckLayers, which New
// calls before anything else.
type Layer struct {
	kind    Kind
	neurons int
	act     Activator
}

// Input returns the input layer with the given number of neurons. Its signal is passed on
// unchanged.
func Input(neurons int) Layer {
	return Layer{InputLayer, neurons, nil}
}

// Hidden returns a fully-connected hidden layer.
func Hidden(neurons int, act Activator) Layer {
	return Layer{HiddenLayer, neurons, act}
}

// Recurrent returns a gated recurrent hidden layer. Its values at each time step depend on its
// own output from the previous step and on a memory cell, both threaded through a sequence by
// EvaluateSequence.
func Recurrent(neurons int, act Activator) Layer {
	return Layer{RecurrentLayer, neurons, act}
}

// Output returns the output layer.
func Output(neurons int, act Activator) Layer {
	return Layer{OutputLayer, neurons, act}
}

func (l Layer) Kind() Kind {
	return l.kind
}

func (l Layer) Neurons() int {
	return l.neurons
}

// Activator returns the Activator of the layer, which is nil for the input layer.
func (l Layer) Activator() Activator {
	return l.act
}

func (l Layer) String() string {
	if l.act == nil {
		return fmt.Sprintf("%v(%d)", l.kind, l.neurons)
	}

	return fmt.Sprintf("%v(%d, %s)", l.kind, l.neurons, l.act.TypeString())
}

// activate applies the layer's Activator to x, or returns x for the input layer.
func (l Layer) activate(x float64) float64 {
	if l.act == nil {
		return x
	}

	return l.act.Value(x)
}

// deriv is the derivative of activate at x.
func (l Layer) deriv(x float64) float64 {
	if l.act == nil {
		return 1
	}

	return l.act.Deriv(x)
}

// CheckLayers returns a *ConfigurationError if the sequence of layers is not a valid
// architecture.
func CheckLayers(layers []Layer) error {
	if len(layers) < 2 {
		return configErrorf("a network needs at least an input and an output layer (got %d layers)", len(layers))
	}

	for i, l := range layers {
		if l.neurons < 1 {
			return configErrorf("layer %d (%v) must have at least one neuron", i, l)
		}

		switch l.kind {
		case InputLayer:
			if i != 0 {
				return configErrorf("layer %d is an input layer; only the first layer may be", i)
			}
		case OutputLayer:
			if i != len(layers)-1 {
				return configErrorf("layer %d is an output layer; only the last layer may be", i)
			}
		case HiddenLayer, RecurrentLayer:
			if i == 0 || i == len(layers)-1 {
				return configErrorf("layer %d (%v) cannot be the first or last layer", i, l)
			}
		default:
			return configErrorf("layer %d has unknown kind %v", i, l.kind)
		}

		if l.kind != InputLayer && l.act == nil {
			return configErrorf("layer %d (%v) has no Activator", i, l)
		}
	}

	if layers[0].kind != InputLayer {
		return configErrorf("the first layer must be an input layer (got %v)", layers[0])
	} else if layers[len(layers)-1].kind != OutputLayer {
		return configErrorf("the last layer must be an output layer (got %v)", layers[len(layers)-1])
	}

	return nil
}

// isRecurrent returns whether or not any of the layers is a Recurrent layer.
func isRecurrent(layers []Layer) bool {
	for _, l := range layers {
		if l.kind == RecurrentLayer {
			return true
		}
	}

	return false
}
