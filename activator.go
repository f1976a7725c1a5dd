package neuroflow

import (
	"math"
	"sync"
)

// Activator is the elementwise nonlinearity applied at a layer. Activators must be stateless:
// a single value is shared between layers and networks and is called from multiple goroutines.
type Activator interface {
	// TypeString returns the string corresponding to the type of the Activator. It is the key
	// under which the Activator is registered, and the name written when saving a Network.
	TypeString() string

	// Value returns the activation of the pre-activation input x.
	Value(x float64) float64

	// Deriv returns the derivative of Value at x.
	Deriv(x float64) float64
}

// Stateful may be implemented by Activators that carry a parameter (for example, the slope of a
// leaky ReLU). Get returns the value to be encoded as JSON when saving, and Blank returns the
// pointer that it should be decoded into when loading.
type Stateful interface {
	Get() interface{}
	Blank() interface{}
}

var activators = struct {
	sync.RWMutex
	m map[string]func() Activator
}{m: make(map[string]func() Activator)}

// RegisterActivator makes the Activator returned by f available to Load, under its TypeString.
// Each package of Activators is expected to register its types in init().
func RegisterActivator(f func() Activator) error {
	if f == nil {
		return NilArgError{"Activator constructor"}
	}

	a := f()
	if a == nil {
		return ErrRegisterNilReturn
	}

	activators.Lock()
	defer activators.Unlock()

	if _, ok := activators.m[a.TypeString()]; ok {
		return ErrRegisterDuplicate
	}

	activators.m[a.TypeString()] = f
	return nil
}

// ActivatorByName returns a new Activator of the registered type. If no type has been
// registered under the name, ErrUnknownType is returned.
func ActivatorByName(name string) (Activator, error) {
	activators.RLock()
	f := activators.m[name]
	activators.RUnlock()

	if f == nil {
		return nil, ErrUnknownType
	}

	return f(), nil
}

// sigmoid is used by the gates of recurrent layers, independent of the layer's Activator.
func sigmoid(x float64) float64 {
	return 0.5 + 0.5*math.Tanh(0.5*x)
}
