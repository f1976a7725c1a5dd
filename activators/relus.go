// relus.go contains all activation functions that are derivative of relu:
// * ReLU
// * Leaky ReLU
// * ELU
// * Softplus (because it's similar)
package activators

import (
	"math"
)

// ****************************************
// ReLU
// ****************************************

type relu int8

// ReLU returns the standard rectified linear unit.
func ReLU() relu {
	return relu(0)
}

func (t relu) TypeString() string {
	return "relu"
}

func (t relu) Value(x float64) float64 {
	return math.Max(x, 0)
}

func (t relu) Deriv(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// ****************************************
// Leaky ReLU
// ****************************************

type lrelu float64

// LeakyReLU returns a standard 'leaky ReLU', where the leaky factor is given by alpha.
func LeakyReLU(alpha float64) *lrelu {
	t := lrelu(alpha)
	return &t
}

func (t *lrelu) TypeString() string {
	return "leaky-relu"
}

func (t *lrelu) Get() interface{} {
	return *t
}

func (t *lrelu) Blank() interface{} {
	return t
}

func (t *lrelu) Value(x float64) float64 {
	if x < 0 {
		return float64(*t) * x
	}
	return x
}

func (t *lrelu) Deriv(x float64) float64 {
	if x < 0 {
		return float64(*t)
	}
	return 1
}

// ****************************************
// ELU
// ****************************************

type elu float64

// ELU (exponential linear unit) returns a smooth approximation of ReLU that tends towards -alpha
// as inputs become infinitely negative.
func ELU(alpha float64) *elu {
	t := elu(alpha)
	return &t
}

func (t *elu) TypeString() string {
	return "elu"
}

func (t *elu) Get() interface{} {
	return *t
}

func (t *elu) Blank() interface{} {
	return t
}

func (t *elu) Value(x float64) float64 {
	if x >= 0 {
		return x
	}
	return float64(*t) * (math.Exp(x) - 1)
}

func (t *elu) Deriv(x float64) float64 {
	if x < 0 {
		return float64(*t) * math.Exp(x)
	}
	return 1
}

// ****************************************
// Softplus
// ****************************************

type softplus int8

// Softplus is a smooth approximation of ReLU that approaches 0 as inputs tend towards negative
// infinity.
func Softplus() softplus {
	return softplus(0)
}

func (t softplus) TypeString() string {
	return "softplus"
}

func (t softplus) Value(x float64) float64 {
	return math.Log1p(math.Exp(x))
}

func (t softplus) Deriv(x float64) float64 {
	// 1 / (1 + e^-x)
	return 1.0 / (1 + math.Exp(-x))
}
