package activators

import (
	"math"
)

// ****************************************
// Logistic
// ****************************************

type logistic int8

// Logistic returns an elementwise application of the logistic (or sigmoid) function.
func Logistic() logistic {
	return logistic(0)
}

// Sigmoid is the same as Logistic.
func Sigmoid() logistic {
	return Logistic()
}

func (t logistic) TypeString() string {
	return "logistic"
}

func (t logistic) Value(x float64) float64 {
	// the logistic function can be rephrased as:
	return 0.5 + 0.5*math.Tanh(0.5*x)
}

func (t logistic) Deriv(x float64) float64 {
	v := t.Value(x)
	return v * (1 - v)
}

// ****************************************
// Tanh
// ****************************************

type tanh int8

// Tanh returns an elementwise application of the tanh() function.
func Tanh() tanh {
	return tanh(0)
}

func (t tanh) TypeString() string {
	return "tanh"
}

func (t tanh) Value(x float64) float64 {
	return math.Tanh(x)
}

func (t tanh) Deriv(x float64) float64 {
	// it's cheaper to multiply it by itself than to use math.Pow()
	v := math.Tanh(x)
	return 1 - v*v
}

// ****************************************
// Softsign
// ****************************************

type softsign int8

// Softsign (not to be confused with softplus) returns the Softsign activation function. It is
// similar in shape to Tanh and Logistic.
func Softsign() softsign {
	return softsign(0)
}

func (t softsign) TypeString() string {
	return "softsign"
}

func (t softsign) Value(x float64) float64 {
	return x / (1 + math.Abs(x))
}

func (t softsign) Deriv(x float64) float64 {
	d := 1 + math.Abs(x)
	return 1 / (d * d)
}

// ****************************************
// Identity
// ****************************************

type identity int8

// Identity returns an Activator that passes its inputs through unchanged.
func Identity() identity {
	return identity(0)
}

// Linear is the same as Identity.
func Linear() identity {
	return Identity()
}

func (t identity) TypeString() string {
	return "identity"
}

func (t identity) Value(x float64) float64 {
	return x
}

func (t identity) Deriv(x float64) float64 {
	return 1
}
