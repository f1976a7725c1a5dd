package initializers

import (
	"math"
)

// fanMode picks which dimension of a weight matrix scales the variance
type fanMode uint8

const (
	fanAvg fanMode = iota
	fanIn
	fanOut
)

func (m fanMode) fan(rows, cols int) float64 {
	switch m {
	case fanIn:
		return float64(rows)
	case fanOut:
		return float64(cols)
	default:
		return float64(rows+cols) / 2
	}
}

type varianceScaling struct {
	mode   fanMode
	factor float64
}

// VarianceScaling returns an Initializer drawing from a normal distribution truncated at two
// standard deviations, with variance factor/fan. The fan is chosen by In, Out or Avg (the
// default); the factor by Factor, defaulting to "varscl-factor".
func VarianceScaling() *varianceScaling {
	return &varianceScaling{fanAvg, def("varscl-factor")}
}

// Factor sets the numerator of the variance.
func (v *varianceScaling) Factor(f float64) *varianceScaling {
	v.factor = f
	return v
}

// In uses the number of rows: the inputs to each neuron.
func (v *varianceScaling) In() *varianceScaling {
	v.mode = fanIn
	return v
}

// Out uses the number of columns: the neurons fed by each input.
func (v *varianceScaling) Out() *varianceScaling {
	v.mode = fanOut
	return v
}

// Avg uses the mean of the rows and columns.
func (v *varianceScaling) Avg() *varianceScaling {
	v.mode = fanAvg
	return v
}

func (v *varianceScaling) Set(rows, cols int, ws []float64) {
	sd := math.Sqrt(v.factor / v.mode.fan(rows, cols))
	Random(TruncNormal().Mean(0).SD(sd)).Set(rows, cols, ws)
}
