package initializers

type uniform struct {
	*uniformRNG
}

// Uniform returns an Initializer drawing each weight uniformly from [lower, upper), as set by
// Range (default "uniform-lower" and "uniform-upper"). Zeros are redrawn unless the range is
// empty.
//
// Uniform is the default Initializer.
func Uniform() uniform {
	return uniform{UniformRNG()}
}

// Range sets the bounds, in either order.
func (u uniform) Range(a, b float64) uniform {
	if a > b {
		a, b = b, a
	}

	u.Bounds(a, b)
	return u
}

func (u uniform) Set(rows, cols int, ws []float64) {
	degenerate := u.lower == u.upper
	for i := range ws {
		w := u.Gen()
		for w == 0 && !degenerate {
			w = u.Gen()
		}

		ws[i] = w
	}
}
