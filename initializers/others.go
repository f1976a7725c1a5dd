package initializers

type leCun struct {
	*varianceScaling
}

func LeCun() leCun {
	return leCun{VarianceScaling().In()}
}

type he struct {
	*varianceScaling
}

func He() he {
	return he{VarianceScaling().In().Factor(2)}
}

type xavier struct {
	*varianceScaling
}

func Xavier() xavier {
	return xavier{VarianceScaling().Avg()}
}

func Glorot() xavier {
	return Xavier()
}

type static float64

// Static returns an Initializer that sets every weight to the same value.
func Static(value float64) static {
	return static(value)
}

func (s static) Set(rows, cols int, ws []float64) {
	for i := range ws {
		ws[i] = float64(s)
	}
}
