package optimizers

import (
	nf "github.com/sharnoff/neuroflow"
)

type gradientDescent struct{}

// GradientDescent returns an Optimizer that moves every weight, in turn, by the learning rate
// times its negative gradient. It is the driver for recurrent networks, which require
// Settings.Approximation. No specifics are accepted.
func GradientDescent() gradientDescent {
	return gradientDescent{}
}

func (o gradientDescent) TypeString() string {
	return "gradient-descent"
}

func (o gradientDescent) Check(s nf.Settings, recurrent bool) error {
	if err := checkSpecifics(o.TypeString(), s); err != nil {
		return err
	}

	return checkSweep(o.TypeString(), s, recurrent)
}

func (o gradientDescent) Minimize(sess *nf.Session) (nf.State, error) {
	ws := sess.Weights()

	return sess.Loop(func(iter int) error {
		rate := sess.LearningRate(iter)

		return sess.Each(func(e nf.Entry) error {
			g, err := sess.Gradient(e)
			if err != nil {
				return err
			}

			ws.Set(e, ws.At(e)-rate*g)
			return nil
		})
	})
}
