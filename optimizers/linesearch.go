package optimizers

import (
	"github.com/pkg/errors"
	nf "github.com/sharnoff/neuroflow"
	"github.com/sirupsen/logrus"
)

// maxShrinks bounds the number of times Backtrack reduces the step size.
const maxShrinks int = 64

// Backtrack returns a step size satisfying the Armijo condition for f along the direction d from
// v, starting at s and shrinking by a factor of τ:
//
//	f(v) - f(v + s·d) ≥ s·c·d²
//
// where the direction is the negative gradient, so that c·d² is c times the expected decrease
// per unit of step. Trial points at which f is NaN or infinite fail the condition.
//
// If no step is accepted before v + s·d becomes indistinguishable from v, or after maxShrinks
// reductions, Backtrack returns 0, for which the condition holds trivially.
func Backtrack(f func(x float64) (float64, error), v, d, s, τ, c float64) (float64, error) {
	if d == 0 {
		return 0, nil
	}

	f0, err := f(v)
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to evaluate starting point\n")
	}

	t := c * d * d
	for i := 0; i < maxShrinks; i++ {
		x := v + s*d
		if x == v {
			return 0, nil
		}

		fx, err := f(x)
		if err != nil {
			return 0, errors.Wrapf(err, "Failed to evaluate step %v\n", s)
		}

		if finite(fx) && f0-fx >= s*t {
			return s, nil
		}

		s *= τ
	}

	return 0, nil
}

type lineSearch struct{}

// LineSearch returns the default Optimizer: gradient descent in which every weight, in turn,
// takes its own step along its negative gradient, with the size of the step chosen by Backtrack
// starting from the learning rate.
//
// It accepts the specifics "τ" and "c", both in (0, 1), with defaults set by SetDefault
// ("line-search-τ" and "line-search-c"). Recurrent networks require Settings.Approximation and
// accept no specifics.
func LineSearch() lineSearch {
	return lineSearch{}
}

func (o lineSearch) TypeString() string {
	return "line-search"
}

func (o lineSearch) Check(s nf.Settings, recurrent bool) error {
	allowed := []string{"τ", "c"}
	if recurrent {
		allowed = nil
	}

	if err := checkSpecifics(o.TypeString(), s, allowed...); err != nil {
		return err
	}

	if τ := s.Specific("τ", def("line-search-τ")); !inUnit(τ) {
		return nf.SettingsNotSupported(o.TypeString(), "τ must be in (0, 1) (got %v)", τ)
	} else if c := s.Specific("c", def("line-search-c")); !inUnit(c) {
		return nf.SettingsNotSupported(o.TypeString(), "c must be in (0, 1) (got %v)", c)
	}

	return checkSweep(o.TypeString(), s, recurrent)
}

func (o lineSearch) Minimize(sess *nf.Session) (nf.State, error) {
	s := sess.Settings()
	τ := s.Specific("τ", def("line-search-τ"))
	c := s.Specific("c", def("line-search-c"))
	ws := sess.Weights()
	log := sess.Logger()

	return sess.Loop(func(iter int) error {
		rate := sess.LearningRate(iter)

		return sess.Each(func(e nf.Entry) error {
			g, err := sess.Gradient(e)
			if err != nil {
				return err
			}

			v, d := ws.At(e), -g
			step, err := Backtrack(func(x float64) (float64, error) {
				return sess.Probe(e, x)
			}, v, d, rate, τ, c)
			if err != nil {
				return errors.Wrapf(err, "Line search failed at %v\n", e)
			}

			if log.IsLevelEnabled(logrus.DebugLevel) {
				log.WithFields(logrus.Fields{
					"entry":    e,
					"gradient": g,
					"step":     step,
				}).Debug("Line search")
			}

			ws.Set(e, v+step*d)
			return nil
		})
	})
}
