package optimizers

import (
	"github.com/pkg/errors"
	nf "github.com/sharnoff/neuroflow"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/optimize"
)

type lbfgs struct{}

// LBFGS returns a quasi-Newton Optimizer, minimizing the error over every weight at once with
// the limited-memory BFGS method. Gradients are always computed by finite differences, with the
// step given by Settings.Approximation (or nf.DefaultDelta).
//
// Settings.MaxIterations bounds the number of major iterations. No Regularization is accepted,
// and the specifics are:
//
//	"m"                       the number of past updates stored (default 3)
//	"maxLineSearchIterations" the bound on the steps taken to bracket each line search (10)
//	"maxZoomIterations"       the bound on the steps taken to narrow the bracket (10)
//
// The defaults can be changed with SetDefault ("lbfgs-m", "lbfgs-max-line-search" and
// "lbfgs-max-zoom").
func LBFGS() lbfgs {
	return lbfgs{}
}

func (o lbfgs) TypeString() string {
	return "lbfgs"
}

func (o lbfgs) specifics(s nf.Settings) (m, maxSearch, maxZoom float64) {
	return s.Specific("m", def("lbfgs-m")),
		s.Specific("maxLineSearchIterations", def("lbfgs-max-line-search")),
		s.Specific("maxZoomIterations", def("lbfgs-max-zoom"))
}

func (o lbfgs) Check(s nf.Settings, recurrent bool) error {
	if s.Regularization != nil {
		return nf.SettingsNotSupported(o.TypeString(), "no regularization is accepted (got %q)", s.Regularization.TypeString())
	}

	if err := checkSpecifics(o.TypeString(), s, "m", "maxLineSearchIterations", "maxZoomIterations"); err != nil {
		return err
	}

	m, maxSearch, maxZoom := o.specifics(s)
	switch {
	case !isCount(m):
		return nf.SettingsNotSupported(o.TypeString(), "m must be a positive integer (got %v)", m)
	case !isCount(maxSearch):
		return nf.SettingsNotSupported(o.TypeString(), "maxLineSearchIterations must be a positive integer (got %v)", maxSearch)
	case !isCount(maxZoom):
		return nf.SettingsNotSupported(o.TypeString(), "maxZoomIterations must be a positive integer (got %v)", maxZoom)
	}

	return nil
}

// precisionConverger stops the minimization once the error reaches the precision, reporting
// the error at each major iteration.
type precisionConverger struct {
	sess *nf.Session
	iter int
}

func (c *precisionConverger) Init(dim int) {
	c.iter = 0
}

func (c *precisionConverger) Converged(loc *optimize.Location) optimize.Status {
	c.sess.Report(c.iter, loc.F)
	c.iter++

	if loc.F <= c.sess.Settings().Precision {
		return optimize.FunctionThreshold
	}

	return optimize.NotTerminated
}

func (o lbfgs) Minimize(sess *nf.Session) (nf.State, error) {
	s := sess.Settings()
	ws := sess.Weights()
	log := sess.Logger()

	f0 := sess.Error()
	if !finite(f0) {
		return nf.Running, errors.Wrapf(nf.ErrNumericalInstability, "Initial error is %v", f0)
	} else if f0 <= s.Precision {
		sess.Report(0, f0)
		return nf.Converged, nil
	} else if s.MaxIterations == 0 {
		sess.Report(0, f0)
		return nf.IterationLimitReached, nil
	}

	m, maxSearch, maxZoom := o.specifics(s)

	problem := optimize.Problem{
		Func: sess.FlatObjective(),
		Grad: sess.FlatGradient(),
	}

	method := &optimize.LBFGS{
		Store:        int(m),
		Linesearcher: newStrongWolfe(int(maxSearch), int(maxZoom)),
	}

	settings := &optimize.Settings{
		MajorIterations: s.MaxIterations,
		Converger:       &precisionConverger{sess: sess},
	}

	res, err := optimize.Minimize(problem, ws.Flatten(), settings, method)
	if res == nil || !finite(res.F) {
		if err != nil {
			return nf.Running, errors.Wrapf(nf.ErrNumericalInstability, "Minimization failed: %v", err)
		}

		return nf.Running, nf.ErrNumericalInstability
	}

	if e := ws.SetFlat(res.X); e != nil {
		return nf.Running, errors.Wrapf(e, "Failed to write minimized weights\n")
	}

	if err != nil {
		log.WithFields(logrus.Fields{
			"status":  res.Status,
			"minimum": res.F,
		}).WithError(err).Warn("L-BFGS stopped")
	}

	switch {
	case res.Status == optimize.FunctionThreshold:
		return nf.Converged, nil
	case res.Status == optimize.IterationLimit:
		return nf.IterationLimitReached, nil
	case res.F <= s.Precision:
		return nf.Converged, nil
	}

	return nf.Stalled, nil
}
