package neuroflow

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/diff/fd"
)

// State is the condition in which training finished.
type State int8

const (
	// Running is only returned alongside an error.
	Running State = iota

	// Converged means that the mean error reached Settings.Precision.
	Converged

	// IterationLimitReached means that Settings.MaxIterations were performed without
	// converging.
	IterationLimitReached

	// EarlyStopped means that the EarlyStopping regularization ended training.
	EarlyStopped

	// Stalled means that the Optimizer could make no further progress, with the error still
	// above Settings.Precision.
	Stalled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case IterationLimitReached:
		return "iteration limit reached"
	case EarlyStopped:
		return "early stopped"
	case Stalled:
		return "stalled"
	}

	return fmt.Sprintf("State(%d)", int8(s))
}

// Session is the view of a Network given to an Optimizer for a single call to Train. It holds
// the training samples and gives access to the error and its gradients.
//
// The weights given by Weights are the Network's own; any changes made through them persist.
type Session struct {
	layers   []Layer
	ws       Weights
	settings Settings
	log      *logrus.Logger

	ev      *evaluator
	monitor *earlyStopper
}

func newSession(layers []Layer, ws Weights, s Settings, xs, ys [][]float64) *Session {
	sess := &Session{
		layers:   layers,
		ws:       ws,
		settings: s,
		log:      s.logger(),
		ev:       newEvaluator(layers, xs, ys, s.Parallelism),
	}

	if es, ok := s.Regularization.(*EarlyStopping); ok {
		sess.monitor = newEarlyStopper(es, layers, s.Parallelism, sess.log)
	}

	return sess
}

func (s *Session) Settings() Settings {
	return s.settings
}

func (s *Session) Logger() *logrus.Logger {
	return s.log
}

// Weights returns the weights being trained. These are not a copy.
func (s *Session) Weights() Weights {
	return s.ws
}

func (s *Session) Layers() []Layer {
	return s.layers
}

func (s *Session) Recurrent() bool {
	return s.ev.recurrent
}

// Error returns the mean error of the training samples with the current weights.
func (s *Session) Error() float64 {
	return s.ev.meanError(s.ws)
}

// Probe returns the mean error with the weight at e set to v. The weight is restored before
// Probe returns.
func (s *Session) Probe(e Entry, v float64) (float64, error) {
	var f float64
	err := s.ws.perturb(e, v, func() error {
		f = s.ev.meanError(s.ws)
		return nil
	})

	return f, err
}

// Delta returns the step used for finite differences.
func (s *Session) Delta() float64 {
	return s.settings.Approximation.delta()
}

// approximate returns whether gradients are computed by finite differences.
func (s *Session) approximate() bool {
	return s.settings.Approximation != nil || s.ev.recurrent
}

// Gradient returns the derivative of the mean error with respect to the weight at e, averaged
// over the outputs. It is computed analytically unless Settings.Approximation is given.
func (s *Session) Gradient(e Entry) (float64, error) {
	if !s.approximate() {
		return mean(s.ev.analyticGradient(s.ws, e)), nil
	}

	g, err := s.ev.approximateGradient(s.ws, e, s.Delta())
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to approximate gradient at %v\n", e)
	}

	return mean(g), nil
}

// SecondDerivative returns the finite-difference approximation of the second derivative of the
// mean error with respect to the weight at e, averaged over the outputs.
func (s *Session) SecondDerivative(e Entry) (float64, error) {
	g, err := s.ev.secondDerivative(s.ws, e, s.Delta())
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to approximate second derivative at %v\n", e)
	}

	return mean(g), nil
}

// LearningRate returns the step size for the iteration: the value of Settings.Schedule if
// given, else Settings.LearningRate.
func (s *Session) LearningRate(iter int) float64 {
	if s.settings.Schedule != nil {
		return s.settings.Schedule.Value(iter)
	}

	return s.settings.LearningRate
}

// Report logs the error at the iteration, if it falls on the cadence given by Settings.Verbose.
func (s *Session) Report(iter int, e float64) {
	if s.settings.Verbose == 0 || iter%s.settings.Verbose != 0 {
		return
	}

	s.log.WithFields(logrus.Fields{
		"iteration": iter,
		"error":     e,
	}).Info("Training")
}

// Loop runs sweep once per iteration until training is finished. Before each iteration, the
// error is computed and reported, and then checked in order against Settings.Precision,
// Settings.MaxIterations and the EarlyStopping regularization, if any.
//
// If the error becomes NaN or infinite, Loop returns ErrNumericalInstability.
func (s *Session) Loop(sweep func(iter int) error) (State, error) {
	for iter := 0; ; iter++ {
		e := s.Error()
		if !finite(e) {
			return Running, errors.Wrapf(ErrNumericalInstability, "Error is %v at iteration %d", e, iter)
		}

		s.Report(iter, e)

		if e <= s.settings.Precision {
			return Converged, nil
		} else if iter >= s.settings.MaxIterations {
			return IterationLimitReached, nil
		} else if s.monitor != nil && s.monitor.stop(s.ws, e) {
			s.log.WithField("iteration", iter).Info("Stopped early")
			return EarlyStopped, nil
		}

		if err := sweep(iter); err != nil {
			return Running, errors.Wrapf(err, "Sweep failed at iteration %d\n", iter)
		}
	}
}

// Each calls f for every weight in the order given by Weights.Each, stopping at the first error.
func (s *Session) Each(f func(Entry) error) error {
	return s.ws.Each(f)
}

// FlatObjective returns the mean error as a function of the flattened weights, in the order
// given by Weights.Flatten. The function does not modify the Network's weights, so it may be
// called concurrently.
func (s *Session) FlatObjective() func(x []float64) float64 {
	return func(x []float64) float64 {
		ws, err := Unflatten(s.layers, x)
		if err != nil {
			panic(err)
		}

		return s.ev.meanError(ws)
	}
}

// FlatGradient returns the central finite-difference gradient of FlatObjective, with the step
// given by Delta.
func (s *Session) FlatGradient() func(grad, x []float64) {
	obj := s.FlatObjective()
	settings := &fd.Settings{
		Formula:    fd.Central,
		Step:       s.Delta(),
		Concurrent: true,
	}

	return func(grad, x []float64) {
		fd.Gradient(grad, obj, x, settings)
	}
}
