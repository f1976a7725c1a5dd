package neuroflow

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// Settings configures the training of a Network. Which fields are used (and which combinations
// are allowed) depends on the Optimizer, which checks them when the Network is constructed.
type Settings struct {
	// LearningRate is the initial step size. It is ignored if Schedule is given.
	LearningRate float64 `toml:"learning-rate"`

	// Schedule optionally overrides LearningRate, giving the step size for each iteration.
	Schedule HyperParameter `toml:"-"`

	// Precision is the mean error at or below which training is considered converged.
	Precision float64 `toml:"precision"`

	// MaxIterations is the maximum number of iterations (sweeps over every weight, or major
	// iterations of a quasi-Newton method) before training stops.
	MaxIterations int `toml:"max-iterations"`

	// Verbose is the number of iterations between each logged progress report. Zero disables
	// reporting.
	Verbose int `toml:"verbose"`

	// Regularization is either nil or an *EarlyStopping.
	Regularization Regularization `toml:"-"`

	// Approximation, if not nil, makes gradients be computed by finite differences instead of
	// analytically. It is required for recurrent networks.
	Approximation *Approximation `toml:"approximation"`

	// Specifics are the parameters particular to a single Optimizer, such as "τ" and "c" for
	// the line search or "m" for L-BFGS.
	Specifics map[string]float64 `toml:"specifics"`

	// Parallelism bounds the number of goroutines used to evaluate independent samples. Zero
	// uses one per CPU.
	Parallelism int `toml:"parallelism"`

	// Logger receives progress reports. If nil, logrus.New() is used.
	Logger *logrus.Logger `toml:"-"`
}

// Approximation configures finite-difference gradients.
type Approximation struct {
	// Delta is the distance each weight is moved to either side. Zero gives DefaultDelta.
	Delta float64 `toml:"delta"`
}

func (a *Approximation) delta() float64 {
	if a == nil || a.Delta == 0 {
		return DefaultDelta
	}

	return a.Delta
}

// DefaultSettings returns the Settings used by the example programs: a learning rate of 1, a
// precision of 1e-5, at most 100 iterations, with every iteration logged.
func DefaultSettings() Settings {
	return Settings{
		LearningRate:  1.0,
		Precision:     1e-5,
		MaxIterations: 100,
		Verbose:       1,
	}
}

// Specific returns the value of the named specific, or def if it was not given.
func (s Settings) Specific(key string, def float64) float64 {
	if v, ok := s.Specifics[key]; ok {
		return v
	}

	return def
}

// UnknownSpecifics returns the keys of Specifics that are not among those allowed, sorted.
func (s Settings) UnknownSpecifics(allowed ...string) []string {
	var unknown []string

outer:
	for k := range s.Specifics {
		for _, a := range allowed {
			if k == a {
				continue outer
			}
		}

		unknown = append(unknown, k)
	}

	sort.Strings(unknown)
	return unknown
}

// clone returns a copy of the Settings that shares no Specifics with s.
func (s Settings) clone() Settings {
	if s.Specifics != nil {
		specifics := make(map[string]float64, len(s.Specifics))
		for k, v := range s.Specifics {
			specifics[k] = v
		}
		s.Specifics = specifics
	}

	return s
}

// logger returns the Logger, or a new one if none was given.
func (s Settings) logger() *logrus.Logger {
	if s.Logger == nil {
		return logrus.New()
	}

	return s.Logger
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// check returns a *ConfigurationError for Settings that no Optimizer could use with the layers.
func (s Settings) check(layers []Layer) error {
	switch {
	case s.Schedule == nil && (!finite(s.LearningRate) || s.LearningRate <= 0):
		return configErrorf("learning rate must be positive and finite (got %v)", s.LearningRate)
	case !finite(s.Precision) || s.Precision < 0:
		return configErrorf("precision must be non-negative and finite (got %v)", s.Precision)
	case s.MaxIterations < 0:
		return configErrorf("max iterations must be non-negative (got %d)", s.MaxIterations)
	case s.Verbose < 0:
		return configErrorf("verbose must be non-negative (got %d)", s.Verbose)
	case s.Parallelism < 0:
		return configErrorf("parallelism must be non-negative (got %d)", s.Parallelism)
	}

	if s.Approximation != nil {
		if d := s.Approximation.Delta; !finite(d) || d < 0 {
			return configErrorf("approximation delta must be non-negative and finite (got %v)", d)
		}
	}

	for k, v := range s.Specifics {
		if !finite(v) {
			return configErrorf("specific %q is not finite (got %v)", k, v)
		}
	}

	switch r := s.Regularization.(type) {
	case nil:
	case *EarlyStopping:
		if err := r.check(layers); err != nil {
			return err
		}
	}

	return nil
}
