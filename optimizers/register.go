package optimizers

import (
	"math"
	"sync"

	"github.com/pkg/errors"
	nf "github.com/sharnoff/neuroflow"
)

// default values, because 'default' is a keyword
var defaultValue = map[string]float64{
	"line-search-τ":         0.5,
	"line-search-c":         0.5,
	"lbfgs-m":               3,
	"lbfgs-max-zoom":        10,
	"lbfgs-max-line-search": 10,
}

var defaultMux sync.Mutex

func init() {
	list := []func() nf.Optimizer{
		func() nf.Optimizer { return LineSearch() },
		func() nf.Optimizer { return GradientDescent() },
		func() nf.Optimizer { return LBFGS() },
	}

	for _, f := range list {
		if err := nf.RegisterOptimizer(f); err != nil {
			panic(err.Error())
		}
	}

	nf.SetDefaultOptimizer(func() nf.Optimizer { return LineSearch() })
}

// SetDefault sets the values used for Settings.Specifics that are not given. The values that can
// be set are: "line-search-τ", "line-search-c", "lbfgs-m", "lbfgs-max-zoom" and
// "lbfgs-max-line-search".
func SetDefault(name string, value float64) error {
	defaultMux.Lock()
	defer defaultMux.Unlock()

	if _, ok := defaultValue[name]; !ok {
		return errors.Errorf("Value with name %q does not exist", name)
	} else if math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.Errorf("Value is invalid (%v)", value)
	}

	defaultValue[name] = value
	return nil
}

// SetDefault_Lazy simply calls SetDefault, but panics instead of returning an error
func SetDefault_Lazy(name string, value float64) {
	if err := SetDefault(name, value); err != nil {
		panic(err)
	}
}

func def(name string) float64 {
	defaultMux.Lock()
	defer defaultMux.Unlock()
	return defaultValue[name]
}

// checkSpecifics returns a *ConfigurationError if any of the Specifics are not allowed.
func checkSpecifics(name string, s nf.Settings, allowed ...string) error {
	if unknown := s.UnknownSpecifics(allowed...); len(unknown) != 0 {
		if len(allowed) == 0 {
			return nf.SettingsNotSupported(name, "no specifics are accepted (got %q)", unknown)
		}

		return nf.SettingsNotSupported(name, "unknown specifics %q (accepted: %q)", unknown, allowed)
	}

	return nil
}

// checkSweep returns a *ConfigurationError for Settings that an Optimizer adjusting one weight
// at a time with the gradient of Session cannot use.
func checkSweep(name string, s nf.Settings, recurrent bool) error {
	switch s.Regularization.(type) {
	case nil, *nf.EarlyStopping:
	default:
		return nf.SettingsNotSupported(name, "regularization %q is not supported", s.Regularization.TypeString())
	}

	if recurrent && s.Approximation == nil {
		return nf.SettingsNotSupported(name, "recurrent networks require Approximation, as they have no analytic gradient")
	}

	return nil
}

// inUnit returns whether x is strictly between 0 and 1.
func inUnit(x float64) bool {
	return x > 0 && x < 1
}

// isCount returns whether x is a whole number that is at least 1.
func isCount(x float64) bool {
	return x >= 1 && x == math.Trunc(x)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
