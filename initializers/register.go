package initializers

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	nf "github.com/sharnoff/neuroflow"
)

// defaults holds the values the constructors start from, keyed by the names given to SetDefault
var defaults = struct {
	sync.RWMutex
	values map[string]float64
}{values: map[string]float64{
	"uniform-lower": -1,
	"uniform-upper": 1,
	"normal-mean":   0,
	"normal-sd":     1,
	"varscl-factor": 1,
}}

func init() {
	nf.SetDefaultInitializer(Uniform())
}

// SetDefault changes a value that constructors in this package start from. The names are
// "uniform-lower", "uniform-upper", "normal-mean", "normal-sd" and "varscl-factor".
// Initializers that already exist keep their values.
func SetDefault(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.Errorf("Can't set default %q to non-finite value %v", name, value)
	}

	defaults.Lock()
	defer defaults.Unlock()

	if _, ok := defaults.values[name]; !ok {
		names := make([]string, 0, len(defaults.values))
		for n := range defaults.values {
			names = append(names, n)
		}
		sort.Strings(names)

		return errors.Errorf("No default named %q (have: %s)", name, strings.Join(names, ", "))
	}

	defaults.values[name] = value
	return nil
}

// SetDefault_Lazy is SetDefault, panicking on error
func SetDefault_Lazy(name string, value float64) {
	if err := SetDefault(name, value); err != nil {
		panic(err.Error())
	}
}

func def(name string) float64 {
	defaults.RLock()
	defer defaults.RUnlock()
	return defaults.values[name]
}
