package initializers

import (
	"math/rand"
	"sync"
	"time"
)

// source is shared by every RNG in the package. *rand.Rand is not safe for concurrent use, so
// all access goes through the lock.
var source = struct {
	sync.Mutex
	r *rand.Rand
}{r: rand.New(rand.NewSource(time.Now().UnixNano()))}

// Seed resets the source of randomness used by every Initializer in the package, making the
// weights they generate reproducible.
func Seed(seed int64) {
	source.Lock()
	source.r = rand.New(rand.NewSource(seed))
	source.Unlock()
}

func float() float64 {
	source.Lock()
	defer source.Unlock()
	return source.r.Float64()
}

func norm() float64 {
	source.Lock()
	defer source.Unlock()
	return source.r.NormFloat64()
}

// RNG needs no explanation
type RNG interface {
	Gen() float64
}

type uniformRNG struct {
	lower, upper float64
}

// UniformRNG returns an RNG that gives values uniformly spread between its bounds, which can be
// set by Bounds.
func UniformRNG() *uniformRNG {
	return &uniformRNG{def("uniform-lower"), def("uniform-upper")}
}

// Bounds sets the range of a UniformRNG, returning it.
func (u *uniformRNG) Bounds(lower, upper float64) *uniformRNG {
	u.lower = lower
	u.upper = upper
	return u
}

// Gen is the implementation of RNG for UniformRNG. It returns a random number.
func (u *uniformRNG) Gen() float64 {
	return float()*(u.upper-u.lower) + u.lower
}

type normal struct {
	µ, σ float64
}

// Normal returns an RNG that gives values within a normal distribution. The center
// and standard deviation can be set by Mean and SD, respectively.
//
// Default centers and standard deviations can be set by SetDefault for
// "normal-mean" and "normal-sd".
func Normal() *normal {
	return &normal{def("normal-mean"), def("normal-sd")}
}

// SD sets the value of the standard deviation of the normal distribution.
func (n *normal) SD(sd float64) *normal {
	n.σ = sd
	return n
}

// Mean sets the center of the normal distribution.
func (n *normal) Mean(mean float64) *normal {
	n.µ = mean
	return n
}

// Gen is the implementation of RNG for Normal. It returns a random number.
func (n *normal) Gen() float64 {
	return norm()*n.σ + n.µ
}

type truncNormal struct {
	*normal
	trunc float64
}

const defaultTrunc float64 = 2.0

// TruncNormal returns an RNG that gives values within a truncated normal distribution. The
// distribution is truncated at 2 standard deviations. The center and standard deviation can be
// set in the same way as Normal, because Normal is embedded in the TruncNormal type.
//
// Additionally, the number of standard deviations to truncate at can be set by Trunc.
func TruncNormal() *truncNormal {
	return &truncNormal{Normal(), defaultTrunc}
}

// SD sets the standard deviation before truncation, returning the same TruncNormal.
func (t *truncNormal) SD(sd float64) *truncNormal {
	t.normal.SD(sd)
	return t
}

// Mean sets the center of the distribution, returning the same TruncNormal.
func (t *truncNormal) Mean(mean float64) *truncNormal {
	t.normal.Mean(mean)
	return t
}

// Trunc sets the number of standard deviations to keep on either side. Trunc will
// panic if given sds <= 0.
func (t *truncNormal) Trunc(sds float64) *truncNormal {
	if sds <= 0 {
		panic("given number of standard deviations to truncate after is <= 0")
	}

	t.trunc = sds
	return t
}

// Gen is the implementation of RNG for TruncNormal. It returns a random number.
func (t *truncNormal) Gen() float64 {
	for {
		v := norm()
		if v < -t.trunc || v > t.trunc {
			continue
		}

		return v*t.σ + t.µ
	}
}
