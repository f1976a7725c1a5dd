package neuroflow

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Regularization is an addition to training that is not part of minimizing the training error
// itself. The only provided variant is *EarlyStopping; a nil Regularization is none.
type Regularization interface {
	TypeString() string
}

// EarlyStopping ends training once the error on a separate validation set stops agreeing with
// the training error. At least one of Factor and Patience must be set.
type EarlyStopping struct {
	// Inputs and Targets are the validation set. For recurrent networks, they are a single
	// sequence.
	Inputs, Targets [][]float64

	// Factor stops training when the validation error is greater than Factor times the
	// training error. Zero disables it.
	Factor float64

	// Patience stops training after that many consecutive iterations in which the validation
	// error did not improve on its best value by more than MinDelta. Zero disables it.
	Patience int
	MinDelta float64
}

func (es *EarlyStopping) TypeString() string {
	return "early-stopping"
}

func (es *EarlyStopping) check(layers []Layer) error {
	switch {
	case es.Factor < 0 || !finite(es.Factor):
		return configErrorf("early stopping factor must be non-negative and finite (got %v)", es.Factor)
	case es.Patience < 0:
		return configErrorf("early stopping patience must be non-negative (got %d)", es.Patience)
	case es.MinDelta < 0 || !finite(es.MinDelta):
		return configErrorf("early stopping minimum delta must be non-negative and finite (got %v)", es.MinDelta)
	case es.Factor == 0 && es.Patience == 0:
		return configErrorf("early stopping needs a factor or a patience")
	}

	if err := checkData(layers, es.Inputs, es.Targets); err != nil {
		return configErrorf("invalid validation set: %v", err)
	}

	return nil
}

// earlyStopper tracks the validation error over the course of a single call to Train.
type earlyStopper struct {
	cfg  *EarlyStopping
	ev   *evaluator
	log  *logrus.Logger
	best float64

	// the number of consecutive checks without improvement
	stale int
}

func newEarlyStopper(cfg *EarlyStopping, layers []Layer, threads int, log *logrus.Logger) *earlyStopper {
	return &earlyStopper{
		cfg:  cfg,
		ev:   newEvaluator(layers, cfg.Inputs, cfg.Targets, threads),
		log:  log,
		best: math.Inf(1),
	}
}

// stop returns whether training should end, given the current weights and training error.
func (m *earlyStopper) stop(ws Weights, trainErr float64) bool {
	val := m.ev.meanError(ws)

	m.log.WithFields(logrus.Fields{
		"training":   trainErr,
		"validation": val,
	}).Debug("Checked validation error")

	if m.cfg.Factor > 0 && val > m.cfg.Factor*trainErr {
		return true
	}

	if m.cfg.Patience > 0 {
		if val < m.best-m.cfg.MinDelta {
			m.best = val
			m.stale = 0
		} else if m.stale++; m.stale >= m.cfg.Patience {
			return true
		}
	}

	return false
}
