package classifier

import (
	"math"
	"sync/atomic"

	"github.com/triage/triage/internal/domain/symptom"
	"github.com/triage/triage/pkg/scoremap"
)

// Scorer converts matched symptom ids to a baseline diagnosis score map.
// The underlying model is swapped atomically on reload so in-flight
// requests always observe one consistent snapshot.
type Scorer struct {
	dict  *symptom.Dictionary
	model atomic.Pointer[Model]
}

// NewScorer builds a scorer over the dictionary with an initially trained
// model.
func NewScorer(dict *symptom.Dictionary, cases []Case) *Scorer {
	s := &Scorer{dict: dict}
	s.model.Store(Train(cases))
	return s
}

// Reload retrains on a new case table and swaps the model in atomically.
func (s *Scorer) Reload(cases []Case) {
	s.model.Store(Train(cases))
}

// Score produces the baseline score map for the matched symptom ids:
// class probabilities in percentage points (one decimal place), with
// classes that round to zero omitted. An empty id list is the pipeline's
// single hard failure.
func (s *Scorer) Score(ids []string) (scoremap.Map, error) {
	if len(ids) == 0 {
		return nil, symptom.ErrNoSymptomsRecognized
	}
	names := s.dict.Names(ids)
	if len(names) == 0 {
		return nil, symptom.ErrNoSymptomsRecognized
	}

	out := scoremap.Map{}
	for _, lp := range s.model.Load().PredictProba(names) {
		pct := math.Round(lp.Prob*1000) / 10
		if pct > 0 {
			out[lp.Label] = pct
		}
	}
	return out, nil
}
