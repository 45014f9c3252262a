package similarity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/triage/triage/internal/domain/vitals"
)

// Feature vector layout. Age and gender first, then vitals, then labs.
const (
	fAge = iota
	fGender
	fHeartRate
	fBPSystolic
	fBPDiastolic
	fTemperature
	fRespRate
	fSpO2
	fWBC
	fHemoglobin
	fPlatelets
	fCRP
	fCreatinine
	fGlucose
	numFeatures
)

// Physiologic defaults substituted for absent vitals. Labs have no safe
// default and fall back to the reference-population mean instead.
var vitalDefaults = map[int]float64{
	fHeartRate:   80,
	fBPSystolic:  120,
	fBPDiastolic: 80,
	fTemperature: 37.0,
	fRespRate:    16,
	fSpO2:        97,
	fPlatelets:   250,
}

const defaultNeighbors = 5

// Engine holds the fitted reference population. Fit runs once at load and
// on reload; lookups only take the read lock.
type Engine struct {
	log zerolog.Logger
	k   int

	mu    sync.RWMutex
	cases []*ReferenceCase
	// standardized feature matrix, row-aligned with cases
	matrix [][numFeatures]float64
	means  [numFeatures]float64
	stds   [numFeatures]float64
}

func NewEngine(log zerolog.Logger, k int) *Engine {
	if k <= 0 {
		k = defaultNeighbors
	}
	return &Engine{
		log: log.With().Str("component", "similarity").Logger(),
		k:   k,
	}
}

// Load replaces the reference population and refits imputation means and
// standardization parameters on it.
func (e *Engine) Load(ctx context.Context, repo Repository) error {
	cases, err := repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load reference cases: %w", err)
	}
	e.Fit(cases)
	return nil
}

// Fit fits the engine directly on an in-memory population.
func (e *Engine) Fit(cases []*ReferenceCase) {
	raw := make([][numFeatures]float64, len(cases))
	present := make([][numFeatures]bool, len(cases))
	for i, c := range cases {
		raw[i], present[i] = caseFeatures(c)
	}

	var means, stds [numFeatures]float64
	for f := 0; f < numFeatures; f++ {
		sum, n := 0.0, 0
		for i := range raw {
			if present[i][f] {
				sum += raw[i][f]
				n++
			}
		}
		if n > 0 {
			means[f] = sum / float64(n)
		} else if dv, ok := vitalDefaults[f]; ok {
			means[f] = dv
		}

		// impute before computing spread so the matrix is complete
		for i := range raw {
			if !present[i][f] {
				raw[i][f] = means[f]
			}
		}

		varSum := 0.0
		for i := range raw {
			d := raw[i][f] - means[f]
			varSum += d * d
		}
		if len(raw) > 0 {
			stds[f] = math.Sqrt(varSum / float64(len(raw)))
		}
		if stds[f] == 0 {
			stds[f] = 1
		}
	}

	matrix := make([][numFeatures]float64, len(raw))
	for i := range raw {
		for f := 0; f < numFeatures; f++ {
			matrix[i][f] = (raw[i][f] - means[f]) / stds[f]
		}
	}

	e.mu.Lock()
	e.cases = cases
	e.matrix = matrix
	e.means = means
	e.stds = stds
	e.mu.Unlock()

	e.log.Info().Int("cases", len(cases)).Msg("reference population fitted")
}

// Len reports the size of the fitted population.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cases)
}

// FindSimilar returns up to k nearest reference cases by Euclidean distance
// in standardized feature space, most similar first. An empty population
// yields an empty result, not an error.
func (e *Engine) FindSimilar(q Query) []SimilarCase {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.cases) == 0 {
		return nil
	}

	raw, present := queryFeatures(q)
	var vec [numFeatures]float64
	for f := 0; f < numFeatures; f++ {
		v := raw[f]
		if !present[f] {
			v = e.means[f]
		}
		vec[f] = (v - e.means[f]) / e.stds[f]
	}

	type scored struct {
		idx  int
		dist float64
	}
	all := make([]scored, len(e.matrix))
	for i := range e.matrix {
		sum := 0.0
		for f := 0; f < numFeatures; f++ {
			d := vec[f] - e.matrix[i][f]
			sum += d * d
		}
		all[i] = scored{idx: i, dist: math.Sqrt(sum)}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].dist != all[j].dist {
			return all[i].dist < all[j].dist
		}
		return all[i].idx < all[j].idx
	})

	k := e.k
	if k > len(all) {
		k = len(all)
	}
	out := make([]SimilarCase, k)
	for i := 0; i < k; i++ {
		out[i] = SimilarCase{
			Case:       e.cases[all[i].idx],
			Similarity: 1 / (1 + all[i].dist),
		}
	}
	return out
}

func caseFeatures(c *ReferenceCase) ([numFeatures]float64, [numFeatures]bool) {
	var raw [numFeatures]float64
	var present [numFeatures]bool

	raw[fAge], present[fAge] = c.AgeYears, true
	raw[fGender], present[fGender] = genderFeature(c.Gender), true
	fillVitalFeatures(c.Vitals, &raw, &present)
	fillLabFeatures(c.Labs, &raw, &present)
	return raw, present
}

func queryFeatures(q Query) ([numFeatures]float64, [numFeatures]bool) {
	var raw [numFeatures]float64
	var present [numFeatures]bool

	raw[fAge], present[fAge] = q.Age.Years(), true
	raw[fGender], present[fGender] = genderFeature(q.Gender), true
	fillVitalFeatures(q.Vitals, &raw, &present)
	fillLabFeatures(q.Labs, &raw, &present)
	return raw, present
}

func fillVitalFeatures(r vitals.Reading, raw *[numFeatures]float64, present *[numFeatures]bool) {
	set := func(f int, v float64, ok bool) {
		if ok {
			raw[f], present[f] = v, true
		} else if dv, hasDefault := vitalDefaults[f]; hasDefault {
			raw[f], present[f] = dv, true
		}
	}
	if hr, ok := r.HeartRate(); ok {
		set(fHeartRate, float64(hr), true)
	} else {
		set(fHeartRate, 0, false)
	}
	if sys, dia, ok := r.BloodPressure(); ok {
		set(fBPSystolic, float64(sys), true)
		set(fBPDiastolic, float64(dia), true)
	} else {
		set(fBPSystolic, 0, false)
		set(fBPDiastolic, 0, false)
	}
	if t, ok := r.Temperature(); ok {
		set(fTemperature, t, true)
	} else {
		set(fTemperature, 0, false)
	}
	if rr, ok := r.RespRate(); ok {
		set(fRespRate, float64(rr), true)
	} else {
		set(fRespRate, 0, false)
	}
	if s, ok := r.SpO2(); ok {
		set(fSpO2, float64(s), true)
	} else {
		set(fSpO2, 0, false)
	}
}

func fillLabFeatures(labs map[string]float64, raw *[numFeatures]float64, present *[numFeatures]bool) {
	set := func(f int, key string) {
		if v, ok := labs[key]; ok {
			raw[f], present[f] = v, true
		} else if f == fPlatelets {
			raw[f], present[f] = vitalDefaults[fPlatelets], true
		}
	}
	set(fWBC, LabWBC)
	set(fHemoglobin, LabHemoglobin)
	set(fPlatelets, LabPlatelets)
	set(fCRP, LabCRP)
	set(fCreatinine, LabCreatinine)
	set(fGlucose, LabGlucose)
}

func genderFeature(g string) float64 {
	switch g {
	case "female", "f", "weiblich", "w":
		return 1
	default:
		return 0
	}
}
