package triage

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/triage/triage/internal/domain/audit"
	"github.com/triage/triage/internal/domain/classifier"
	"github.com/triage/triage/internal/domain/narrative"
	"github.com/triage/triage/internal/domain/rules"
	"github.com/triage/triage/internal/domain/similarity"
	"github.com/triage/triage/internal/domain/symptom"
	"github.com/triage/triage/internal/domain/vitals"
	"github.com/triage/triage/pkg/scoremap"
)

// Finalization thresholds.
const (
	highConfidenceTop = 40.0
	highConfidenceGap = 15.0
	visibilityCutoff  = 2.0
)

// Engine runs the fusion pipeline. The similarity engine, advisor, and
// auditor are optional; a nil component degrades the outcome instead of
// failing the request.
type Engine struct {
	log        zerolog.Logger
	dict       *symptom.Dictionary
	scorer     *classifier.Scorer
	rules      *rules.Engine
	similarity *similarity.Engine
	advisor    *narrative.Advisor
	auditor    audit.Repository
}

func NewEngine(
	log zerolog.Logger,
	dict *symptom.Dictionary,
	scorer *classifier.Scorer,
	ruleEngine *rules.Engine,
	sim *similarity.Engine,
	advisor *narrative.Advisor,
	auditor audit.Repository,
) *Engine {
	return &Engine{
		log:        log.With().Str("component", "triage").Logger(),
		dict:       dict,
		scorer:     scorer,
		rules:      ruleEngine,
		similarity: sim,
		advisor:    advisor,
		auditor:    auditor,
	}
}

// Diagnose fuses all evidence sources into a ranked diagnosis list.
// When nothing in the input matched the dictionary it returns a
// *symptom.UnrecognizedError carrying the rejected terms; the error
// unwraps to symptom.ErrNoSymptomsRecognized.
func (e *Engine) Diagnose(ctx context.Context, req Request) (*Outcome, error) {
	reading := vitals.Parse(req.Vitals)
	age := vitals.ParseAgeGroup(req.Age)
	warnings := vitals.CheckWarnings(reading, age)
	info := rules.ParseContext(req.AdditionalInfo)

	gender := strings.ToLower(strings.TrimSpace(req.Gender))
	if gender == "" {
		gender = info.Gender
	}

	match := e.dict.Match(req.Symptoms)
	if len(match.IDs) == 0 {
		return nil, &symptom.UnrecognizedError{Terms: match.Unmatched}
	}
	names := e.dict.Names(match.IDs)
	text := strings.ToLower(strings.Join(append(append([]string{}, names...), match.Unmatched...), ", "))
	// Canonicalization rewrites red-flag phrasing ("sudden worst headache"
	// becomes "severe headache"), so the plausibility filter also sees the
	// raw input.
	rawText := text + ", " + strings.ToLower(strings.TrimSpace(req.Symptoms))

	baseline, err := e.scorer.Score(match.IDs)
	if err != nil {
		return nil, err
	}

	contributions := e.rules.Apply(rules.Input{
		SymptomText: text,
		Vitals:      reading,
		Age:         age,
		Context:     info,
	})
	baseSource := SourceMLOnly
	if len(contributions) > 0 || len(reading) > 0 {
		baseSource = SourceMLRulesVitals
	}

	scores := rules.Merge(baseline, contributions)
	scores = adjustForVitals(scores, reading, age)
	scores = filterImplausible(scores, rawText, reading, age)

	neighbors, advice := e.consult(ctx, names, age, gender, reading, info, req.AdditionalInfo, scores)
	usedSimilarity := len(neighbors) > 0
	usedNarrative := advice.OK()

	outcome := &Outcome{
		AgeGroup:      age,
		Vitals:        reading,
		VitalWarnings: warnings,
		Unmatched:     match.Unmatched,
	}

	if special, ok := detectSpecialCase(text, scores); ok {
		scores = special.scores.Clone()
		scores.Normalize()
		outcome.BillingCode = special.billingCode
	} else {
		if usedNarrative {
			scores = mergeNarrative(scores, advice.Advice)
		}
		if usedSimilarity {
			scores = similarity.AdjustScores(scores, neighbors)
		}
		applyAgeGate(scores, age.Pediatric())
		boostCriticalPatterns(scores, text)
	}

	e.finalize(outcome, scores, advice, usedSimilarity, usedNarrative, baseSource)
	e.record(req, outcome)
	return outcome, nil
}

// consult runs the two best-effort evidence sources concurrently. Both
// failures are tolerated; the caller inspects what came back.
func (e *Engine) consult(
	ctx context.Context,
	names []string,
	age vitals.AgeGroup,
	gender string,
	reading vitals.Reading,
	info rules.Context,
	additionalInfo string,
	scores scoremap.Map,
) ([]similarity.SimilarCase, narrative.Result) {
	var (
		neighbors []similarity.SimilarCase
		advice    narrative.Result
		wg        sync.WaitGroup
	)

	if e.similarity != nil && e.similarity.Len() > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			neighbors = e.similarity.FindSimilar(similarity.Query{
				Age:    age,
				Gender: gender,
				Vitals: reading,
				Labs:   labQuery(info),
			})
		}()
	}

	if e.advisor != nil && e.advisor.Available() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var candidates []string
			for i, entry := range scores.SortedEntries() {
				if i == 3 {
					break
				}
				candidates = append(candidates, entry.Name)
			}
			advice = e.advisor.Advise(ctx, narrative.Input{
				Symptoms:       names,
				Age:            age,
				Gender:         gender,
				Vitals:         reading,
				AdditionalInfo: additionalInfo,
				Candidates:     candidates,
			})
		}()
	} else {
		advice = narrative.Result{Err: narrative.ErrUnavailable}
	}

	wg.Wait()
	return neighbors, advice
}

func (e *Engine) finalize(out *Outcome, scores scoremap.Map, advice narrative.Result, usedSimilarity, usedNarrative bool, baseSource string) {
	scores.Normalize()
	scores.DropBelow(visibilityCutoff)
	scores.Normalize()

	out.Scores = scores
	out.Diagnoses = scores.SortedEntries()

	if len(out.Diagnoses) > 0 {
		out.TopDiagnosis = out.Diagnoses[0].Name
	}

	out.Confidence = ConfidenceMedium
	if len(out.Diagnoses) > 0 && out.Diagnoses[0].Score > highConfidenceTop {
		gap := out.Diagnoses[0].Score
		if len(out.Diagnoses) > 1 {
			gap -= out.Diagnoses[1].Score
		}
		if gap > highConfidenceGap {
			out.Confidence = ConfidenceHigh
		}
	}

	out.Treatment = treatmentFor(out.TopDiagnosis)
	if out.BillingCode == "" {
		out.BillingCode = billingCodeFor(out.TopDiagnosis)
	}
	if usedNarrative {
		if t := advice.Advice.Treatment; t != "" {
			out.Treatment = t
		}
		if c := advice.Advice.BillingCode; c != "" && out.BillingCode == billingCodeFor(out.TopDiagnosis) {
			out.BillingCode = c
		}
		out.Rationale = advice.Advice.Rationale
	}

	switch {
	case usedSimilarity && usedNarrative:
		out.Source = SourceFullHybrid
	case usedSimilarity:
		out.Source = SourceMLSimilarity
	case usedNarrative:
		out.Source = SourceMLNarrative
	default:
		out.Source = baseSource
	}
}

// record appends the outcome to the audit trail without blocking the
// request or propagating failures.
func (e *Engine) record(req Request, out *Outcome) {
	if e.auditor == nil {
		return
	}
	rec := &audit.Record{
		Symptoms:     splitTrimmed(req.Symptoms),
		Age:          string(out.AgeGroup),
		Diagnoses:    map[string]float64(out.Scores),
		TopDiagnosis: out.TopDiagnosis,
		Treatment:    out.Treatment,
		BillingCode:  out.BillingCode,
		Source:       out.Source,
	}
	go func() {
		if err := e.auditor.Append(context.Background(), rec); err != nil {
			e.log.Warn().Err(err).Msg("audit append failed")
		}
	}()
}

func labQuery(info rules.Context) map[string]float64 {
	labs := map[string]float64{}
	put := func(key string, names ...string) {
		if v, ok := info.LabNumber(names...); ok {
			labs[key] = v
		}
	}
	put(similarity.LabCRP, "crp")
	put(similarity.LabWBC, "leukocytes", "wbc", "leukozyten")
	put(similarity.LabHemoglobin, "hemoglobin", "hgb")
	put(similarity.LabPlatelets, "platelets", "thrombozyten")
	put(similarity.LabCreatinine, "creatinine", "kreatinin")
	put(similarity.LabGlucose, "glucose", "glukose")
	return labs
}

func splitTrimmed(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
