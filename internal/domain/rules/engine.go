package rules

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/triage/triage/internal/domain/vitals"
	"github.com/triage/triage/pkg/scoremap"
)

// leadingSymptoms maps a key phrase to the diagnoses it is a classic
// leading symptom for. Each hit adds a flat bonus per diagnosis.
var leadingSymptoms = map[string][]string{
	"chest pain":          {"Acute Myocardial Infarction", "Angina Pectoris", "Pulmonary Embolism"},
	"shortness of breath": {"Acute Myocardial Infarction", "Pulmonary Embolism", "Asthma Attack", "Pneumonia"},
	"severe headache":     {"Meningitis", "Stroke", "Subarachnoid Hemorrhage"},
	"paralysis":           {"Stroke", "Multiple Sclerosis"},
	"speech disturbance":  {"Stroke", "Transient Ischemic Attack"},
	"unconsciousness":     {"Syncope", "Epilepsy", "Hypoglycemia"},
}

const leadingSymptomBonus = 35.0

// Input carries everything the rule engine reads. SymptomText is the
// lower-cased joined symptom list; Context is the parsed additional info.
type Input struct {
	SymptomText string
	Vitals      vitals.Reading
	Age         vitals.AgeGroup
	Context     Context
}

// Engine evaluates the ordered clinical rule stages.
type Engine struct {
	log zerolog.Logger
}

func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{log: log.With().Str("component", "rules").Logger()}
}

// Apply runs all rule stages and returns the rule contribution map.
// Contributions are merged into the classifier baseline by the caller
// taking the maximum of baseline and contribution per diagnosis, so a
// rule can raise a diagnosis but never suppress one.
func (e *Engine) Apply(in Input) scoremap.Map {
	text := strings.ToLower(in.SymptomText)
	out := scoremap.Map{}

	e.applyLeadingSymptoms(text, out)
	if in.Age.Pediatric() {
		e.applyPediatricRules(text, in, out)
	} else {
		e.applyAdultRules(text, in, out)
	}
	e.applyComorbidities(text, in.Context, out)
	e.applyLabRules(text, in.Context, out)
	e.applyConstellations(text, out)

	if len(out) > 0 {
		e.log.Debug().Int("diagnoses", len(out)).Msg("rule contributions computed")
	}
	return out
}

func (e *Engine) applyLeadingSymptoms(text string, out scoremap.Map) {
	for phrase, diagnoses := range leadingSymptoms {
		if !strings.Contains(text, phrase) {
			continue
		}
		for _, d := range diagnoses {
			out[d] += leadingSymptomBonus
		}
	}
}

func (e *Engine) applyPediatricRules(text string, in Input, out scoremap.Map) {
	infant := in.Age == vitals.AgeInfant
	cough := strings.Contains(text, "cough")
	fever := strings.Contains(text, "fever")
	dyspnea := strings.Contains(text, "shortness of breath") || strings.Contains(text, "dyspnea")

	if cough && (strings.Contains(text, "barking") || strings.Contains(text, "hoarse")) {
		out.RaiseTo("Croup", 80)
	}
	if infant && cough && fever {
		out.RaiseTo("RSV Bronchiolitis", 75)
		out.RaiseTo("Bronchiolitis", 70)
		out.RaiseTo("Viral Respiratory Infection", 65)
	}
	if fever && dyspnea {
		if infant {
			out.RaiseTo("Bronchiolitis", 80)
			out.RaiseTo("RSV Bronchiolitis", 75)
		} else {
			out.RaiseTo("Bronchitis", 65)
			out.RaiseTo("Pediatric Pneumonia", 60)
		}
	}
	if fever && strings.Contains(text, "earache") {
		out.RaiseTo("Acute Otitis Media", 80)
	}
	if ent, ok := in.Context.Findings["ent"]; ok {
		if strings.Contains(ent, "bulging") || strings.Contains(ent, "red eardrum") {
			out.RaiseTo("Acute Otitis Media", 85)
		}
	}
}

func (e *Engine) applyAdultRules(text string, in Input, out scoremap.Map) {
	chestPain := strings.Contains(text, "chest pain")
	dyspnea := strings.Contains(text, "shortness of breath") || strings.Contains(text, "dyspnea")
	cough := strings.Contains(text, "cough")
	fever := strings.Contains(text, "fever")

	if chestPain && dyspnea {
		hr, hasHR := in.Vitals.HeartRate()
		if hasHR && hr > 100 {
			out.RaiseTo("Acute Myocardial Infarction", 70)
			out.RaiseTo("Acute Coronary Syndrome", 65)
		} else {
			out.RaiseTo("Angina Pectoris", 60)
		}
	}
	if cor, ok := in.Context.Findings["cor"]; ok {
		if strings.Contains(cor, "murmur") || strings.Contains(cor, "systolic") {
			out.RaiseTo("Valvular Heart Disease", 55)
		}
		if strings.Contains(cor, "tachycard") {
			out.RaiseTo("Acute Myocardial Infarction", 75)
		}
	}
	if strings.Contains(text, "headache") && strings.Contains(text, "photophobia") {
		out.RaiseTo("Migraine", 75)
	}
	if cough && fever && strings.Contains(text, "sputum") {
		out.RaiseTo("Bronchitis", 70)
		out.RaiseTo("Pneumonia", 65)
	}
	if pulmo, ok := in.Context.Findings["pulmo"]; ok {
		if strings.Contains(pulmo, "rales") || strings.Contains(pulmo, "crackles") {
			out.RaiseTo("Pneumonia", 80)
		}
	}
}

func (e *Engine) applyComorbidities(text string, ctx Context, out scoremap.Map) {
	respiratory := strings.Contains(text, "cough") ||
		strings.Contains(text, "shortness of breath") || strings.Contains(text, "wheez")

	if ctx.HasPrecondition("asthma") && respiratory {
		out.RaiseTo("Asthma Exacerbation", 70)
	}
	if ctx.HasPrecondition("copd") && respiratory {
		out.RaiseTo("COPD Exacerbation", 75)
	}
	if ctx.HasPrecondition("diabetes") &&
		(strings.Contains(text, "thirst") || strings.Contains(text, "polyuria")) {
		out.RaiseTo("Decompensated Diabetes", 65)
	}
}

func (e *Engine) applyLabRules(text string, ctx Context, out scoremap.Map) {
	fever := strings.Contains(text, "fever")

	if crp, ok := labValue(ctx.Labs, "crp"); ok && crp > 100 && fever {
		out.RaiseTo("Bacterial Infection", 80)
		if strings.Contains(text, "cough") {
			out.RaiseTo("Pneumonia", 85)
		}
		if strings.Contains(text, "dysuria") || strings.Contains(text, "burning") {
			out.RaiseTo("Pyelonephritis", 85)
		}
	}
	if wbc, ok := labValue(ctx.Labs, "leukocytes", "wbc"); ok {
		switch {
		case wbc > 12:
			out.RaiseTo("Bacterial Infection", 65)
		case wbc < 4:
			out.RaiseTo("Viral Infection", 60)
		}
	}
}

func (e *Engine) applyConstellations(text string, out scoremap.Map) {
	if strings.Contains(text, "chest pain") && strings.Contains(text, "radiat") &&
		strings.Contains(text, "arm") {
		out.RaiseTo("Acute Myocardial Infarction", 90)
	}
	if strings.Contains(text, "fever") && strings.Contains(text, "neck stiffness") &&
		strings.Contains(text, "headache") {
		out.RaiseTo("Meningitis", 90)
	}
	if (strings.Contains(text, "paralysis") || strings.Contains(text, "weakness")) &&
		strings.Contains(text, "speech") {
		out.RaiseTo("Stroke", 85)
	}
	if strings.Contains(text, "abdominal pain") && strings.Contains(text, "vomiting") &&
		strings.Contains(text, "right-sided") {
		out.RaiseTo("Appendicitis", 80)
	}
}

// labValue reads the first named lab whose value starts with a parseable
// number. Units and comparison garnish after the number are ignored;
// unparseable values are skipped, not treated as zero.
func labValue(labs map[string]string, names ...string) (float64, bool) {
	for _, name := range names {
		raw, ok := labs[name]
		if !ok {
			continue
		}
		raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
		end := 0
		for end < len(raw) && (raw[end] == '.' || raw[end] == '-' || (raw[end] >= '0' && raw[end] <= '9')) {
			end++
		}
		if end == 0 {
			continue
		}
		v, err := strconv.ParseFloat(raw[:end], 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}

// Merge folds rule contributions into a classifier baseline, taking the
// maximum per diagnosis so rules only ever strengthen a candidate.
func Merge(baseline, contributions scoremap.Map) scoremap.Map {
	merged := baseline.Clone()
	for name, score := range contributions {
		if score > merged[name] {
			merged[name] = score
		}
	}
	return merged
}
