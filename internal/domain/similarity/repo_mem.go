package similarity

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/triage/triage/internal/domain/vitals"
)

// repoMem is the in-memory fallback used when no database is configured.
type repoMem struct {
	mu    sync.RWMutex
	cases []*ReferenceCase
}

func NewMemRepo(cases []*ReferenceCase) Repository {
	return &repoMem{cases: cases}
}

func (r *repoMem) LoadAll(_ context.Context) ([]*ReferenceCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ReferenceCase, len(r.cases))
	copy(out, r.cases)
	return out, nil
}

func (r *repoMem) Insert(_ context.Context, c *ReferenceCase) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.mu.Lock()
	r.cases = append(r.cases, c)
	r.mu.Unlock()
	return nil
}

func (r *repoMem) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cases), nil
}

// caseTemplate seeds one cluster of reference cases. The first diagnosis is
// the primary discharge diagnosis.
type caseTemplate struct {
	diagnoses []string
	ageYears  float64
	gender    string
	symptoms  []string
	hr        float64
	bpSys     float64
	bpDia     float64
	temp      float64
	respRate  float64
	spo2      float64
	labs      map[string]float64
}

var seedTemplates = []caseTemplate{
	{[]string{"Acute Myocardial Infarction", "Heart Failure"}, 62, "male", []string{"chest pain", "shortness of breath", "sweating"}, 112, 150, 95, 37.1, 22, 94, map[string]float64{LabWBC: 11.2, LabCRP: 18, LabGlucose: 140}},
	{[]string{"Pneumonia"}, 55, "female", []string{"fever", "cough", "shortness of breath"}, 105, 125, 80, 38.9, 26, 91, map[string]float64{LabWBC: 15.4, LabCRP: 160}},
	{[]string{"Pulmonary Embolism"}, 48, "female", []string{"shortness of breath", "chest pain"}, 118, 110, 70, 37.3, 28, 89, map[string]float64{LabWBC: 10.1}},
	{[]string{"Stroke"}, 71, "male", []string{"paralysis", "speech disturbance"}, 88, 170, 95, 36.9, 18, 96, map[string]float64{LabGlucose: 155}},
	{[]string{"Meningitis"}, 24, "female", []string{"fever", "severe headache", "neck stiffness"}, 115, 110, 70, 39.8, 24, 95, map[string]float64{LabWBC: 18.2, LabCRP: 190}},
	{[]string{"Appendicitis"}, 26, "male", []string{"abdominal pain", "vomiting", "loss of appetite"}, 98, 120, 78, 38.2, 18, 97, map[string]float64{LabWBC: 14.1, LabCRP: 85}},
	{[]string{"Urinary Tract Infection"}, 34, "female", []string{"dysuria", "urinary frequency"}, 85, 118, 76, 37.6, 16, 98, map[string]float64{LabWBC: 12.8, LabCRP: 45}},
	{[]string{"Pyelonephritis", "Urinary Tract Infection"}, 41, "female", []string{"fever", "flank pain", "dysuria"}, 102, 115, 74, 39.2, 20, 97, map[string]float64{LabWBC: 16.5, LabCRP: 210, LabCreatinine: 1.4}},
	{[]string{"Heart Failure"}, 74, "male", []string{"shortness of breath", "leg swelling", "orthopnea"}, 95, 145, 90, 36.8, 24, 92, map[string]float64{LabCreatinine: 1.6, LabHemoglobin: 11.8}},
	{[]string{"Asthma Attack"}, 29, "female", []string{"shortness of breath", "wheezing", "cough"}, 108, 125, 80, 37.0, 28, 93, nil},
	{[]string{"Bronchitis"}, 45, "male", []string{"cough", "sputum", "fever"}, 92, 128, 82, 38.1, 20, 96, map[string]float64{LabWBC: 11.9, LabCRP: 55}},
	{[]string{"Influenza", "Bronchitis"}, 33, "male", []string{"fever", "headache", "fatigue", "chills"}, 100, 118, 75, 39.1, 18, 97, map[string]float64{LabWBC: 5.2}},
	{[]string{"Migraine"}, 31, "female", []string{"severe headache", "photophobia", "nausea"}, 78, 115, 75, 36.7, 14, 98, nil},
	{[]string{"Croup"}, 2, "male", []string{"barking cough", "hoarseness", "fever"}, 128, 95, 60, 38.6, 32, 95, nil},
	{[]string{"RSV Bronchiolitis", "Bronchiolitis"}, 0.5, "female", []string{"cough", "fever", "shortness of breath"}, 155, 85, 55, 38.8, 45, 92, map[string]float64{LabWBC: 13.5}},
	{[]string{"Bronchiolitis"}, 0.8, "male", []string{"cough", "shortness of breath", "runny nose"}, 150, 88, 56, 38.2, 42, 93, nil},
	{[]string{"Acute Otitis Media"}, 4, "female", []string{"earache", "fever", "crying"}, 120, 98, 62, 38.9, 26, 98, map[string]float64{LabWBC: 12.2}},
	{[]string{"Pediatric Pneumonia"}, 7, "male", []string{"fever", "cough", "shortness of breath"}, 125, 102, 65, 39.3, 34, 91, map[string]float64{LabWBC: 17.8, LabCRP: 145}},
	{[]string{"Gastroenteritis"}, 38, "female", []string{"vomiting", "diarrhea", "abdominal pain"}, 96, 110, 70, 37.8, 16, 98, nil},
	{[]string{"Anaphylactic Reaction"}, 27, "male", []string{"rash", "shortness of breath", "itching"}, 125, 90, 60, 36.9, 26, 93, nil},
}

const (
	seedVariantsPerTemplate = 3
	seedRandSource          = 42
)

// SeedCases builds the synthetic reference population used when no
// database backs the similarity engine. The generator is seeded with a
// fixed source so the population, and therefore retrieval results, are
// identical across restarts.
func SeedCases() []*ReferenceCase {
	rng := rand.New(rand.NewSource(seedRandSource))
	var cases []*ReferenceCase
	for _, t := range seedTemplates {
		for v := 0; v < seedVariantsPerTemplate; v++ {
			cases = append(cases, t.variant(rng, v))
		}
	}
	return cases
}

func (t caseTemplate) variant(rng *rand.Rand, n int) *ReferenceCase {
	jitter := func(v, spread float64) float64 {
		if n == 0 {
			return v
		}
		return v + (rng.Float64()*2-1)*spread
	}

	r := vitals.Reading{
		vitals.KeyHeartRate:   strconv.Itoa(int(jitter(t.hr, 8))),
		vitals.KeyTemperature: strconv.FormatFloat(jitter(t.temp, 0.4), 'f', 1, 64),
		vitals.KeyRespRate:    strconv.Itoa(int(jitter(t.respRate, 3))),
		vitals.KeySpO2:        strconv.Itoa(int(jitter(t.spo2, 1.5))),
		vitals.KeyBloodPressure: fmt.Sprintf("%d/%d",
			int(jitter(t.bpSys, 10)), int(jitter(t.bpDia, 6))),
	}

	labs := map[string]float64{}
	for k, v := range t.labs {
		labs[k] = jitter(v, v*0.1)
	}

	return &ReferenceCase{
		ID:        deterministicID(t.diagnoses[0], n),
		AgeYears:  jitter(t.ageYears, t.ageYears*0.1),
		Gender:    t.gender,
		Symptoms:  t.symptoms,
		Diagnoses: t.diagnoses,
		Vitals:    r,
		Labs:      labs,
	}
}

func deterministicID(primary string, n int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/%d", primary, n)))
}
