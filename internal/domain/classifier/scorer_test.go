package classifier

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/triage/triage/internal/domain/symptom"
)

func TestTrainAndPredict(t *testing.T) {
	m := Train(DefaultCases())

	probs := m.PredictProba([]string{"chest pain", "shortness of breath"})
	if len(probs) == 0 {
		t.Fatal("no predictions")
	}
	if probs[0].Label != "Acute Myocardial Infarction" {
		t.Errorf("top prediction = %q, want Acute Myocardial Infarction (got %v)", probs[0].Label, probs[:3])
	}

	total := 0.0
	for _, p := range probs {
		total += p.Prob
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("probabilities sum to %v, want 1.0", total)
	}
}

func TestPredictPediatric(t *testing.T) {
	m := Train(DefaultCases())
	probs := m.PredictProba([]string{"barking cough", "hoarseness", "fever"})
	if probs[0].Label != "Croup" {
		t.Errorf("top prediction = %q, want Croup", probs[0].Label)
	}
}

func TestPredictUnknownFeaturesIgnored(t *testing.T) {
	m := Train(DefaultCases())
	withNoise := m.PredictProba([]string{"fever", "cough", "not-a-symptom"})
	clean := m.PredictProba([]string{"fever", "cough"})
	if withNoise[0].Label != clean[0].Label {
		t.Errorf("unknown feature changed top prediction: %q vs %q", withNoise[0].Label, clean[0].Label)
	}
}

func TestScorerScore(t *testing.T) {
	dict := symptom.DefaultDictionary()
	s := NewScorer(dict, DefaultCases())

	res := dict.Match("chest pain, shortness of breath")
	scores, err := s.Score(res.IDs)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if scores["Acute Myocardial Infarction"] == 0 {
		t.Errorf("AMI absent from baseline: %v", scores)
	}
	for name, v := range scores {
		if v <= 0 {
			t.Errorf("%s = %v, zero-probability classes must be omitted", name, v)
		}
	}
}

func TestScorerEmptyIDs(t *testing.T) {
	s := NewScorer(symptom.DefaultDictionary(), DefaultCases())
	if _, err := s.Score(nil); !errors.Is(err, symptom.ErrNoSymptomsRecognized) {
		t.Errorf("err = %v, want ErrNoSymptomsRecognized", err)
	}
}

func TestScorerReloadSwapsModel(t *testing.T) {
	dict := symptom.DefaultDictionary()
	s := NewScorer(dict, DefaultCases())
	s.Reload([]Case{{Symptoms: []string{"fever"}, Diagnosis: "Only Diagnosis"}})

	res := dict.Match("fever")
	scores, err := s.Score(res.IDs)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if _, ok := scores["Only Diagnosis"]; !ok {
		t.Errorf("reloaded model not in effect: %v", scores)
	}
}

func TestReadCasesCSV(t *testing.T) {
	in := "symptoms,diagnosis\n\"fever,cough\",Pneumonia\n\"chest pain\",Angina Pectoris\n"
	cases, err := readCases(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readCases: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("len = %d, want 2", len(cases))
	}
	if cases[0].Diagnosis != "Pneumonia" || len(cases[0].Symptoms) != 2 {
		t.Errorf("row 0 = %+v", cases[0])
	}
}

func TestReadCasesCSVMissingColumns(t *testing.T) {
	if _, err := readCases(strings.NewReader("a,b\n1,2\n")); err == nil {
		t.Error("expected error for missing columns")
	}
}
