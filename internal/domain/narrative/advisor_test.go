package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/triage/triage/internal/domain/vitals"
)

type stubModel struct {
	name     string
	response string
	err      error
	calls    int
}

func (s *stubModel) Name() string { return s.name }

func (s *stubModel) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const goodResponse = "Here is my assessment.\n```json\n" +
	`{"diagnoses": {"Pneumonia": 60, "Bronchitis": 30}, "confidence": "high",
	 "rationale": "Productive cough with fever.", "treatment": "Start empiric antibiotics.",
	 "billing_code": "J18.9"}` + "\n```"

func TestAdviseParsesFencedJSON(t *testing.T) {
	a := NewAdvisor(zerolog.Nop(), time.Second, &stubModel{name: "primary", response: goodResponse})
	res := a.Advise(context.Background(), Input{Symptoms: []string{"cough", "fever"}, Age: vitals.AgeAdult})

	if !res.OK() {
		t.Fatalf("Advise failed: %v", res.Err)
	}
	if res.Provider != "primary" {
		t.Errorf("provider = %q", res.Provider)
	}
	if res.Advice.Diagnoses["Pneumonia"] != 60 {
		t.Errorf("Pneumonia = %v", res.Advice.Diagnoses["Pneumonia"])
	}
	if res.Advice.BillingCode != "J18.9" {
		t.Errorf("billing code = %q", res.Advice.BillingCode)
	}
}

func TestAdviseFallsBackOnce(t *testing.T) {
	broken := &stubModel{name: "primary", err: errors.New("rate limited")}
	backup := &stubModel{name: "backup", response: goodResponse}

	a := NewAdvisor(zerolog.Nop(), time.Second, broken, backup)
	res := a.Advise(context.Background(), Input{Symptoms: []string{"cough"}, Age: vitals.AgeAdult})

	if !res.OK() || res.Provider != "backup" {
		t.Fatalf("res = %+v", res)
	}
	if broken.calls != 1 || backup.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", broken.calls, backup.calls)
	}
}

func TestAdviseStopsAfterOneFallback(t *testing.T) {
	a := NewAdvisor(zerolog.Nop(), time.Second,
		&stubModel{name: "a", err: errors.New("down")},
		&stubModel{name: "b", err: errors.New("down")},
		&stubModel{name: "c", response: goodResponse})

	res := a.Advise(context.Background(), Input{Symptoms: []string{"cough"}, Age: vitals.AgeAdult})
	if res.OK() {
		t.Fatal("third provider must not be attempted")
	}
	if !errors.Is(res.Err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", res.Err)
	}
}

func TestAdviseNoProviders(t *testing.T) {
	a := NewAdvisor(zerolog.Nop(), time.Second)
	if res := a.Advise(context.Background(), Input{}); !errors.Is(res.Err, ErrUnavailable) {
		t.Fatalf("err = %v", res.Err)
	}
}

func TestParseAdviceRawJSON(t *testing.T) {
	adv, err := ParseAdvice(`{"diagnoses": {"Migraine": 80}, "treatment": "Triptan therapy."}`)
	if err != nil {
		t.Fatal(err)
	}
	if adv.Diagnoses["Migraine"] != 80 || adv.Treatment != "Triptan therapy." {
		t.Errorf("adv = %+v", adv)
	}
}

func TestParseAdviceDiagnosisList(t *testing.T) {
	adv, err := ParseAdvice(`{"diagnoses": ["Migraine", "Tension Headache"]}`)
	if err != nil {
		t.Fatal(err)
	}
	if adv.Diagnoses["Migraine"] != 50 {
		t.Errorf("share = %v, want 50", adv.Diagnoses["Migraine"])
	}
}

func TestParseAdviceTextFallback(t *testing.T) {
	raw := "Most likely:\n- Pneumonia: 65%\n- Bronchitis: 25%\nTreatment: oral antibiotics"
	adv, err := ParseAdvice(raw)
	if err != nil {
		t.Fatal(err)
	}
	if adv.Diagnoses["Pneumonia"] != 65 {
		t.Errorf("Pneumonia = %v", adv.Diagnoses["Pneumonia"])
	}
	if !strings.Contains(adv.Treatment, "antibiotics") {
		t.Errorf("treatment = %q", adv.Treatment)
	}
	if adv.Confidence != "low" {
		t.Errorf("confidence = %q, want low for text fallback", adv.Confidence)
	}
}

func TestParseAdviceGarbage(t *testing.T) {
	if _, err := ParseAdvice("I cannot help with that."); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseAdviceClampsPercent(t *testing.T) {
	adv, err := ParseAdvice(`{"diagnoses": {"Pneumonia": 250, "Bronchitis": -5}}`)
	if err != nil {
		t.Fatal(err)
	}
	if adv.Diagnoses["Pneumonia"] != 100 || adv.Diagnoses["Bronchitis"] != 0 {
		t.Errorf("clamp failed: %v", adv.Diagnoses)
	}
}

func TestBuildPromptContainsCaseData(t *testing.T) {
	p := BuildPrompt(Input{
		Symptoms:   []string{"chest pain", "sweating"},
		Age:        vitals.AgeAdult,
		Gender:     "male",
		Vitals:     vitals.Reading{vitals.KeyHeartRate: "115"},
		Candidates: []string{"Acute Myocardial Infarction"},
	})
	for _, want := range []string{"chest pain", "HR=115", "Acute Myocardial Infarction", "```json"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
