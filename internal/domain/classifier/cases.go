package classifier

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultCases returns the embedded training table: common adult
// presentations plus the pediatric respiratory/infectious cases the base
// table underrepresents. Retraining on real data happens offline; this set
// only has to give the fusion pipeline a sane baseline distribution.
func DefaultCases() []Case {
	rows := []struct {
		symptoms  string
		diagnosis string
	}{
		{"chest pain,shortness of breath", "Acute Myocardial Infarction"},
		{"chest pain,radiation to arm,sweating", "Acute Myocardial Infarction"},
		{"chest pain,nausea,sweating", "Acute Myocardial Infarction"},
		{"chest pain,fatigue", "Angina Pectoris"},
		{"shortness of breath,chest pain,palpitations", "Pulmonary Embolism"},
		{"fever,cough,sputum", "Pneumonia"},
		{"fever,cough,shortness of breath", "Pneumonia"},
		{"fever,fatigue,headache", "Influenza"},
		{"fatigue,nausea", "Influenza"},
		{"cough,sputum", "Bronchitis"},
		{"shortness of breath,wheezing", "Asthma Attack"},
		{"headache,photophobia,nausea", "Migraine"},
		{"fever,neck stiffness,headache", "Meningitis"},
		{"severe headache,fever,vomiting", "Meningitis"},
		{"paralysis,speech disturbance", "Stroke"},
		{"paralysis,dizziness,headache", "Stroke"},
		{"abdominal pain,vomiting,right-sided abdominal pain", "Appendicitis"},
		{"abdominal pain,loss of appetite,fever", "Appendicitis"},
		{"dysuria,urinary frequency", "Urinary Tract Infection"},
		{"dysuria,fever,flank pain", "Pyelonephritis"},
		{"diarrhea,vomiting,abdominal pain", "Gastroenteritis"},
		{"shortness of breath,leg swelling,orthopnea", "Heart Failure"},
		{"palpitations,sweating,fatigue", "Hyperthyroidism"},
		{"thirst,polyuria,fatigue", "Decompensated Diabetes"},
		{"chest pain,fever", "Pericarditis"},
		{"rash,itching", "Urticaria"},
		{"rash,itching,shortness of breath", "Anaphylaxis"},
		{"headache,dizziness,fatigue", "Tension Headache"},
		{"fever,chills,back pain", "Pyelonephritis"},
		// Pediatric cases.
		{"infant cough,fever,shortness of breath", "RSV Bronchiolitis"},
		{"barking cough,hoarseness,fever", "Croup"},
		{"barking cough,hoarseness,stridor", "Croup"},
		{"barking cough,fever,stridor", "Croup"},
		{"infant cough,fever,runny nose", "Viral Respiratory Infection"},
		{"fever,cough,wheezing", "Bronchiolitis"},
		{"fever,difficulty swallowing,drooling", "Epiglottitis"},
		{"fever,earache,crying", "Acute Otitis Media"},
		{"diarrhea,vomiting,fever", "Pediatric Gastroenteritis"},
		{"cough,runny nose,sore throat", "Viral Respiratory Infection"},
		{"fever,rash,fatigue", "Childhood Exanthem"},
		{"fever,headache,photophobia", "Meningitis"},
		{"fever,earache,vomiting", "Acute Otitis Media"},
		{"infant cough,shortness of breath,fever", "Infant Bronchopneumonia"},
		{"fever,rash,cough", "Measles"},
		{"fever,sore throat,rash", "Scarlet Fever"},
		{"fever,vomiting,neck stiffness", "Meningitis"},
	}

	cases := make([]Case, 0, len(rows))
	for _, r := range rows {
		cases = append(cases, Case{
			Symptoms:  strings.Split(r.symptoms, ","),
			Diagnosis: r.diagnosis,
		})
	}
	return cases
}

// LoadCasesCSV reads a training table from CSV with header columns
// "symptoms" (comma-separated within the cell) and "diagnosis".
func LoadCasesCSV(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open case table: %w", err)
	}
	defer f.Close()
	return readCases(f)
}

func readCases(r io.Reader) ([]Case, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read case table header: %w", err)
	}
	symptomsCol, diagnosisCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "symptoms", "anamnesis", "symptome", "anamnese":
			symptomsCol = i
		case "diagnosis", "diagnose":
			diagnosisCol = i
		}
	}
	if symptomsCol < 0 || diagnosisCol < 0 {
		return nil, fmt.Errorf("case table missing symptoms/diagnosis columns: %v", header)
	}

	var cases []Case
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read case table row: %w", err)
		}
		if len(rec) <= symptomsCol || len(rec) <= diagnosisCol {
			continue
		}
		var symptoms []string
		for _, s := range strings.Split(rec[symptomsCol], ",") {
			if s = strings.TrimSpace(strings.ToLower(s)); s != "" {
				symptoms = append(symptoms, s)
			}
		}
		diagnosis := strings.TrimSpace(rec[diagnosisCol])
		if len(symptoms) == 0 || diagnosis == "" {
			continue
		}
		cases = append(cases, Case{Symptoms: symptoms, Diagnosis: diagnosis})
	}
	return cases, nil
}
