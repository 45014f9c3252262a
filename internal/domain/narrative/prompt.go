package narrative

import (
	"fmt"
	"strings"

	"github.com/triage/triage/internal/domain/vitals"
)

// Input describes the case the model is asked about.
type Input struct {
	Symptoms       []string
	Age            vitals.AgeGroup
	Gender         string
	Vitals         vitals.Reading
	AdditionalInfo string
	Candidates     []string // current leading diagnoses, as orientation
}

// BuildPrompt renders the advisory prompt. The response format block pins
// the JSON shape the parser expects; everything before it is case data.
func BuildPrompt(in Input) string {
	var b strings.Builder

	b.WriteString("You are an experienced physician assisting with clinical triage.\n")
	b.WriteString("Assess the following case and respond in JSON.\n\n")

	b.WriteString("Patient:\n")
	fmt.Fprintf(&b, "- Age group: %s\n", in.Age)
	if in.Gender != "" {
		fmt.Fprintf(&b, "- Gender: %s\n", in.Gender)
	}
	fmt.Fprintf(&b, "- Symptoms: %s\n", strings.Join(in.Symptoms, ", "))

	if len(in.Vitals) > 0 {
		b.WriteString("- Vitals:")
		for _, key := range []string{vitals.KeyHeartRate, vitals.KeyBloodPressure, vitals.KeyTemperature, vitals.KeyRespRate, vitals.KeySpO2} {
			if v, ok := in.Vitals[key]; ok {
				fmt.Fprintf(&b, " %s=%s", key, v)
			}
		}
		b.WriteString("\n")
	}
	if strings.TrimSpace(in.AdditionalInfo) != "" {
		fmt.Fprintf(&b, "- Additional information: %s\n", strings.TrimSpace(in.AdditionalInfo))
	}
	if len(in.Candidates) > 0 {
		fmt.Fprintf(&b, "\nPreliminary differential (for orientation only): %s\n",
			strings.Join(in.Candidates, ", "))
	}

	b.WriteString(`
Respond with a single JSON object in a fenced code block:
` + "```json" + `
{
  "diagnoses": {"<diagnosis name>": <probability in percent>},
  "confidence": "<low|medium|high>",
  "rationale": "<one short paragraph>",
  "treatment": "<recommended immediate management>",
  "billing_code": "<ICD-10 code of the most likely diagnosis>"
}
` + "```" + `
List at most five diagnoses. Probabilities should sum to roughly 100.
`)
	return b.String()
}
