package narrative

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var errNoParsableAdvice = errors.New("no parsable advice in model response")

var (
	fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	percentRe    = regexp.MustCompile(`(?m)^[\s*-]*([A-Za-z][A-Za-z0-9 '\-]+?)\s*[:(]\s*(\d{1,3}(?:\.\d+)?)\s*%`)
	treatmentRe  = regexp.MustCompile(`(?i)treatment[:\s]+(.+)`)
)

// ParseAdvice extracts structured advice from a raw model response.
// It tries, in order: a fenced JSON block, a bare JSON object, and
// finally a plain-text scan for "Name: NN%" lines.
func ParseAdvice(raw string) (*Advice, error) {
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		if adv, err := parseJSONAdvice(m[1]); err == nil {
			return adv, nil
		}
	}

	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		if adv, err := parseJSONAdvice(raw[start : end+1]); err == nil {
			return adv, nil
		}
	}

	return parseTextAdvice(raw)
}

type advicePayload struct {
	Diagnoses   json.RawMessage `json:"diagnoses"`
	Confidence  string          `json:"confidence"`
	Rationale   string          `json:"rationale"`
	Treatment   string          `json:"treatment"`
	BillingCode string          `json:"billing_code"`
}

func parseJSONAdvice(s string) (*Advice, error) {
	var p advicePayload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return nil, fmt.Errorf("decode advice json: %w", err)
	}

	diagnoses, err := parseDiagnoses(p.Diagnoses)
	if err != nil {
		return nil, err
	}
	if len(diagnoses) == 0 {
		return nil, errNoParsableAdvice
	}

	return &Advice{
		Diagnoses:   diagnoses,
		Confidence:  strings.ToLower(strings.TrimSpace(p.Confidence)),
		Rationale:   strings.TrimSpace(p.Rationale),
		Treatment:   strings.TrimSpace(p.Treatment),
		BillingCode: strings.TrimSpace(p.BillingCode),
	}, nil
}

// parseDiagnoses tolerates the two shapes models actually produce: the
// requested name->percent object, and a bare list of names.
func parseDiagnoses(raw json.RawMessage) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, errNoParsableAdvice
	}

	var byName map[string]float64
	if err := json.Unmarshal(raw, &byName); err == nil {
		out := map[string]float64{}
		for name, pct := range byName {
			if name = strings.TrimSpace(name); name != "" {
				out[name] = clampPercent(pct)
			}
		}
		return out, nil
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err == nil && len(names) > 0 {
		share := 100.0 / float64(len(names))
		out := map[string]float64{}
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				out[name] = share
			}
		}
		return out, nil
	}

	return nil, errNoParsableAdvice
}

func parseTextAdvice(raw string) (*Advice, error) {
	diagnoses := map[string]float64{}
	for _, m := range percentRe.FindAllStringSubmatch(raw, -1) {
		name := strings.TrimSpace(m[1])
		pct, err := strconv.ParseFloat(m[2], 64)
		if err != nil || name == "" {
			continue
		}
		diagnoses[name] = clampPercent(pct)
	}
	if len(diagnoses) == 0 {
		return nil, errNoParsableAdvice
	}

	adv := &Advice{Diagnoses: diagnoses, Confidence: "low"}
	if m := treatmentRe.FindStringSubmatch(raw); m != nil {
		adv.Treatment = strings.TrimSpace(m[1])
	}
	return adv, nil
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
