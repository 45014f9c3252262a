// Package vitals parses compact vital-sign strings of the form
// "HR:80,BP:120/80,T:36.8,SpO2:98" and checks readings against
// age-bracket-specific reference ranges.
package vitals

import (
	"fmt"
	"strconv"
	"strings"
)

// Well-known vital keys. Unknown keys are preserved verbatim so newer
// clients can send vitals this service does not yet check.
const (
	KeyHeartRate     = "HR"
	KeyBloodPressure = "BP"
	KeyTemperature   = "T"
	KeySpO2          = "SpO2"
	KeyRespRate      = "RR"
)

// Reading maps a vital-sign key to its raw string value.
type Reading map[string]string

// Parse splits a vitals string on commas then colons. Malformed pairs
// (no colon) are skipped, not an error.
func Parse(s string) Reading {
	r := Reading{}
	if strings.TrimSpace(s) == "" {
		return r
	}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		r[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return r
}

// HeartRate returns the parsed heart rate. ok is false when the value is
// absent or non-numeric.
func (r Reading) HeartRate() (int, bool) {
	return r.intValue(KeyHeartRate)
}

// Temperature returns the parsed body temperature in °C.
func (r Reading) Temperature() (float64, bool) {
	v, ok := r[KeyTemperature]
	if !ok {
		return 0, false
	}
	t, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return t, true
}

// SpO2 returns the parsed oxygen saturation in percent.
func (r Reading) SpO2() (int, bool) {
	return r.intValue(KeySpO2)
}

// RespRate returns the parsed respiratory rate in breaths per minute.
func (r Reading) RespRate() (int, bool) {
	return r.intValue(KeyRespRate)
}

// BloodPressure returns the systolic/diastolic pair from a "120/80" value.
func (r Reading) BloodPressure() (systolic, diastolic int, ok bool) {
	v, present := r[KeyBloodPressure]
	if !present || !strings.Contains(v, "/") {
		return 0, 0, false
	}
	sys, dia, _ := strings.Cut(v, "/")
	s, err1 := strconv.Atoi(strings.TrimSpace(sys))
	d, err2 := strconv.Atoi(strings.TrimSpace(dia))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return s, d, true
}

func (r Reading) intValue(key string) (int, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// AgeGroup is the coarse age bracket used for reference ranges and for the
// pediatric rule branches.
type AgeGroup string

const (
	AgeInfant     AgeGroup = "infant"
	AgeToddler    AgeGroup = "toddler"
	AgeChild      AgeGroup = "child"
	AgeAdolescent AgeGroup = "adolescent"
	AgeAdult      AgeGroup = "adult"
)

// ParseAgeGroup resolves a free-text age label to a bracket. Numeric text is
// mapped by years; unknown labels default to adult.
func ParseAgeGroup(s string) AgeGroup {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "infant", "baby", "säugling", "saeugling":
		return AgeInfant
	case "toddler", "kleinkind":
		return AgeToddler
	case "child", "kind":
		return AgeChild
	case "adolescent", "teenager", "jugendlicher":
		return AgeAdolescent
	case "adult", "erwachsener", "":
		return AgeAdult
	}
	if years, err := strconv.ParseFloat(strings.Fields(strings.TrimSpace(s))[0], 64); err == nil {
		switch {
		case years < 1:
			return AgeInfant
		case years < 5:
			return AgeToddler
		case years < 13:
			return AgeChild
		case years < 18:
			return AgeAdolescent
		}
	}
	return AgeAdult
}

// Pediatric reports whether the bracket uses pediatric reference ranges and
// rule sets.
func (a AgeGroup) Pediatric() bool {
	return a == AgeInfant || a == AgeToddler || a == AgeChild
}

// Years returns a representative numeric age for the bracket, used as the
// age feature in case-similarity lookups.
func (a AgeGroup) Years() float64 {
	switch a {
	case AgeInfant:
		return 0.5
	case AgeToddler:
		return 3
	case AgeChild:
		return 10
	case AgeAdolescent:
		return 16
	default:
		return 40
	}
}

// CheckWarnings flags out-of-range vitals for the given age bracket.
// Non-numeric values fail their individual check silently.
func CheckWarnings(r Reading, age AgeGroup) []string {
	var warnings []string
	infant := age == AgeInfant
	pediatric := age.Pediatric()

	if hr, ok := r.HeartRate(); ok {
		switch {
		case infant && hr > 160:
			warnings = append(warnings, "Tachycardia (HR > 160 in infant)")
		case infant && hr < 100:
			warnings = append(warnings, "Bradycardia (HR < 100 in infant)")
		case !infant && pediatric && hr > 140:
			warnings = append(warnings, "Tachycardia (HR > 140 in child)")
		case !infant && pediatric && hr < 80:
			warnings = append(warnings, "Bradycardia (HR < 80 in child)")
		case !pediatric && hr > 120:
			warnings = append(warnings, "Tachycardia (HR > 120)")
		case !pediatric && hr < 50:
			warnings = append(warnings, "Bradycardia (HR < 50)")
		}
	}

	if sys, _, ok := r.BloodPressure(); ok {
		switch {
		case pediatric && sys > 130:
			warnings = append(warnings, "Elevated blood pressure (systolic > 130 in child)")
		case pediatric && sys < 80:
			warnings = append(warnings, "Hypotension (systolic < 80 in child)")
		case !pediatric && sys > 180:
			warnings = append(warnings, "Severe hypertension (systolic > 180)")
		case !pediatric && sys < 90:
			warnings = append(warnings, "Hypotension (systolic < 90)")
		}
	}

	if t, ok := r.Temperature(); ok {
		switch {
		case t >= 39.5:
			warnings = append(warnings, fmt.Sprintf("High fever (T = %.1f°C)", t))
		case t <= 35.5:
			warnings = append(warnings, fmt.Sprintf("Hypothermia (T = %.1f°C)", t))
		}
	}

	if spo2, ok := r.SpO2(); ok {
		switch {
		case pediatric && spo2 < 94:
			warnings = append(warnings, "Critical oxygen saturation (SpO2 < 94% in child)")
		case !pediatric && spo2 < 92:
			warnings = append(warnings, "Critical oxygen saturation (SpO2 < 92%)")
		}
	}

	return warnings
}
