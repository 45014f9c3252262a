package vitals

import "testing"

func TestParse(t *testing.T) {
	r := Parse("HR:110, BP:120/80 ,T:38.5,SpO2:94")

	if got := r[KeyHeartRate]; got != "110" {
		t.Errorf("HR = %q, want 110", got)
	}
	if got := r[KeyBloodPressure]; got != "120/80" {
		t.Errorf("BP = %q, want 120/80", got)
	}
	if got := r[KeyTemperature]; got != "38.5" {
		t.Errorf("T = %q, want 38.5", got)
	}
}

func TestParseMalformedPairsSkipped(t *testing.T) {
	r := Parse("HR:90,garbage,T:37.0")
	if len(r) != 2 {
		t.Fatalf("len = %d, want 2 (malformed pair skipped): %v", len(r), r)
	}
}

func TestParseUnknownKeysPreserved(t *testing.T) {
	r := Parse("HR:90,RR:22")
	if got := r["RR"]; got != "22" {
		t.Errorf("unknown key RR = %q, want preserved verbatim", got)
	}
}

func TestParseEmpty(t *testing.T) {
	if r := Parse("   "); len(r) != 0 {
		t.Errorf("blank input produced %v", r)
	}
}

func TestBloodPressure(t *testing.T) {
	r := Parse("BP:145/95")
	sys, dia, ok := r.BloodPressure()
	if !ok || sys != 145 || dia != 95 {
		t.Errorf("BloodPressure() = %d/%d %v, want 145/95 true", sys, dia, ok)
	}

	r = Parse("BP:high")
	if _, _, ok := r.BloodPressure(); ok {
		t.Error("non-numeric BP parsed as ok")
	}
}

func TestParseAgeGroup(t *testing.T) {
	cases := map[string]AgeGroup{
		"infant":     AgeInfant,
		"Säugling":   AgeInfant,
		"child":      AgeChild,
		"Kind":       AgeChild,
		"adult":      AgeAdult,
		"":           AgeAdult,
		"0.5":        AgeInfant,
		"3":          AgeToddler,
		"9 years":    AgeChild,
		"16":         AgeAdolescent,
		"42":         AgeAdult,
		"mysterious": AgeAdult,
	}
	for in, want := range cases {
		if got := ParseAgeGroup(in); got != want {
			t.Errorf("ParseAgeGroup(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCheckWarningsAdult(t *testing.T) {
	r := Parse("HR:130,BP:190/100,T:40.0,SpO2:90")
	warnings := CheckWarnings(r, AgeAdult)
	if len(warnings) != 4 {
		t.Fatalf("warnings = %v, want 4 entries", warnings)
	}
}

func TestCheckWarningsInfantBrackets(t *testing.T) {
	// 150 bpm is tachycardic for an adult but normal for an infant.
	r := Parse("HR:150")
	if w := CheckWarnings(r, AgeInfant); len(w) != 0 {
		t.Errorf("infant HR 150 flagged: %v", w)
	}
	if w := CheckWarnings(r, AgeAdult); len(w) != 1 {
		t.Errorf("adult HR 150 not flagged: %v", w)
	}

	r = Parse("HR:170")
	if w := CheckWarnings(r, AgeInfant); len(w) != 1 {
		t.Errorf("infant HR 170 not flagged: %v", w)
	}
}

func TestCheckWarningsNonNumericSilent(t *testing.T) {
	r := Parse("HR:rapid,T:feverish")
	if w := CheckWarnings(r, AgeAdult); len(w) != 0 {
		t.Errorf("non-numeric vitals produced warnings: %v", w)
	}
}

func TestPediatricSpO2Threshold(t *testing.T) {
	r := Parse("SpO2:93")
	if w := CheckWarnings(r, AgeChild); len(w) != 1 {
		t.Errorf("child SpO2 93 not flagged: %v", w)
	}
	if w := CheckWarnings(r, AgeAdult); len(w) != 0 {
		t.Errorf("adult SpO2 93 flagged: %v", w)
	}
}
