package scoremap

import "testing"

func TestResolveAliasExact(t *testing.T) {
	m := Map{"Pneumonia": 40, "Bronchitis": 30}
	got, ok := m.ResolveAlias("Pneumonia")
	if !ok || got != "Pneumonia" {
		t.Fatalf("ResolveAlias = %q,%v", got, ok)
	}
}

func TestResolveAliasWordOverlap(t *testing.T) {
	m := Map{"Acute Myocardial Infarction": 60, "Pneumonia": 20}
	got, ok := m.ResolveAlias("Myocardial Infarction")
	if !ok || got != "Acute Myocardial Infarction" {
		t.Fatalf("ResolveAlias = %q,%v", got, ok)
	}
}

func TestResolveAliasSubstringBonus(t *testing.T) {
	m := Map{"RSV Bronchiolitis": 50}
	got, ok := m.ResolveAlias("Bronchiolitis")
	if !ok || got != "RSV Bronchiolitis" {
		t.Fatalf("ResolveAlias = %q,%v", got, ok)
	}
}

func TestResolveAliasRejectsUnrelated(t *testing.T) {
	m := Map{"Pneumonia": 40, "Appendicitis": 20}
	if got, ok := m.ResolveAlias("Diabetic Ketoacidosis"); ok {
		t.Fatalf("unexpected match %q", got)
	}
}

func TestResolveAliasEmptyInputs(t *testing.T) {
	if _, ok := (Map{}).ResolveAlias("Pneumonia"); ok {
		t.Error("empty map must not match")
	}
	if _, ok := (Map{"Pneumonia": 1}).ResolveAlias("  "); ok {
		t.Error("blank name must not match")
	}
}
