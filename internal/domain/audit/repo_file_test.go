package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestFileRepoAppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	repo := NewFileRepo(path)
	ctx := context.Background()

	recs := []*Record{
		{Symptoms: []string{"fever", "cough"}, TopDiagnosis: "Pneumonia", Source: "ml+rules+vitals"},
		{Symptoms: []string{"chest pain"}, TopDiagnosis: "Acute Myocardial Infarction", Source: "full-hybrid"},
	}
	for _, rec := range recs {
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var got []Record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r Record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("line not valid json: %v", err)
		}
		got = append(got, r)
	}
	if len(got) != 2 {
		t.Fatalf("lines = %d, want 2", len(got))
	}
	if got[0].TopDiagnosis != "Pneumonia" || got[1].Source != "full-hybrid" {
		t.Errorf("records = %+v", got)
	}
	if got[0].ID == uuid.Nil || got[0].Timestamp.IsZero() {
		t.Error("append must stamp id and timestamp")
	}
}

func TestFileRepoKeepsCallerStamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	repo := NewFileRepo(path)

	id := uuid.New()
	rec := &Record{ID: id, Symptoms: []string{"fever"}}
	if err := repo.Append(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	if rec.ID != id {
		t.Errorf("id overwritten: %s", rec.ID)
	}
}
