package jobs

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/Thinguy99/bot-discord/pkg/types"
)

func TestWriteCSV(t *testing.T) {
	listings := []types.JobListing{
		{
			Title: "Data Scientist", Company: "Acme Corp", Location: "Paris",
			ContractType: "Full-time", PostedAt: "2026-02-10",
			URL: "https://example.com/1", Salary: "40k€", Source: "francetravail",
			Description: "Analyser, avec des virgules, les données.",
		},
		{Title: "Data Analyst", Company: "Beta SARL"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, listings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(records))
	}
	if records[0][0] != "titre" || records[0][5] != "url" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][8] != "Analyser, avec des virgules, les données." {
		t.Errorf("description cell = %q", records[1][8])
	}
	if records[2][0] != "Data Analyst" {
		t.Errorf("second row title = %q", records[2][0])
	}
}

func TestSummarize(t *testing.T) {
	listings := []types.JobListing{
		{Company: "Acme", Location: "Paris", ContractType: "Full-time", PostedAt: "2026-02-01"},
		{Company: "Acme", Location: "Paris", ContractType: "Internship", PostedAt: "2026-02-15"},
		{Company: "Beta", Location: "Lyon", ContractType: "Full-time", PostedAt: "2026-01-20"},
	}

	s := Summarize(listings)
	if s.Total != 3 {
		t.Errorf("total = %d", s.Total)
	}
	if len(s.TopCompanies) == 0 || s.TopCompanies[0] != (Counted{Value: "Acme", Count: 2}) {
		t.Errorf("top companies = %v", s.TopCompanies)
	}
	if len(s.TopLocations) == 0 || s.TopLocations[0] != (Counted{Value: "Paris", Count: 2}) {
		t.Errorf("top locations = %v", s.TopLocations)
	}
	if s.Newest != "2026-02-15" || s.Oldest != "2026-01-20" {
		t.Errorf("newest/oldest = %q/%q", s.Newest, s.Oldest)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 || len(s.TopCompanies) != 0 || s.Newest != "" {
		t.Errorf("empty input should yield an empty summary, got %+v", s)
	}
}

func TestTopNTieBreak(t *testing.T) {
	got := topN(map[string]int{"b": 1, "a": 1, "c": 2}, 2)
	want := []Counted{{Value: "c", Count: 2}, {Value: "a", Count: 1}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("topN = %v, want %v", got, want)
	}
}
