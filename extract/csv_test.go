package extract

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestParseReport_NormalizesHeader(t *testing.T) {
	raw := []byte("Candidate Name,Screening Question Answer: Are you willing to relocate?\nalice,yes\n")
	records, err := ParseReport(raw)
	if err != nil {
		t.Fatalf("ParseReport failed: %v", err)
	}
	if records[0][0] != "candidate_name" || records[0][1] != "are_you_willing_to_relocate" {
		t.Errorf("Header not normalized: %v", records[0])
	}
	if records[1][0] != "alice" {
		t.Errorf("Data row altered: %v", records[1])
	}
}

func TestParseReport_Empty(t *testing.T) {
	if _, err := ParseReport([]byte("")); err == nil {
		t.Error("Expected error for empty payload")
	}
}

func TestWriteCSV_CreatesDirsAndOverwrites(t *testing.T) {
	dataDir := t.TempDir()
	records := [][]string{{"candidate_name"}, {"alice"}}

	path, err := WriteCSV(records, dataDir, "rep-1")
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if path != filepath.Join(dataDir, "rep-1", "rep-1.csv") {
		t.Errorf("Unexpected path %q", path)
	}

	// re-run : le fichier existant est écrasé sans erreur
	records[1][0] = "bob"
	if _, err := WriteCSV(records, dataDir, "rep-1"); err != nil {
		t.Fatalf("WriteCSV overwrite failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()
	got, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(got) != 2 || got[1][0] != "bob" {
		t.Errorf("Expected overwritten content, got %v", got)
	}
}
