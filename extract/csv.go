package extract

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ParseReport lit le CSV téléchargé et normalise la ligne d'entête
func ParseReport(raw []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse report csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty report (no header row)")
	}
	records[0] = NormalizeHeaders(records[0])
	return records, nil
}

// WriteCSV écrit le rapport dans dataDir/<id>/<id>.csv (dossiers créés au
// besoin, fichier écrasé s'il existe). Renvoie le chemin écrit.
func WriteCSV(records [][]string, dataDir, reportID string) (string, error) {
	dir := filepath.Join(dataDir, reportID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, reportID+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := csv.NewWriter(f).WriteAll(records); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
