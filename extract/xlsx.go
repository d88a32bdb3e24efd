package extract

import (
	"path/filepath"

	"github.com/tealeg/xlsx/v3"
)

// WriteXLSX écrit une copie Excel du rapport à côté du CSV. Le nom d'onglet
// est fixe : les ids de rapport dépassent la limite des 31 caractères d'Excel.
func WriteXLSX(records [][]string, dataDir, reportID string) (string, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("report")
	if err != nil {
		return "", err
	}
	for _, rec := range records {
		row := sheet.AddRow()
		for _, v := range rec {
			row.AddCell().SetString(v)
		}
	}
	path := filepath.Join(dataDir, reportID, reportID+".xlsx")
	if err := f.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
