package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vfg2006/campaign-orchestrator/internal/domain"
)

// readRowsFile lê linhas no schema de domain.WorkRecordFields. Arquivos .csv
// precisam de cabeçalho; os demais são lidos como uma lista JSON de objetos
// cujas colunas de metadados podem vir como objeto ou como texto.
func readRowsFile(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		records, err := csv.NewReader(file).ReadAll()
		if err != nil {
			return nil, fmt.Errorf("import: csv inválido: %w", err)
		}
		return rowsFromCSV(records)
	}

	var objects []map[string]any
	if err := json.NewDecoder(file).Decode(&objects); err != nil {
		return nil, fmt.Errorf("import: json inválido: %w", err)
	}
	return rowsFromObjects(objects)
}

func rowsFromCSV(records [][]string) ([][]string, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("import: arquivo sem cabeçalho")
	}

	positions := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		positions[strings.TrimSpace(name)] = i
	}
	for _, field := range domain.WorkRecordFields {
		if _, ok := positions[field]; !ok {
			return nil, fmt.Errorf("import: coluna ausente no cabeçalho: %s", field)
		}
	}

	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		values := make([]string, len(domain.WorkRecordFields))
		for i, field := range domain.WorkRecordFields {
			values[i] = record[positions[field]]
		}
		rows = append(rows, values)
	}
	return rows, nil
}

func rowsFromObjects(objects []map[string]any) ([][]string, error) {
	rows := make([][]string, 0, len(objects))
	for n, object := range objects {
		values := make([]string, len(domain.WorkRecordFields))
		for i, field := range domain.WorkRecordFields {
			switch value := object[field].(type) {
			case nil:
			case string:
				values[i] = value
			default:
				encoded, err := json.MarshalToString(value)
				if err != nil {
					return nil, fmt.Errorf("import: objeto %d campo %s: %w", n+1, field, err)
				}
				values[i] = encoded
			}
		}
		rows = append(rows, values)
	}
	return rows, nil
}
