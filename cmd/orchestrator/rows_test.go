package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadRowsFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    [][]string
		wantErr string
	}{
		{
			name: "csv reorders columns by header",
			file: "rows.csv",
			content: "Status,ID,GeneratedVideo,AdsMetadata,VideoMetadata\n" +
				"Off,1,,\"{\"\"account_id\"\":\"\"123\"\"}\",{}\n",
			want: [][]string{{"1", `{"account_id":"123"}`, "{}", "Off", ""}},
		},
		{
			name:    "csv missing column",
			file:    "rows.csv",
			content: "ID,Status\n1,Off\n",
			wantErr: "coluna ausente no cabeçalho: AdsMetadata",
		},
		{
			name:    "empty csv",
			file:    "rows.csv",
			content: "",
			wantErr: "arquivo sem cabeçalho",
		},
		{
			name: "json accepts objects and text cells",
			file: "rows.json",
			content: `[{"ID":"7","AdsMetadata":{"account_id":"123"},"VideoMetadata":"{\"base_video\":\"Promo\"}",` +
				`"Status":"Video Ready","GeneratedVideo":"abc"},{"ID":8}]`,
			want: [][]string{
				{"7", `{"account_id":"123"}`, `{"base_video":"Promo"}`, "Video Ready", "abc"},
				{"8", "", "", "", ""},
			},
		},
		{
			name:    "invalid json",
			file:    "rows.json",
			content: `{"ID":1}`,
			wantErr: "json inválido",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := readRowsFile(writeFile(t, tt.file, tt.content))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestReadRowsFileMissing(t *testing.T) {
	_, err := readRowsFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
