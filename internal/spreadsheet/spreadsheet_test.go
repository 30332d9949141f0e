package spreadsheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/pdn-calc/internal/apperror"
	"fjacquet/pdn-calc/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook creates an xlsx file whose first sheet holds rows.
func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestRead_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rosstat_data_regions.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"", "Среднемесячная номинальная начисленная заработная плата"},
		{"", "Июнь", "Июль"},
		{"Российская Федерация", 85000, 89000.5},
		{"Белгородская область", 74000, 75834},
	})

	raw, err := NewReader(DefaultHeaderRow, logging.NewMockLogger()).Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Июнь", "Июль"}, raw.Headers)
	require.Len(t, raw.Rows, 2)
	assert.Equal(t, "Белгородская область", raw.Cell(1, 0))
	assert.Equal(t, "75834", raw.Cell(1, 2))
	assert.Equal(t, "89000.5", raw.Cell(0, 2))
}

func TestRead_CSVSemicolonWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.csv")
	content := "\ufeffЗаработная плата;;\n;Июнь;Июль\nМосква;170 000,5;178 596,4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	raw, err := NewReader(DefaultHeaderRow, nil).Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Июнь", "Июль"}, raw.Headers)
	assert.Equal(t, [][]string{{"Москва", "170 000,5", "178 596,4"}}, raw.Rows)
}

func TestRead_HeaderPaddedToWidestRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.csv")
	content := "group\nРегион,Июнь\nМосква,1,2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	raw, err := NewReader(1, nil).Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Регион", "Июнь", ""}, raw.Headers)
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.csv")
	require.NoError(t, os.WriteFile(short, []byte("only one line\n"), 0600))

	legacy := filepath.Join(dir, "legacy.xls")
	require.NoError(t, os.WriteFile(legacy, []byte("binary"), 0600))

	corrupt := filepath.Join(dir, "corrupt.xlsx")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a zip"), 0600))

	tests := map[string]string{
		"missing file":       filepath.Join(dir, "absent.xlsx"),
		"too few lines":      short,
		"unsupported format": legacy,
		"corrupt workbook":   corrupt,
	}

	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewReader(DefaultHeaderRow, nil).Read(path)
			var unavailable *apperror.SourceUnavailableError
			assert.True(t, errors.As(err, &unavailable), "got %v", err)
		})
	}

	_, err := NewReader(DefaultHeaderRow, nil).Read(legacy)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', detectDelimiter("a;b;c\n1,5;2;3"))
	assert.Equal(t, ',', detectDelimiter("a,b,c"))
	assert.Equal(t, ',', detectDelimiter("single"))
}

func TestNewReader_NegativeHeaderRow(t *testing.T) {
	assert.Equal(t, DefaultHeaderRow, NewReader(-1, nil).headerRow)
}
