// Package spreadsheet reads the regional wage workbook (xlsx, or a CSV export of
// it) into a positional table. The first physical line of the workbook holds a
// grouping label; the column headers are on the line below.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/pdn-calc/internal/apperror"
	"fjacquet/pdn-calc/internal/logging"
	"fjacquet/pdn-calc/internal/wagetable"

	"github.com/xuri/excelize/v2"
)

// DefaultHeaderRow is the zero-based line index of the header line.
const DefaultHeaderRow = 1

const sourceName = "spreadsheet"

// ErrUnsupportedFormat is returned for file extensions the reader cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Reader loads a workbook into a wagetable.RawTable.
type Reader struct {
	headerRow int
	logger    logging.Logger
}

// NewReader creates a Reader that takes line headerRow as the header line and
// ignores the lines above it.
func NewReader(headerRow int, logger logging.Logger) *Reader {
	if headerRow < 0 {
		headerRow = DefaultHeaderRow
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Reader{headerRow: headerRow, logger: logger}
}

// Read loads the first sheet of an .xlsx workbook or a .csv file.
func (r *Reader) Read(path string) (wagetable.RawTable, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		rows, err = readWorkbook(path)
	case ".csv":
		rows, err = readCSV(path)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return wagetable.RawTable{}, &apperror.SourceUnavailableError{Source: sourceName, Reason: path, Err: err}
	}

	r.logger.Debug("Read spreadsheet",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(rows)))
	return toRawTable(rows, r.headerRow)
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("error reading CSV file: %w", err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = detectDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	return rows, nil
}

// detectDelimiter prefers ';' (the usual Russian-locale export) when the first
// line has more semicolons than commas. Commas are also decimal separators there.
func detectDelimiter(text string) rune {
	first := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		first = text[:i]
	}
	if strings.Count(first, ";") >= strings.Count(first, ",") && strings.Contains(first, ";") {
		return ';'
	}
	return ','
}

// toRawTable drops the lines above headerRow and pads the header line to the
// widest row so that "last column" means the same thing for every row.
func toRawTable(rows [][]string, headerRow int) (wagetable.RawTable, error) {
	if len(rows) <= headerRow {
		return wagetable.RawTable{}, &apperror.SourceUnavailableError{
			Source: sourceName,
			Reason: fmt.Sprintf("expected header on line %d, file has %d lines", headerRow+1, len(rows)),
		}
	}

	width := 0
	for _, row := range rows[headerRow:] {
		if len(row) > width {
			width = len(row)
		}
	}

	headers := make([]string, width)
	for i, h := range rows[headerRow] {
		headers[i] = strings.TrimSpace(h)
	}
	return wagetable.RawTable{Headers: headers, Rows: rows[headerRow+1:]}, nil
}
