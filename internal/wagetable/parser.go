package wagetable

import (
	"errors"
	"strings"

	"fjacquet/pdn-calc/internal/logging"
	"fjacquet/pdn-calc/internal/numparse"
)

var (
	// ErrColumnsNotFound means the region or wage column could not be identified.
	ErrColumnsNotFound = errors.New("region or wage column not found")

	// ErrNoRows means the columns were found but no row produced a usable wage.
	ErrNoRows = errors.New("no usable rows")
)

// RawTable is a table as read from a source: header cells and positional rows.
// Rows may be shorter than Headers; missing cells count as blank.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the trimmed cell at row r, column c, or "" when out of range.
func (rt RawTable) Cell(r, c int) string {
	if r < 0 || r >= len(rt.Rows) || c < 0 || c >= len(rt.Rows[r]) {
		return ""
	}
	return strings.TrimSpace(rt.Rows[r][c])
}

// Options tunes column detection and row filtering.
type Options struct {
	RegionTokens     []string
	WageTokens       []string
	ExclusionMarkers []string

	// RegionColumn is a fixed region column index, or AutoColumn to detect it.
	RegionColumn int

	// LastColumnFallback uses the last header as the wage column when no header
	// matches WageTokens.
	LastColumnFallback bool
}

// DefaultOptions returns the heuristics used for scraped HTML tables.
func DefaultOptions() Options {
	return Options{
		RegionTokens:     DefaultRegionTokens,
		WageTokens:       append([]string{DefaultTargetColumn}, DefaultWageTokens...),
		ExclusionMarkers: DefaultExclusionMarkers,
		RegionColumn:     AutoColumn,
	}
}

// Parser extracts a Table from a RawTable.
type Parser struct {
	opts   Options
	logger logging.Logger
}

// NewParser creates a Parser. A nil logger gets a default one.
func NewParser(opts Options, logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{opts: opts, logger: logger}
}

// Options returns the parser configuration.
func (p *Parser) Options() Options {
	return p.opts
}

// Columns resolves the region and wage column indexes for headers.
func (p *Parser) Columns(headers []string) (regionCol, wageCol int, err error) {
	regionCol = p.opts.RegionColumn
	if regionCol == AutoColumn {
		var ok bool
		if regionCol, ok = FindColumn(headers, p.opts.RegionTokens); !ok {
			return AutoColumn, AutoColumn, ErrColumnsNotFound
		}
	} else if regionCol < 0 || regionCol >= len(headers) {
		return AutoColumn, AutoColumn, ErrColumnsNotFound
	}

	wageCol, ok := FindColumn(headers, p.opts.WageTokens)
	if !ok {
		if !p.opts.LastColumnFallback || len(headers) == 0 {
			return AutoColumn, AutoColumn, ErrColumnsNotFound
		}
		wageCol = len(headers) - 1
	}
	return regionCol, wageCol, nil
}

// Parse extracts region wages from rt. Unparseable rows and aggregate rows are
// skipped. When a region repeats, the first row wins.
func (p *Parser) Parse(rt RawTable) (Table, error) {
	regionCol, wageCol, err := p.Columns(rt.Headers)
	if err != nil {
		return Table{}, err
	}

	log := p.logger.WithFields(
		logging.F(logging.FieldRegionCol, rt.Headers[regionCol]),
		logging.F(logging.FieldWageCol, rt.Headers[wageCol]),
	)

	wages := make(map[string]float64)
	for r := range rt.Rows {
		region := rt.Cell(r, regionCol)
		if region == "" {
			continue
		}
		if IsAggregate(region, p.opts.ExclusionMarkers) {
			log.Debug("Skipping aggregate row", logging.F(logging.FieldRegion, region))
			continue
		}

		wage, err := numparse.ParseRounded(rt.Cell(r, wageCol))
		if err != nil {
			log.WithError(err).Debug("Skipping row with unparseable wage",
				logging.F(logging.FieldRow, r), logging.F(logging.FieldRegion, region))
			continue
		}
		if wage < 0 {
			log.Debug("Skipping row with negative wage", logging.F(logging.FieldRegion, region))
			continue
		}

		if _, seen := wages[region]; seen {
			log.Debug("Skipping duplicate region", logging.F(logging.FieldRegion, region))
			continue
		}
		wages[region] = wage
	}

	if len(wages) == 0 {
		return Table{}, ErrNoRows
	}
	log.Debug("Parsed wage table", logging.F(logging.FieldCount, len(wages)))
	return New(wages), nil
}
