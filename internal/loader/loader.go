// Package loader resolves the process-wide regional wage table by walking a fixed
// chain of sources: spreadsheet, optional remote page, cached snapshot and
// built-in defaults. The first tier that yields regions wins.
package loader

import (
	"context"
	"errors"
	"time"

	"fjacquet/pdn-calc/internal/apperror"
	"fjacquet/pdn-calc/internal/fileutils"
	"fjacquet/pdn-calc/internal/logging"
	"fjacquet/pdn-calc/internal/snapshot"
	"fjacquet/pdn-calc/internal/spreadsheet"
	"fjacquet/pdn-calc/internal/wagetable"
)

// DefaultSpreadsheetFile is where the Rosstat workbook is looked up.
const DefaultSpreadsheetFile = "data/rosstat_data_regions.xlsx"

// RemoteSource fetches a wage table from a URL.
type RemoteSource interface {
	Fetch(ctx context.Context, url string) (wagetable.Table, error)
}

// Options configures the spreadsheet and remote tiers.
type Options struct {
	SpreadsheetFile  string
	TargetColumn     string
	ExclusionMarkers []string
	RemoteURL        string
}

// Loader runs the tier chain.
type Loader struct {
	opts   Options
	reader *spreadsheet.Reader
	parser *wagetable.Parser
	remote RemoteSource
	store  snapshot.Store
	logger logging.Logger
}

// New creates a Loader. remote may be nil, which disables the remote tier.
func New(opts Options, reader *spreadsheet.Reader, remote RemoteSource, store snapshot.Store, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.SpreadsheetFile == "" {
		opts.SpreadsheetFile = DefaultSpreadsheetFile
	}
	if opts.TargetColumn == "" {
		opts.TargetColumn = wagetable.DefaultTargetColumn
	}
	if opts.ExclusionMarkers == nil {
		opts.ExclusionMarkers = wagetable.DefaultExclusionMarkers
	}
	if reader == nil {
		reader = spreadsheet.NewReader(spreadsheet.DefaultHeaderRow, logger)
	}
	if store == nil {
		store = snapshot.NewFileStore(snapshot.DefaultFile, logger)
	}

	parser := wagetable.NewParser(wagetable.Options{
		WageTokens:         []string{opts.TargetColumn},
		ExclusionMarkers:   opts.ExclusionMarkers,
		RegionColumn:       0,
		LastColumnFallback: true,
	}, logger)

	return &Loader{
		opts:   opts,
		reader: reader,
		parser: parser,
		remote: remote,
		store:  store,
		logger: logger,
	}
}

// Load walks the tiers and always returns a non-empty table. Tables derived
// from the spreadsheet, the remote page or the defaults are written back to the
// snapshot store; a table read from the snapshot is not.
func (l *Loader) Load(ctx context.Context) Report {
	start := time.Now()
	var report Report

	tiers := []struct {
		tier    Tier
		run     func(context.Context) Result
		persist bool
	}{
		{TierSpreadsheet, l.fromSpreadsheet, true},
		{TierRemote, l.fromRemote, true},
		{TierCache, l.fromCache, false},
		{TierDefault, l.fromDefaults, true},
	}

	for _, t := range tiers {
		res := t.run(ctx)
		res.Tier = t.tier
		report.Attempts = append(report.Attempts, res)
		l.logAttempt(res)

		if res.Outcome != Success {
			continue
		}

		report.Table = res.Table
		report.Source = t.tier
		if t.persist {
			report.SaveErr = l.persist(ctx, res.Table)
		}
		break
	}

	l.logger.Info("Regional wage table ready",
		logging.F(logging.FieldTier, string(report.Source)),
		logging.F(logging.FieldCount, report.Table.Len()),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return report
}

func (l *Loader) fromSpreadsheet(_ context.Context) Result {
	path := l.opts.SpreadsheetFile
	if !fileutils.FileExists(path) {
		return Result{Outcome: Skipped}
	}

	raw, err := l.reader.Read(path)
	if err != nil {
		return Result{Outcome: Failed, Err: err}
	}
	table, err := l.parser.Parse(raw)
	switch {
	case errors.Is(err, wagetable.ErrNoRows):
		return Result{Outcome: Empty, Err: err}
	case err != nil:
		return Result{Outcome: Failed, Err: &apperror.SourceUnavailableError{Source: string(TierSpreadsheet), Reason: path, Err: err}}
	}
	return Result{Outcome: Success, Table: table}
}

func (l *Loader) fromRemote(ctx context.Context) Result {
	if l.remote == nil || l.opts.RemoteURL == "" {
		return Result{Outcome: Skipped}
	}
	table, err := l.remote.Fetch(ctx, l.opts.RemoteURL)
	if err != nil {
		return Result{Outcome: Failed, Err: err}
	}
	if table.IsEmpty() {
		return Result{Outcome: Empty}
	}
	return Result{Outcome: Success, Table: table}
}

func (l *Loader) fromCache(ctx context.Context) Result {
	table, err := l.store.Load(ctx)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return Result{Outcome: Skipped}
	case err != nil:
		// Unreadable snapshots are treated as absent and rebuilt by a later tier.
		return Result{Outcome: Failed, Err: err}
	case table.IsEmpty():
		return Result{Outcome: Empty}
	}
	return Result{Outcome: Success, Table: table}
}

func (l *Loader) fromDefaults(_ context.Context) Result {
	return Result{Outcome: Success, Table: DefaultWages()}
}

func (l *Loader) persist(ctx context.Context, table wagetable.Table) error {
	if err := l.store.Save(ctx, table); err != nil {
		l.logger.WithError(err).Warn("Failed to save wage snapshot",
			logging.F(logging.FieldFile, l.store.Location()))
		return err
	}
	l.logger.Debug("Saved wage snapshot", logging.F(logging.FieldFile, l.store.Location()))
	return nil
}

func (l *Loader) logAttempt(res Result) {
	fields := []logging.Field{
		logging.F(logging.FieldTier, string(res.Tier)),
		logging.F(logging.FieldOutcome, res.Outcome.String()),
	}
	switch res.Outcome {
	case Success:
		l.logger.Info("Wage tier succeeded", append(fields, logging.F(logging.FieldCount, res.Table.Len()))...)
	case Failed:
		l.logger.WithError(res.Err).Warn("Wage tier failed", fields...)
	default:
		l.logger.Debug("Wage tier yielded nothing", fields...)
	}
}
