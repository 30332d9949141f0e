package htmltable

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"fjacquet/pdn-calc/internal/apperror"
	"fjacquet/pdn-calc/internal/logging"
	"fjacquet/pdn-calc/internal/wagetable"
)

const (
	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 15 * time.Second

	maxBodyBytes = 32 << 20
	sourceName   = "remote"
	userAgent    = "pdn-calc/1.0"
)

// Fetcher downloads an HTML page and extracts the first usable wage table.
type Fetcher struct {
	client *http.Client
	parser *wagetable.Parser
	logger logging.Logger
}

// NewFetcher creates a Fetcher. A non-positive timeout uses DefaultTimeout.
func NewFetcher(timeout time.Duration, parser *wagetable.Parser, logger logging.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if parser == nil {
		parser = wagetable.NewParser(wagetable.DefaultOptions(), logger)
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		parser: parser,
		logger: logger,
	}
}

// Fetch GETs url and returns the first table that yields region wages. Every
// failure is reported as *apperror.SourceUnavailableError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (wagetable.Table, error) {
	log := f.logger.WithField(logging.FieldURL, url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return wagetable.Table{}, unavailable("invalid request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return wagetable.Table{}, unavailable("request failed", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return wagetable.Table{}, unavailable(fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	table, err := f.FromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return wagetable.Table{}, err
	}

	log.Info("Fetched wage table",
		logging.F(logging.FieldCount, table.Len()),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return table, nil
}

// FromReader extracts the first usable wage table from an HTML document.
func (f *Fetcher) FromReader(r io.Reader) (wagetable.Table, error) {
	tables, err := ExtractTables(r)
	if err != nil {
		return wagetable.Table{}, unavailable("unreadable document", err)
	}
	if len(tables) == 0 {
		return wagetable.Table{}, unavailable("no tables in document", nil)
	}

	regionTokens := f.parser.Options().RegionTokens
	for i, raw := range tables {
		if !wagetable.LooksLikeWageTable(raw.Headers, regionTokens) {
			continue
		}
		table, err := f.parser.Parse(raw)
		if err != nil {
			f.logger.Debug("Table rejected", logging.F(logging.FieldTable, i), logging.F(logging.FieldReason, err.Error()))
			continue
		}
		return table, nil
	}
	return wagetable.Table{}, unavailable("no table with region wages", nil)
}

func unavailable(reason string, err error) error {
	return &apperror.SourceUnavailableError{Source: sourceName, Reason: reason, Err: err}
}
