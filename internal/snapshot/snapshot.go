// Package snapshot persists the last resolved wage table so that a cold start
// without a spreadsheet can reuse it.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"fjacquet/pdn-calc/internal/wagetable"

	"gopkg.in/yaml.v3"
)

// Store reads and overwrites a single wage table snapshot.
type Store interface {
	// Load returns the stored table. A missing snapshot yields an error wrapping
	// apperror.ErrNotFound; unreadable content yields *apperror.StorageError.
	Load(ctx context.Context) (wagetable.Table, error)

	// Save overwrites the snapshot with table.
	Save(ctx context.Context, table wagetable.Table) error

	// Location describes where the snapshot lives, for logs.
	Location() string
}

// Format is the on-disk encoding of a snapshot.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatForPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// Encode serializes table as a flat, indented name → wage document with
// non-ASCII characters written as-is.
func Encode(table wagetable.Table, format Format) ([]byte, error) {
	m := table.ToMap()
	var buf bytes.Buffer

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, fmt.Errorf("error encoding YAML snapshot: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("error encoding YAML snapshot: %w", err)
		}
	default:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return nil, fmt.Errorf("error encoding JSON snapshot: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// Decode parses a snapshot document. Negative or non-finite wages are rejected.
func Decode(data []byte, format Format) (wagetable.Table, error) {
	var m map[string]float64
	var err error
	if format == FormatYAML {
		err = yaml.Unmarshal(data, &m)
	} else {
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return wagetable.Table{}, fmt.Errorf("error decoding snapshot: %w", err)
	}

	for name, wage := range m {
		if wage < 0 || math.IsNaN(wage) || math.IsInf(wage, 0) {
			return wagetable.Table{}, fmt.Errorf("invalid wage %v for region %q", wage, name)
		}
	}
	return wagetable.New(m), nil
}
