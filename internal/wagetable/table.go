// Package wagetable holds the regional wage table and the heuristics that extract
// it from loosely structured tabular sources (spreadsheets, HTML tables).
package wagetable

import (
	"sort"
	"strings"
)

// RegionWage is one entry of a Table.
type RegionWage struct {
	Region string  `json:"region" yaml:"region" csv:"region"`
	Wage   float64 `json:"wage" yaml:"wage" csv:"wage"`
}

// Table maps a region name to its average monthly wage. A Table is immutable once
// built and safe for concurrent reads.
type Table struct {
	wages map[string]float64
}

// New builds a Table from m. Names are trimmed; blank names are dropped.
// The map is copied.
func New(m map[string]float64) Table {
	wages := make(map[string]float64, len(m))
	for name, wage := range m {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		wages[name] = wage
	}
	return Table{wages: wages}
}

// Get returns the wage for an exact region name.
func (t Table) Get(region string) (float64, bool) {
	w, ok := t.wages[region]
	return w, ok
}

// Len returns the number of regions.
func (t Table) Len() int {
	return len(t.wages)
}

// IsEmpty reports whether the table has no regions.
func (t Table) IsEmpty() bool {
	return len(t.wages) == 0
}

// Names returns region names sorted ascending.
func (t Table) Names() []string {
	names := make([]string, 0, len(t.wages))
	for name := range t.wages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns the table as region/wage pairs ordered by region name.
func (t Table) Entries() []RegionWage {
	names := t.Names()
	entries := make([]RegionWage, len(names))
	for i, name := range names {
		entries[i] = RegionWage{Region: name, Wage: t.wages[name]}
	}
	return entries
}

// ToMap returns a copy of the underlying mapping.
func (t Table) ToMap() map[string]float64 {
	out := make(map[string]float64, len(t.wages))
	for k, v := range t.wages {
		out[k] = v
	}
	return out
}

// Equal reports whether both tables hold the same regions and wages.
func (t Table) Equal(other Table) bool {
	if len(t.wages) != len(other.wages) {
		return false
	}
	for k, v := range t.wages {
		if ov, ok := other.wages[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
