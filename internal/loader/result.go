package loader

import (
	"fjacquet/pdn-calc/internal/wagetable"
)

// Tier names one source in the fallback chain.
type Tier string

const (
	TierSpreadsheet Tier = "spreadsheet"
	TierRemote      Tier = "remote"
	TierCache       Tier = "cache"
	TierDefault     Tier = "default"
)

// Outcome is what a single tier attempt produced.
type Outcome int

const (
	// Skipped means the tier was not applicable (no file, no URL configured).
	Skipped Outcome = iota
	// Empty means the source was read but yielded no regions.
	Empty
	// Failed means the source could not be read or parsed.
	Failed
	// Success means the tier produced a non-empty table.
	Success
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	case Success:
		return "success"
	default:
		return "unknown"
	}
}

// Result records one tier attempt.
type Result struct {
	Tier    Tier
	Outcome Outcome
	Table   wagetable.Table
	Err     error
}

// Report is the outcome of a full load: the winning table, the tier it came from
// and every attempt made along the way.
type Report struct {
	Table    wagetable.Table
	Source   Tier
	Attempts []Result

	// SaveErr is set when persisting the snapshot failed. The table is still usable.
	SaveErr error
}
