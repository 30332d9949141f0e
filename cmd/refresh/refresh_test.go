package refresh

import (
	"bytes"
	"errors"
	"testing"

	"fjacquet/pdn-calc/internal/loader"
	"fjacquet/pdn-calc/internal/wagetable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshCommand_Metadata(t *testing.T) {
	assert.Equal(t, "refresh", Cmd.Use)
	assert.NotContains(t, Cmd.Short, "rewrite")
	assert.Contains(t, Cmd.Long, "a table read from the snapshot is not")
	assert.NotNil(t, Cmd.RunE)
}

func TestPrintReport_Defaults(t *testing.T) {
	report := loader.Report{
		Table:  loader.DefaultWages(),
		Source: loader.TierDefault,
		Attempts: []loader.Result{
			{Tier: loader.TierSpreadsheet, Outcome: loader.Failed, Err: errors.New("corrupt workbook")},
			{Tier: loader.TierRemote, Outcome: loader.Skipped},
			{Tier: loader.TierCache, Outcome: loader.Empty},
			{Tier: loader.TierDefault, Outcome: loader.Success},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintReport(&buf, report, "data/regions_wages.json"))

	out := buf.String()
	assert.Contains(t, out, "spreadsheet  failed: corrupt workbook")
	assert.Contains(t, out, "remote       skipped")
	assert.Contains(t, out, "5 regions loaded from default")
	assert.Contains(t, out, "snapshot saved to data/regions_wages.json")
}

func TestPrintReport_CacheIsNotResaved(t *testing.T) {
	report := loader.Report{
		Table:    wagetable.New(map[string]float64{"Москва": 1}),
		Source:   loader.TierCache,
		Attempts: []loader.Result{{Tier: loader.TierCache, Outcome: loader.Success}},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintReport(&buf, report, "redis:pdn:regions_wages"))
	assert.NotContains(t, buf.String(), "snapshot saved")
}

func TestPrintReport_SaveError(t *testing.T) {
	report := loader.Report{
		Table:   loader.DefaultWages(),
		Source:  loader.TierDefault,
		SaveErr: errors.New("read-only file system"),
	}

	var buf bytes.Buffer
	require.NoError(t, PrintReport(&buf, report, "/ro/snapshot.json"))
	assert.Contains(t, buf.String(), "snapshot not saved to /ro/snapshot.json: read-only file system")
}
