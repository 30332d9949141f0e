package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/pdn-calc/internal/config"
	"fjacquet/pdn-calc/internal/loader"
	"fjacquet/pdn-calc/internal/logging"
	"fjacquet/pdn-calc/internal/pdn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir string) *config.Config {
	return &config.Config{
		Log:  config.LogConfig{Level: "info", Format: "text"},
		Data: config.DataConfig{Directory: dir},
		Source: config.SourceConfig{
			HeaderRow:           1,
			TargetColumn:        "июль",
			FetchTimeoutSeconds: 5,
			RegionTokens:        []string{"регион", "субъект"},
			WageTokens:          []string{"зарплат", "зараб"},
			ExclusionMarkers:    []string{"округ", "российская"},
		},
		Snapshot: config.SnapshotConfig{Backend: config.BackendFile, RedisKey: "pdn:test"},
		Server:   config.ServerConfig{Address: ":0"},
	}
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:        "file backend",
			config:      testConfig(t.TempDir()),
			expectError: false,
		},
		{
			name: "unknown backend",
			config: func() *config.Config {
				c := testConfig(t.TempDir())
				c.Snapshot.Backend = "s3"
				return c
			}(),
			expectError: true,
			errorMsg:    "unknown snapshot backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container, err := NewContainerWithLogger(context.Background(), tt.config, logging.NewMockLogger())

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, container)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, container)
			assert.NotNil(t, container.GetLogger())
			assert.Equal(t, tt.config, container.GetConfig())
			assert.NotNil(t, container.GetStore())
			assert.NotNil(t, container.GetLoader())
			assert.NotNil(t, container.GetService())
			assert.NoError(t, container.Close())
		})
	}
}

func TestNewContainer_NilLogger(t *testing.T) {
	_, err := NewContainerWithLogger(context.Background(), testConfig(t.TempDir()), nil)
	assert.Error(t, err)
}

func TestContainer_DefaultsThenCache(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	first, err := NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Equal(t, loader.TierDefault, first.GetLoadReport().Source)
	assert.Equal(t, loader.DefaultWages().Len(), len(first.GetService().Regions()))
	assert.FileExists(t, filepath.Join(dir, "regions_wages.json"))

	second, err := NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Equal(t, loader.TierCache, second.GetLoadReport().Source)
	assert.Nil(t, second.GetFetcher())
}

func TestContainer_SpreadsheetFeedsService(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Source.SpreadsheetFile = filepath.Join(dir, "wages.csv")

	content := "Среднемесячная заработная плата;;\n;Июнь;Июль\nТверская область;60 000;62 000\nЦентральный федеральный округ;90 000;91 000\n"
	require.NoError(t, os.WriteFile(cfg.Source.SpreadsheetFile, []byte(content), 0600))

	c, err := NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Equal(t, loader.TierSpreadsheet, c.GetLoadReport().Source)
	assert.Equal(t, []string{"Тверская область"}, c.GetService().RegionNames())

	res, err := c.GetService().Compute(pdn.Request{Income: 1, Payments: []float64{31000}, Region: "Тверская область"})
	require.NoError(t, err)
	assert.Equal(t, 50.0, res.Ratio)
}

func TestContainer_RemoteTierWired(t *testing.T) {
	page := `<html><body><table>
<tr><th>Субъект</th><th>Зарплата</th></tr>
<tr><td>Тульская область</td><td>70 500</td></tr>
</table></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	cfg := testConfig(t.TempDir())
	cfg.Source.RemoteURL = srv.URL

	c, err := NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	require.NoError(t, err)
	assert.NotNil(t, c.GetFetcher())
	assert.Equal(t, loader.TierRemote, c.GetLoadReport().Source)
	assert.Equal(t, []string{"Тульская область"}, c.GetService().RegionNames())
}
