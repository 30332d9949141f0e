package htmltable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTables_HeaderDetection(t *testing.T) {
	doc := `<html><body>
<table><tr><td>menu</td></tr></table>
<table>
  <thead><tr><th>Регион</th><th>Средняя  зарплата,<br>руб.</th></tr></thead>
  <tbody>
    <tr><td>Москва</td><td>178&nbsp;596</td></tr>
    <tr><td> Тверская
        область </td><td>61 200,5</td></tr>
  </tbody>
</table>
<table>
  <tr><th>Субъект</th><th colspan="2">Заработок</th></tr>
  <tr><td>Курская область</td><td>1</td><td>2</td></tr>
</table>
</body></html>`

	tables, err := ExtractTables(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, tables, 3)

	assert.Equal(t, []string{"menu"}, tables[0].Headers)
	assert.Empty(t, tables[0].Rows)

	assert.Equal(t, []string{"Регион", "Средняя зарплата, руб."}, tables[1].Headers)
	require.Len(t, tables[1].Rows, 2)
	assert.Equal(t, "178\u00a0596", tables[1].Rows[0][1])
	assert.Equal(t, "Тверская область", tables[1].Rows[1][0])

	assert.Equal(t, []string{"Субъект", "Заработок", "Заработок"}, tables[2].Headers)
	assert.Equal(t, [][]string{{"Курская область", "1", "2"}}, tables[2].Rows)
}

func TestExtractTables_NestedTablesKeptSeparate(t *testing.T) {
	doc := `<table><tr><th>Outer</th></tr><tr><td><table><tr><th>Inner</th></tr><tr><td>x</td></tr></table></td></tr></table>`

	tables, err := ExtractTables(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, []string{"Outer"}, tables[0].Headers)
	assert.Equal(t, []string{"Inner"}, tables[1].Headers)
	assert.Equal(t, [][]string{{"x"}}, tables[1].Rows)
}

func TestExtractTables_MultiRowHeader(t *testing.T) {
	doc := `<table><thead>
<tr><th>Субъект</th><th colspan="2">Заработная плата</th></tr>
<tr><th>Субъект</th><th>Июнь</th><th>Июль</th></tr>
</thead><tbody><tr><td>Москва</td><td>1</td><td>2</td></tr></tbody></table>`

	tables, err := ExtractTables(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"Субъект", "Заработная плата Июнь", "Заработная плата Июль"}, tables[0].Headers)
}

func TestColspanBounds(t *testing.T) {
	doc := `<table><tr><th colspan="abc">a</th><th colspan="1000">b</th></tr></table>`
	tables, err := ExtractTables(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Len(t, tables[0].Headers, 1+maxColspan)
}

func TestExtractTables_NoTables(t *testing.T) {
	tables, err := ExtractTables(strings.NewReader("<p>nothing here</p>"))
	require.NoError(t, err)
	assert.Empty(t, tables)
}
