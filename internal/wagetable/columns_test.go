package wagetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindColumn(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		tokens  []string
		want    int
		found   bool
	}{
		{name: "case-insensitive match", headers: []string{"№", "Субъект РФ", "Июль 2024"}, tokens: DefaultRegionTokens, want: 1, found: true},
		{name: "first match wins", headers: []string{"Зарплата, руб", "Средняя заработная плата"}, tokens: DefaultWageTokens, want: 0, found: true},
		{name: "substring of longer word", headers: []string{"Регионы", "x"}, tokens: []string{"регион"}, want: 0, found: true},
		{name: "no match", headers: []string{"Name", "Value"}, tokens: DefaultRegionTokens, want: AutoColumn, found: false},
		{name: "blank tokens ignored", headers: []string{"anything"}, tokens: []string{"", "  "}, want: AutoColumn, found: false},
		{name: "no headers", headers: nil, tokens: DefaultWageTokens, want: AutoColumn, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindColumn(tt.headers, tt.tokens)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLooksLikeWageTable(t *testing.T) {
	assert.True(t, LooksLikeWageTable([]string{"Регион", "Зарплата"}, DefaultRegionTokens))
	assert.True(t, LooksLikeWageTable([]string{"СУБЪЕКТ"}, DefaultRegionTokens))
	assert.False(t, LooksLikeWageTable([]string{"Country", "GDP"}, DefaultRegionTokens))
}

func TestIsAggregate(t *testing.T) {
	assert.True(t, IsAggregate("Центральный федеральный округ", DefaultExclusionMarkers))
	assert.True(t, IsAggregate("Российская Федерация", DefaultExclusionMarkers))
	assert.False(t, IsAggregate("Белгородская область", DefaultExclusionMarkers))
	assert.False(t, IsAggregate("Москва", nil))
}
