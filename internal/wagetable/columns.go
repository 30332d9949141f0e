package wagetable

import "strings"

// AutoColumn asks the parser to detect a column from header text.
const AutoColumn = -1

// Default heuristics for Rosstat-style tables.
var (
	DefaultRegionTokens     = []string{"регион", "субъект"}
	DefaultWageTokens       = []string{"зарплат", "зараб"}
	DefaultExclusionMarkers = []string{"округ", "российская"}
)

// DefaultTargetColumn is the reference-period header label of the wage column.
const DefaultTargetColumn = "июль"

// FindColumn returns the index of the first header whose lower-cased text contains
// any of tokens.
func FindColumn(headers []string, tokens []string) (int, bool) {
	for i, h := range headers {
		if containsAny(strings.ToLower(h), tokens) {
			return i, true
		}
	}
	return AutoColumn, false
}

// LooksLikeWageTable reports whether any header mentions a region token.
func LooksLikeWageTable(headers []string, regionTokens []string) bool {
	_, ok := FindColumn(headers, regionTokens)
	return ok
}

// IsAggregate reports whether a region name denotes a roll-up row (federal
// district, whole country) rather than a leaf region.
func IsAggregate(name string, markers []string) bool {
	return containsAny(strings.ToLower(name), markers)
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" && strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
