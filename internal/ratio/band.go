package ratio

// Band is the debt-load classification of a ratio.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// Thresholds are inclusive lower bounds for the medium and high bands.
const (
	MediumThreshold = 50.0
	HighThreshold   = 80.0
)

var statusMessages = map[Band]string{
	BandLow:    "✅ У вас низкий уровень долговой нагрузки.",
	BandMedium: "⚖️ Уровень долговой нагрузки — средний.",
	BandHigh:   "⚠️ У вас высокая долговая нагрузка. Стоит пересмотреть кредиты.",
}

// Classify maps a ratio to its band: < 50 low, [50, 80) medium, >= 80 high.
func Classify(pdn float64) Band {
	switch {
	case pdn < MediumThreshold:
		return BandLow
	case pdn < HighThreshold:
		return BandMedium
	default:
		return BandHigh
	}
}

// Status returns the message shown to the user for the band.
func (b Band) Status() string {
	return statusMessages[b]
}

func (b Band) String() string {
	return string(b)
}
