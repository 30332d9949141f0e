package loader

import "fjacquet/pdn-calc/internal/wagetable"

// DefaultWages returns the built-in table used when no other source is available.
func DefaultWages() wagetable.Table {
	return wagetable.New(map[string]float64{
		"Белгородская область":  75834,
		"Владимирская область":  73240,
		"Нижегородская область": 81230,
		"Москва":                178596,
		"Московская область":    115811,
	})
}
