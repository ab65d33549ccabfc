package entity

import (
	"fmt"
	"strings"
)

// Variant название узора, который рисуется поверх лица
type Variant string

const (
	VariantMask    Variant = "mask"    // Чёрно-белая маска с кругом в центре
	VariantCartoon Variant = "cartoon" // Мультяшное лицо: глаза и рот
)

// DefaultVariant используется синхронным HTTP-обработчиком и очередью конвертации
const DefaultVariant = VariantCartoon

// ParseVariant разбирает название узора; пустая строка даёт DefaultVariant
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultVariant, nil
	case VariantMask, "duke", "duker":
		return VariantMask, nil
	case VariantCartoon, "necobean":
		return VariantCartoon, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}
