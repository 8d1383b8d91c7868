package search

import "encoding/json"

var priceLabels = map[string]string{
	"PRICE_LEVEL_FREE":           "Free",
	"PRICE_LEVEL_INEXPENSIVE":    "$",
	"PRICE_LEVEL_MODERATE":       "$$",
	"PRICE_LEVEL_EXPENSIVE":      "$$$",
	"PRICE_LEVEL_VERY_EXPENSIVE": "$$$$",
}

var priceByNumber = []string{"Free", "$", "$$", "$$$", "$$$$"}

// FormatPriceLevel maps the provider's price level, either the string
// enum or the 0-4 numeric form, to its display label. Unknown or absent
// values yield nil so the UI simply omits the field.
func FormatPriceLevel(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		if label, ok := priceLabels[s]; ok {
			return &label
		}
		return nil
	}

	var n float64
	if json.Unmarshal(raw, &n) == nil {
		i := int(n)
		if float64(i) == n && i >= 0 && i < len(priceByNumber) {
			label := priceByNumber[i]
			return &label
		}
	}
	return nil
}
