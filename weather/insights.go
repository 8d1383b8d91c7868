package weather

import (
	"strings"

	"roamio/models"
)

// Insight types, in the order the UI stacks them.
const (
	TypeWarning = "warning"
	TypeInfo    = "info"
	TypeSuccess = "success"
	TypeAlert   = "alert"
)

var mountainTerms = []string{"hill", "mountain", "mount ", "peak", "ghat"}

// Insights derives the advisory list from conditions. Each rule fires
// independently and the output order is the display order. Deterministic:
// the same payload always yields the same list.
func Insights(c Conditions) []models.WeatherInsight {
	desc := strings.ToLower(Describe(c))
	loc := strings.ToLower(c.Location)

	var out []models.WeatherInsight
	add := func(typ, icon, title, msg string) {
		out = append(out, models.WeatherInsight{Type: typ, Icon: icon, Title: title, Message: msg})
	}

	if strings.Contains(desc, "rain") || strings.Contains(desc, "drizzle") || strings.Contains(desc, "shower") {
		add(TypeWarning, "☔", "Rain expected", "Carry an umbrella and plan indoor stops.")
	}
	if c.Temperature != nil && *c.Temperature < 10 {
		if *c.Temperature < 5 {
			add(TypeInfo, "🧥", "Very cold", "Bundle up, temperatures are near freezing.")
		} else {
			add(TypeInfo, "🧥", "Chilly outside", "A warm layer will make the day more comfortable.")
		}
	}
	if c.Temperature != nil && *c.Temperature > 30 {
		add(TypeWarning, "🥵", "High heat", "Stay hydrated and avoid the midday sun.")
	}
	if c.WindSpeed > 10 {
		add(TypeInfo, "💨", "Windy conditions", "Hold onto hats and skip exposed viewpoints.")
	}
	if strings.Contains(desc, "snow") {
		add(TypeWarning, "❄️", "Snowfall", "Roads may be slippery, allow extra travel time.")
	}
	if strings.Contains(desc, "thunder") {
		add(TypeAlert, "⚡", "Thunderstorm", "Stay clear of open areas until the storm passes.")
	}
	if c.Temperature != nil && *c.Temperature < 15 {
		for _, term := range mountainTerms {
			if strings.Contains(loc, term) {
				add(TypeInfo, "⛰️", "Mountain chill", "Higher ground runs colder, pack accordingly.")
				break
			}
		}
	}

	if len(out) == 0 && c.Temperature != nil {
		add(TypeSuccess, "🌤️", "Great weather", "Perfect conditions for exploring on foot.")
	}
	return out
}
