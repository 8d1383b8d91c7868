package weather

// WMO weather interpretation codes, as delivered by the upstream.
var codeDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Freezing rain",
	71: "Slight snowfall",
	73: "Moderate snowfall",
	75: "Heavy snowfall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with hail",
	99: "Thunderstorm with heavy hail",
}

// Describe turns conditions into a short human-readable line. The code
// table wins; without a code the precipitation amount and day/night flag
// decide.
func Describe(c Conditions) string {
	if c.WeatherCode != nil {
		if desc, ok := codeDescriptions[*c.WeatherCode]; ok {
			return desc
		}
	}
	switch {
	case c.Precipitation >= 7.6:
		return "Heavy rain"
	case c.Precipitation >= 2.5:
		return "Rain"
	case c.Precipitation > 0:
		return "Light rain"
	case c.IsDay:
		return "Clear day"
	default:
		return "Clear night"
	}
}
