package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(f float64) *float64 { return &f }
func iptr(i int) *int         { return &i }

func TestDescribeUsesCodeTable(t *testing.T) {
	assert.Equal(t, "Slight rain", Describe(Conditions{WeatherCode: iptr(61)}))
	assert.Equal(t, "Thunderstorm", Describe(Conditions{WeatherCode: iptr(95)}))
}

func TestDescribeFallsBackToPrecipitation(t *testing.T) {
	assert.Equal(t, "Heavy rain", Describe(Conditions{Precipitation: 9}))
	assert.Equal(t, "Light rain", Describe(Conditions{Precipitation: 0.2}))
	assert.Equal(t, "Clear day", Describe(Conditions{IsDay: true}))
	assert.Equal(t, "Clear night", Describe(Conditions{}))

	// unknown code also falls through
	assert.Equal(t, "Clear day", Describe(Conditions{WeatherCode: iptr(42), IsDay: true}))
}

func TestSlightRainYieldsSingleRainWarning(t *testing.T) {
	got := Insights(Conditions{WeatherCode: iptr(61), Temperature: fptr(18)})

	require.Len(t, got, 1)
	assert.Equal(t, TypeWarning, got[0].Type)
	assert.Equal(t, "Rain expected", got[0].Title)
	for _, in := range got {
		assert.NotEqual(t, TypeSuccess, in.Type, "rain must suppress the good-weather insight")
	}
}

func TestColdTiers(t *testing.T) {
	mild := Insights(Conditions{WeatherCode: iptr(0), Temperature: fptr(8)})
	require.Len(t, mild, 1)
	assert.Equal(t, "Chilly outside", mild[0].Title)

	severe := Insights(Conditions{WeatherCode: iptr(0), Temperature: fptr(2)})
	require.Len(t, severe, 1)
	assert.Equal(t, "Very cold", severe[0].Title)
}

func TestHeatAndWind(t *testing.T) {
	got := Insights(Conditions{WeatherCode: iptr(0), Temperature: fptr(33), WindSpeed: 14})

	require.Len(t, got, 2)
	assert.Equal(t, "High heat", got[0].Title)
	assert.Equal(t, TypeWarning, got[0].Type)
	assert.Equal(t, "Windy conditions", got[1].Title)
	assert.Equal(t, TypeInfo, got[1].Type)
}

func TestSnowWarning(t *testing.T) {
	got := Insights(Conditions{WeatherCode: iptr(71), Temperature: fptr(12)})

	var titles []string
	for _, in := range got {
		titles = append(titles, in.Title)
	}
	assert.Contains(t, titles, "Snowfall")
	assert.Contains(t, titles, "Chilly outside")
}

func TestMountainChill(t *testing.T) {
	got := Insights(Conditions{
		WeatherCode: iptr(1),
		Temperature: fptr(12),
		Location:    "Nandi Hills",
	})

	var titles []string
	for _, in := range got {
		titles = append(titles, in.Title)
	}
	assert.Contains(t, titles, "Mountain chill")

	// warm lowland city does not trigger it
	got = Insights(Conditions{WeatherCode: iptr(1), Temperature: fptr(22), Location: "Nandi Hills"})
	for _, in := range got {
		assert.NotEqual(t, "Mountain chill", in.Title)
	}
}

func TestGoodWeatherOnlyWhenNothingFires(t *testing.T) {
	got := Insights(Conditions{WeatherCode: iptr(0), Temperature: fptr(22), WindSpeed: 4})
	require.Len(t, got, 1)
	assert.Equal(t, TypeSuccess, got[0].Type)

	// unknown temperature yields nothing at all
	got = Insights(Conditions{WeatherCode: iptr(0)})
	assert.Empty(t, got)
}

func TestInsightsDeterministic(t *testing.T) {
	c := Conditions{WeatherCode: iptr(61), Temperature: fptr(4), WindSpeed: 12, Location: "Hill Station"}
	assert.Equal(t, Insights(c), Insights(c))
}
