package trip

import (
	"fmt"
	"net/url"

	"roamio/models"
)

// MapLink builds the external navigation deep-link for a stop. Coordinates
// win; without them the stop name becomes a map search query.
func MapLink(leg models.TimelineLeg) string {
	if leg.To.Lat != nil && leg.To.Lng != nil {
		return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%f,%f", *leg.To.Lat, *leg.To.Lng)
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(leg.To.Name)
}
