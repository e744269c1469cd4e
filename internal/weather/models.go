package weather

import (
	"net/url"
	"time"
)

// Tokyo is the fixed zone every forecast window is computed in (UTC+9, no DST).
var Tokyo = time.FixedZone("Asia/Tokyo", 9*60*60)

// DefaultCity is queried when neither coordinates nor a city are configured.
const DefaultCity = "tokyo"

// Location is how the weather API is asked for a place: either coordinates or a
// free-form city query. Lat/Lon are passed through as stored, never parsed.
type Location struct {
	Lat  string `json:"lat,omitempty"`
	Lon  string `json:"lon,omitempty"`
	City string `json:"q,omitempty"`
}

// HasCoordinates reports whether the location is expressed as lat/lon.
func (l Location) HasCoordinates() bool {
	return l.Lat != "" && l.Lon != ""
}

// Values returns the query parameters identifying this location.
func (l Location) Values() url.Values {
	values := url.Values{}
	if l.HasCoordinates() {
		values.Set("lat", l.Lat)
		values.Set("lon", l.Lon)
		return values
	}
	values.Set("q", l.City)
	return values
}

// CurrentWeather is the subset of the current-weather response used in replies.
type CurrentWeather struct {
	Description string
	Icon        string
	Temp        float64
	FeelsLike   float64
	Humidity    float64
	WindSpeed   float64
}

// ForecastEntry is one 3-hour slot of the 5-day forecast.
// Time is zero when the slot carried no dt_txt.
type ForecastEntry struct {
	Time        time.Time
	Icon        string
	Temperature float64
}
