package weather

// Keys of the configuration entries the resolver looks at.
const (
	KeyLatitude  = "weather-latitude"
	KeyLongitude = "weather-longitude"
	KeyCity      = "weather-city"
	KeyAPIParam  = "weather-API-param"
)

// ResolveLocation picks the location to query from stored configuration.
// Coordinates win over a city name; with nothing configured it falls back to DefaultCity.
func ResolveLocation(params map[string]string) Location {
	lat, lon := params[KeyLatitude], params[KeyLongitude]
	if lat != "" && lon != "" {
		return Location{Lat: lat, Lon: lon}
	}
	if city := params[KeyCity]; city != "" {
		return Location{City: city}
	}
	return Location{City: DefaultCity}
}
