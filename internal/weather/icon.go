package weather

const (
	glyphSun       = "☀"
	glyphCloud     = "☁"
	glyphRain      = "☂️"
	glyphLightning = "⚡️"
	glyphSnow      = "☃️"
)

// Icon maps an OpenWeatherMap icon code to the glyph shown in chat replies.
// Codes outside the known set map to the empty string.
func Icon(code string) string {
	switch code {
	case "01d", "01n":
		return glyphSun
	case "02d", "02n", "03d", "03n", "04d", "04n":
		return glyphCloud
	case "09d", "09n", "10d", "10n":
		return glyphRain
	case "11d", "11n":
		return glyphLightning
	case "13d", "13n":
		return glyphSnow
	default:
		return ""
	}
}
