// Package reply renders the bot's text replies and loads its Flex card documents.
//
// Templates are parsed on every call so an operator can edit files under the
// override directory without a restart.
package reply

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"text/template"
)

//go:embed assets
var embedded embed.FS

// Template names.
const (
	LocationInfo   = "location_info"
	CityInfo       = "city_info"
	APIParams      = "api_params"
	AllParams      = "all_params"
	CurrentWeather = "current_weather"
	ForecastLine   = "forecast_line"
)

// Card names.
const (
	CityNameCard     = "city_name"
	APIGeoParamsCard = "api_geo_params"
)

type LocationInfoData struct {
	Latitude  string
	Longitude string
}

type CityInfoData struct {
	CityName string
}

type APIParamsData struct {
	WFParam string
}

type AllParamsData struct {
	Latitude  string
	Longitude string
	CityName  string
	WFParam   string
}

type CurrentWeatherData struct {
	Description string
	Icon        string
	Temp        string
	FeelsLike   string
	Humidity    string
	WindSpeed   string
}

type ForecastLineData struct {
	DateTime    string
	Icon        string
	Temperature string
}

// Renderer reads templates and cards from a file system.
type Renderer struct {
	fsys fs.FS
}

// NewRenderer serves assets from dir, or from the embedded set when dir is empty.
func NewRenderer(dir string) (*Renderer, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("template dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("template dir %s is not a directory", dir)
		}
		return &Renderer{fsys: os.DirFS(dir)}, nil
	}

	sub, err := fs.Sub(embedded, "assets")
	if err != nil {
		return nil, err
	}
	return &Renderer{fsys: sub}, nil
}

// Render executes the named template with data. Trailing newlines are trimmed.
func (r *Renderer) Render(name string, data any) (string, error) {
	tmpl, err := template.New(name + ".tmpl").Option("missingkey=error").ParseFS(r.fsys, name+".tmpl")
	if err != nil {
		return "", fmt.Errorf("load template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Card returns the raw JSON of the named Flex container.
func (r *Renderer) Card(name string) ([]byte, error) {
	b, err := fs.ReadFile(r.fsys, name+".json")
	if err != nil {
		return nil, fmt.Errorf("load card %s: %w", name, err)
	}
	return b, nil
}

// Number formats a reading the way it should appear in a reply: shortest form, no exponent.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Coordinate formats a latitude or longitude for storage. Whole degrees keep one
// decimal place, so 35 is "35.0".
func Coordinate(v float64) string {
	s := Number(v)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
