package types

import "strings"

// Weather defaults applied when the climate profile omits a reading.
const (
	DefaultTemperatureC = 20.0
	DefaultHumidityPct  = 50.0
	DefaultWindSpeedMS  = 10.0
)

// MaxSurfaceArea is the largest accepted surface area, in m².
const MaxSurfaceArea = 1_000_000

// ProjectRequirements is the immutable requirement set captured at project creation.
type ProjectRequirements struct {
	Type          ProjectType    `json:"type" validate:"required,oneof=residential commercial institutional industrial"`
	SurfaceArea   float64        `json:"surface_area" validate:"gt=0,lte=1000000"`
	OccupancyType Occupancy      `json:"occupancy_type,omitempty" validate:"omitempty,oneof=residential office retail hospital school"`
	Requirements  map[string]any `json:"requirements,omitempty"`
}

// Subtype returns the requested template subtype, or "" when none was given.
func (r ProjectRequirements) Subtype() string {
	if r.Requirements == nil {
		return ""
	}
	s, _ := r.Requirements["subtype"].(string)
	return strings.ToLower(strings.TrimSpace(s))
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// CurrentWeather holds the latest observation. Nil readings fall back to defaults.
type CurrentWeather struct {
	Temperature   *float64 `json:"temperature,omitempty"`
	Humidity      *float64 `json:"humidity,omitempty"`
	WindSpeed     *float64 `json:"wind_speed,omitempty"`
	WindDirection *float64 `json:"wind_direction,omitempty"`
}

// TemperatureRange is one month's min/max temperature.
type TemperatureRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// HistoricalData carries 12 monthly samples per series, January first.
type HistoricalData struct {
	TemperatureRanges []TemperatureRange `json:"temperature_ranges,omitempty" validate:"omitempty,len=12"`
	PrecipitationData []float64          `json:"precipitation_data,omitempty" validate:"omitempty,len=12"`
	HumidityData      []float64          `json:"humidity_data,omitempty" validate:"omitempty,len=12"`
	WindData          []float64          `json:"wind_data,omitempty" validate:"omitempty,len=12"`
	SolarIrradiance   []float64          `json:"solar_irradiance,omitempty" validate:"omitempty,len=12"`
}

// ArchitecturalRecommendations are loose advisory tags matched by substring.
type ArchitecturalRecommendations struct {
	ThermalComfort   []string `json:"thermal_comfort,omitempty"`
	Ventilation      []string `json:"ventilation,omitempty"`
	Insulation       []string `json:"insulation,omitempty"`
	Orientation      []string `json:"orientation,omitempty"`
	Materials        []string `json:"materials,omitempty"`
	EnergyEfficiency []string `json:"energy_efficiency,omitempty"`
}

// Text joins every recommendation into one string for keyword matching.
// Case is preserved; callers lowercase when their rule is case-insensitive.
func (a ArchitecturalRecommendations) Text() string {
	var parts []string
	for _, group := range [][]string{
		a.ThermalComfort, a.Ventilation, a.Insulation,
		a.Orientation, a.Materials, a.EnergyEfficiency,
	} {
		parts = append(parts, group...)
	}
	return strings.Join(parts, " ")
}

// ClimateProfile is the resolved climate context for a site.
type ClimateProfile struct {
	Coordinates     *Coordinates                 `json:"coordinates,omitempty"`
	CurrentWeather  CurrentWeather               `json:"current_weather"`
	HistoricalData  HistoricalData               `json:"historical_data"`
	Recommendations ArchitecturalRecommendations `json:"architectural_recommendations"`
}

// Temperature returns the current temperature in °C, defaulting to 20.
func (c ClimateProfile) Temperature() float64 {
	return valueOr(c.CurrentWeather.Temperature, DefaultTemperatureC)
}

// Humidity returns the current relative humidity in percent, defaulting to 50.
func (c ClimateProfile) Humidity() float64 {
	return valueOr(c.CurrentWeather.Humidity, DefaultHumidityPct)
}

// WindSpeed returns the current wind speed in m/s, defaulting to 10.
func (c ClimateProfile) WindSpeed() float64 {
	return valueOr(c.CurrentWeather.WindSpeed, DefaultWindSpeedMS)
}

// MonthlyMean returns sum(samples)/12 and false when the series is empty.
func MonthlyMean(samples []float64) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / 12, true
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// StyleProfile is the output of the style classifier.
type StyleProfile struct {
	PrimaryStyle           StyleName `json:"primary_style"`
	SecondaryStyles        []string  `json:"secondary_styles,omitempty"`
	Confidence             float64   `json:"confidence" validate:"gte=0,lte=1"`
	CharacteristicElements []string  `json:"characteristic_elements,omitempty"`
}

// SynthesisInput bundles the resolved collaborator data for 2D and 3D synthesis.
type SynthesisInput struct {
	Climate ClimateProfile `json:"climate"`
	Style   StyleProfile   `json:"style"`
}

// PortfolioFile describes an uploaded reference file. Only metadata is kept.
type PortfolioFile struct {
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size" validate:"gte=0"`
}

// Portfolio is the client's reference material attached to a project.
type Portfolio struct {
	Files    []PortfolioFile `json:"files,omitempty" validate:"omitempty,dive"`
	Styles   []string        `json:"styles,omitempty"`
	Elements []string        `json:"elements,omitempty"`
}

// Normalize removes blank and duplicate styles and elements, keeping first occurrence.
func (p Portfolio) Normalize() Portfolio {
	p.Styles = dedupe(p.Styles)
	p.Elements = dedupe(p.Elements)
	return p
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
