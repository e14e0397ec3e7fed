package weather

import (
	"time"
)

// Record is one row of the historical weather dataset.
type Record struct {
	Timestamp           time.Time `json:"timestamp"` // always UTC
	Summary             string    `json:"summary"`
	PrecipType          string    `json:"precipType,omitempty"` // empty when the source cell is null
	Temperature         float64   `json:"temperatureC"`
	ApparentTemperature float64   `json:"apparentTemperatureC"`
	Humidity            float64   `json:"humidity"`
	WindSpeed           float64   `json:"windSpeedKmh"`
	WindBearing         float64   `json:"windBearingDeg"`
	Visibility          float64   `json:"visibilityKm"`
	Pressure            float64   `json:"pressureMb"`
}

// Variable names a numeric column of the dataset.
type Variable string

const (
	VarTemperature         Variable = "temperature"
	VarApparentTemperature Variable = "apparent_temperature"
	VarHumidity            Variable = "humidity"
	VarWindSpeed           Variable = "wind_speed"
	VarWindBearing         Variable = "wind_bearing"
	VarVisibility          Variable = "visibility"
	VarPressure            Variable = "pressure"
)

// Column header labels of the source file.
const (
	ColFormattedDate       = "Formatted Date"
	ColSummary             = "Summary"
	ColPrecipType          = "Precip Type"
	ColTemperature         = "Temperature (C)"
	ColApparentTemperature = "Apparent Temperature (C)"
	ColHumidity            = "Humidity"
	ColWindSpeed           = "Wind Speed (km/h)"
	ColWindBearing         = "Wind Bearing (degrees)"
	ColVisibility          = "Visibility (km)"
	ColPressure            = "Pressure (millibars)"
)

var variableLabels = map[Variable]string{
	VarTemperature:         ColTemperature,
	VarApparentTemperature: ColApparentTemperature,
	VarHumidity:            ColHumidity,
	VarWindSpeed:           ColWindSpeed,
	VarWindBearing:         ColWindBearing,
	VarVisibility:          ColVisibility,
	VarPressure:            ColPressure,
}

// LineVariables is the ordered set offered by the line chart dropdown.
var LineVariables = []Variable{VarTemperature, VarWindSpeed, VarWindBearing, VarPressure}

// ScatterVariables is the ordered set offered by the scatter plot radio items.
var ScatterVariables = []Variable{VarTemperature, VarHumidity, VarPressure}

// DefaultLineVariables is the dropdown's initial selection.
var DefaultLineVariables = []Variable{VarTemperature, VarWindBearing}

// DefaultScatterVariable is the radio items' initial selection.
const DefaultScatterVariable = VarTemperature

// Label returns the column header for v, or the raw name when v is unknown.
func (v Variable) Label() string {
	if l, ok := variableLabels[v]; ok {
		return l
	}
	return string(v)
}

// Valid reports whether v names a known numeric column.
func (v Variable) Valid() bool {
	_, ok := variableLabels[v]
	return ok
}

// In reports whether v is a member of set.
func (v Variable) In(set []Variable) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Value returns the value of v on r. Unknown variables read as zero.
func (r Record) Value(v Variable) float64 {
	switch v {
	case VarTemperature:
		return r.Temperature
	case VarApparentTemperature:
		return r.ApparentTemperature
	case VarHumidity:
		return r.Humidity
	case VarWindSpeed:
		return r.WindSpeed
	case VarWindBearing:
		return r.WindBearing
	case VarVisibility:
		return r.Visibility
	case VarPressure:
		return r.Pressure
	default:
		return 0
	}
}
