package services

import (
	"fmt"
	"math"
)

// LengthUnit identifies one of the supported length units.
type LengthUnit string

const (
	UnitMeter      LengthUnit = "m"
	UnitCentimeter LengthUnit = "cm"
	UnitInch       LengthUnit = "in"
	UnitFoot       LengthUnit = "ft"
)

// meterFactors maps each unit to its size in meters.
var meterFactors = map[LengthUnit]float64{
	UnitMeter:      1,
	UnitCentimeter: 0.01,
	UnitInch:       0.0254,
	UnitFoot:       0.3048,
}

// ParseLengthUnit converts a form/query value into a LengthUnit.
func ParseLengthUnit(s string) (LengthUnit, error) {
	u := LengthUnit(s)
	if _, ok := meterFactors[u]; !ok {
		return "", fmt.Errorf("unknown length unit %q", s)
	}
	return u, nil
}

// ToMeters converts a value expressed in the given unit to meters.
func ToMeters(value float64, unit LengthUnit) float64 {
	return value * meterFactors[unit]
}

// FromMeters converts a value in meters to the given unit.
func FromMeters(meters float64, unit LengthUnit) float64 {
	return meters / meterFactors[unit]
}

// DisplayConversion holds one length rendered in every supported unit,
// pre-formatted for display.
type DisplayConversion struct {
	Meters      string `json:"meters"`
	Centimeters string `json:"centimeters"`
	Feet        string `json:"feet"`
	Inches      string `json:"inches"`
}

// ConvertDisplay renders value (in unit) simultaneously in all units.
// Negative or non-numeric input is shown as zero; pricing still rejects
// such input separately at build time.
func ConvertDisplay(value float64, unit LengthUnit) DisplayConversion {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	meters := ToMeters(value, unit)
	return DisplayConversion{
		Meters:      fmt.Sprintf("%.2f", meters),
		Centimeters: fmt.Sprintf("%.1f", FromMeters(meters, UnitCentimeter)),
		Feet:        fmt.Sprintf("%.2f", FromMeters(meters, UnitFoot)),
		Inches:      fmt.Sprintf("%.2f", FromMeters(meters, UnitInch)),
	}
}
