package geo

import "math"

// Internal units are miles for distance and feet for elevation. GPX input is
// metric; conversion happens once at the import boundary so every formula
// downstream works in a single unit system.
const (
	earthRadiusMi = 3959.0

	feetPerMeter  = 3.28084
	milesPerMeter = 0.000621371
)

// HaversineMi returns the great-circle distance in miles between two
// lat/lon pairs given in decimal degrees.
func HaversineMi(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMi * c
}

func MetersToFeet(m float64) float64 { return m * feetPerMeter }

func MetersToMiles(m float64) float64 { return m * milesPerMeter }

func MilesToFeet(mi float64) float64 { return mi * 5280 }

// Finite reports whether every value is a real number (no NaN, no Inf).
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
