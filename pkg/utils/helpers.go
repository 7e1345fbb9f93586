package utils

import (
	"math"
)

const earthRadiusKm = 6371

// Haversine calculates distance between two points in kilometers
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceKm is Haversine rounded to 100 meters, as shown to hikers
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return RoundTo(Haversine(lat1, lon1, lat2, lon2), 1)
}

// Clamp limits a value between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// Lerp performs linear interpolation between two values
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// PointAlong returns the point at fraction t (0..1) of a polyline given as
// parallel lat/lon slices, measuring progress by segment length.
func PointAlong(lats, lons []float64, t float64) (float64, float64) {
	n := len(lats)
	if n == 0 || n != len(lons) {
		return 0, 0
	}
	if n == 1 {
		return lats[0], lons[0]
	}

	t = Clamp(t, 0, 1)
	segments := make([]float64, n-1)
	total := 0.0
	for i := 0; i < n-1; i++ {
		segments[i] = Haversine(lats[i], lons[i], lats[i+1], lons[i+1])
		total += segments[i]
	}
	if total == 0 {
		return lats[0], lons[0]
	}

	target := t * total
	for i, seg := range segments {
		if target <= seg || i == len(segments)-1 {
			frac := 0.0
			if seg > 0 {
				frac = Clamp(target/seg, 0, 1)
			}
			return Lerp(lats[i], lats[i+1], frac), Lerp(lons[i], lons[i+1], frac)
		}
		target -= seg
	}
	return lats[n-1], lons[n-1]
}
