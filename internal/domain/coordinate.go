package domain

import "math"

const earthRadiusKm = 6371.0

// Coordinate is a position in degrees: latitude north positive, longitude east positive.
type Coordinate struct {
	Lat float64
	Lon float64
}

// DistanceKm returns the great-circle (haversine) distance to o.
func (c Coordinate) DistanceKm(o Coordinate) float64 {
	dLat := Deg2Rad(o.Lat - c.Lat)
	dLon := Deg2Rad(o.Lon - c.Lon)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(Deg2Rad(c.Lat))*math.Cos(Deg2Rad(o.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Wrap folds the coordinate into [latEdge, latEdge+180) and [lonEdge, lonEdge+360).
func (c Coordinate) Wrap(latEdge, lonEdge float64) Coordinate {
	lat := math.Mod(c.Lat-latEdge, 180)
	if lat < 0 {
		lat += 180
	}
	lon := math.Mod(c.Lon-lonEdge, 360)
	if lon < 0 {
		lon += 360
	}
	return Coordinate{Lat: lat + latEdge, Lon: lon + lonEdge}
}
