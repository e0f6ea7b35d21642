package usecase

import (
	"math"

	"go.ngs.io/tides-core/internal/domain"
)

// LocationIndex holds the known locations, addressable by station name or by
// nearest coordinate.
type LocationIndex struct {
	all    []*domain.Location
	byName map[string]int
}

// NewLocationIndex builds an index over locs.
func NewLocationIndex(locs ...*domain.Location) *LocationIndex {
	x := &LocationIndex{byName: make(map[string]int, len(locs))}
	for _, loc := range locs {
		x.Add(loc)
	}
	return x
}

// Add registers loc. A named location replaces an earlier one with the same name.
func (x *LocationIndex) Add(loc *domain.Location) {
	if loc == nil {
		return
	}
	if loc.Name != "" {
		if i, ok := x.byName[loc.Name]; ok {
			x.all[i] = loc
			return
		}
		x.byName[loc.Name] = len(x.all)
	}
	x.all = append(x.all, loc)
}

// Len returns the number of indexed locations.
func (x *LocationIndex) Len() int {
	return len(x.all)
}

// ByName returns the station with the given name.
func (x *LocationIndex) ByName(name string) (*domain.Location, bool) {
	i, ok := x.byName[name]
	if !ok {
		return nil, false
	}
	return x.all[i], true
}

// Nearest returns the closest location within radiusKm of c and its distance.
func (x *LocationIndex) Nearest(c domain.Coordinate, radiusKm float64) (*domain.Location, float64, bool) {
	bestDist := math.MaxFloat64
	var best *domain.Location
	for _, loc := range x.all {
		d := c.DistanceKm(loc.Coordinate)
		if d <= radiusKm && d < bestDist {
			bestDist = d
			best = loc
		}
	}
	if best == nil {
		return nil, 0, false
	}
	return best, bestDist, true
}
