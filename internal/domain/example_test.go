package domain_test

import (
	"fmt"
	"math"
	"time"

	"go.ngs.io/tides-core/internal/domain"
)

func ExampleLocation_Extremes() {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	loc, err := domain.NewLocation("Example", domain.Coordinate{Lat: 50, Lon: -4}, start, start.Add(48*time.Hour),
		[]domain.CorrectedConstituent{{Name: "X2", SpeedRadPerSec: 2 * math.Pi / 43200, AmplitudeM: 1}},
		map[string]float64{"MSL": 0, "LAT": -1.5})
	if err != nil {
		panic(err)
	}

	extremes, err := loc.Extremes(start, start.Add(23*time.Hour), "LAT")
	if err != nil {
		panic(err)
	}
	for _, ex := range extremes {
		fmt.Printf("%-4s %s %.2f\n", ex.Kind(), ex.Time.Round(time.Minute).Format("15:04"), ex.HeightM)
	}
	// Output:
	// High 00:00 2.50
	// Low  06:00 0.50
	// High 12:00 2.50
	// Low  18:00 0.50
}
