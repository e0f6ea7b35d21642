// Package main provides the tides command line predictor.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"go.ngs.io/tides-core/internal/domain"
	"go.ngs.io/tides-core/internal/usecase"
)

const version = "0.2.0"

func main() {
	var (
		constituents constituentFlags
		raw          rawFlags
	)
	datums := datumFlags{}

	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	verbose := flag.Bool("v", false, "Log search diagnostics")
	startStr := flag.String("start", "", "Start time (RFC3339, default: today 00:00 UTC)")
	endStr := flag.String("end", "", "End time (RFC3339, default: start + 24h)")
	interval := flag.Duration("interval", time.Hour, "Height sampling interval")
	datum := flag.String("datum", "", "Datum heights are reported against (default: TIDES_DEFAULT_DATUM)")
	epochStartStr := flag.String("epoch-start", "", "Start of the constituent validity epoch (RFC3339, default: start)")
	epochEndStr := flag.String("epoch-end", "", "End of the constituent validity epoch (RFC3339, default: end)")
	lat := flag.Float64("lat", 0, "Latitude in degrees")
	lon := flag.Float64("lon", 0, "Longitude in degrees (east positive)")
	name := flag.String("name", "", "Station name")
	flag.Var(&constituents, "constituent", "Corrected constituent NAME:SPEED_DEG_HR:PHASE_DEG:AMP_M (repeatable)")
	flag.Var(datums, "datum-offset", "Datum height NAME:M (repeatable)")
	flag.Var(&raw, "raw", "Uncorrected complex amplitude NAME:RE:IM (repeatable, selects the raw model)")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("tides version %s\n", version)
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := usecase.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	if *startStr != "" {
		start = mustParseTime("start", *startStr)
	}
	end := start.Add(24 * time.Hour)
	if *endStr != "" {
		end = mustParseTime("end", *endStr)
	}

	coord := domain.Coordinate{Lat: *lat, Lon: *lon}

	if len(raw) > 0 {
		set, err := domain.NewConstituentSet(coord, raw)
		if err != nil {
			log.Fatalf("Invalid constituents: %v", err)
		}
		uc := usecase.NewPredictionUseCase(cfg, nil)
		extrema, err := uc.RawExtremes(set, start, end.Sub(start))
		if err != nil {
			log.Fatalf("Failed to find extremes: %v", err)
		}
		fmt.Printf("Raw model at %.3f, %.3f\n", coord.Lat, coord.Lon)
		printExtrema(*extrema)
		return
	}

	if len(constituents) == 0 {
		log.Fatalf("No constituents given; use -constituent or -raw (see -help)")
	}

	epochStart, epochEnd := start, end
	if *epochStartStr != "" {
		epochStart = mustParseTime("epoch-start", *epochStartStr)
	}
	if *epochEndStr != "" {
		epochEnd = mustParseTime("epoch-end", *epochEndStr)
	}

	loc, err := domain.NewLocation(*name, coord, epochStart, epochEnd, constituents, datums)
	if err != nil {
		log.Fatalf("Invalid location: %v", err)
	}

	req := usecase.PredictionRequest{
		Start:    start,
		End:      end,
		Interval: *interval,
		Datum:    *datum,
	}
	if *name != "" {
		req.StationID = name
	} else {
		req.Lat, req.Lon = lat, lon
	}

	uc := usecase.NewPredictionUseCase(cfg, usecase.NewLocationIndex(loc))
	resp, err := uc.Execute(req)
	if err != nil {
		log.Fatalf("Prediction failed: %v", err)
	}

	fmt.Printf("Location: %s\n", resp.Location)
	fmt.Printf("Datum:    %s\n", resp.Datum)
	fmt.Println()
	fmt.Println("PREDICTIONS:")
	for _, p := range resp.Predictions {
		fmt.Printf("  %s  %+7.3f\n", p.Time, p.HeightM)
	}
	fmt.Println()
	printExtrema(resp.Extrema)
}

func mustParseTime(flagName, value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Fatalf("Invalid -%s: %v", flagName, err)
	}
	return t.UTC()
}

func printExtrema(e usecase.ExtremaResponse) {
	fmt.Println("HIGHS:")
	for _, p := range e.Highs {
		fmt.Printf("  %s  %+7.3f\n", p.Time, p.HeightM)
	}
	fmt.Println("LOWS:")
	for _, p := range e.Lows {
		fmt.Printf("  %s  %+7.3f\n", p.Time, p.HeightM)
	}
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("Tides v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  tides [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help                 Show this help message")
	fmt.Println("  -version              Show version information")
	fmt.Println("  -v                    Log search diagnostics")
	fmt.Println("  -start, -end          Prediction range (RFC3339)")
	fmt.Println("  -interval             Height sampling interval (default: 1h)")
	fmt.Println("  -datum                Report heights against this datum")
	fmt.Println("  -epoch-start/-end     Validity of corrected constituents (default: prediction range)")
	fmt.Println("  -lat, -lon, -name     Location")
	fmt.Println("  -constituent          NAME:SPEED_DEG_HR:PHASE_DEG:AMP_M, corrected (repeatable)")
	fmt.Println("  -datum-offset         NAME:M datum height (repeatable)")
	fmt.Println("  -raw                  NAME:RE:IM uncorrected complex amplitude (repeatable)")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  TIDES_MAX_POINTS        Maximum sampled heights (default: 10000)")
	fmt.Println("  TIDES_MAX_RANGE         Maximum prediction range (default: 8760h)")
	fmt.Println("  TIDES_MIN_INTERVAL      Minimum sampling interval (default: 1m)")
	fmt.Println("  TIDES_MAX_INTERVAL      Maximum sampling interval (default: 6h)")
	fmt.Println("  TIDES_SEARCH_RADIUS_KM  Nearest location radius (default: 80)")
	fmt.Println("  TIDES_ROUND_DECIMALS    Decimals in reported heights (default: 3)")
	fmt.Println("  TIDES_DEFAULT_DATUM     Datum when -datum is empty (default: MSL)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Corrected constituents, heights against LAT")
	fmt.Println("  tides -start 2025-01-01T00:00:00Z -constituent M2:28.9841042:62:0.78 \\")
	fmt.Println("        -datum-offset MSL:1.2 -datum-offset LAT:0 -datum LAT")
	fmt.Println()
	fmt.Println("  # Raw model with nodal corrections")
	fmt.Println("  tides -start 2025-01-01T00:00:00Z -raw M2:0.5:-0.2 -raw K1:0.2:0.1")
	fmt.Println()
}
