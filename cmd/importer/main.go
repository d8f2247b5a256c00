package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"shop-location-api/internal/config"
	"shop-location-api/internal/logger"
	"shop-location-api/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

const (
	kindLocations = "locations"
	kindStations  = "stations"
)

func main() {
	kind := flag.String("kind", kindLocations, "What to import: locations or stations")
	file := flag.String("file", "", "Path to the CSV file to import")
	lines := flag.String("lines", "", "Path to the line CSV file (stations only)")
	truncate := flag.Bool("truncate", false, "Empty the table before importing")
	flag.Parse()

	logger.Setup("info", true)

	if *file == "" {
		log.Fatal().Msg("--file flag is required")
	}
	if *kind != kindLocations && *kind != kindStations {
		log.Fatal().Str("kind", *kind).Msg("--kind must be locations or stations")
	}

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	ctx := context.Background()

	// Connect to DB
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close(ctx)

	log.Info().Str("kind", *kind).Str("file", *file).Msg("starting import")

	var count int
	switch *kind {
	case kindLocations:
		count, err = importLocations(ctx, conn, *file, *truncate)
	case kindStations:
		count, err = importStations(ctx, conn, *file, *lines, *truncate)
	}
	if err != nil {
		log.Fatal().Err(err).Str("kind", *kind).Msg("import failed")
	}

	// Verify data
	if err := verifyImport(ctx, conn, *kind, count, *truncate); err != nil {
		log.Fatal().Err(err).Msg("verification failed")
	}

	log.Info().Int("records", count).Str("kind", *kind).Msg("import finished")
}

func importLocations(ctx context.Context, conn *pgx.Conn, path string, truncate bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	records, err := parseLocations(f)
	if err != nil {
		return 0, err
	}
	log.Info().Int("records", len(records)).Msg("parsed locations")

	if err := repository.CreateLocationsSchema(ctx, conn); err != nil {
		return 0, err
	}
	if err := truncateTable(ctx, conn, kindLocations, truncate); err != nil {
		return 0, err
	}

	// Use CopyFrom for bulk insert
	_, err = conn.CopyFrom(
		ctx,
		pgx.Identifier{kindLocations},
		[]string{"prefecture", "municipality", "address_1", "address_2", "block_lot", "geom"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{r.Prefecture, r.Municipality, r.Address1, r.Address2, r.BlockLot, pointEWKT(r.Lat, r.Lon)}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy locations: %w", err)
	}
	return len(records), nil
}

func importStations(ctx context.Context, conn *pgx.Conn, path, linesPath string, truncate bool) (int, error) {
	lineNames := map[int64]string{}
	if linesPath != "" {
		lf, err := os.Open(linesPath)
		if err != nil {
			return 0, fmt.Errorf("failed to open lines file: %w", err)
		}
		defer lf.Close()

		lineNames, err = parseLines(lf)
		if err != nil {
			return 0, err
		}
		log.Info().Int("lines", len(lineNames)).Msg("parsed lines")
	} else {
		log.Warn().Msg("no --lines file given, line names will be empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	records, err := parseStations(f, lineNames)
	if err != nil {
		return 0, err
	}
	log.Info().Int("records", len(records)).Msg("parsed stations")

	if err := repository.CreateStationsSchema(ctx, conn); err != nil {
		return 0, err
	}
	if err := truncateTable(ctx, conn, kindStations, truncate); err != nil {
		return 0, err
	}

	_, err = conn.CopyFrom(
		ctx,
		pgx.Identifier{kindStations},
		[]string{"station_cd", "station_g_cd", "station_name", "station_name_kana", "line_cd", "line_name", "geom"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{r.StationCD, r.StationGCD, r.Name, r.NameKana, r.LineCD, r.LineName, pointEWKT(r.Lat, r.Lon)}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy stations: %w", err)
	}
	return len(records), nil
}

func truncateTable(ctx context.Context, conn *pgx.Conn, table string, truncate bool) error {
	if !truncate {
		return nil
	}
	if _, err := conn.Exec(ctx, "TRUNCATE "+pgx.Identifier{table}.Sanitize()); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", table, err)
	}
	return nil
}

// pointEWKT formats a point for a geography column. PostGIS takes lon lat.
func pointEWKT(lat, lon float64) string {
	return fmt.Sprintf("SRID=4326;POINT(%f %f)", lon, lat)
}

func verifyImport(ctx context.Context, conn *pgx.Conn, table string, expectedCount int, truncated bool) error {
	var count int
	err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if truncated && count != expectedCount {
		return fmt.Errorf("record count mismatch: expected %d, got %d", expectedCount, count)
	}
	if count < expectedCount {
		return fmt.Errorf("record count mismatch: expected at least %d, got %d", expectedCount, count)
	}

	// Check a sample geom
	var geom string
	err = conn.QueryRow(ctx, "SELECT ST_AsText(geom) FROM "+pgx.Identifier{table}.Sanitize()+" LIMIT 1").Scan(&geom)
	if err != nil {
		return fmt.Errorf("failed to check geom: %w", err)
	}

	log.Info().Str("table", table).Int("rows", count).Str("sample_geom", geom).Msg("import verified")
	return nil
}
