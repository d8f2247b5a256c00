package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is satisfied by *pgx.Conn, *pgxpool.Pool and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const locationsSchema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS locations (
		id BIGSERIAL PRIMARY KEY,
		prefecture VARCHAR(255),
		municipality VARCHAR(255),
		address_1 VARCHAR(255),
		address_2 VARCHAR(255),
		block_lot VARCHAR(255),
		full_address_tsvector TSVECTOR GENERATED ALWAYS AS (
			to_tsvector('japanese', prefecture || municipality || address_1 || address_2)
		) STORED,
		geom GEOGRAPHY(POINT, 4326)
	);
	CREATE INDEX IF NOT EXISTS locations_geom_idx ON locations USING GIST (geom);
	CREATE INDEX IF NOT EXISTS locations_full_address_tsvector_idx ON locations USING GIN (full_address_tsvector);
`

const stationsSchema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS stations (
		station_cd BIGINT PRIMARY KEY,
		station_g_cd BIGINT,
		station_name VARCHAR(255) NOT NULL,
		station_name_kana VARCHAR(255) NOT NULL DEFAULT '',
		line_cd BIGINT,
		line_name VARCHAR(255) NOT NULL DEFAULT '',
		geom GEOGRAPHY(POINT, 4326) NOT NULL
	);
	CREATE INDEX IF NOT EXISTS stations_geom_idx ON stations USING GIST (geom);
	CREATE INDEX IF NOT EXISTS stations_group_idx ON stations (station_g_cd);
	CREATE INDEX IF NOT EXISTS stations_name_idx ON stations (station_name text_pattern_ops);
	CREATE INDEX IF NOT EXISTS stations_name_kana_idx ON stations (station_name_kana text_pattern_ops);
`

// CreateLocationsSchema creates the locations table and its indexes.
func CreateLocationsSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, locationsSchema); err != nil {
		return fmt.Errorf("repository: failed to create locations schema: %w", err)
	}
	return nil
}

// CreateStationsSchema creates the stations table and its indexes.
func CreateStationsSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, stationsSchema); err != nil {
		return fmt.Errorf("repository: failed to create stations schema: %w", err)
	}
	return nil
}
