package repository

import (
	"context"
	"fmt"
	"strings"

	"shop-location-api/internal/models"

	"github.com/jackc/pgx/v5"
)

// stationRow is one line-station record. Rows sharing GroupCD are the same
// physical station.
type stationRow struct {
	StationCD  int64
	GroupCD    int64
	Name       string
	NameKana   string
	LineName   string
	Lat        float64
	Lng        float64
	DistanceKm *float64
}

// NearbyStations returns the closest physical stations within the radius,
// nearest first, with every serving line.
func (r *Repository) NearbyStations(ctx context.Context, q models.NearbyQuery) ([]models.GroupedStationCandidate, error) {
	sql := `
		WITH origin AS (
			SELECT ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography AS g
		),
		near AS (
			SELECT
				s.station_cd,
				COALESCE(s.station_g_cd, s.station_cd) AS group_cd,
				s.station_name,
				s.station_name_kana,
				s.line_name,
				ST_Y(s.geom::geometry) AS latitude,
				ST_X(s.geom::geometry) AS longitude,
				ST_Distance(s.geom, origin.g) / 1000.0 AS distance_km
			FROM stations s, origin
			WHERE ST_DWithin(s.geom, origin.g, $3 * 1000.0)
		),
		groups AS (
			SELECT group_cd, MIN(distance_km) AS group_distance
			FROM near
			GROUP BY group_cd
			ORDER BY group_distance
			LIMIT $4
		)
		SELECT n.station_cd, n.group_cd, n.station_name, n.station_name_kana, n.line_name, n.latitude, n.longitude, n.distance_km
		FROM near n
		JOIN groups g ON g.group_cd = n.group_cd
		ORDER BY g.group_distance, n.distance_km, n.station_cd
	`

	rows, err := r.db.Query(ctx, sql, q.Lat, q.Lng, q.MaxDistanceKm, q.MaxStations)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute nearby stations query: %w", err)
	}

	stations, err := collectStationRows(rows)
	if err != nil {
		return nil, err
	}
	return groupStationRows(stations), nil
}

// SearchStations matches the keyword as a prefix of the station name or its
// kana reading. Shorter names rank first.
func (r *Repository) SearchStations(ctx context.Context, q models.StationSearchQuery) ([]models.GroupedStationCandidate, error) {
	sql := `
		WITH matched AS (
			SELECT
				COALESCE(station_g_cd, station_cd) AS group_cd,
				MIN(char_length(station_name)) AS name_len,
				MIN(station_cd) AS first_cd
			FROM stations
			WHERE station_name LIKE $1 OR station_name_kana LIKE $1
			GROUP BY 1
			ORDER BY name_len, first_cd
			LIMIT $2
		)
		SELECT s.station_cd, m.group_cd, s.station_name, s.station_name_kana, s.line_name,
			ST_Y(s.geom::geometry), ST_X(s.geom::geometry), NULL::float8
		FROM stations s
		JOIN matched m ON COALESCE(s.station_g_cd, s.station_cd) = m.group_cd
		ORDER BY m.name_len, m.first_cd, s.station_cd
	`

	rows, err := r.db.Query(ctx, sql, likePrefix(q.Keyword), q.Limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute station search query: %w", err)
	}

	stations, err := collectStationRows(rows)
	if err != nil {
		return nil, err
	}
	return groupStationRows(stations), nil
}

func collectStationRows(rows pgx.Rows) ([]stationRow, error) {
	defer rows.Close()

	var stations []stationRow
	for rows.Next() {
		var s stationRow
		err := rows.Scan(
			&s.StationCD,
			&s.GroupCD,
			&s.Name,
			&s.NameKana,
			&s.LineName,
			&s.Lat,
			&s.Lng,
			&s.DistanceKm,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan station: %w", err)
		}
		stations = append(stations, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return stations, nil
}

// groupStationRows folds line-station rows into one candidate per group, in
// first-seen order. The member whose code equals the group code represents
// the group; otherwise the first member does. Single-member groups are
// reported as ungrouped stations.
func groupStationRows(rows []stationRow) []models.GroupedStationCandidate {
	out := []models.GroupedStationCandidate{}
	index := make(map[int64]int)
	members := make(map[int64][]stationRow)

	for _, row := range rows {
		if _, ok := index[row.GroupCD]; !ok {
			index[row.GroupCD] = len(out)
			out = append(out, models.GroupedStationCandidate{})
		}
		members[row.GroupCD] = append(members[row.GroupCD], row)
	}

	for groupCD, i := range index {
		group := members[groupCD]
		rep := group[0]
		for _, m := range group {
			if m.StationCD == groupCD {
				rep = m
				break
			}
		}

		c := models.GroupedStationCandidate{
			StationID:          rep.StationCD,
			RepresentativeName: rep.Name,
			NameKana:           rep.NameKana,
			Lat:                rep.Lat,
			Lng:                rep.Lng,
			Lines:              make([]models.StationLine, 0, len(group)),
		}
		if len(group) > 1 {
			c.GroupID = groupCD
		}

		for _, m := range group {
			c.Lines = append(c.Lines, models.StationLine{StationID: m.StationCD, LineName: m.LineName})
			if m.DistanceKm != nil && (c.DistanceKm == nil || *m.DistanceKm < *c.DistanceKm) {
				d := *m.DistanceKm
				c.DistanceKm = &d
			}
		}

		out[i] = c
	}

	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePrefix(keyword string) string {
	return likeEscaper.Replace(keyword) + "%"
}
