package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type LocationRecord struct {
	Prefecture   string
	Municipality string
	Address1     string
	Address2     string
	BlockLot     string
	Lat          float64
	Lon          float64
}

// StationRecord is one station-on-a-line row of the ekidata master.
type StationRecord struct {
	StationCD  int64
	StationGCD int64
	Name       string
	NameKana   string
	LineCD     int64
	LineName   string
	Lat        float64
	Lon        float64
}

// parseLocations reads the address CSV. Columns 0-4 are the address parts,
// 9 and 10 are latitude and longitude.
func parseLocations(r io.Reader) ([]LocationRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []LocationRecord
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 11 {
			return nil, fmt.Errorf("invalid record length: %d, expected at least 11 columns", len(record))
		}

		lat, err := strconv.ParseFloat(record[9], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude: %s", record[9])
		}

		lon, err := strconv.ParseFloat(record[10], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude: %s", record[10])
		}

		records = append(records, LocationRecord{
			Prefecture:   record[0],
			Municipality: record[1],
			Address1:     record[2],
			Address2:     record[3],
			BlockLot:     record[4],
			Lat:          lat,
			Lon:          lon,
		})
	}

	return records, nil
}

// csvTable reads a headered CSV and resolves columns by name.
type csvTable struct {
	reader  *csv.Reader
	columns map[string]int
}

func newCSVTable(r io.Reader, required ...string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		columns[name] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return &csvTable{reader: reader, columns: columns}, nil
}

func (t *csvTable) next() ([]string, error) {
	return t.reader.Read()
}

func (t *csvTable) get(record []string, name string) string {
	i, ok := t.columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (t *csvTable) intField(record []string, name string) (int64, error) {
	v := t.get(record, name)
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}
	return n, nil
}

func (t *csvTable) floatField(record []string, name string) (float64, error) {
	v := t.get(record, name)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}
	return f, nil
}

// active reports whether e_status marks the row in service. Files without the
// column are treated as all active.
func (t *csvTable) active(record []string) bool {
	status := t.get(record, "e_status")
	return status == "" || status == "0"
}

// parseLines reads the ekidata line master into line_cd -> line_name.
func parseLines(r io.Reader) (map[int64]string, error) {
	table, err := newCSVTable(r, "line_cd", "line_name")
	if err != nil {
		return nil, fmt.Errorf("lines: %w", err)
	}

	names := map[int64]string{}
	for {
		record, err := table.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lines: failed to read record: %w", err)
		}
		if !table.active(record) {
			continue
		}

		cd, err := table.intField(record, "line_cd")
		if err != nil {
			return nil, fmt.Errorf("lines: %w", err)
		}
		names[cd] = table.get(record, "line_name")
	}
	return names, nil
}

// parseStations reads the ekidata station master. Closed stations are
// skipped. A missing station_g_cd makes the station its own group.
func parseStations(r io.Reader, lineNames map[int64]string) ([]StationRecord, error) {
	table, err := newCSVTable(r, "station_cd", "station_name", "line_cd", "lon", "lat")
	if err != nil {
		return nil, fmt.Errorf("stations: %w", err)
	}

	var records []StationRecord
	for {
		record, err := table.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stations: failed to read record: %w", err)
		}
		if !table.active(record) {
			continue
		}

		s := StationRecord{
			Name:     table.get(record, "station_name"),
			NameKana: table.get(record, "station_name_k"),
		}
		if s.StationCD, err = table.intField(record, "station_cd"); err != nil {
			return nil, fmt.Errorf("stations: %w", err)
		}
		if s.LineCD, err = table.intField(record, "line_cd"); err != nil {
			return nil, fmt.Errorf("stations: %w", err)
		}
		if s.Lat, err = table.floatField(record, "lat"); err != nil {
			return nil, fmt.Errorf("stations: %w", err)
		}
		if s.Lon, err = table.floatField(record, "lon"); err != nil {
			return nil, fmt.Errorf("stations: %w", err)
		}

		s.StationGCD = s.StationCD
		if table.get(record, "station_g_cd") != "" {
			if s.StationGCD, err = table.intField(record, "station_g_cd"); err != nil {
				return nil, fmt.Errorf("stations: %w", err)
			}
		}
		s.LineName = lineNames[s.LineCD]

		records = append(records, s)
	}
	return records, nil
}
