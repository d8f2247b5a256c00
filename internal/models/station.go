package models

// Station is a single selected station. GroupID is zero for ungrouped
// stations, in which case ID is its identity.
type Station struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	NameKana string `json:"name_kana,omitempty"`
	LineName string `json:"line_name"`
	GroupID  int64  `json:"group_id,omitempty"`
}

// StationLine is one rail line serving a grouped candidate.
type StationLine struct {
	StationID int64  `json:"station_id"`
	LineName  string `json:"line_name"`
}

// GroupedStationCandidate is a physical station as returned by the fetcher,
// before it is narrowed to a Station at selection time.
type GroupedStationCandidate struct {
	GroupID            int64         `json:"group_id,omitempty"`
	StationID          int64         `json:"station_id,omitempty"`
	RepresentativeName string        `json:"representative_name"`
	NameKana           string        `json:"name_kana,omitempty"`
	Lines              []StationLine `json:"lines"`
	DistanceKm         *float64      `json:"distance_km,omitempty"`
	WalkingMinutes     *int          `json:"walking_minutes,omitempty"`
	Lat                float64       `json:"lat,omitempty"`
	Lng                float64       `json:"lng,omitempty"`
}

// NearbyQuery asks for stations around a point.
type NearbyQuery struct {
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	MaxStations   int     `json:"max_stations"`
	MaxDistanceKm float64 `json:"max_distance"`
}

// StationSearchQuery asks for stations matching a keyword.
type StationSearchQuery struct {
	Keyword string `json:"keyword"`
	Limit   int    `json:"limit"`
}
