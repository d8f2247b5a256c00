package station

import (
	"strings"

	"shop-location-api/internal/models"
)

// LineSeparator joins line names of a multi-line station.
const LineSeparator = "、"

// Label is the display name of a candidate. Single-line stations are
// suffixed with their line; groups are disambiguated by LineNames instead.
func Label(c models.GroupedStationCandidate) string {
	if len(c.Lines) == 1 && c.Lines[0].LineName != "" {
		return c.RepresentativeName + "（" + c.Lines[0].LineName + "）"
	}
	return c.RepresentativeName
}

// LineNames joins the names of every line serving the candidate.
func LineNames(c models.GroupedStationCandidate) string {
	names := make([]string, 0, len(c.Lines))
	for _, l := range c.Lines {
		if l.LineName != "" {
			names = append(names, l.LineName)
		}
	}
	return strings.Join(names, LineSeparator)
}

// RepresentativeID is the station id a candidate collapses to on selection.
func RepresentativeID(c models.GroupedStationCandidate) int64 {
	if c.StationID != 0 {
		return c.StationID
	}
	if len(c.Lines) > 0 {
		return c.Lines[0].StationID
	}
	return 0
}

// ToStation narrows a grouped candidate to the Station stored in an assignment.
func ToStation(c models.GroupedStationCandidate) models.Station {
	return models.Station{
		ID:       RepresentativeID(c),
		Name:     c.RepresentativeName,
		NameKana: c.NameKana,
		LineName: LineNames(c),
		GroupID:  c.GroupID,
	}
}
