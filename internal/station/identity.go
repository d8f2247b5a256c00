package station

import (
	"strconv"

	"shop-location-api/internal/models"
)

// Identity is the canonical form of a station reference. Backend grouping is
// not consistent across records, so two identities match when their keys are
// equal or when they share any member station id.
type Identity struct {
	key     string
	members map[int64]struct{}
}

// IdentityOf computes the identity of a candidate once, at ingestion.
func IdentityOf(c models.GroupedStationCandidate) Identity {
	id := Identity{members: make(map[int64]struct{}, len(c.Lines)+1)}
	if rep := RepresentativeID(c); rep != 0 {
		id.members[rep] = struct{}{}
	}
	for _, l := range c.Lines {
		if l.StationID != 0 {
			id.members[l.StationID] = struct{}{}
		}
	}

	switch {
	case c.GroupID != 0:
		id.key = "group:" + strconv.FormatInt(c.GroupID, 10)
	case RepresentativeID(c) != 0:
		id.key = "station:" + strconv.FormatInt(RepresentativeID(c), 10)
	}
	return id
}

// Key is the group id if present, else the raw station id.
func (i Identity) Key() string {
	return i.key
}

// Matches reports whether i and o refer to the same physical station.
func (i Identity) Matches(o Identity) bool {
	if i.key != "" && i.key == o.key {
		return true
	}
	for id := range i.members {
		if _, ok := o.members[id]; ok {
			return true
		}
	}
	return false
}
