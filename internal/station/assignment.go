package station

import (
	"errors"

	"shop-location-api/internal/models"
)

// MaxSubStations caps the optional sub stations.
const MaxSubStations = 3

var (
	ErrMainNotSelected = errors.New("main station is not selected")
	ErrSameAsMain      = errors.New("station is the same as the main station")
	ErrAlreadySelected = errors.New("station is already selected")
	ErrMaxSubStations  = errors.New("a maximum of 3 sub stations can be selected")
)

// Phase is the state of an Assignment.
type Phase string

const (
	PhaseSelectingMain Phase = "SELECTING_MAIN"
	PhaseSelectingSub  Phase = "SELECTING_SUB"
)

type selection struct {
	station  models.Station
	identity Identity
}

// Assignment is the main/sub station state machine. It is not safe for
// concurrent use.
type Assignment struct {
	main     *selection
	subs     []selection
	onChange func(valid bool)
}

// NewAssignment returns an empty assignment. onChange, if non-nil, receives
// the validity after every transition.
func NewAssignment(onChange func(valid bool)) *Assignment {
	return &Assignment{onChange: onChange}
}

func (a *Assignment) notify() {
	if a.onChange != nil {
		a.onChange(a.Valid())
	}
}

// Phase returns SELECTING_SUB once a main station is set.
func (a *Assignment) Phase() Phase {
	if a.main == nil {
		return PhaseSelectingMain
	}
	return PhaseSelectingSub
}

// Valid reports whether the assignment may be submitted.
func (a *Assignment) Valid() bool {
	return a.main != nil
}

// Main returns the main station, or nil.
func (a *Assignment) Main() *models.Station {
	if a.main == nil {
		return nil
	}
	s := a.main.station
	return &s
}

// Subs returns a copy of the sub stations in selection order.
func (a *Assignment) Subs() []models.Station {
	out := make([]models.Station, 0, len(a.subs))
	for _, s := range a.subs {
		out = append(out, s.station)
	}
	return out
}

// SelectMain sets the main station and clears every sub station.
func (a *Assignment) SelectMain(c models.GroupedStationCandidate) models.Station {
	a.main = &selection{station: ToStation(c), identity: IdentityOf(c)}
	a.subs = nil
	a.notify()
	return a.main.station
}

// AddSub appends a sub station. The assignment is unchanged on error.
func (a *Assignment) AddSub(c models.GroupedStationCandidate) error {
	if a.main == nil {
		return ErrMainNotSelected
	}

	id := IdentityOf(c)
	if id.Matches(a.main.identity) {
		return ErrSameAsMain
	}
	for _, s := range a.subs {
		if id.Matches(s.identity) {
			return ErrAlreadySelected
		}
	}
	if len(a.subs) >= MaxSubStations {
		return ErrMaxSubStations
	}

	a.subs = append(a.subs, selection{station: ToStation(c), identity: id})
	a.notify()
	return nil
}

// RemoveSub drops the sub station with the given id.
func (a *Assignment) RemoveSub(stationID int64) {
	kept := a.subs[:0]
	for _, s := range a.subs {
		if s.station.ID != stationID {
			kept = append(kept, s)
		}
	}
	a.subs = kept
	a.notify()
}

// Reset clears main and sub stations.
func (a *Assignment) Reset() {
	a.main = nil
	a.subs = nil
	a.notify()
}

// Addable filters out every candidate already chosen as main or sub.
func (a *Assignment) Addable(candidates []models.GroupedStationCandidate) []models.GroupedStationCandidate {
	out := make([]models.GroupedStationCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !a.isSelected(IdentityOf(c)) {
			out = append(out, c)
		}
	}
	return out
}

func (a *Assignment) isSelected(id Identity) bool {
	if a.main != nil && id.Matches(a.main.identity) {
		return true
	}
	for _, s := range a.subs {
		if id.Matches(s.identity) {
			return true
		}
	}
	return false
}
