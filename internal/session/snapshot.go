package session

import (
	"time"

	"shop-location-api/internal/models"
	"shop-location-api/internal/station"
)

// PostalStage is where the editor is in the postal-assisted path.
type PostalStage string

const (
	StageSelectCandidate PostalStage = "select_candidate"
	StageDetailEntry     PostalStage = "detail_entry"
)

// Snapshot is a point-in-time copy of a session's state.
type Snapshot struct {
	ID         string                  `json:"id"`
	Postal     PostalState             `json:"postal"`
	Address    *models.ResolvedAddress `json:"address"`
	Stations   StationsState           `json:"stations"`
	Assignment AssignmentState         `json:"assignment"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

type PostalState struct {
	Text        string                     `json:"text"`
	Pending     bool                       `json:"pending"`
	Result      *models.PostalLookupResult `json:"result,omitempty"`
	BaseAddress *models.AddressCandidate   `json:"base_address,omitempty"`
	Stage       PostalStage                `json:"stage"`
}

type StationsState struct {
	Mode       CandidateMode                    `json:"mode"`
	Keyword    string                           `json:"keyword"`
	Pending    bool                             `json:"pending"`
	Candidates []models.GroupedStationCandidate `json:"candidates"`
	Error      string                           `json:"error,omitempty"`
}

type AssignmentState struct {
	Phase station.Phase    `json:"phase"`
	Main  *models.Station  `json:"main"`
	Subs  []models.Station `json:"subs"`
	Valid bool             `json:"valid"`
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID: s.ID,
		Postal: PostalState{
			Text:    s.postalText,
			Pending: s.postalDebounce.Pending(),
			Stage:   StageSelectCandidate,
		},
		Stations: StationsState{
			Mode:       s.mode,
			Keyword:    s.keyword,
			Pending:    s.keywordDebounce.Pending(),
			Candidates: append([]models.GroupedStationCandidate{}, s.candidates...),
			Error:      s.stationsErr,
		},
		Assignment: AssignmentState{
			Phase: s.assignment.Phase(),
			Main:  s.assignment.Main(),
			Subs:  s.assignment.Subs(),
			Valid: s.valid,
		},
		UpdatedAt: s.updatedAt,
	}

	if s.postalResult != nil {
		r := *s.postalResult
		r.Candidates = append([]models.AddressCandidate{}, r.Candidates...)
		snap.Postal.Result = &r
	}
	if s.base != nil {
		b := *s.base
		snap.Postal.BaseAddress = &b
		snap.Postal.Stage = StageDetailEntry
	}
	if s.resolved != nil {
		r := *s.resolved
		snap.Address = &r
	}
	return snap
}
