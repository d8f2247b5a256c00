package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"shop-location-api/internal/debounce"
	"shop-location-api/internal/models"
	"shop-location-api/internal/service"
	"shop-location-api/internal/station"
	"shop-location-api/internal/textnorm"

	"github.com/rs/zerolog/log"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoBaseAddress     = errors.New("no base address selected")
	ErrCandidateIndex    = errors.New("address candidate index out of range")
	ErrNoCoordinates     = errors.New("address is not resolved yet")
	ErrCandidateNotFound = errors.New("station is not in the current candidates")
	ErrIncomplete        = errors.New("location is incomplete")
)

// PostalResolver looks up address candidates for postal code text.
type PostalResolver interface {
	Lookup(ctx context.Context, raw string) (models.PostalLookupResult, error)
}

// AddressResolver runs the coordinate resolution chain.
type AddressResolver interface {
	ResolveFromPostal(ctx context.Context, base models.AddressCandidate, detail, building string) (*models.ResolvedAddress, error)
	ResolveManual(ctx context.Context, address, building string) (*models.ResolvedAddress, error)
}

// StationFetcher fetches station candidates.
type StationFetcher interface {
	Nearby(ctx context.Context, q models.NearbyQuery) ([]models.GroupedStationCandidate, error)
	Search(ctx context.Context, q models.StationSearchQuery) ([]models.GroupedStationCandidate, error)
}

// Dependencies are the pipeline services a session drives.
type Dependencies struct {
	Postal   PostalResolver
	Address  AddressResolver
	Stations StationFetcher
}

// Options tune debounce delays and the timeout of debounced lookups.
type Options struct {
	PostalDebounce  time.Duration
	KeywordDebounce time.Duration
	LookupTimeout   time.Duration
}

// CandidateMode says which fetch produced the current station candidates.
type CandidateMode string

const (
	ModeNone    CandidateMode = ""
	ModeNearby  CandidateMode = "nearby"
	ModeKeyword CandidateMode = "keyword"
)

// Session is one editor's pass through the location pipeline. It is safe for
// concurrent use; debounced lookups complete on timer goroutines.
type Session struct {
	ID string

	ctx  context.Context
	deps Dependencies
	opts Options

	mu sync.Mutex

	postalDebounce *debounce.Debouncer
	postalText     string
	postalResult   *models.PostalLookupResult
	base           *models.AddressCandidate

	resolveSeq uint64
	resolved   *models.ResolvedAddress

	keywordDebounce *debounce.Debouncer
	keyword         string
	fetchSeq        uint64
	mode            CandidateMode
	candidates      []models.GroupedStationCandidate
	stationsErr     string

	assignment *station.Assignment
	valid      bool

	updatedAt time.Time
}

func newSession(ctx context.Context, id string, deps Dependencies, opts Options) *Session {
	s := &Session{
		ID:              id,
		ctx:             ctx,
		deps:            deps,
		opts:            opts,
		postalDebounce:  debounce.New(opts.PostalDebounce),
		keywordDebounce: debounce.New(opts.KeywordDebounce),
		candidates:      []models.GroupedStationCandidate{},
		updatedAt:       time.Now(),
	}
	s.assignment = station.NewAssignment(func(valid bool) {
		s.valid = valid
		log.Debug().Str("session", id).Bool("valid", valid).Msg("station assignment changed")
	})
	return s
}

// Close cancels pending debounced lookups.
func (s *Session) Close() {
	s.postalDebounce.Cancel()
	s.keywordDebounce.Cancel()
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
}

func (s *Session) lookupContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(s.ctx, s.opts.LookupTimeout)
}

// InputPostalCode records a keystroke in the postal code field. A lookup runs
// once the text holds 7 digits and input has been quiet for the postal
// debounce delay; only the latest lookup's result is applied.
func (s *Session) InputPostalCode(text string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.postalText = text
	s.touch()

	if len(textnorm.DigitsOnly(text)) != service.PostalCodeLength {
		s.postalDebounce.Cancel()
		return s.snapshotLocked()
	}

	s.postalDebounce.Trigger(func(gen uint64) {
		ctx, cancel := s.lookupContext()
		defer cancel()

		result, err := s.deps.Postal.Lookup(ctx, text)

		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.postalDebounce.IsCurrent(gen) {
			log.Debug().Str("session", s.ID).Uint64("generation", gen).Msg("discarding stale postal lookup")
			return
		}
		if err != nil {
			log.Warn().Err(err).Str("session", s.ID).Msg("postal lookup rejected")
			return
		}
		s.postalResult = &result
		// Candidates for a new code invalidate a base chosen from the old one.
		s.base = nil
		s.touch()
	})

	return s.snapshotLocked()
}

// SelectBaseAddress freezes a postal candidate as the base address and moves
// on to detail entry.
func (s *Session) SelectBaseAddress(index int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.postalResult == nil || index < 0 || index >= len(s.postalResult.Candidates) {
		return s.snapshotLocked(), fmt.Errorf("session: %w: %d", ErrCandidateIndex, index)
	}

	base := s.postalResult.Candidates[index]
	s.base = &base
	s.touch()
	return s.snapshotLocked(), nil
}

// ResetBaseAddress returns to candidate selection without looking up again.
func (s *Session) ResetBaseAddress() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.base = nil
	s.touch()
	return s.snapshotLocked()
}

// ResolveAddress resolves the base address plus detail and building.
func (s *Session) ResolveAddress(ctx context.Context, detail, building string) (Snapshot, error) {
	s.mu.Lock()
	if s.base == nil {
		defer s.mu.Unlock()
		return s.snapshotLocked(), fmt.Errorf("session: %w", ErrNoBaseAddress)
	}
	base := *s.base
	s.mu.Unlock()

	return s.resolve(ctx, func(ctx context.Context) (*models.ResolvedAddress, error) {
		return s.deps.Address.ResolveFromPostal(ctx, base, detail, building)
	})
}

// ResolveManual resolves a free-typed address.
func (s *Session) ResolveManual(ctx context.Context, address, building string) (Snapshot, error) {
	return s.resolve(ctx, func(ctx context.Context) (*models.ResolvedAddress, error) {
		return s.deps.Address.ResolveManual(ctx, address, building)
	})
}

// resolve replaces the resolved address only on success and only if no newer
// resolution started meanwhile, then refreshes nearby candidates.
func (s *Session) resolve(ctx context.Context, run func(context.Context) (*models.ResolvedAddress, error)) (Snapshot, error) {
	s.mu.Lock()
	s.resolveSeq++
	seq := s.resolveSeq
	s.mu.Unlock()

	resolved, err := run(ctx)

	s.mu.Lock()
	if err != nil {
		defer s.mu.Unlock()
		return s.snapshotLocked(), err
	}
	if seq != s.resolveSeq {
		defer s.mu.Unlock()
		log.Debug().Str("session", s.ID).Msg("discarding stale address resolution")
		return s.snapshotLocked(), nil
	}
	s.resolved = resolved
	s.touch()
	s.mu.Unlock()

	// The address stands even when the station refresh fails; the failure
	// is reported through the snapshot's stations error.
	snap, err := s.FetchNearby(ctx)
	if err != nil {
		log.Warn().Err(err).Str("session", s.ID).Msg("nearby refresh after resolution failed")
	}
	return snap, nil
}

// FetchNearby replaces the candidates with stations around the resolved
// address. A fetch failure keeps the previous candidates.
func (s *Session) FetchNearby(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	if s.resolved == nil {
		defer s.mu.Unlock()
		return s.snapshotLocked(), fmt.Errorf("session: %w", ErrNoCoordinates)
	}
	s.keywordDebounce.Cancel()
	s.fetchSeq++
	seq := s.fetchSeq
	q := models.NearbyQuery{
		Lat:           s.resolved.Lat,
		Lng:           s.resolved.Lng,
		MaxStations:   service.DefaultMaxStations,
		MaxDistanceKm: service.DefaultMaxDistanceKm,
	}
	s.mu.Unlock()

	candidates, err := s.deps.Stations.Nearby(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.fetchSeq {
		return s.snapshotLocked(), nil
	}
	if err != nil {
		s.stationsErr = err.Error()
		return s.snapshotLocked(), err
	}
	s.applyCandidatesLocked(ModeNearby, candidates)
	return s.snapshotLocked(), nil
}

// InputKeyword records a keystroke in the station search field. A search
// runs once the keyword has at least 2 characters and input has been quiet
// for the keyword debounce delay.
func (s *Session) InputKeyword(text string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keyword = text
	s.touch()

	keyword := strings.TrimSpace(textnorm.NormalizeDigits(text))
	if utf8.RuneCountInString(keyword) < service.MinKeywordLength {
		s.keywordDebounce.Cancel()
		return s.snapshotLocked()
	}

	s.keywordDebounce.Trigger(func(gen uint64) {
		s.mu.Lock()
		s.fetchSeq++
		seq := s.fetchSeq
		s.mu.Unlock()

		ctx, cancel := s.lookupContext()
		defer cancel()

		candidates, err := s.deps.Stations.Search(ctx, models.StationSearchQuery{Keyword: keyword, Limit: service.DefaultSearchLimit})

		s.mu.Lock()
		defer s.mu.Unlock()
		if seq != s.fetchSeq || !s.keywordDebounce.IsCurrent(gen) {
			log.Debug().Str("session", s.ID).Uint64("generation", gen).Msg("discarding stale station search")
			return
		}
		if err != nil {
			log.Warn().Err(err).Str("session", s.ID).Msg("station search failed")
			s.stationsErr = err.Error()
			return
		}
		s.applyCandidatesLocked(ModeKeyword, candidates)
	})

	return s.snapshotLocked()
}

func (s *Session) applyCandidatesLocked(mode CandidateMode, candidates []models.GroupedStationCandidate) {
	if candidates == nil {
		candidates = []models.GroupedStationCandidate{}
	}
	s.mode = mode
	s.candidates = candidates
	s.stationsErr = ""
	s.touch()
}

// findCandidateLocked matches a station id against each candidate's
// representative and member ids.
func (s *Session) findCandidateLocked(stationID int64) (models.GroupedStationCandidate, error) {
	for _, c := range s.candidates {
		if station.RepresentativeID(c) == stationID {
			return c, nil
		}
		for _, l := range c.Lines {
			if l.StationID == stationID {
				return c, nil
			}
		}
	}
	return models.GroupedStationCandidate{}, fmt.Errorf("session: %w: %d", ErrCandidateNotFound, stationID)
}

// SelectMain sets the main station from the current candidates.
func (s *Session) SelectMain(stationID int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.findCandidateLocked(stationID)
	if err != nil {
		return s.snapshotLocked(), err
	}
	s.assignment.SelectMain(c)
	s.touch()
	return s.snapshotLocked(), nil
}

// AddSub adds a sub station from the current candidates.
func (s *Session) AddSub(stationID int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.findCandidateLocked(stationID)
	if err != nil {
		return s.snapshotLocked(), err
	}
	if err := s.assignment.AddSub(c); err != nil {
		return s.snapshotLocked(), fmt.Errorf("session: %w", err)
	}
	s.touch()
	return s.snapshotLocked(), nil
}

// RemoveSub drops a sub station.
func (s *Session) RemoveSub(stationID int64) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assignment.RemoveSub(stationID)
	s.touch()
	return s.snapshotLocked()
}

// ResetStations clears the assignment and, when the address is resolved,
// fetches nearby stations again.
func (s *Session) ResetStations(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	s.assignment.Reset()
	s.keyword = ""
	s.touch()
	hasCoordinates := s.resolved != nil
	if !hasCoordinates {
		defer s.mu.Unlock()
		return s.snapshotLocked(), nil
	}
	s.mu.Unlock()

	return s.FetchNearby(ctx)
}

// Addable lists the current candidates not yet chosen as main or sub.
func (s *Session) Addable() []models.GroupedStationCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignment.Addable(s.candidates)
}

// Submission flattens the resolved address and assignment for the shop form.
func (s *Session) Submission() (models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resolved == nil {
		return models.Submission{}, fmt.Errorf("session: %w: %w", ErrIncomplete, ErrNoCoordinates)
	}
	if !s.assignment.Valid() {
		return models.Submission{}, fmt.Errorf("session: %w: %w", ErrIncomplete, station.ErrMainNotSelected)
	}

	r := s.resolved
	sub := models.Submission{
		Lat:              r.Lat,
		Lng:              r.Lng,
		AddressPref:      r.Prefecture,
		AddressCity:      r.City,
		AddressTown:      r.Town,
		AddressStreet:    r.Street,
		AddressBuilding:  r.Building,
		NearestStationID: s.assignment.Main().ID,
		SubStationIDs:    []int64{},
	}
	for _, st := range s.assignment.Subs() {
		sub.SubStationIDs = append(sub.SubStationIDs, st.ID)
	}
	return sub, nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}
