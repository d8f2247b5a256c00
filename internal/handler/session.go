package handler

import (
	"net/http"
	"strconv"

	"shop-location-api/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionStore owns the live pipeline sessions.
type SessionStore interface {
	Create() *session.Session
	Get(id string) (*session.Session, error)
	Delete(id string) bool
}

// SessionHandler exposes a session's pipeline to the dashboard.
type SessionHandler struct {
	store SessionStore
}

func NewSessionHandler(store SessionStore) *SessionHandler {
	return &SessionHandler{store: store}
}

type TextInput struct {
	Text string `json:"text" binding:"max=100"`
}

type CandidateIndex struct {
	Index *int `json:"index" binding:"required,min=0"`
}

type DetailInput struct {
	Detail   string `json:"detail" binding:"max=200"`
	Building string `json:"building" binding:"max=100"`
}

type ManualAddressInput struct {
	Address  string `json:"address" binding:"required,max=200"`
	Building string `json:"building" binding:"max=100"`
}

type StationRef struct {
	StationID int64 `json:"station_id" binding:"required,gt=0"`
}

// session loads the session named in the path, writing a 404 when it is gone.
func (h *SessionHandler) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return s, true
}

// Create handles POST /sessions
//
//	@Summary	Start a location session
//	@Tags		sessions
//	@Produce	json
//	@Success	201	{object}	session.Snapshot
//	@Router		/sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	s := h.store.Create()
	c.JSON(http.StatusCreated, s.Snapshot())
}

// Get handles GET /sessions/:id
//
//	@Summary	Current session state
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"session id"
//	@Success	200	{object}	session.Snapshot
//	@Failure	404	{object}	map[string]string
//	@Router		/sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// Delete handles DELETE /sessions/:id
//
//	@Summary	End a session
//	@Tags		sessions
//	@Param		id	path	string	true	"session id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	if !h.store.Delete(c.Param("id")) {
		respondError(c, session.ErrSessionNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// InputPostalCode handles PUT /sessions/:id/postal-code. The lookup runs
// after the debounce delay; poll the session for its result.
//
//	@Summary	Type into the postal code field
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"session id"
//	@Param		input	body		TextInput	true	"field text"
//	@Success	202		{object}	session.Snapshot
//	@Router		/sessions/{id}/postal-code [put]
func (h *SessionHandler) InputPostalCode(c *gin.Context) {
	var in TextInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusAccepted, s.InputPostalCode(in.Text))
}

// SelectBaseAddress handles POST /sessions/:id/base-address
//
//	@Summary	Choose a postal code candidate
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"session id"
//	@Param		input	body		CandidateIndex	true	"candidate index"
//	@Success	200		{object}	session.Snapshot
//	@Failure	400		{object}	map[string]string
//	@Router		/sessions/{id}/base-address [post]
func (h *SessionHandler) SelectBaseAddress(c *gin.Context) {
	var in CandidateIndex
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.SelectBaseAddress(*in.Index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ResetBaseAddress handles DELETE /sessions/:id/base-address
//
//	@Summary	Back to postal code candidates
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"session id"
//	@Success	200	{object}	session.Snapshot
//	@Router		/sessions/{id}/base-address [delete]
func (h *SessionHandler) ResetBaseAddress(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.ResetBaseAddress())
}

// ResolveAddress handles POST /sessions/:id/address
//
//	@Summary	Resolve the base address plus detail
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"session id"
//	@Param		input	body		DetailInput	true	"detail and building"
//	@Success	200		{object}	session.Snapshot
//	@Failure	409		{object}	map[string]string
//	@Failure	422		{object}	map[string]string
//	@Failure	502		{object}	map[string]string
//	@Router		/sessions/{id}/address [post]
func (h *SessionHandler) ResolveAddress(c *gin.Context) {
	var in DetailInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.ResolveAddress(c.Request.Context(), in.Detail, in.Building)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ResolveManual handles POST /sessions/:id/address/manual
//
//	@Summary	Resolve a free-typed address
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"session id"
//	@Param		input	body		ManualAddressInput	true	"address and building"
//	@Success	200		{object}	session.Snapshot
//	@Failure	400		{object}	map[string]string
//	@Failure	422		{object}	map[string]string
//	@Failure	502		{object}	map[string]string
//	@Router		/sessions/{id}/address/manual [post]
func (h *SessionHandler) ResolveManual(c *gin.Context) {
	var in ManualAddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.ResolveManual(c.Request.Context(), in.Address, in.Building)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// FetchNearby handles POST /sessions/:id/stations/nearby
//
//	@Summary	Refresh nearby station candidates
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"session id"
//	@Success	200	{object}	session.Snapshot
//	@Failure	409	{object}	map[string]string
//	@Failure	502	{object}	map[string]string
//	@Router		/sessions/{id}/stations/nearby [post]
func (h *SessionHandler) FetchNearby(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.FetchNearby(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// InputKeyword handles PUT /sessions/:id/station-keyword
//
//	@Summary	Type into the station search field
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"session id"
//	@Param		input	body		TextInput	true	"field text"
//	@Success	202		{object}	session.Snapshot
//	@Router		/sessions/{id}/station-keyword [put]
func (h *SessionHandler) InputKeyword(c *gin.Context) {
	var in TextInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusAccepted, s.InputKeyword(in.Text))
}

// SelectMain handles POST /sessions/:id/main
//
//	@Summary	Choose the main station
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"session id"
//	@Param		input	body		StationRef	true	"station"
//	@Success	200		{object}	session.Snapshot
//	@Failure	404		{object}	map[string]string
//	@Router		/sessions/{id}/main [post]
func (h *SessionHandler) SelectMain(c *gin.Context) {
	var in StationRef
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.SelectMain(in.StationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// AddSub handles POST /sessions/:id/subs
//
//	@Summary	Add a sub station
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"session id"
//	@Param		input	body		StationRef	true	"station"
//	@Success	200		{object}	session.Snapshot
//	@Failure	404		{object}	map[string]string
//	@Failure	409		{object}	map[string]string
//	@Router		/sessions/{id}/subs [post]
func (h *SessionHandler) AddSub(c *gin.Context) {
	var in StationRef
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.AddSub(in.StationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// RemoveSub handles DELETE /sessions/:id/subs/:stationId
//
//	@Summary	Remove a sub station
//	@Tags		sessions
//	@Produce	json
//	@Param		id			path		string	true	"session id"
//	@Param		stationId	path		int		true	"station id"
//	@Success	200			{object}	session.Snapshot
//	@Failure	400			{object}	map[string]string
//	@Router		/sessions/{id}/subs/{stationId} [delete]
func (h *SessionHandler) RemoveSub(c *gin.Context) {
	stationID, err := strconv.ParseInt(c.Param("stationId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid station id"})
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.RemoveSub(stationID))
}

// ResetStations handles POST /sessions/:id/stations/reset
//
//	@Summary	Clear the station assignment
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"session id"
//	@Success	200	{object}	session.Snapshot
//	@Failure	502	{object}	map[string]string
//	@Router		/sessions/{id}/stations/reset [post]
func (h *SessionHandler) ResetStations(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := s.ResetStations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Addable handles GET /sessions/:id/stations/addable
//
//	@Summary	Candidates not yet chosen
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"session id"
//	@Success	200	{array}		models.GroupedStationCandidate
//	@Router		/sessions/{id}/stations/addable [get]
func (h *SessionHandler) Addable(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Addable())
}

// Submission handles GET /sessions/:id/submission
//
//	@Summary	Location fields for the shop form
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"session id"
//	@Success	200	{object}	models.Submission
//	@Failure	422	{object}	map[string]string
//	@Router		/sessions/{id}/submission [get]
func (h *SessionHandler) Submission(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	sub, err := s.Submission()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
