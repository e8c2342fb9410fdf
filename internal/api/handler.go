package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/phillipDoubleU/showdex/internal/battle"
	"github.com/phillipDoubleU/showdex/internal/constants"
	"github.com/phillipDoubleU/showdex/internal/session"
	"github.com/phillipDoubleU/showdex/internal/storage"
)

// SimulationHandler groups all simulation-related HTTP handlers.
type SimulationHandler struct {
	mgr    *session.Manager
	repo   storage.Repository
	stream *StreamHub
}

// NewSimulationHandler creates a handler around the session manager and
// repository.
func NewSimulationHandler(mgr *session.Manager, repo storage.Repository) *SimulationHandler {
	return &SimulationHandler{mgr: mgr, repo: repo, stream: NewStreamHub()}
}

// StartRequest carries the live snapshot a new session copies from.
type StartRequest struct {
	Snapshot *battle.Snapshot `json:"snapshot"`
}

// ActionRequest selects one side's move for the upcoming turn.
type ActionRequest struct {
	Side battle.SideKey `json:"side"`
	Move string         `json:"move"`
}

// CreateSimulation starts a new session from a live snapshot.
func (h *SimulationHandler) CreateSimulation(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Snapshot == nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	s, err := h.mgr.Start(req.Snapshot)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{constants.JSONKeyBattleID: s.BattleID, "state": s.State()})
}

// GetSimulation returns the full session view.
func (h *SimulationHandler) GetSimulation(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.State())
}

// SelectAction stores one side's chosen move.
func (h *SimulationHandler) SelectAction(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Move == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := s.SelectAction(req.Side, req.Move); err != nil {
		h.writeSessionError(c, err)
		return
	}
	h.broadcast(s)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "action stored", "state": s.State()})
}

// ExecuteTurn runs the orchestrated turn for the pending selections.
func (h *SimulationHandler) ExecuteTurn(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	result, err := s.Execute()
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	h.broadcast(s)
	c.JSON(http.StatusOK, gin.H{"result": result, "pending": s.PendingCount()})
}

// AdvanceTurn commits the resolved turn into history.
func (h *SimulationHandler) AdvanceTurn(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := s.Advance(); err != nil {
		h.writeSessionError(c, err)
		return
	}
	h.broadcast(s)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "turn committed", "turn": s.Turn()})
}

// ResolveDecision answers one pending decision.
func (h *SimulationHandler) ResolveDecision(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	var res battle.DecisionResolution
	if err := c.ShouldBindJSON(&res); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := s.ResolveDecision(index, res); err != nil {
		h.writeSessionError(c, err)
		return
	}
	h.broadcast(s)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "decision resolved", "pending": s.PendingCount()})
}

// DeleteSimulation resets and discards the session.
func (h *SimulationHandler) DeleteSimulation(c *gin.Context) {
	id := c.Param("battleId")
	if err := h.mgr.Remove(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
		return
	}
	h.stream.Close(id)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "simulation discarded"})
}

func (h *SimulationHandler) lookup(c *gin.Context) (*session.Session, bool) {
	id := c.Param("battleId")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return nil, false
	}
	s, err := h.mgr.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
		return nil, false
	}
	return s, true
}

func (h *SimulationHandler) writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrDecisionsPending):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrDecisionsPending})
	case errors.Is(err, session.ErrActionsIncomplete):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrActionsIncomplete})
	case errors.Is(err, session.ErrInvalidSide):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidSide})
	case errors.Is(err, session.ErrDecisionOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrDecisionOutOfRange})
	case errors.Is(err, session.ErrInvalidStateTransition), errors.Is(err, session.ErrSessionInactive):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrInvalidTransition})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: err.Error()})
	}
}

func (h *SimulationHandler) broadcast(s *session.Session) {
	h.stream.Broadcast(s.BattleID, s.State())
}
