package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phillipDoubleU/showdex/internal/constants"
)

// ListMoves returns the move dex, optionally filtered by format.
func (h *SimulationHandler) ListMoves(c *gin.Context) {
	moves, err := h.repo.ListMoves(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedListMoves})
		return
	}
	c.JSON(http.StatusOK, gin.H{"moves": moves})
}

// ListHistory returns recent simulation summaries.
func (h *SimulationHandler) ListHistory(c *gin.Context) {
	summaries, err := h.repo.ListSummaries(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": summaries})
}
