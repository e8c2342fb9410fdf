package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phillipDoubleU/showdex/internal/constants"
	"github.com/phillipDoubleU/showdex/internal/version"
)

// Routes mounts every API endpoint under /api.
func Routes(router *gin.Engine, h *SimulationHandler) {
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteMoves, h.ListMoves)
		apiRoutes.GET("/history", h.ListHistory)
		apiRoutes.GET(constants.RouteVersion, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"version": version.Version,
				"commit":  version.Commit,
				"date":    version.Date,
			})
		})

		apiRoutes.POST(constants.RouteSimulations, h.CreateSimulation)
		apiRoutes.GET(constants.RouteSimByID, h.GetSimulation)
		apiRoutes.POST(constants.RouteSimActions, h.SelectAction)
		apiRoutes.POST(constants.RouteSimExecute, h.ExecuteTurn)
		apiRoutes.POST(constants.RouteSimAdvance, h.AdvanceTurn)
		apiRoutes.POST(constants.RouteSimDecision, h.ResolveDecision)
		apiRoutes.DELETE(constants.RouteSimByID, h.DeleteSimulation)
		apiRoutes.GET(constants.RouteSimStream, h.StreamSimulation)
	}
}
