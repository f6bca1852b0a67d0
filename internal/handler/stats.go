package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/cricket-scoring-service/internal/service"
	"github.com/maxviazov/cricket-scoring-service/pkg/response"
)

type StatsHandler struct {
	svc service.StatsService
}

func NewStatsHandler(svc service.StatsService) *StatsHandler { return &StatsHandler{svc: svc} }

func (h *StatsHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/stats")
	{
		g.GET("/players", h.listPlayers)
		g.GET("/players/:player_id", h.player)
		g.GET("/leaders/wickets", h.wicketLeader)
		g.GET("/leaders/centuries", h.centuryLeader)
		g.GET("/teams", h.listTeams)
		g.GET("/teams/:team_id", h.team)
	}
}

func (h *StatsHandler) player(c *gin.Context) {
	ps, err := h.svc.PlayerStats(c.Request.Context(), c.Param("player_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, ps)
}

func (h *StatsHandler) listPlayers(c *gin.Context) {
	res, err := h.svc.ListPlayers(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *StatsHandler) wicketLeader(c *gin.Context) {
	leader, err := h.svc.HighestWicketTaker(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, leader)
}

// centuryLeader requires ?format=T20|ODI|TEST.
func (h *StatsHandler) centuryLeader(c *gin.Context) {
	leader, err := h.svc.HighestCenturyScorer(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, leader)
}

func (h *StatsHandler) team(c *gin.Context) {
	ts, err := h.svc.TeamStats(c.Request.Context(), c.Param("team_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"stats": ts, "win_percentage": ts.WinPercentage()})
}

func (h *StatsHandler) listTeams(c *gin.Context) {
	res, err := h.svc.ListTeams(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
