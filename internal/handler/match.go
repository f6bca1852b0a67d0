package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
	"github.com/maxviazov/cricket-scoring-service/internal/repository"
	"github.com/maxviazov/cricket-scoring-service/internal/service"
	"github.com/maxviazov/cricket-scoring-service/pkg/response"
)

type MatchHandler struct {
	svc service.MatchService
}

func NewMatchHandler(svc service.MatchService) *MatchHandler { return &MatchHandler{svc: svc} }

func (h *MatchHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/matches")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:match_id", h.get)
		g.POST("/:match_id/start", h.start)
		g.POST("/:match_id/balls", h.addBall)
		g.POST("/:match_id/end", h.end)
		g.POST("/:match_id/abandon", h.abandon)
		g.POST("/:match_id/days", h.advanceDay)
		g.GET("/:match_id/deliveries", h.deliveries)
		g.GET("/:match_id/commentary", h.commentary)
	}
}

func (h *MatchHandler) create(c *gin.Context) {
	var req service.CreateMatchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, model.ErrInvalidInput)
		return
	}
	m, err := h.svc.CreateMatch(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, m)
}

func (h *MatchHandler) list(c *gin.Context) {
	res, err := h.svc.ListMatches(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *MatchHandler) get(c *gin.Context) {
	m, err := h.svc.GetMatch(c.Request.Context(), c.Param("match_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, m)
}

func (h *MatchHandler) addBall(c *gin.Context) {
	var req service.BallInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, model.ErrInvalidInput)
		return
	}
	m, err := h.svc.AddBall(c.Request.Context(), c.Param("match_id"), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, m)
}

func (h *MatchHandler) start(c *gin.Context) {
	h.transition(c, h.svc.StartMatch)
}

func (h *MatchHandler) end(c *gin.Context) {
	h.transition(c, h.svc.EndMatch)
}

func (h *MatchHandler) abandon(c *gin.Context) {
	h.transition(c, h.svc.AbandonMatch)
}

func (h *MatchHandler) advanceDay(c *gin.Context) {
	h.transition(c, h.svc.AdvanceDay)
}

func (h *MatchHandler) transition(c *gin.Context, fn func(ctx context.Context, id string) (model.MatchSummary, error)) {
	m, err := fn(c.Request.Context(), c.Param("match_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, m)
}

func (h *MatchHandler) deliveries(c *gin.Context) {
	recs, err := h.svc.Deliveries(c.Request.Context(), c.Param("match_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"items": recs, "total": len(recs)})
}

func (h *MatchHandler) commentary(c *gin.Context) {
	lines, err := h.svc.Commentary(c.Request.Context(), c.Param("match_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	current := ""
	if len(lines) > 0 {
		current = lines[len(lines)-1]
	}
	response.WriteData(c, http.StatusOK, gin.H{"current": current, "lines": lines})
}

// pageFromQuery reads limit/offset; junk values fall back to the defaults.
func pageFromQuery(c *gin.Context) repository.Page {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return repository.Page{Limit: limit, Offset: offset}.Normalize()
}
