package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/cricket-scoring-service/internal/service"
)

// Register mounts every public route on r. metrics may be nil when the exporter is disabled.
func Register(r *gin.Engine, repo Pinger, matchSvc service.MatchService, statsSvc service.StatsService, metrics http.Handler) {
	h := NewHealthHandler(repo)

	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewMatchHandler(matchSvc).Register(api)
		NewStatsHandler(statsSvc).Register(api)
	}
}
