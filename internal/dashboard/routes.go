package dashboard

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portworks/craneview/internal/livesync"
	"github.com/portworks/craneview/internal/metrics"
	"github.com/portworks/craneview/internal/store"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, st *store.Store, views *livesync.Registry) {
	staticFS, _ := fs.Sub(assetsFS, "assets")
	router.StaticFS("/static", http.FS(staticFS))

	router.GET("/", handleIndex())

	api := router.Group("/api")
	api.GET("/summary", handleSnapshot(views, livesync.ViewFleet))
	api.GET("/trend", handleSnapshot(views, livesync.ViewTrend))
	api.GET("/delays", handleSnapshot(views, livesync.ViewDelays))
	api.GET("/rankings", handleSnapshot(views, livesync.ViewRankings))
	api.GET("/operators", handleSnapshot(views, livesync.ViewOperators))
	api.GET("/vehicles", handleSnapshot(views, livesync.ViewVehicles))
	api.GET("/days", handleDaySummaries(st))
	api.GET("/events", handleSSE(views))
}

// handleDaySummaries serves per-operator day summaries for a date range.
// Unlike the live views this queries the store per request, since the range
// is caller-chosen.
func handleDaySummaries(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := c.Query("start")
		end := c.DefaultQuery("end", start)
		if start == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start date required"})
			return
		}

		var operatorIDs []string
		if op := c.Query("operator"); op != "" {
			operatorIDs = []string{op}
		}

		ctx := c.Request.Context()
		logs, err := st.LiftLogsInRange(ctx, start, end, operatorIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		delays, err := st.DelaysInRange(ctx, start, end, operatorIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, metrics.DaySummaries(logs, delays))
	}
}

func handleIndex() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "layout.html", gin.H{
			"page": "board",
		})
	}
}

// handleSnapshot serves the current published snapshot of one view. Before
// the first recompute completes there is nothing to serve yet.
func handleSnapshot(views *livesync.Registry, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := views.Get(name)
		if v == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown view"})
			return
		}
		snap := v.Snapshot()
		if snap == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot not ready"})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}
