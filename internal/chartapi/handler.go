package chartapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"musiccharts/internal/charts"
)

// Handler serves the analytical views to the visualization layer.
// Everything here is read-only; the store is written by the scrape cycle
// alone.
type Handler struct {
	Repo *charts.Repo
}

func NewHandler(repo *charts.Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/latest", h.latest)                // GET /charts/latest?region=us
	rg.GET("/changes/daily", h.dailyChanges)   // GET /charts/changes/daily?region=us&all=1
	rg.GET("/changes/weekly", h.weeklyChanges) // GET /charts/changes/weekly?region=us&all=1
	rg.GET("/dates", h.dates)
	rg.GET("/regions", h.regions)
	rg.GET("/history/:region/:songID", h.songHistory)
}

func (h *Handler) latest(c *gin.Context) {
	rows, err := h.Repo.LatestChart(c.Request.Context(), c.Query("region"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "latest chart failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(rows), "items": rows})
}

// Rank-change endpoints default to the latest date only; pass all=1 for
// the full history.
func (h *Handler) dailyChanges(c *gin.Context) {
	latestOnly := c.Query("all") == ""
	rows, err := h.Repo.DailyChanges(c.Request.Context(), c.Query("region"), latestOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "daily changes failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(rows), "items": rows})
}

func (h *Handler) weeklyChanges(c *gin.Context) {
	latestOnly := c.Query("all") == ""
	rows, err := h.Repo.WeeklyChanges(c.Request.Context(), c.Query("region"), latestOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "weekly changes failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(rows), "items": rows})
}

func (h *Handler) dates(c *gin.Context) {
	dates, err := h.Repo.Dates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dates failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(dates), "items": dates})
}

func (h *Handler) regions(c *gin.Context) {
	regions, err := h.Repo.Regions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "regions failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(regions), "items": regions})
}

func (h *Handler) songHistory(c *gin.Context) {
	platform := c.DefaultQuery("platform", "AppleMusic")
	entries, err := h.Repo.SongHistory(c.Request.Context(), platform, c.Param("region"), c.Param("songID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(entries), "items": entries})
}
