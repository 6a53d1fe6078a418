package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status            string  `json:"status"`
	Sessions          int     `json:"sessions"`
	CatalogAgeSeconds float64 `json:"catalogAgeSeconds,omitempty"`
}

// Health godoc
// @Summary Health check
// @Description Report service status and the number of open converter sessions
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (c *Controller) Health(ctx *gin.Context) {
	resp := HealthResponse{
		Status:   "ok",
		Sessions: c.sessions.Len(),
	}
	if c.catalogAge != nil {
		if age, ok := c.catalogAge(); ok {
			resp.CatalogAgeSeconds = age.Seconds()
		}
	}
	ctx.JSON(http.StatusOK, resp)
}
