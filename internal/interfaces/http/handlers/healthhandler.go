package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tiffin-inc/tiffin/internal/shared/utils"
)

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthCheck pings every backing service
// @Summary Health check
// @Description Report the reachability of the database and, when enabled, Redis
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse{data=HealthResponse}
// @Failure 503 {object} utils.APIResponse{data=HealthResponse}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	c.JSON(status, utils.APIResponse{Success: status == http.StatusOK, Data: resp})
}
