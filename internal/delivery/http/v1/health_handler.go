package v1

import (
	"net/http"

	"easein-studio-backend/internal/delivery/http/response"
	"easein-studio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC domain.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	public.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health Check
// @Description  Reports mail transport, Redis and scanner status. Degraded still answers 200.
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /v1/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())
	message := "System operational"
	if status["status"] != "ok" {
		message = "System degraded"
	}
	response.Success(c, http.StatusOK, message, status)
}
