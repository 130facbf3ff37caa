package controllers

import (
	"net/http"

	"github.com/Prakash-Shridharan/handshake/internal/config"
	"github.com/Prakash-Shridharan/handshake/internal/dtos"
	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

type HealthController struct {
	cfg *config.Config
}

func NewHealthController(cfg *config.Config) *HealthController {
	return &HealthController{cfg: cfg}
}

// GET /health
func (c *HealthController) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthResponse{
		Status:  "ok",
		AppName: c.cfg.AppName,
	})
}
