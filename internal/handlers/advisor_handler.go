package handlers

import (
	"net/http"

	"registration-service/internal/models"
	"registration-service/internal/services"
	"registration-service/utils"

	"github.com/gin-gonic/gin"
)

type AdvisorHandler struct {
	AdvisorService services.IAdvisorService
}

func NewAdvisorHandler(advisorService services.IAdvisorService) *AdvisorHandler {
	return &AdvisorHandler{
		AdvisorService: advisorService,
	}
}

func (h *AdvisorHandler) RegisterRoutes(router *gin.Engine) {
	advisorGrPub := router.Group("/registration/public/api/v1/advisor")
	advisorGrPub.POST("/ask", h.Ask)
}

func (h *AdvisorHandler) Ask(c *gin.Context) {
	var req models.AskAdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	answer, err := h.AdvisorService.Ask(c.Request.Context(), req.Question)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(answer))
}
