package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"registration-service/internal/models"
	"registration-service/internal/services"
	"registration-service/internal/wizard"
	"registration-service/utils"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	RegistrationService services.IRegistrationService
	Middleware          *Middleware
}

func NewRegistrationHandler(registrationService services.IRegistrationService, middleware *Middleware) *RegistrationHandler {
	return &RegistrationHandler{
		RegistrationService: registrationService,
		Middleware:          middleware,
	}
}

func (h *RegistrationHandler) RegisterRoutes(router *gin.Engine) {
	registrationGrPub := router.Group("/registration/public/api/v1")
	registrationGrPub.GET("/ping", h.Ping)
	registrationGrPub.GET("/options", h.GetOptions)
	registrationGrPub.POST("/sessions", h.StartSession)

	registrationGrPro := router.Group("/registration/protected/api/v1")

	sessionGr := registrationGrPro.Group("/sessions/:session_id", h.Middleware.RequireSessionToken("session_id"))
	sessionGr.GET("", h.GetSession)
	sessionGr.PATCH("/fields", h.UpdateField)
	sessionGr.POST("/select", h.SelectOption)
	sessionGr.POST("/farms", h.AddFarm)
	sessionGr.DELETE("/farms/:farm", h.RemoveFarm)
	sessionGr.POST("/farms/:farm/crops", h.AddCrop)
	sessionGr.DELETE("/farms/:farm/crops/:crop_id", h.RemoveCrop)
	sessionGr.POST("/advance", h.Advance)
	sessionGr.POST("/retreat", h.Retreat)

	registrationGrPro.GET("/registrations/:registration_id",
		h.Middleware.RequireSessionToken("registration_id"), h.GetRegistration)
}

func (h *RegistrationHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (h *RegistrationHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(h.RegistrationService.Options()))
}

func (h *RegistrationHandler) StartSession(c *gin.Context) {
	resp, err := h.RegistrationService.StartSession(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(resp))
}

func (h *RegistrationHandler) GetSession(c *gin.Context) {
	view, err := h.RegistrationService.GetSession(c.Request.Context(), sessionIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(view))
}

func (h *RegistrationHandler) UpdateField(c *gin.Context) {
	var req models.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	req = utils.TrimAllStringFields(req)

	view, err := h.RegistrationService.UpdateField(c.Request.Context(), sessionIDFrom(c), req.Target(), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(view))
}

func (h *RegistrationHandler) SelectOption(c *gin.Context) {
	var req models.SelectOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	req = utils.TrimAllStringFields(req)

	view, err := h.RegistrationService.Select(c.Request.Context(), sessionIDFrom(c), req.Target(), req.Option)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(view))
}

func (h *RegistrationHandler) AddFarm(c *gin.Context) {
	resp, err := h.RegistrationService.AddFarm(c.Request.Context(), sessionIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(resp))
}

func (h *RegistrationHandler) RemoveFarm(c *gin.Context) {
	resp, err := h.RegistrationService.RemoveFarm(c.Request.Context(), sessionIDFrom(c), c.Param("farm"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(resp))
}

func (h *RegistrationHandler) AddCrop(c *gin.Context) {
	farmIndex, ok := farmIndexParam(c)
	if !ok {
		return
	}

	resp, err := h.RegistrationService.AddCrop(c.Request.Context(), sessionIDFrom(c), farmIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(resp))
}

func (h *RegistrationHandler) RemoveCrop(c *gin.Context) {
	farmIndex, ok := farmIndexParam(c)
	if !ok {
		return
	}

	resp, err := h.RegistrationService.RemoveCrop(c.Request.Context(), sessionIDFrom(c), farmIndex, c.Param("crop_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(resp))
}

// Advance answers 422 for a blocked step and 502 for a failed submission; in
// both cases the session is unchanged apart from the attempt counter. A
// submission already under way is 409 SUBMISSION_IN_PROGRESS.
func (h *RegistrationHandler) Advance(c *gin.Context) {
	resp, err := h.RegistrationService.Advance(c.Request.Context(), sessionIDFrom(c))
	if err != nil {
		if errors.Is(err, wizard.ErrSubmissionFailed) {
			c.JSON(http.StatusBadGateway, utils.CreateDetailedErrorResponse(
				"SUBMISSION_FAILED", "registration could not be submitted, please retry", resp))
			return
		}
		respondError(c, err)
		return
	}

	if blocked := resp.Transition.Blocked; blocked != nil {
		c.JSON(http.StatusUnprocessableEntity, utils.CreateDetailedErrorResponse(
			"VALIDATION_ERROR", blocked.Message, blocked))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(resp))
}

func (h *RegistrationHandler) Retreat(c *gin.Context) {
	resp, err := h.RegistrationService.Retreat(c.Request.Context(), sessionIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(resp))
}

func (h *RegistrationHandler) GetRegistration(c *gin.Context) {
	payload, err := h.RegistrationService.GetRegistration(c.Request.Context(), sessionIDFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(payload))
}

// farmIndexParam reads :farm as a position. Removing a farm uses the same
// segment as a farm id; gin allows one wildcard name per segment.
func farmIndexParam(c *gin.Context) (int, bool) {
	farmIndex, err := strconv.Atoi(c.Param("farm"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST", "farm index must be an integer"))
		return 0, false
	}
	return farmIndex, true
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_REQUEST", err.Error()))
}

func respondError(c *gin.Context, err error) {
	errorCode, httpStatus := MapErrorToHTTPStatus(err)
	message := err.Error()
	if httpStatus == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(httpStatus, utils.CreateErrorResponse(errorCode, message))
}
