package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/devicemodel/usecases"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/http/middleware"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/utils"
)

type DeviceModelHandler struct {
	findOrCreateUC usecases.FindOrCreateModelExecutor
	listUC         usecases.ListModelsExecutor
	logger         logger.Interface
}

func NewDeviceModelHandler(
	findOrCreateUC usecases.FindOrCreateModelExecutor,
	listUC usecases.ListModelsExecutor,
	logger logger.Interface,
) *DeviceModelHandler {
	return &DeviceModelHandler{
		findOrCreateUC: findOrCreateUC,
		listUC:         listUC,
		logger:         logger,
	}
}

type CreateModelRequest struct {
	Category    string `json:"category"`
	Brand       string `json:"brand" binding:"required"`
	ModelName   string `json:"model_name" binding:"required"`
	MonitorSize *int   `json:"monitor_size"`
}

// Create godoc
// @Summary Register device model
// @Description Return the existing catalog entry for brand and model name, or create it
// @Security ActorHeader
// @Tags models
// @Accept json
// @Produce json
// @Param request body CreateModelRequest true "Model data"
// @Success 201 {object} utils.APIResponse{data=dto.DeviceModelDTO} "Model created"
// @Success 200 {object} utils.APIResponse{data=dto.DeviceModelDTO} "Model already registered"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /models [post]
func (h *DeviceModelHandler) Create(c *gin.Context) {
	if !middleware.GetActor(c).IsKnown() {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("an authenticated actor is required"))
		return
	}

	var req CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create model", "error", err)
		utils.ErrorResponseWithError(c, bindingError(err))
		return
	}

	result, err := h.findOrCreateUC.Execute(c.Request.Context(), usecases.FindOrCreateModelCommand{
		Category:    req.Category,
		Brand:       req.Brand,
		ModelName:   req.ModelName,
		MonitorSize: req.MonitorSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Created {
		utils.CreatedResponse(c, result.Model, "Model created successfully")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Model already registered", result.Model)
}

// List godoc
// @Summary List device models
// @Security ActorHeader
// @Tags models
// @Produce json
// @Param active query bool false "Only active models"
// @Success 200 {object} utils.APIResponse{data=[]dto.DeviceModelDTO} "Model catalog"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /models [get]
func (h *DeviceModelHandler) List(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
