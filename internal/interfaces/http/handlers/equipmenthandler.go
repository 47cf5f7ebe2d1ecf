package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	allocationusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/allocation/usecases"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/equipment/usecases"
	ledgerusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/ledger/usecases"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/http/middleware"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/utils"
)

type EquipmentHandler struct {
	intakeUC    allocationusecases.IntakeExecutor
	getUC       usecases.GetEquipmentExecutor
	listUC      usecases.ListEquipmentExecutor
	deleteUC    usecases.DeleteEquipmentExecutor
	overrideUC  usecases.AdministrativeOverrideExecutor
	addNoteUC   usecases.AddNoteExecutor
	listNotesUC usecases.ListNotesExecutor
	historyUC   ledgerusecases.EquipmentHistoryExecutor
	logger      logger.Interface
}

func NewEquipmentHandler(
	intakeUC allocationusecases.IntakeExecutor,
	getUC usecases.GetEquipmentExecutor,
	listUC usecases.ListEquipmentExecutor,
	deleteUC usecases.DeleteEquipmentExecutor,
	overrideUC usecases.AdministrativeOverrideExecutor,
	addNoteUC usecases.AddNoteExecutor,
	listNotesUC usecases.ListNotesExecutor,
	historyUC ledgerusecases.EquipmentHistoryExecutor,
	logger logger.Interface,
) *EquipmentHandler {
	return &EquipmentHandler{
		intakeUC:    intakeUC,
		getUC:       getUC,
		listUC:      listUC,
		deleteUC:    deleteUC,
		overrideUC:  overrideUC,
		addNoteUC:   addNoteUC,
		listNotesUC: listNotesUC,
		historyUC:   historyUC,
		logger:      logger,
	}
}

type TechnicalDetailsRequest struct {
	PlayerID       string `json:"player_id"`
	PlayerLegacyID string `json:"player_legacy_id"`
	OSVersion      string `json:"os_version"`
	AppVersion     string `json:"app_version"`
	Location       string `json:"location"`
	Unlinked       bool   `json:"unlinked"`
}

type IntakeRequest struct {
	AssetTag     string                  `json:"asset_tag"`
	SerialNumber string                  `json:"serial_number"`
	ModelID      uint                    `json:"model_id" binding:"required"`
	MACAddress   string                  `json:"mac_address"`
	Condition    string                  `json:"condition"`
	EntryDate    string                  `json:"entry_date"`
	Batch        string                  `json:"batch"`
	Notes        string                  `json:"notes"`
	Discarded    bool                    `json:"discarded"`
	Technical    TechnicalDetailsRequest `json:"technical"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// Intake godoc
// @Summary Register equipment
// @Description Register a unit in stock together with its ENTRADA operation
// @Security ActorHeader
// @Tags equipment
// @Accept json
// @Produce json
// @Param request body IntakeRequest true "Equipment data"
// @Success 201 {object} utils.APIResponse{data=allocationusecases.IntakeResult} "Equipment registered successfully"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Model not found"
// @Failure 409 {object} utils.APIResponse "Asset tag already registered"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /equipment [post]
func (h *EquipmentHandler) Intake(c *gin.Context) {
	var req IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for intake", "error", err)
		utils.ErrorResponseWithError(c, bindingError(err))
		return
	}

	result, err := h.intakeUC.Execute(c.Request.Context(), allocationusecases.IntakeCommand{
		Actor:        middleware.GetActor(c),
		AssetTag:     req.AssetTag,
		SerialNumber: req.SerialNumber,
		ModelID:      req.ModelID,
		MACAddress:   req.MACAddress,
		Condition:    req.Condition,
		EntryDate:    req.EntryDate,
		Batch:        req.Batch,
		Notes:        req.Notes,
		Discarded:    req.Discarded,
		Technical: allocationusecases.TechnicalDetails{
			PlayerID:       req.Technical.PlayerID,
			PlayerLegacyID: req.Technical.PlayerLegacyID,
			OSVersion:      req.Technical.OSVersion,
			AppVersion:     req.Technical.AppVersion,
			Location:       req.Technical.Location,
			Unlinked:       req.Technical.Unlinked,
		},
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Equipment registered successfully")
}

// List godoc
// @Summary List equipment
// @Security ActorHeader
// @Tags equipment
// @Produce json
// @Param status query string false "Status filter" Enums(em_estoque, alocado, manutencao, baixado)
// @Param client_id query int false "Custodian client ID"
// @Param model_id query int false "Device model ID"
// @Param search query string false "Asset tag, serial or MAC fragment"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse} "Equipment list"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /equipment [get]
func (h *EquipmentHandler) List(c *gin.Context) {
	clientID, err := utils.ParseOptionalUintQuery(c, "client_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	modelID, err := utils.ParseOptionalUintQuery(c, "model_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	pagination := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListEquipmentQuery{
		Status:   c.Query("status"),
		ClientID: clientID,
		ModelID:  modelID,
		Search:   c.Query("search"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary Get equipment by ID
// @Security ActorHeader
// @Tags equipment
// @Produce json
// @Param id path int true "Equipment ID"
// @Success 200 {object} utils.APIResponse{data=dto.EquipmentDTO} "Equipment details"
// @Failure 400 {object} utils.APIResponse "Invalid equipment ID"
// @Failure 404 {object} utils.APIResponse "Equipment not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /equipment/{id} [get]
func (h *EquipmentHandler) Get(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Delete godoc
// @Summary Delete equipment
// @Description Delete a unit with its operation items and notes. Irreversible
// @Security ActorHeader
// @Tags equipment
// @Produce json
// @Param id path int true "Equipment ID"
// @Success 200 {object} utils.APIResponse{data=usecases.DeleteEquipmentResult} "Equipment deleted successfully"
// @Failure 400 {object} utils.APIResponse "Invalid equipment ID"
// @Failure 403 {object} utils.APIResponse "Forbidden - Requires admin role"
// @Failure 404 {object} utils.APIResponse "Equipment not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /equipment/{id} [delete]
func (h *EquipmentHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteEquipmentCommand{
		Actor:       middleware.GetActor(c),
		EquipmentID: id,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment deleted successfully", result)
}

// UpdateStatus godoc
// @Summary Override equipment status
// @Description Administrative status correction outside the allocation flow
// @Security ActorHeader
// @Tags equipment
// @Accept json
// @Produce json
// @Param id path int true "Equipment ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse{data=dto.EquipmentDTO} "Equipment status updated successfully"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 403 {object} utils.APIResponse "Forbidden - Requires admin or gestor role"
// @Failure 404 {object} utils.APIResponse "Equipment not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /equipment/{id}/status [patch]
func (h *EquipmentHandler) UpdateStatus(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for status override", "equipment_id", id, "error", err)
		utils.ErrorResponseWithError(c, bindingError(err))
		return
	}

	result, err := h.overrideUC.Execute(c.Request.Context(), usecases.AdministrativeOverrideCommand{
		Actor:       middleware.GetActor(c),
		EquipmentID: id,
		Status:      req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment status updated successfully", result)
}

// AddNote godoc
// @Summary Add equipment note
// @Security ActorHeader
// @Tags equipment
// @Accept json
// @Produce json
// @Param id path int true "Equipment ID"
// @Param request body AddNoteRequest true "Note text"
// @Success 201 {object} utils.APIResponse{data=dto.NoteDTO} "Note added successfully"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Equipment not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /equipment/{id}/notes [post]
func (h *EquipmentHandler) AddNote(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, bindingError(err))
		return
	}

	result, err := h.addNoteUC.Execute(c.Request.Context(), usecases.AddNoteCommand{
		Actor:       middleware.GetActor(c),
		EquipmentID: id,
		Text:        req.Note,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Note added successfully")
}

// ListNotes godoc
// @Summary List equipment notes
// @Description Notes for one unit, newest first
// @Security ActorHeader
// @Tags equipment
// @Produce json
// @Param id path int true "Equipment ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.NoteDTO} "Notes"
// @Failure 400 {object} utils.APIResponse "Invalid equipment ID"
// @Failure 404 {object} utils.APIResponse "Equipment not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /equipment/{id}/notes [get]
func (h *EquipmentHandler) ListNotes(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listNotesUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// History godoc
// @Summary Equipment history
// @Description Operations the unit took part in, newest first
// @Security ActorHeader
// @Tags equipment
// @Produce json
// @Param id path int true "Equipment ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.OperationDTO} "Operations"
// @Failure 400 {object} utils.APIResponse "Invalid equipment ID"
// @Failure 404 {object} utils.APIResponse "Equipment not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /equipment/{id}/history [get]
func (h *EquipmentHandler) History(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.historyUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
