package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	allocationusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/allocation/usecases"
	ledgerusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/ledger/usecases"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/http/middleware"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/utils"
)

// OperationHandler serves the ledger: dispatch and return write it, the
// rest read it.
type OperationHandler struct {
	dispatchUC allocationusecases.DispatchExecutor
	returnUC   allocationusecases.ReturnExecutor
	listUC     ledgerusecases.ListOperationsExecutor
	getUC      ledgerusecases.GetOperationExecutor
	logger     logger.Interface
}

func NewOperationHandler(
	dispatchUC allocationusecases.DispatchExecutor,
	returnUC allocationusecases.ReturnExecutor,
	listUC ledgerusecases.ListOperationsExecutor,
	getUC ledgerusecases.GetOperationExecutor,
	logger logger.Interface,
) *OperationHandler {
	return &OperationHandler{
		dispatchUC: dispatchUC,
		returnUC:   returnUC,
		listUC:     listUC,
		getUC:      getUC,
		logger:     logger,
	}
}

type NewClientRequest struct {
	ClientCode  string `json:"client_code"`
	Name        string `json:"name"`
	CNPJ        string `json:"cnpj"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
}

type DispatchRequest struct {
	EquipmentIDs  []uint            `json:"equipment_ids" binding:"required"`
	ClientID      uint              `json:"client_id"`
	NewClient     *NewClientRequest `json:"new_client"`
	OperationDate *time.Time        `json:"operation_date"`
	Notes         string            `json:"notes"`
}

type ReturnItemRequest struct {
	EquipmentID uint   `json:"equipment_id" binding:"required"`
	Power       bool   `json:"accessories_power"`
	HDMI        bool   `json:"accessories_hdmi"`
	Remote      bool   `json:"accessories_remote"`
	Condition   string `json:"condition_after_return"`
	Remarks     string `json:"remarks"`
}

type ReturnRequest struct {
	Items         []ReturnItemRequest `json:"items" binding:"required,dive"`
	OperationDate *time.Time          `json:"operation_date"`
	Notes         string              `json:"notes"`
}

// Dispatch godoc
// @Summary Dispatch equipment
// @Description Allocate in-stock units to a client and record a SAIDA operation
// @Security ActorHeader
// @Tags operations
// @Accept json
// @Produce json
// @Param request body DispatchRequest true "Selection and client"
// @Success 201 {object} utils.APIResponse{data=allocationusecases.OperationResult} "Equipment dispatched successfully"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Client not found"
// @Failure 409 {object} utils.APIResponse "Selection no longer valid"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /operations/dispatch [post]
func (h *OperationHandler) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for dispatch", "error", err)
		utils.ErrorResponseWithError(c, bindingError(err))
		return
	}

	cmd := allocationusecases.DispatchCommand{
		Actor:         middleware.GetActor(c),
		EquipmentIDs:  req.EquipmentIDs,
		ClientID:      req.ClientID,
		OperationDate: req.OperationDate,
		Notes:         req.Notes,
	}
	if nc := req.NewClient; nc != nil {
		cmd.NewClient = &allocationusecases.NewClientInput{
			Code:        nc.ClientCode,
			Name:        nc.Name,
			CNPJ:        nc.CNPJ,
			ContactName: nc.ContactName,
			Phone:       nc.Phone,
			Email:       nc.Email,
			Address:     nc.Address,
			City:        nc.City,
			State:       nc.State,
		}
	}

	result, err := h.dispatchUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Equipment dispatched successfully")
}

// Return godoc
// @Summary Return equipment
// @Description Take units back from their client and record a RETORNO operation
// @Security ActorHeader
// @Tags operations
// @Accept json
// @Produce json
// @Param request body ReturnRequest true "Returned units with checklist"
// @Success 201 {object} utils.APIResponse{data=allocationusecases.OperationResult} "Equipment returned successfully"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 409 {object} utils.APIResponse "Selection no longer valid or mixed custodians"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /operations/return [post]
func (h *OperationHandler) Return(c *gin.Context) {
	var req ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for return", "error", err)
		utils.ErrorResponseWithError(c, bindingError(err))
		return
	}

	items := make([]allocationusecases.ReturnItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, allocationusecases.ReturnItem{
			EquipmentID: item.EquipmentID,
			Power:       item.Power,
			HDMI:        item.HDMI,
			Remote:      item.Remote,
			Condition:   item.Condition,
			Remarks:     item.Remarks,
		})
	}

	result, err := h.returnUC.Execute(c.Request.Context(), allocationusecases.ReturnCommand{
		Actor:         middleware.GetActor(c),
		Items:         items,
		OperationDate: req.OperationDate,
		Notes:         req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Equipment returned successfully")
}

// List godoc
// @Summary List operations
// @Security ActorHeader
// @Tags operations
// @Produce json
// @Param type query string false "Operation type" Enums(ENTRADA, SAIDA, RETORNO)
// @Param client_id query int false "Client ID"
// @Param equipment_id query int false "Equipment ID"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse} "Operation list"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /operations [get]
func (h *OperationHandler) List(c *gin.Context) {
	clientID, err := utils.ParseOptionalUintQuery(c, "client_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	equipmentID, err := utils.ParseOptionalUintQuery(c, "equipment_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	pagination := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), ledgerusecases.ListOperationsQuery{
		Type:        c.Query("type"),
		ClientID:    clientID,
		EquipmentID: equipmentID,
		From:        c.Query("from"),
		To:          c.Query("to"),
		Page:        pagination.Page,
		PageSize:    pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary Get operation by ID
// @Security ActorHeader
// @Tags operations
// @Produce json
// @Param id path int true "Operation ID"
// @Success 200 {object} utils.APIResponse{data=dto.OperationDTO} "Operation with items"
// @Failure 400 {object} utils.APIResponse "Invalid operation ID"
// @Failure 404 {object} utils.APIResponse "Operation not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /operations/{id} [get]
func (h *OperationHandler) Get(c *gin.Context) {
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
