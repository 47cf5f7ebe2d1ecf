package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/client/usecases"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/http/middleware"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/utils"
)

type ClientHandler struct {
	upsertUC usecases.UpsertClientExecutor
	findUC   usecases.FindClientExecutor
	listUC   usecases.ListClientsExecutor
	logger   logger.Interface
}

func NewClientHandler(
	upsertUC usecases.UpsertClientExecutor,
	findUC usecases.FindClientExecutor,
	listUC usecases.ListClientsExecutor,
	logger logger.Interface,
) *ClientHandler {
	return &ClientHandler{
		upsertUC: upsertUC,
		findUC:   findUC,
		listUC:   listUC,
		logger:   logger,
	}
}

type UpsertClientRequest struct {
	Name        string `json:"name" binding:"required"`
	CNPJ        string `json:"cnpj"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
}

// Upsert godoc
// @Summary Create or update client
// @Description Create the client with the path code or update its profile
// @Security ActorHeader
// @Tags clients
// @Accept json
// @Produce json
// @Param code path string true "Client code"
// @Param request body UpsertClientRequest true "Client profile"
// @Success 201 {object} utils.APIResponse{data=dto.ClientDTO} "Client created successfully"
// @Success 200 {object} utils.APIResponse{data=dto.ClientDTO} "Client updated successfully"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /clients/{code} [put]
func (h *ClientHandler) Upsert(c *gin.Context) {
	var req UpsertClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for upsert client", "client_code", c.Param("code"), "error", err)
		utils.ErrorResponseWithError(c, bindingError(err))
		return
	}

	result, err := h.upsertUC.Execute(c.Request.Context(), usecases.UpsertClientCommand{
		Actor:       middleware.GetActor(c),
		Code:        c.Param("code"),
		Name:        req.Name,
		CNPJ:        req.CNPJ,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Created {
		utils.CreatedResponse(c, result, "Client created successfully")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Client updated successfully", result)
}

// Get godoc
// @Summary Get client by code
// @Security ActorHeader
// @Tags clients
// @Produce json
// @Param code path string true "Client code"
// @Success 200 {object} utils.APIResponse{data=dto.ClientDTO} "Client details"
// @Failure 404 {object} utils.APIResponse "Client not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /clients/{code} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	result, err := h.findUC.Execute(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List godoc
// @Summary List clients
// @Security ActorHeader
// @Tags clients
// @Produce json
// @Param search query string false "Code or name fragment"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse} "Client list"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListClientsQuery{
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
