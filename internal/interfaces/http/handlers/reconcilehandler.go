package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/reconcile/usecases"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/batchsource"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/http/middleware"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/utils"
)

// ReconcileHandler accepts CSV or XLSX uploads in the multipart field "file".
// ?dry_run=true runs the batch and rolls it back.
type ReconcileHandler struct {
	clientsUC   usecases.ReconcileClientsExecutor
	equipmentUC usecases.ImportEquipmentExecutor
	logger      logger.Interface
}

func NewReconcileHandler(
	clientsUC usecases.ReconcileClientsExecutor,
	equipmentUC usecases.ImportEquipmentExecutor,
	logger logger.Interface,
) *ReconcileHandler {
	return &ReconcileHandler{
		clientsUC:   clientsUC,
		equipmentUC: equipmentUC,
		logger:      logger,
	}
}

// Clients godoc
// @Summary Reconcile clients
// @Description Upsert clients from a CSV or XLSX sheet and allocate in-stock units by count
// @Security ActorHeader
// @Tags reconcile
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX sheet"
// @Param dry_run query bool false "Roll back and only report"
// @Success 200 {object} utils.APIResponse{data=usecases.BatchReport} "Client batch processed"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 429 {object} utils.APIResponse "Too many uploads"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /reconcile/clients [post]
func (h *ReconcileHandler) Clients(c *gin.Context) {
	records, err := h.readUpload(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	report, err := h.clientsUC.Execute(c.Request.Context(), usecases.ReconcileClientsCommand{
		Actor:  middleware.GetActor(c),
		Rows:   usecases.ClientRowsFromRecords(records),
		DryRun: parseDryRun(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Client batch processed", report)
}

// Equipment godoc
// @Summary Import equipment
// @Description Create or update equipment from a CSV or XLSX sheet
// @Security ActorHeader
// @Tags reconcile
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX sheet"
// @Param dry_run query bool false "Roll back and only report"
// @Success 200 {object} utils.APIResponse{data=usecases.ImportReport} "Equipment batch processed"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 429 {object} utils.APIResponse "Too many uploads"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /reconcile/equipment [post]
func (h *ReconcileHandler) Equipment(c *gin.Context) {
	records, err := h.readUpload(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := usecases.RequireEquipmentColumns(records); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	report, err := h.equipmentUC.Execute(c.Request.Context(), usecases.ImportEquipmentCommand{
		Actor:  middleware.GetActor(c),
		Rows:   usecases.EquipmentRowsFromRecords(records),
		DryRun: parseDryRun(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment batch processed", report)
}

func (h *ReconcileHandler) readUpload(c *gin.Context) ([]batchsource.Record, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, errors.NewValidationError("file is required", err.Error())
	}

	f, err := header.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded batch file", "filename", header.Filename, "error", err)
		return nil, errors.NewInternalError("failed to read uploaded file")
	}
	defer f.Close()

	records, err := batchsource.Read(header.Filename, f)
	if err != nil {
		h.logger.Warnw("rejecting unreadable batch file", "filename", header.Filename, "error", err)
		return nil, errors.NewValidationError("unreadable batch file", err.Error())
	}
	return records, nil
}

func parseDryRun(c *gin.Context) bool {
	dryRun, _ := strconv.ParseBool(c.Query("dry_run"))
	return dryRun
}
