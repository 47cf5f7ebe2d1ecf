package utils

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestErrorResponseWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType string
	}{
		{"stale selection", errors.NewStaleSelectionError("selection changed"), http.StatusConflict, "stale_selection"},
		{"not found", errors.NewNotFoundError("equipment not found"), http.StatusNotFound, "not_found"},
		{"plain error hidden", stderrors.New("Error 1213: Deadlock found"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext("/")
			ErrorResponseWithError(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Error.Type)
			assert.NotContains(t, w.Body.String(), "Deadlock")
		})
	}
}

func TestListSuccessResponse(t *testing.T) {
	c, w := newContext("/")
	ListSuccessResponse(c, []int{1, 2}, 45, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data ListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(45), resp.Data.Total)
	assert.Equal(t, 3, resp.Data.TotalPages)
}

func TestParsePagination(t *testing.T) {
	c, _ := newContext("/equipment?page=3&page_size=500")
	p := ParsePagination(c)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.PageSize)

	c, _ = newContext("/equipment?page=-1&page_size=abc")
	p = ParsePagination(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
}

func TestParseParams(t *testing.T) {
	c, _ := newContext("/equipment/12?client_id=4&status=%20alocado%20")
	c.Params = gin.Params{{Key: "id", Value: "12"}}

	id, err := ParseUintParam(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	clientID, err := ParseOptionalUintQuery(c, "client_id")
	require.NoError(t, err)
	require.NotNil(t, clientID)
	assert.Equal(t, uint(4), *clientID)

	status := ParseOptionalStringQuery(c, "status")
	require.NotNil(t, status)
	assert.Equal(t, "alocado", *status)

	c.Params = gin.Params{{Key: "id", Value: "0"}}
	_, err = ParseUintParam(c, "id")
	assert.True(t, errors.IsValidationError(err))
}

type sampleRow struct {
	Code      string `json:"client_code" validate:"required,max=50"`
	Name      string `json:"name" validate:"required"`
	EntryDate string `json:"entry_date" validate:"isodate"`
	Count     int    `json:"total_telas" validate:"gte=0"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(sampleRow{Code: "C1", Name: "ACME", EntryDate: "2024-01-31"}))

	err := ValidateStruct(sampleRow{EntryDate: "31/01/2024", Count: -1})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, "client_code is required")
	assert.Contains(t, appErr.Details, "name is required")
	assert.Contains(t, appErr.Details, "entry_date must be a date in YYYY-MM-DD format")
	assert.Contains(t, appErr.Details, "total_telas must be greater than or equal to 0")
}

func TestSetDefaultPageSize(t *testing.T) {
	t.Cleanup(func() { SetDefaultPageSize(constants.DefaultPageSize) })

	SetDefaultPageSize(50)
	assert.Equal(t, 50, ValidatePagination(1, 0).PageSize)

	SetDefaultPageSize(0)
	assert.Equal(t, 50, DefaultPageSize(), "out of range values are ignored")

	SetDefaultPageSize(constants.MaxPageSize + 1)
	assert.Equal(t, 50, DefaultPageSize())
}
