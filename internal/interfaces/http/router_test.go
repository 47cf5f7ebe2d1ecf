package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/testutil"
	apphttp "github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/http"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/wire"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/config"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type okPinger struct{}

func (okPinger) PingContext(ctx context.Context) error { return nil }

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
}

func newAPI(t *testing.T) (*apiClient, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore(t)
	log := logger.NewDiscard()

	router := apphttp.NewRouter(wire.NewUseCases(store.DB, nil, config.InventoryConfig{}, log), okPinger{}, log)
	router.SetupRoutes()
	return &apiClient{t: t, engine: router.GetEngine()}, store
}

func (a *apiClient) do(method, path string, actorID uint, role string, body any) (int, envelope) {
	a.t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if actorID != 0 {
		req.Header.Set(constants.HeaderActorID, fmt.Sprint(actorID))
		req.Header.Set(constants.HeaderActorRole, role)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestRouter_HealthCheck(t *testing.T) {
	api, _ := newAPI(t)

	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_EquipmentLifecycle(t *testing.T) {
	api, store := newAPI(t)
	model := store.SeedModel(t, "Aquario", "STV-2000")

	code, env := api.do(http.MethodPost, "/api/v1/equipment", 7, constants.RoleOperador, map[string]any{
		"serial_number": "sn-001",
		"model_id":      model.ID(),
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	var intake struct {
		Equipment struct {
			ID       uint   `json:"id"`
			AssetTag string `json:"asset_tag"`
			Status   string `json:"status"`
		} `json:"equipment"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &intake))
	assert.Equal(t, "SN-001", intake.Equipment.AssetTag)
	assert.Equal(t, "em_estoque", intake.Equipment.Status)
	unitID := intake.Equipment.ID

	code, env = api.do(http.MethodPost, "/api/v1/operations/dispatch", 7, constants.RoleOperador, map[string]any{
		"equipment_ids": []uint{unitID},
		"new_client":    map[string]string{"client_code": "cli-1", "name": "Clinica Centro"},
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	unit := store.MustFind(t, unitID)
	assert.Equal(t, "alocado", string(unit.Status()))
	require.NotNil(t, unit.CurrentClientID())

	// A second dispatch of the same unit is stale.
	code, env = api.do(http.MethodPost, "/api/v1/operations/dispatch", 7, constants.RoleOperador, map[string]any{
		"equipment_ids": []uint{unitID},
		"client_id":     *unit.CurrentClientID(),
	})
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, env.Error)

	code, env = api.do(http.MethodPost, "/api/v1/operations/return", 7, constants.RoleOperador, map[string]any{
		"items": []map[string]any{{"equipment_id": unitID, "condition_after_return": "manutencao"}},
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	assert.Equal(t, "manutencao", string(store.MustFind(t, unitID).Status()))

	code, env = api.do(http.MethodGet, fmt.Sprintf("/api/v1/equipment/%d/history", unitID), 0, "", nil)
	require.Equal(t, http.StatusOK, code)
	var history []struct {
		OperationType string `json:"operation_type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	assert.Len(t, history, 3)

	store.AssertCustodyInvariant(t)
}

func TestRouter_AnonymousWritesAreForbidden(t *testing.T) {
	api, store := newAPI(t)
	model := store.SeedModel(t, "Aquario", "STV-2000")

	code, env := api.do(http.MethodPost, "/api/v1/equipment", 0, "", map[string]any{
		"serial_number": "sn-002",
		"model_id":      model.ID(),
	})
	assert.Equal(t, http.StatusForbidden, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, int64(0), store.OperationCount(t))
}

func TestRouter_OnlyAdminsDelete(t *testing.T) {
	api, store := newAPI(t)
	model := store.SeedModel(t, "Aquario", "STV-2000")
	ids := store.SeedUnits(t, model.ID(), "TAG-1")
	path := fmt.Sprintf("/api/v1/equipment/%d", ids[0])

	code, _ := api.do(http.MethodDelete, path, 8, constants.RoleGestor, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = api.do(http.MethodDelete, path, 9, constants.RoleAdmin, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodGet, path, 0, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_StockSummaryCountsByStatus(t *testing.T) {
	api, store := newAPI(t)
	model := store.SeedModel(t, "Aquario", "STV-2000")
	store.SeedUnits(t, model.ID(), "TAG-1", "TAG-2")

	code, env := api.do(http.MethodGet, "/api/v1/stock/summary", 0, "", nil)
	require.Equal(t, http.StatusOK, code)

	var summary struct {
		Counts map[string]int64 `json:"counts"`
		Total  int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, int64(2), summary.Counts["em_estoque"])
	assert.Equal(t, int64(2), summary.Total)
}

var routerAnnotation = regexp.MustCompile(`(?m)^// @Router (\S+) \[(\w+)\]$`)

func TestRouteAnnotationsMatchRegisteredRoutes(t *testing.T) {
	api, _ := newAPI(t)

	var registered []string
	for _, route := range api.engine.Routes() {
		path := strings.TrimPrefix(route.Path, "/api/v1")
		path = regexp.MustCompile(`:(\w+)`).ReplaceAllString(path, "{$1}")
		registered = append(registered, path+" "+strings.ToLower(route.Method))
	}

	files, err := filepath.Glob(filepath.Join("handlers", "*.go"))
	require.NoError(t, err)
	var documented []string
	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		src, err := os.ReadFile(file)
		require.NoError(t, err)
		for _, m := range routerAnnotation.FindAllStringSubmatch(string(src), -1) {
			documented = append(documented, m[1]+" "+m[2])
		}
	}

	assert.ElementsMatch(t, registered, documented)
}
