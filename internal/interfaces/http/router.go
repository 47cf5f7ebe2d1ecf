package http

import (
	"github.com/gin-gonic/gin"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/http/handlers"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/http/middleware"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/wire"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

// maxUploadMemory bounds the in-memory part of batch file uploads.
const maxUploadMemory = 16 << 20

// Router represents the HTTP router configuration
type Router struct {
	engine           *gin.Engine
	log              logger.Interface
	actorMiddleware  *middleware.ActorMiddleware
	healthHandler    *handlers.HealthHandler
	equipmentHandler *handlers.EquipmentHandler
	operationHandler *handlers.OperationHandler
	clientHandler    *handlers.ClientHandler
	modelHandler     *handlers.DeviceModelHandler
	stockHandler     *handlers.StockHandler
	reconcileHandler *handlers.ReconcileHandler
	allowedOrigins   []string
	uploadLimiter    *middleware.RateLimiter
}

// NewRouter creates the router over the wired use cases.
func NewRouter(ucs *wire.UseCases, db handlers.Pinger, log logger.Interface) *Router {
	engine := gin.New()
	engine.MaxMultipartMemory = maxUploadMemory

	return &Router{
		engine:          engine,
		log:             log,
		actorMiddleware: middleware.NewActorMiddleware(log),
		healthHandler:   handlers.NewHealthHandler(db, log),
		equipmentHandler: handlers.NewEquipmentHandler(
			ucs.Intake, ucs.GetEquipment, ucs.ListEquipment, ucs.DeleteEquipment,
			ucs.Override, ucs.AddNote, ucs.ListNotes, ucs.EquipmentHistory, log,
		),
		operationHandler: handlers.NewOperationHandler(ucs.Dispatch, ucs.Return, ucs.ListOperations, ucs.GetOperation, log),
		clientHandler:    handlers.NewClientHandler(ucs.UpsertClient, ucs.FindClient, ucs.ListClients, log),
		modelHandler:     handlers.NewDeviceModelHandler(ucs.FindOrCreateModel, ucs.ListModels, log),
		stockHandler:     handlers.NewStockHandler(ucs.StockSummary),
		reconcileHandler: handlers.NewReconcileHandler(ucs.ReconcileClients, ucs.ImportEquipment, log),
	}
}

// WithAllowedOrigins enables CORS for the listed frontend origins.
func (r *Router) WithAllowedOrigins(origins []string) *Router {
	r.allowedOrigins = origins
	return r
}

// WithUploadRateLimit throttles the batch upload endpoints.
func (r *Router) WithUploadRateLimit(limiter *middleware.RateLimiter) *Router {
	r.uploadLimiter = limiter
	return r
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	r.engine.GET("/health", r.healthHandler.HealthCheck)

	api := r.engine.Group("/api/v1")
	api.Use(r.actorMiddleware.Identify())

	api.GET("/stock/summary", r.stockHandler.Summary)

	equipment := api.Group("/equipment")
	{
		equipment.POST("", r.equipmentHandler.Intake)
		equipment.GET("", r.equipmentHandler.List)
		equipment.GET("/:id", r.equipmentHandler.Get)
		equipment.DELETE("/:id", r.equipmentHandler.Delete)
		equipment.PATCH("/:id/status", r.equipmentHandler.UpdateStatus)
		equipment.GET("/:id/notes", r.equipmentHandler.ListNotes)
		equipment.POST("/:id/notes", r.equipmentHandler.AddNote)
		equipment.GET("/:id/history", r.equipmentHandler.History)
	}

	operations := api.Group("/operations")
	{
		operations.POST("/dispatch", r.operationHandler.Dispatch)
		operations.POST("/return", r.operationHandler.Return)
		operations.GET("", r.operationHandler.List)
		operations.GET("/:id", r.operationHandler.Get)
	}

	clients := api.Group("/clients")
	{
		clients.GET("", r.clientHandler.List)
		clients.GET("/:code", r.clientHandler.Get)
		clients.PUT("/:code", r.clientHandler.Upsert)
	}

	models := api.Group("/models")
	{
		models.GET("", r.modelHandler.List)
		models.POST("", r.modelHandler.Create)
	}

	reconcile := api.Group("/reconcile")
	if r.uploadLimiter != nil {
		reconcile.Use(r.uploadLimiter.Limit())
	}
	{
		reconcile.POST("/clients", r.reconcileHandler.Clients)
		reconcile.POST("/equipment", r.reconcileHandler.Equipment)
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
