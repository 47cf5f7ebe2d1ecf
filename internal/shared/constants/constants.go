package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP headers
	HeaderXRequestID = "X-Request-ID"
	HeaderActorID    = "X-Actor-ID"
	HeaderActorRole  = "X-Actor-Role"

	// Context keys
	ContextKeyActorID   = "actor_id"
	ContextKeyActorRole = "actor_role"

	// Roles supplied by the fronting auth collaborator
	RoleAdmin    = "admin"
	RoleGestor   = "gestor"
	RoleOperador = "operador"

	// Database table names
	TableEquipment       = "equipment"
	TableEquipmentModels = "equipment_models"
	TableClients         = "clients"
	TableOperations      = "equipment_operations"
	TableOperationItems  = "equipment_operation_items"
	TableEquipmentNotes  = "equipment_notes"

	// Default asset tag prefix for generated tags
	DefaultAssetTagPrefix = "TAG"

	// Ledger note attached to equipment created by batch import
	BatchImportOperationNote = "Importação massiva de equipamentos."
)
