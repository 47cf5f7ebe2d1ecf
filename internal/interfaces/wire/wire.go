// Package wire builds repositories and use cases over one database handle.
// Both the HTTP server and the CLI batch commands start from here.
package wire

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	allocationusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/allocation/usecases"
	clientusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/client/usecases"
	modelusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/devicemodel/usecases"
	equipmentusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/equipment/usecases"
	ledgerusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/ledger/usecases"
	reconcileusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/reconcile/usecases"
	stockusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/stock/usecases"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/client"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/devicemodel"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/cache"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/repository"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/config"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/db"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

const redisPingTimeout = 3 * time.Second

// Repositories holds every repository over the same *gorm.DB.
type Repositories struct {
	Equipment equipment.Repository
	Notes     equipment.NoteRepository
	Ledger    ledger.Repository
	Clients   client.Repository
	Models    devicemodel.Repository
}

func NewRepositories(gdb *gorm.DB, log logger.Interface) *Repositories {
	return &Repositories{
		Equipment: repository.NewEquipmentRepository(gdb, log.Named("equipment_repository")),
		Notes:     repository.NewEquipmentNoteRepository(gdb, log.Named("equipment_note_repository")),
		Ledger:    repository.NewOperationRepository(gdb, log.Named("operation_repository")),
		Clients:   repository.NewClientRepository(gdb, log.Named("client_repository")),
		Models:    repository.NewDeviceModelRepository(gdb, log.Named("device_model_repository")),
	}
}

// UseCases is every operation the transports can call.
type UseCases struct {
	Intake   *allocationusecases.IntakeUseCase
	Dispatch *allocationusecases.DispatchUseCase
	Return   *allocationusecases.ReturnUseCase

	GetEquipment    *equipmentusecases.GetEquipmentUseCase
	ListEquipment   *equipmentusecases.ListEquipmentUseCase
	DeleteEquipment *equipmentusecases.DeleteEquipmentUseCase
	Override        *equipmentusecases.AdministrativeOverrideUseCase
	AddNote         *equipmentusecases.AddNoteUseCase
	ListNotes       *equipmentusecases.ListNotesUseCase

	UpsertClient *clientusecases.UpsertClientUseCase
	FindClient   *clientusecases.FindClientUseCase
	ListClients  *clientusecases.ListClientsUseCase

	FindOrCreateModel *modelusecases.FindOrCreateModelUseCase
	ListModels        *modelusecases.ListModelsUseCase
	SeedModels        *modelusecases.SeedModelsUseCase

	ListOperations   *ledgerusecases.ListOperationsUseCase
	GetOperation     *ledgerusecases.GetOperationUseCase
	EquipmentHistory *ledgerusecases.EquipmentHistoryUseCase

	StockSummary *stockusecases.StockSummaryUseCase

	ReconcileClients *reconcileusecases.ReconcileClientsUseCase
	ImportEquipment  *reconcileusecases.ImportEquipmentUseCase
}

// NewUseCases wires the use cases. stockCache may be nil.
func NewUseCases(gdb *gorm.DB, stockCache cache.StockSummaryCache, inventory config.InventoryConfig, log logger.Interface) *UseCases {
	repos := NewRepositories(gdb, log)
	txMgr := db.NewTransactionManager(gdb)

	intake := allocationusecases.NewIntakeUseCase(repos.Equipment, repos.Notes, repos.Ledger, repos.Models, txMgr, stockCache, log.Named("intake")).
		WithTagGenerator(vo.RandomTagGenerator(inventory.AssetTagPrefix))
	upsertClient := clientusecases.NewUpsertClientUseCase(repos.Clients, log.Named("upsert_client"))
	findOrCreateModel := modelusecases.NewFindOrCreateModelUseCase(repos.Models, log.Named("find_or_create_model"))

	return &UseCases{
		Intake:   intake,
		Dispatch: allocationusecases.NewDispatchUseCase(repos.Equipment, repos.Clients, repos.Ledger, txMgr, stockCache, log.Named("dispatch")),
		Return:   allocationusecases.NewReturnUseCase(repos.Equipment, repos.Ledger, txMgr, stockCache, log.Named("return")),

		GetEquipment:    equipmentusecases.NewGetEquipmentUseCase(repos.Equipment, log),
		ListEquipment:   equipmentusecases.NewListEquipmentUseCase(repos.Equipment, log),
		DeleteEquipment: equipmentusecases.NewDeleteEquipmentUseCase(repos.Equipment, repos.Notes, repos.Ledger, txMgr, stockCache, log.Named("delete_equipment")),
		Override:        equipmentusecases.NewAdministrativeOverrideUseCase(repos.Equipment, stockCache, log.Named("administrative_override")),
		AddNote:         equipmentusecases.NewAddNoteUseCase(repos.Equipment, repos.Notes, log),
		ListNotes:       equipmentusecases.NewListNotesUseCase(repos.Equipment, repos.Notes, log),

		UpsertClient: upsertClient,
		FindClient:   clientusecases.NewFindClientUseCase(repos.Clients, log),
		ListClients:  clientusecases.NewListClientsUseCase(repos.Clients, log),

		FindOrCreateModel: findOrCreateModel,
		ListModels:        modelusecases.NewListModelsUseCase(repos.Models, log),
		SeedModels:        modelusecases.NewSeedModelsUseCase(findOrCreateModel, txMgr, log.Named("seed_models")),

		ListOperations:   ledgerusecases.NewListOperationsUseCase(repos.Ledger, log),
		GetOperation:     ledgerusecases.NewGetOperationUseCase(repos.Ledger, log),
		EquipmentHistory: ledgerusecases.NewEquipmentHistoryUseCase(repos.Equipment, repos.Ledger, log),

		StockSummary: stockusecases.NewStockSummaryUseCase(repos.Equipment, stockCache, log.Named("stock_summary")),

		ReconcileClients: reconcileusecases.NewReconcileClientsUseCase(upsertClient, repos.Equipment, txMgr, stockCache, log.Named("reconcile_clients")),
		ImportEquipment:  reconcileusecases.NewImportEquipmentUseCase(intake, findOrCreateModel, repos.Equipment, repos.Notes, txMgr, stockCache, log.Named("import_equipment")),
	}
}

// NewRedisClient connects when redis is enabled and returns nil otherwise.
func NewRedisClient(cfg config.RedisConfig, log logger.Interface) (*redis.Client, error) {
	if !cfg.Enabled {
		log.Infow("redis disabled, stock summary cache is off")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	log.Infow("redis connection established", "addr", cfg.GetAddr())
	return client, nil
}

// NewStockCache returns nil when client is nil so use cases skip caching.
func NewStockCache(client *redis.Client, inventory config.InventoryConfig, log logger.Interface) cache.StockSummaryCache {
	if client == nil {
		return nil
	}
	ttl := time.Duration(inventory.SummaryCacheTTLSeconds) * time.Second
	return cache.NewRedisStockSummaryCache(client, ttl, log.Named("stock_summary_cache"))
}
