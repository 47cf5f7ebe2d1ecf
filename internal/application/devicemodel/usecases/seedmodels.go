package usecases

import (
	"bytes"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/db"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

// CatalogEntry is one model in a seed file.
type CatalogEntry struct {
	Category    string `yaml:"category"`
	Brand       string `yaml:"brand"`
	Model       string `yaml:"model"`
	MonitorSize *int   `yaml:"monitor_size,omitempty"`
}

// Catalog is the seed file layout:
//
//	models:
//	  - category: android_box
//	    brand: Aquario
//	    model: STV-2000
type Catalog struct {
	Models []CatalogEntry `yaml:"models"`
}

// ParseCatalog decodes a YAML seed file. Unknown keys are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return nil, errors.NewValidationError("invalid model catalog", err.Error())
	}
	if len(catalog.Models) == 0 {
		return nil, errors.NewValidationError("model catalog is empty")
	}
	return &catalog, nil
}

type SeedModelsResult struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
}

// SeedModelsUseCase loads a catalog in one transaction. Entries already
// present are left untouched.
type SeedModelsUseCase struct {
	findOrCreate *FindOrCreateModelUseCase
	txMgr        *db.TransactionManager
	logger       logger.Interface
}

func NewSeedModelsUseCase(findOrCreate *FindOrCreateModelUseCase, txMgr *db.TransactionManager, logger logger.Interface) *SeedModelsUseCase {
	return &SeedModelsUseCase{
		findOrCreate: findOrCreate,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func (uc *SeedModelsUseCase) Execute(ctx context.Context, catalog *Catalog) (*SeedModelsResult, error) {
	uc.logger.Infow("seeding device model catalog", "entries", len(catalog.Models))

	result := &SeedModelsResult{}
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		for i, entry := range catalog.Models {
			out, err := uc.findOrCreate.Execute(txCtx, FindOrCreateModelCommand{
				Category:    entry.Category,
				Brand:       entry.Brand,
				ModelName:   entry.Model,
				MonitorSize: entry.MonitorSize,
			})
			if err != nil {
				if appErr := errors.GetAppError(err); appErr != nil && appErr.Type == errors.ErrorTypeValidation {
					return errors.NewValidationError(fmt.Sprintf("catalog entry %d: %s", i+1, appErr.Message), appErr.Details)
				}
				return err
			}
			if out.Created {
				result.Created++
			} else {
				result.Existing++
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("device model seeding aborted", "error", err)
		return nil, err
	}

	uc.logger.Infow("device model catalog seeded", "created", result.Created, "existing", result.Existing)
	return result, nil
}
