package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/client"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/mappers"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/models"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/db"
	apperrors "github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

// ClientRepositoryImpl implements the client.Repository interface.
type ClientRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ClientMapper
	logger logger.Interface
}

func NewClientRepository(db *gorm.DB, logger logger.Interface) client.Repository {
	return &ClientRepositoryImpl{
		db:     db,
		mapper: mappers.NewClientMapper(),
		logger: logger,
	}
}

func (r *ClientRepositoryImpl) Create(ctx context.Context, c *client.Client) error {
	model := r.mapper.ToModel(c)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("client code already registered", model.ClientCode)
		}
		r.logger.Errorw("failed to create client", "client_code", model.ClientCode, "error", err)
		return fmt.Errorf("failed to create client: %w", err)
	}

	if err := c.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set client ID: %w", err)
	}
	return nil
}

func (r *ClientRepositoryImpl) Update(ctx context.Context, c *client.Client) error {
	model := r.mapper.ToModel(c)

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.ClientModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":         model.Name,
			"cnpj":         model.CNPJ,
			"contact_name": model.ContactName,
			"phone":        model.Phone,
			"email":        model.Email,
			"address":      model.Address,
			"city":         model.City,
			"state":        model.State,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update client", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update client: %w", result.Error)
	}
	return nil
}

func (r *ClientRepositoryImpl) findOne(ctx context.Context, where string, arg any) (*client.Client, error) {
	var model models.ClientModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where(where, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get client", "where", where, "error", err)
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *ClientRepositoryImpl) FindByID(ctx context.Context, id uint) (*client.Client, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *ClientRepositoryImpl) FindByCode(ctx context.Context, code string) (*client.Client, error) {
	return r.findOne(ctx, "client_code = ?", code)
}

func (r *ClientRepositoryImpl) List(ctx context.Context, filter client.ListFilter) ([]*client.Client, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ClientModel{})

	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + s + "%"
		query = query.Where("client_code LIKE ? OR name LIKE ? OR cnpj LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count clients", "error", err)
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	var rows []*models.ClientModel
	if err := query.Order("name ASC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list clients", "error", err)
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return r.mapper.ToDomainList(rows), total, nil
}
