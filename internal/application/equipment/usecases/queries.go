package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/equipment/dto"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/query"
)

type GetEquipmentUseCase struct {
	equipmentRepo equipment.Repository
	logger        logger.Interface
}

func NewGetEquipmentUseCase(equipmentRepo equipment.Repository, logger logger.Interface) *GetEquipmentUseCase {
	return &GetEquipmentUseCase{equipmentRepo: equipmentRepo, logger: logger}
}

func (uc *GetEquipmentUseCase) Execute(ctx context.Context, id uint) (*dto.EquipmentDTO, error) {
	unit, err := uc.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get equipment", "equipment_id", id, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to get equipment")
	}
	if unit == nil {
		return nil, errors.NewNotFoundError("equipment not found", fmt.Sprintf("%d", id))
	}
	return dto.ToEquipmentDTO(unit), nil
}

// ListEquipmentQuery filters the registry. Status is optional and validated.
type ListEquipmentQuery struct {
	Status   string
	ClientID *uint
	ModelID  *uint
	Search   string
	Page     int
	PageSize int
}

type ListEquipmentResult struct {
	Items    []*dto.EquipmentDTO `json:"items"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

type ListEquipmentUseCase struct {
	equipmentRepo equipment.Repository
	logger        logger.Interface
}

func NewListEquipmentUseCase(equipmentRepo equipment.Repository, logger logger.Interface) *ListEquipmentUseCase {
	return &ListEquipmentUseCase{equipmentRepo: equipmentRepo, logger: logger}
}

func (uc *ListEquipmentUseCase) Execute(ctx context.Context, q ListEquipmentQuery) (*ListEquipmentResult, error) {
	filter := equipment.ListFilter{
		PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
		ClientID:   q.ClientID,
		ModelID:    q.ModelID,
		Search:     strings.TrimSpace(q.Search),
	}
	if strings.TrimSpace(q.Status) != "" {
		status, err := vo.NewEquipmentStatus(q.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	units, total, err := uc.equipmentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list equipment", "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to list equipment")
	}

	return &ListEquipmentResult{
		Items:    dto.ToEquipmentDTOList(units),
		Total:    total,
		Page:     max(q.Page, 1),
		PageSize: filter.Limit(),
	}, nil
}
