package mappers

import (
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/devicemodel"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/models"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/mapper"
)

type DeviceModelMapper interface {
	ToModel(m *devicemodel.DeviceModel) *models.DeviceModelModel
	ToDomain(model *models.DeviceModelModel) *devicemodel.DeviceModel
	ToDomainList(models []*models.DeviceModelModel) []*devicemodel.DeviceModel
}

type DeviceModelMapperImpl struct{}

func NewDeviceModelMapper() DeviceModelMapper {
	return &DeviceModelMapperImpl{}
}

func (m *DeviceModelMapperImpl) ToModel(d *devicemodel.DeviceModel) *models.DeviceModelModel {
	return &models.DeviceModelModel{
		ID:          d.ID(),
		Category:    string(d.Category()),
		Brand:       d.Brand(),
		ModelName:   d.ModelName(),
		MonitorSize: d.MonitorSize(),
		IsActive:    d.IsActive(),
		CreatedAt:   d.CreatedAt(),
	}
}

func (m *DeviceModelMapperImpl) ToDomain(model *models.DeviceModelModel) *devicemodel.DeviceModel {
	if model == nil {
		return nil
	}
	return devicemodel.ReconstructDeviceModel(
		model.ID,
		devicemodel.Category(model.Category),
		model.Brand,
		model.ModelName,
		model.MonitorSize,
		model.IsActive,
		model.CreatedAt,
	)
}

func (m *DeviceModelMapperImpl) ToDomainList(rows []*models.DeviceModelModel) []*devicemodel.DeviceModel {
	return mapper.MapSlice(rows, m.ToDomain)
}
