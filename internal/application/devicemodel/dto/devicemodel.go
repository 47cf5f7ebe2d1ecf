package dto

import (
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/devicemodel"
)

type DeviceModelDTO struct {
	ID          uint      `json:"id"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand"`
	ModelName   string    `json:"model_name"`
	MonitorSize *int      `json:"monitor_size,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToDeviceModelDTO(m *devicemodel.DeviceModel) *DeviceModelDTO {
	if m == nil {
		return nil
	}
	return &DeviceModelDTO{
		ID:          m.ID(),
		Category:    string(m.Category()),
		Brand:       m.Brand(),
		ModelName:   m.ModelName(),
		MonitorSize: m.MonitorSize(),
		IsActive:    m.IsActive(),
		CreatedAt:   m.CreatedAt(),
	}
}

func ToDeviceModelDTOList(models []*devicemodel.DeviceModel) []*DeviceModelDTO {
	out := make([]*DeviceModelDTO, 0, len(models))
	for _, m := range models {
		out = append(out, ToDeviceModelDTO(m))
	}
	return out
}
