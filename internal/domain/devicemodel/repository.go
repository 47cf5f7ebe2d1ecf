package devicemodel

import "context"

// Repository persists catalog entries. Find methods return (nil, nil) when absent.
type Repository interface {
	Create(ctx context.Context, m *DeviceModel) error
	FindByID(ctx context.Context, id uint) (*DeviceModel, error)
	FindByName(ctx context.Context, brand, modelName string) (*DeviceModel, error)
	List(ctx context.Context, activeOnly bool) ([]*DeviceModel, error)
}
