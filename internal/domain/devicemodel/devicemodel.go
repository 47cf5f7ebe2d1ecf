package devicemodel

import (
	"fmt"
	"strings"
	"time"
)

// Category groups catalog entries.
type Category string

const (
	CategoryAndroidBox Category = "android_box"
	CategoryMonitor    Category = "monitor"
	CategoryOther      Category = "outro"
)

func NewCategory(value string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(value)))
	switch c {
	case CategoryAndroidBox, CategoryMonitor, CategoryOther:
		return c, nil
	case "":
		return CategoryAndroidBox, nil
	}
	return "", fmt.Errorf("invalid model category: %s", value)
}

// GuessCategory classifies free-text model names from batch files.
func GuessCategory(raw string) Category {
	if strings.Contains(strings.ToLower(raw), "monitor") {
		return CategoryMonitor
	}
	return CategoryAndroidBox
}

// SplitName splits "<brand> <model name>". A single word is used for both.
func SplitName(raw string) (brand, model string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("model name is required")
	}
	parts := strings.Fields(raw)
	if len(parts) == 1 {
		return parts[0], parts[0], nil
	}
	return parts[0], strings.Join(parts[1:], " "), nil
}

// DeviceModel is a catalog entry referenced by equipment.
type DeviceModel struct {
	id          uint
	category    Category
	brand       string
	modelName   string
	monitorSize *int
	isActive    bool
	createdAt   time.Time
}

func NewDeviceModel(category Category, brand, modelName string, monitorSize *int, now time.Time) (*DeviceModel, error) {
	brand = strings.TrimSpace(brand)
	modelName = strings.TrimSpace(modelName)
	if brand == "" || modelName == "" {
		return nil, fmt.Errorf("brand and model name are required")
	}
	if monitorSize != nil && *monitorSize <= 0 {
		return nil, fmt.Errorf("monitor size must be positive")
	}
	return &DeviceModel{
		category:    category,
		brand:       brand,
		modelName:   modelName,
		monitorSize: monitorSize,
		isActive:    true,
		createdAt:   now,
	}, nil
}

func ReconstructDeviceModel(id uint, category Category, brand, modelName string, monitorSize *int, isActive bool, createdAt time.Time) *DeviceModel {
	return &DeviceModel{
		id:          id,
		category:    category,
		brand:       brand,
		modelName:   modelName,
		monitorSize: monitorSize,
		isActive:    isActive,
		createdAt:   createdAt,
	}
}

func (m *DeviceModel) ID() uint             { return m.id }
func (m *DeviceModel) Category() Category   { return m.category }
func (m *DeviceModel) Brand() string        { return m.brand }
func (m *DeviceModel) ModelName() string    { return m.modelName }
func (m *DeviceModel) MonitorSize() *int    { return m.monitorSize }
func (m *DeviceModel) IsActive() bool       { return m.isActive }
func (m *DeviceModel) CreatedAt() time.Time { return m.createdAt }

func (m *DeviceModel) SetID(id uint) {
	m.id = id
}

func (m *DeviceModel) Deactivate() {
	m.isActive = false
}

// DisplayName is "<brand> <model>".
func (m *DeviceModel) DisplayName() string {
	return m.brand + " " + m.modelName
}
