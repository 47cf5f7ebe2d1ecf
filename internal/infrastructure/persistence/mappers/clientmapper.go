package mappers

import (
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/client"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/models"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/mapper"
)

// ClientMapper handles the conversion between client entities and persistence models.
type ClientMapper interface {
	ToModel(c *client.Client) *models.ClientModel
	ToDomain(model *models.ClientModel) *client.Client
	ToDomainList(models []*models.ClientModel) []*client.Client
}

type ClientMapperImpl struct{}

func NewClientMapper() ClientMapper {
	return &ClientMapperImpl{}
}

func (m *ClientMapperImpl) ToModel(c *client.Client) *models.ClientModel {
	return &models.ClientModel{
		ID:          c.ID(),
		ClientCode:  c.Code(),
		Name:        c.Name(),
		CNPJ:        c.CNPJ(),
		ContactName: c.ContactName(),
		Phone:       c.Phone(),
		Email:       c.Email(),
		Address:     c.Address(),
		City:        c.City(),
		State:       c.State(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func (m *ClientMapperImpl) ToDomain(model *models.ClientModel) *client.Client {
	if model == nil {
		return nil
	}
	return client.ReconstructClient(
		model.ID,
		model.ClientCode,
		model.Name,
		model.CNPJ,
		model.ContactName,
		model.Phone,
		model.Email,
		model.Address,
		model.City,
		model.State,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ClientMapperImpl) ToDomainList(rows []*models.ClientModel) []*client.Client {
	return mapper.MapSlice(rows, m.ToDomain)
}
