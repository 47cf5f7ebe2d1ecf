package dto

import (
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/client"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/mapper"
)

type ClientDTO struct {
	ID          uint      `json:"id"`
	Code        string    `json:"client_code"`
	Name        string    `json:"name"`
	CNPJ        *string   `json:"cnpj"`
	ContactName *string   `json:"contact_name"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email"`
	Address     *string   `json:"address"`
	City        *string   `json:"city"`
	State       *string   `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToClientDTO(c *client.Client) *ClientDTO {
	if c == nil {
		return nil
	}
	return &ClientDTO{
		ID:          c.ID(),
		Code:        c.Code(),
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

func ToClientDTOList(clients []*client.Client) []*ClientDTO {
	return mapper.MapSlice(clients, ToClientDTO)
}
