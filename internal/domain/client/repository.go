package client

import (
	"context"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/query"
)

// Repository persists clients. Find methods return (nil, nil) when absent.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Update(ctx context.Context, c *Client) error
	FindByID(ctx context.Context, id uint) (*Client, error)
	FindByCode(ctx context.Context, code string) (*Client, error)
	List(ctx context.Context, filter ListFilter) ([]*Client, int64, error)
}

// ListFilter matches Search against code, name and CNPJ.
type ListFilter struct {
	query.PageFilter
	Search string
}
