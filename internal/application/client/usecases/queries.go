package usecases

import (
	"context"
	"strings"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/client/dto"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/client"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/query"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/services/sanitize"
)

type FindClientUseCase struct {
	clientRepo client.Repository
	logger     logger.Interface
}

func NewFindClientUseCase(clientRepo client.Repository, logger logger.Interface) *FindClientUseCase {
	return &FindClientUseCase{clientRepo: clientRepo, logger: logger}
}

// Execute looks a client up by code. A missing client is a NotFound error.
func (uc *FindClientUseCase) Execute(ctx context.Context, code string) (*dto.ClientDTO, error) {
	code = sanitize.Identifier(code)
	if code == "" {
		return nil, errors.NewValidationError("client_code is required")
	}

	c, err := uc.clientRepo.FindByCode(ctx, code)
	if err != nil {
		uc.logger.Errorw("failed to find client", "client_code", code, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to find client")
	}
	if c == nil {
		return nil, errors.NewNotFoundError("client not found", code)
	}
	return dto.ToClientDTO(c), nil
}

type ListClientsQuery struct {
	Search   string
	Page     int
	PageSize int
}

type ListClientsResult struct {
	Items    []*dto.ClientDTO `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type ListClientsUseCase struct {
	clientRepo client.Repository
	logger     logger.Interface
}

func NewListClientsUseCase(clientRepo client.Repository, logger logger.Interface) *ListClientsUseCase {
	return &ListClientsUseCase{clientRepo: clientRepo, logger: logger}
}

func (uc *ListClientsUseCase) Execute(ctx context.Context, q ListClientsQuery) (*ListClientsResult, error) {
	filter := client.ListFilter{
		PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
		Search:     strings.TrimSpace(q.Search),
	}

	clients, total, err := uc.clientRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list clients", "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to list clients")
	}

	return &ListClientsResult{
		Items:    dto.ToClientDTOList(clients),
		Total:    total,
		Page:     max(q.Page, 1),
		PageSize: filter.Limit(),
	}, nil
}
