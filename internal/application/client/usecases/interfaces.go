package usecases

import (
	"context"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/client/dto"
)

type UpsertClientExecutor interface {
	Execute(ctx context.Context, cmd UpsertClientCommand) (*UpsertClientResult, error)
}

type FindClientExecutor interface {
	Execute(ctx context.Context, code string) (*dto.ClientDTO, error)
}

type ListClientsExecutor interface {
	Execute(ctx context.Context, q ListClientsQuery) (*ListClientsResult, error)
}

var (
	_ UpsertClientExecutor = (*UpsertClientUseCase)(nil)
	_ FindClientExecutor   = (*FindClientUseCase)(nil)
	_ ListClientsExecutor  = (*ListClientsUseCase)(nil)
)
