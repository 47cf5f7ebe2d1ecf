package usecases

import (
	"context"
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/client/dto"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/client"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/auth"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/biztime"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/services/sanitize"
)

// UpsertClientCommand creates the client when Code is unseen and updates it
// otherwise. Blank optional fields leave stored values untouched.
type UpsertClientCommand struct {
	Actor       auth.Actor
	Code        string
	Name        string
	CNPJ        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	City        string
	State       string
}

type UpsertClientResult struct {
	Client  *dto.ClientDTO `json:"client"`
	Created bool           `json:"created"`
}

type UpsertClientUseCase struct {
	clientRepo client.Repository
	now        func() time.Time
	logger     logger.Interface
}

func NewUpsertClientUseCase(clientRepo client.Repository, logger logger.Interface) *UpsertClientUseCase {
	return &UpsertClientUseCase{
		clientRepo: clientRepo,
		now:        biztime.NowUTC,
		logger:     logger,
	}
}

func (uc *UpsertClientUseCase) WithClock(now func() time.Time) *UpsertClientUseCase {
	uc.now = now
	return uc
}

// Execute joins the caller's transaction when ctx carries one.
func (uc *UpsertClientUseCase) Execute(ctx context.Context, cmd UpsertClientCommand) (*UpsertClientResult, error) {
	code := sanitize.Identifier(cmd.Code)
	name := sanitize.Text(cmd.Name)

	uc.logger.Infow("executing upsert client use case", "actor_id", cmd.Actor.ID, "client_code", code)

	if !cmd.Actor.IsKnown() {
		return nil, errors.NewForbiddenError("an authenticated actor is required")
	}
	if code == "" {
		return nil, errors.NewValidationError("missing required field", "client_code")
	}
	if name == "" {
		return nil, errors.NewValidationError("missing required field", "name")
	}

	profile := client.Profile{
		Name:        name,
		CNPJ:        sanitize.Optional(cmd.CNPJ),
		ContactName: sanitize.Optional(cmd.ContactName),
		Phone:       sanitize.Optional(cmd.Phone),
		Email:       sanitize.Optional(cmd.Email),
		Address:     sanitize.Optional(cmd.Address),
		City:        sanitize.Optional(cmd.City),
	}
	if state := sanitize.Identifier(cmd.State); state != "" {
		profile.State = &state
	}

	existing, err := uc.clientRepo.FindByCode(ctx, code)
	if err != nil {
		uc.logger.Errorw("failed to find client", "client_code", code, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to find client")
	}

	now := uc.now()
	if existing != nil {
		if err := existing.UpdateProfile(profile, now); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := uc.clientRepo.Update(ctx, existing); err != nil {
			uc.logger.Errorw("failed to update client", "client_code", code, "error", err)
			return nil, errors.AsPersistenceFailure(err, "failed to update client")
		}
		uc.logger.Infow("client updated", "client_id", existing.ID(), "client_code", code)
		return &UpsertClientResult{Client: dto.ToClientDTO(existing), Created: false}, nil
	}

	created, err := client.NewClient(code, profile, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.clientRepo.Create(ctx, created); err != nil {
		if errors.IsDuplicateError(err) {
			uc.logger.Warnw("client code already registered", "client_code", code)
			return nil, errors.NewConflictError("client code already registered", code)
		}
		uc.logger.Errorw("failed to create client", "client_code", code, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to create client")
	}

	uc.logger.Infow("client created", "client_id", created.ID(), "client_code", code)
	return &UpsertClientResult{Client: dto.ToClientDTO(created), Created: true}, nil
}
