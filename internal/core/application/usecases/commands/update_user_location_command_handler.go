package commands

import (
	"context"

	"marketplace/internal/core/domain/model/user"
)

type UpdateUserLocationCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewUpdateUserLocationCommandHandler(uowFactory UserUoWFactory) UpdateUserLocationCommandHandler {
	return UpdateUserLocationCommandHandler{uowFactory: uowFactory}
}

func (h UpdateUserLocationCommandHandler) Handle(ctx context.Context, cmd UpdateUserLocationCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()

	u, err := users.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if err = u.UpdateLocation(cmd.Location()); err != nil {
		return nil, err
	}

	if err = users.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}
