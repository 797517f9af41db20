package handlers

import (
	"context"

	"github.com/BorisRostovskiy/usertable/internal/service"
)

type UsersService interface {
	HealthCheck(ctx context.Context) error
	CreateUser(ctx context.Context, in *service.User) (*service.User, error)
	ListUsers(ctx context.Context) ([]service.User, error)
	UpdateUser(ctx context.Context, updated *service.User) error
	DeleteUser(ctx context.Context, id service.UserID) error
}
