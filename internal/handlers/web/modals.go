package web

import (
	"context"
	"fmt"
	"strings"

	"github.com/BorisRostovskiy/usertable/internal/service"
	"github.com/BorisRostovskiy/usertable/internal/toast"
)

const (
	msgUserCreated      = "User Created"
	msgUserCreateFailed = "Error Creating User"
	msgUserUpdated      = "User Updated"
	msgUserUpdateFailed = "Error Updating User"
	msgUserDeleted      = "User Deleted"
	msgUserDeleteFailed = "Error Deleting User"
)

// UsersMutator is the write side of the users endpoint
type UsersMutator interface {
	CreateUser(ctx context.Context, in service.User) (service.User, error)
	UpdateUser(ctx context.Context, in service.User) error
	DeleteUser(ctx context.Context, id service.UserID) error
}

// createUserModal is the only way a record enters a loaded list
type createUserModal struct {
	api           UsersMutator
	notify        toast.Channel
	onUserCreated func(service.User)
}

func (m createUserModal) Submit(ctx context.Context, name, email string) error {
	created, err := m.api.CreateUser(ctx, service.User{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	})
	if err != nil {
		m.notify.NotifyFailure(msgUserCreateFailed)
		return fmt.Errorf("create user: %w", err)
	}
	m.onUserCreated(created)
	m.notify.NotifySuccess(msgUserCreated)
	return nil
}

// editUserModal and deleteUserModal only talk to the users endpoint, the
// rendered list is left as loaded.
type editUserModal struct {
	api    UsersMutator
	notify toast.Channel
}

func (m editUserModal) Submit(ctx context.Context, id, name, email string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		m.notify.NotifyFailure(msgUserUpdateFailed)
		return fmt.Errorf("update user: id is mandatory")
	}
	err := m.api.UpdateUser(ctx, service.User{
		ID:    service.UserID(id),
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	})
	if err != nil {
		m.notify.NotifyFailure(msgUserUpdateFailed)
		return fmt.Errorf("update user %s: %w", id, err)
	}
	m.notify.NotifySuccess(msgUserUpdated)
	return nil
}

type deleteUserModal struct {
	api    UsersMutator
	notify toast.Channel
}

func (m deleteUserModal) Submit(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		m.notify.NotifyFailure(msgUserDeleteFailed)
		return fmt.Errorf("delete user: id is mandatory")
	}
	if err := m.api.DeleteUser(ctx, service.UserID(id)); err != nil {
		m.notify.NotifyFailure(msgUserDeleteFailed)
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	m.notify.NotifySuccess(msgUserDeleted)
	return nil
}
