package service

//go:generate mockgen -source=users.go -destination=mock_repo.go -package=service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BorisRostovskiy/usertable/internal/clients"
	"github.com/BorisRostovskiy/usertable/internal/repository"
	"github.com/sirupsen/logrus"
)

// UserRepo define repository interface
type UserRepo interface {
	TestConnection(ctx context.Context) error
	GetUser(ctx context.Context, userID UserID) (*User, error)
	CreateUser(ctx context.Context, in *User) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, in *User) error
	DeleteUser(ctx context.Context, userID UserID) error
}

type Users struct {
	repo   UserRepo
	log    *logrus.Logger
	notify clients.ChannelNotificator
}

func New(repo UserRepo, log *logrus.Logger, n clients.ChannelNotificator) *Users {
	return &Users{
		repo:   repo,
		log:    log,
		notify: n,
	}
}

// HealthCheck provide simple check of db status
func (s Users) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.repo.TestConnection(ctx)
}

func (s Users) CreateUser(ctx context.Context, in *User) (*User, error) {
	if err := in.Validate(); err != nil {
		return nil, InvalidUserError(err)
	}
	user, err := s.repo.CreateUser(ctx, in)
	if err != nil {
		s.log.WithField("component", "service").Debug(err)
		if errors.Is(err, repository.DuplicateKeyError) {
			return nil, ErrUserAlreadyExists
		}
		return nil, ErrInternal
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second*1)
	defer cancel()
	_ = s.notify.Notify(ctx, clients.ChannelCreate, fmt.Sprintf("user with ID=%s has been created", user.ID))
	return user, nil
}

// ListUsers returns every stored user in creation order
func (s Users) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

func (s Users) UpdateUser(ctx context.Context, updatedUser *User) error {
	existedUser, err := s.repo.GetUser(ctx, updatedUser.ID)
	if err != nil {
		if errors.Is(err, repository.NoUsersFoundError) {
			return ErrUserNotFound
		}
		return err
	}

	updated := false
	if n := updatedUser.Name; n != "" && n != existedUser.Name {
		existedUser.Name = n
		updated = true
	}
	if email := updatedUser.Email; email != "" && email != existedUser.Email {
		existedUser.Email = email
		updated = true
	}

	if !updated {
		return ErrEmptyUpdateRequest
	}

	if err = existedUser.Validate(); err != nil {
		return InvalidUserError(err)
	}

	if err = s.repo.UpdateUser(ctx, existedUser); err != nil {
		if errors.Is(err, repository.DuplicateKeyError) {
			return ErrDuplicateKeyError
		}
		if errors.Is(err, repository.NoUsersFoundError) {
			return ErrUserNotFound
		}
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second*1)
	defer cancel()
	_ = s.notify.Notify(ctx, clients.ChannelUpdate, fmt.Sprintf("user with ID=%s has been updated", existedUser.ID))
	return nil
}

func (s Users) DeleteUser(ctx context.Context, id UserID) error {
	err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.NoUsersFoundError) {
			return ErrUserNotFound
		}
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second*1)
	defer cancel()
	_ = s.notify.Notify(ctx, clients.ChannelDelete, fmt.Sprintf("user with ID=%s has been deleted", id))

	return nil
}
