// Package memory keeps users in process memory. It backs the users API in
// development and in tests where no Postgres server is available.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/BorisRostovskiy/usertable/internal/repository"
	"github.com/BorisRostovskiy/usertable/internal/service"
	"github.com/google/uuid"
)

// Repo implements service.UserRepo interface
type Repo struct {
	mu    sync.RWMutex
	order []service.UserID
	users map[service.UserID]service.User
	newID func() service.UserID
}

func New(seed ...service.User) *Repo {
	r := &Repo{
		users: make(map[service.UserID]service.User),
		newID: func() service.UserID { return service.UserID(uuid.New().String()) },
	}
	for _, u := range seed {
		if u.ID == "" {
			u.ID = r.newID()
		}
		r.order = append(r.order, u.ID)
		r.users[u.ID] = u
	}
	return r
}

func (r *Repo) TestConnection(_ context.Context) error {
	return nil
}

func (r *Repo) GetUser(_ context.Context, userID service.UserID) (*service.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.NoUsersFoundError
	}
	return &u, nil
}

func (r *Repo) CreateUser(_ context.Context, in *service.User) (*service.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(in.Email, "") {
		return nil, repository.DuplicateKeyError
	}
	u := service.User{ID: r.newID(), Name: in.Name, Email: in.Email}
	r.order = append(r.order, u.ID)
	r.users[u.ID] = u
	return &u, nil
}

func (r *Repo) ListUsers(_ context.Context) ([]service.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]service.User, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.users[id])
	}
	return result, nil
}

func (r *Repo) UpdateUser(_ context.Context, in *service.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[in.ID]; !ok {
		return repository.NoUsersFoundError
	}
	if r.emailTaken(in.Email, in.ID) {
		return repository.DuplicateKeyError
	}
	r.users[in.ID] = *in
	return nil
}

func (r *Repo) DeleteUser(_ context.Context, userID service.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return repository.NoUsersFoundError
	}
	delete(r.users, userID)
	for i, id := range r.order {
		if id == userID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Repo) emailTaken(email string, except service.UserID) bool {
	for id, u := range r.users {
		if id != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}
