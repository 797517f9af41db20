package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/BorisRostovskiy/usertable/internal/service"

	"github.com/go-chi/chi/v5"
)

type User struct {
	ID    service.UserID `json:"id"`
	Name  string         `json:"name"`
	Email string         `json:"email"`
}

func (u *User) marshal(su *service.User) {
	u.ID = su.ID
	u.Name = su.Name
	u.Email = su.Email
}

type CreateUser struct {
	User *service.User
}

func (cu *CreateUser) Decode(r *http.Request) error {
	var u User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		return fmt.Errorf("malformed data: %w", err)
	}

	cu.User = &service.User{
		Name:  strings.TrimSpace(u.Name),
		Email: strings.ToLower(strings.TrimSpace(u.Email)),
	}
	if err := cu.User.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	return nil
}
func (cu *CreateUser) WriteTo(w http.ResponseWriter) error {
	var u User
	u.marshal(cu.User)
	return responseObject(w, http.StatusCreated, u)
}

// listUsers is written as a bare array, the user table expects nothing else
type listUsers struct {
	Users []User
}

func (lu *listUsers) WriteTo(w http.ResponseWriter) error {
	if lu.Users == nil {
		lu.Users = []User{}
	}
	return responseObject(w, http.StatusOK, lu.Users)
}

// UpdateUser
type updateUser struct {
	service.User
}

func (uu *updateUser) Decode(r *http.Request) error {
	tmp := struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&tmp); err != nil {
		return fmt.Errorf("malformed update user data: %w", err)
	}

	if tmp.Name != nil {
		uu.User.WithName(strings.TrimSpace(*tmp.Name))
	}
	if tmp.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*tmp.Email))
		if err := service.ValidateEmail(email); err != nil {
			return err
		}
		uu.User.WithEmail(email)
	}

	uid := chi.URLParam(r, "uid")
	if uid == "" {
		return fmt.Errorf("user id is mandatory")
	}
	uu.User.ID = service.UserID(uid)
	return nil
}
func (uu *updateUser) WriteTo(w http.ResponseWriter) error {
	return responseObject(w, http.StatusOK, nil)
}

// DeleteUser
type deleteUser struct {
	service.User
}

func (du *deleteUser) Decode(r *http.Request) error {
	du.User.ID = service.UserID(chi.URLParam(r, "uid"))
	if du.User.ID == "" {
		return fmt.Errorf("id is mandatory")
	}
	return nil
}
func (du *deleteUser) WriteTo(w http.ResponseWriter) error {
	return responseObject(w, http.StatusOK, nil)
}
