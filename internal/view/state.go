package view

import (
	"github.com/BorisRostovskiy/usertable/internal/service"
)

// ListState is the ordered list of records driving the table.
// It is not safe for concurrent use, UserListView guards it.
type ListState struct {
	users []service.User
}

// Replace swaps the whole list, a nil slice empties it
func (s *ListState) Replace(users []service.User) {
	s.users = append([]service.User(nil), users...)
}

// Append adds u at the end. Ids are not checked for uniqueness.
func (s *ListState) Append(u service.User) {
	s.users = append(s.users, u)
}

func (s *ListState) Len() int {
	return len(s.users)
}

// Snapshot returns a copy that is safe to hand to a renderer
func (s *ListState) Snapshot() []service.User {
	out := make([]service.User, len(s.users))
	copy(out, s.users)
	return out
}
