package pg

import (
	"time"

	"github.com/BorisRostovskiy/usertable/internal/service"
)

// User storage user representation
type User struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (u User) toService() service.User {
	return service.User{
		ID:    service.UserID(u.ID),
		Name:  u.Name,
		Email: u.Email,
	}
}
