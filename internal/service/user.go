package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
)

// UserID identifies a user record. Upstream APIs hand out either numeric
// or string identifiers, both are kept in their literal text form.
type UserID string

func (id UserID) String() string {
	return string(id)
}

// UnmarshalJSON accepts JSON strings and numbers, null leaves the id empty
func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("user id should be a string or a number: %w", err)
		}
		*id = UserID(n.String())
		return nil
	}
}

// User is the id/name/email tuple shown as one table row
type User struct {
	ID    UserID `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

// WithID add ID to user
func (u *User) WithID(id UserID) *User {
	u.ID = id
	return u
}

// WithName add/change display name
func (u *User) WithName(name string) *User {
	u.Name = name
	return u
}

// WithEmail add email to user
func (u *User) WithEmail(email string) *User {
	u.Email = email
	return u
}

// Validate is used by the users API before anything reaches the repository.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("empty name")
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	return nil
}

func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("empty email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("email malformed '%s': %w", email, err)
	}
	return nil
}
