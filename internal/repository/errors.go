package repository

import (
	"fmt"
)

var (
	// NoUsersFoundError causes when storage could not find user with criteria
	NoUsersFoundError = fmt.Errorf("no users found")
	// DuplicateKeyError causes when Create or Update clashes with an already stored email
	DuplicateKeyError = fmt.Errorf("duplicate key value violates unique constraint")
)
