package accounts

import (
	"errors"
	"fmt"

	"github.com/sidz1235/TaskRabbit/model"
)

var (
	ErrDuplicateUser      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Storage interface {
	GetUser(username string) (model.User, bool)
	InsertUser(username string, user model.User) (bool, error)
}

type Accounts struct {
	storage Storage
}

func New(storage Storage) *Accounts {
	return &Accounts{
		storage: storage,
	}
}

// Register creates a user with an empty task list and no profile picture.
// No password strength or name checks.
func (a *Accounts) Register(name, username, password string) error {
	user := model.User{
		Name:     name,
		Password: password,
		Tasks:    []model.Task{},
	}

	inserted, err := a.storage.InsertUser(username, user)
	if err != nil {
		return fmt.Errorf("insertUser: %w", err)
	}

	if !inserted {
		return ErrDuplicateUser
	}

	return nil
}

// Authenticate compares the stored password byte for byte, case-sensitive.
func (a *Accounts) Authenticate(username, password string) (model.User, error) {
	user, ok := a.storage.GetUser(username)
	if !ok || user.Password != password {
		return model.User{}, ErrInvalidCredentials
	}

	return user, nil
}
