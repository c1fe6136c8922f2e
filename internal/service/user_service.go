package service

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/benbeisheim/chess-server/internal/model"
	"github.com/benbeisheim/chess-server/internal/storage"
)

type UserService struct {
	store  storage.Store
	logger *log.Logger
	cost   int
}

func NewUserService(store storage.Store, logger *log.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
		cost:   bcrypt.DefaultCost,
	}
}

func (us *UserService) Register(username, password, email string) (model.AuthData, error) {
	if username == "" || password == "" || email == "" {
		return model.AuthData{}, ErrBadRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), us.cost)
	if err != nil {
		return model.AuthData{}, fmt.Errorf("hash password: %w", err)
	}
	err = us.store.CreateUser(model.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
	})
	if err != nil {
		return model.AuthData{}, err
	}

	us.logger.Info("registered user", "user", username)
	return us.newSession(username)
}

func (us *UserService) Login(username, password string) (model.AuthData, error) {
	if username == "" || password == "" {
		return model.AuthData{}, ErrBadRequest
	}

	user, err := us.store.GetUser(username)
	if errors.Is(err, storage.ErrNotFound) {
		return model.AuthData{}, ErrUnauthorized
	}
	if err != nil {
		return model.AuthData{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.AuthData{}, ErrUnauthorized
	}
	return us.newSession(username)
}

func (us *UserService) Logout(token string) error {
	err := us.store.DeleteAuth(token)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrUnauthorized
	}
	return err
}

// Authenticate resolves an auth token to its username.
func (us *UserService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	auth, err := us.store.GetAuth(token)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	return auth.Username, nil
}

func (us *UserService) newSession(username string) (model.AuthData, error) {
	auth := model.AuthData{AuthToken: uuid.New().String(), Username: username}
	if err := us.store.CreateAuth(auth); err != nil {
		return model.AuthData{}, err
	}
	return auth, nil
}
