// Package storage persists users, sessions and games.
package storage

import (
	"errors"

	"github.com/benbeisheim/chess-server/internal/model"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyTaken = errors.New("already taken")
)

type Store interface {
	CreateUser(user model.User) error
	GetUser(username string) (model.User, error)

	CreateAuth(auth model.AuthData) error
	GetAuth(token string) (model.AuthData, error)
	DeleteAuth(token string) error

	CreateGame(game model.GameData) error
	GetGame(gameID string) (model.GameData, error)
	UpdateGame(game model.GameData) error
	ListGames() ([]model.GameData, error)

	// Clear drops every record.
	Clear() error
	Close() error
}
