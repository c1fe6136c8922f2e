package storage

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/benbeisheim/chess-server/internal/model"
)

// MemoryStore keeps games encoded so callers never share engine state.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]model.User
	auths map[string]model.AuthData
	games map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	s.reset()
	return s
}

func (s *MemoryStore) reset() {
	s.users = make(map[string]model.User)
	s.auths = make(map[string]model.AuthData)
	s.games = make(map[string][]byte)
}

func (s *MemoryStore) CreateUser(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return ErrAlreadyTaken
	}
	s.users[user.Username] = user
	return nil
}

func (s *MemoryStore) GetUser(username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) CreateAuth(auth model.AuthData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auths[auth.AuthToken] = auth
	return nil
}

func (s *MemoryStore) GetAuth(token string) (model.AuthData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auth, ok := s.auths[token]
	if !ok {
		return model.AuthData{}, ErrNotFound
	}
	return auth, nil
}

func (s *MemoryStore) DeleteAuth(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.auths[token]; !ok {
		return ErrNotFound
	}
	delete(s.auths, token)
	return nil
}

func (s *MemoryStore) CreateGame(game model.GameData) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.games[game.GameID]; exists {
		return ErrAlreadyTaken
	}
	s.games[game.GameID] = data
	return nil
}

func (s *MemoryStore) GetGame(gameID string) (model.GameData, error) {
	s.mu.RLock()
	data, ok := s.games[gameID]
	s.mu.RUnlock()
	if !ok {
		return model.GameData{}, ErrNotFound
	}

	var game model.GameData
	err := json.Unmarshal(data, &game)
	return game, err
}

func (s *MemoryStore) UpdateGame(game model.GameData) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.games[game.GameID]; !exists {
		return ErrNotFound
	}
	s.games[game.GameID] = data
	return nil
}

func (s *MemoryStore) ListGames() ([]model.GameData, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)

	games := make([]model.GameData, 0, len(ids))
	for _, id := range ids {
		game, err := s.GetGame(id)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
