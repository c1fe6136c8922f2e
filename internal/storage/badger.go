package storage

import (
	"encoding/json"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/benbeisheim/chess-server/internal/model"
)

const (
	userPrefix = "user/"
	authPrefix = "auth/"
	gamePrefix = "game/"
)

// BadgerStore keeps each record as a JSON value under a prefixed key.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a database in dir.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return openBadger(opts)
}

// OpenBadgerInMemory is used by tests and by STORAGE=badger with no DATA_DIR.
func OpenBadgerInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts)
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *BadgerStore) Clear() error {
	return s.db.DropAll()
}

func (s *BadgerStore) create(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err == nil {
			return ErrAlreadyTaken
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set([]byte(key), data)
	})
}

func (s *BadgerStore) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

func (s *BadgerStore) CreateUser(user model.User) error {
	return s.create(userPrefix+user.Username, user)
}

func (s *BadgerStore) GetUser(username string) (model.User, error) {
	var user model.User
	err := s.get(userPrefix+username, &user)
	return user, err
}

func (s *BadgerStore) CreateAuth(auth model.AuthData) error {
	data, err := json.Marshal(auth)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(authPrefix+auth.AuthToken), data)
	})
}

func (s *BadgerStore) GetAuth(token string) (model.AuthData, error) {
	var auth model.AuthData
	err := s.get(authPrefix+token, &auth)
	return auth, err
}

func (s *BadgerStore) DeleteAuth(token string) error {
	key := []byte(authPrefix + token)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

func (s *BadgerStore) CreateGame(game model.GameData) error {
	return s.create(gamePrefix+game.GameID, game)
}

func (s *BadgerStore) GetGame(gameID string) (model.GameData, error) {
	var game model.GameData
	err := s.get(gamePrefix+gameID, &game)
	return game, err
}

func (s *BadgerStore) UpdateGame(game model.GameData) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	key := []byte(gamePrefix + game.GameID)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

func (s *BadgerStore) ListGames() ([]model.GameData, error) {
	games := []model.GameData{}
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var game model.GameData
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &game)
			}); err != nil {
				return err
			}
			games = append(games, game)
		}
		return nil
	})
	return games, err
}
