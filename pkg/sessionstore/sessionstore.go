package sessionstore

import (
	"errors"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

const (
	keyDeviceToken = "device_token"
	keySnapshot    = "session_snapshot"
)

// Store persists session material (device token, token snapshots) in Badger.
// Note: encryption is provided by Badger options (value log + key registry), not by this wrapper.
type Store struct {
	db *badger.DB
}

type OpenOptions struct {
	Path          string
	EncryptionKey []byte // 32 bytes; if nil, DB is opened without encryption (not recommended)
	ReadOnly      bool
}

func Open(opts OpenOptions) (*Store, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, errors.New("sessionstore: path is required")
	}
	bopts := badger.DefaultOptions(opts.Path).
		WithLogger(nil).
		WithReadOnly(opts.ReadOnly)
	if len(opts.EncryptionKey) > 0 {
		// Badger requires index cache for encrypted workloads
		bopts = bopts.
			WithEncryptionKey(opts.EncryptionKey).
			WithIndexCacheSize(100 << 20) // 100MB
	}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DeviceToken returns the persisted device token, or "" if none was saved yet.
func (s *Store) DeviceToken() (string, error) {
	b, err := s.get(keyDeviceToken)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Store) SetDeviceToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("sessionstore: device token is empty")
	}
	return s.set(keyDeviceToken, []byte(token))
}

// Snapshot returns the raw serialized session snapshot, or nil if none was saved.
func (s *Store) Snapshot() ([]byte, error) {
	return s.get(keySnapshot)
}

func (s *Store) SetSnapshot(raw []byte) error {
	if len(raw) == 0 {
		return errors.New("sessionstore: snapshot is empty")
	}
	return s.set(keySnapshot, raw)
}

// DeleteSnapshot removes the persisted snapshot. Missing key is not an error.
func (s *Store) DeleteSnapshot() error {
	if s == nil || s.db == nil {
		return errors.New("sessionstore: not opened")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(keySnapshot))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

func (s *Store) get(key string) ([]byte, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("sessionstore: not opened")
	}
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) set(key string, val []byte) error {
	if s == nil || s.db == nil {
		return errors.New("sessionstore: not opened")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), val)
	})
}
