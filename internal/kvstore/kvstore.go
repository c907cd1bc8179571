package kvstore

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/buntdb"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// Store is the on-device key-value boundary. Keys are plain strings with no
// enforced namespacing; a missing key reads as the empty string, not an error.
type Store interface {
	// Get returns the value for key, or "" if the key is absent
	Get(key string) (string, error)
	// Set writes value under key; empty key or value is a logged no-op
	Set(key, value string) error
	// Remove deletes key; removing an absent key is not an error
	Remove(key string) error
	// ClearAll wipes every key in the store
	ClearAll() error
	// Close releases the underlying database
	Close() error
}

type buntStore struct {
	db *buntdb.DB
}

// Open opens (or creates) a buntdb-backed store at path.
// Use ":memory:" for an ephemeral store in tests.
func Open(path string) (Store, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		log.WithFields(logrus.Fields{
			"path":  path,
			"error": err.Error(),
		}).Error("Failed to open key-value store")
		return nil, err
	}
	log.WithField("path", path).Info("Key-value store opened")
	return &buntStore{db: db}, nil
}

func (s *buntStore) Get(key string) (string, error) {
	if key == "" {
		log.Warn("Get called with empty key")
		return "", nil
	}

	var value string
	err := s.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		log.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Error("Failed to read key")
		return "", err
	}
	return value, nil
}

func (s *buntStore) Set(key, value string) error {
	if key == "" || value == "" {
		log.WithField("key", key).Warn("Set called with empty key or value, skipping")
		return nil
	}

	err := s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, value, nil)
		return err
	})
	if err != nil {
		log.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Error("Failed to write key")
	}
	return err
}

func (s *buntStore) Remove(key string) error {
	if key == "" {
		log.Warn("Remove called with empty key")
		return nil
	}

	err := s.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(key)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil
	}
	if err != nil {
		log.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Error("Failed to remove key")
	}
	return err
}

func (s *buntStore) ClearAll() error {
	err := s.db.Update(func(tx *buntdb.Tx) error {
		return tx.DeleteAll()
	})
	if err != nil {
		log.WithField("error", err.Error()).Error("Failed to clear key-value store")
	}
	return err
}

func (s *buntStore) Close() error {
	return s.db.Close()
}
