package store

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var bucketName = []byte("bocmarket")

// Store wraps a bolt database as a flat string-keyed blob store.
// Writes to a single key are atomic (one update transaction each);
// nothing here coordinates writes across keys — callers that mutate
// several entities must order their writes and accept the partial
// failure window documented in the transaction engines.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the bolt database file.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create bucket")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the raw value for key. The second result reports
// whether the key exists.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	if err != nil {
		return nil, false, errors.Wrapf(err, "get %s", key)
	}
	return value, value != nil, nil
}

// Set writes the value for key in a single atomic transaction.
func (s *Store) Set(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	})
	return errors.Wrapf(err, "set %s", key)
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	return errors.Wrapf(err, "remove %s", key)
}

// GetJSON decodes the blob stored under key into v. The first result
// reports whether the key exists; decode failures are returned so the
// caller can apply its documented empty default.
func (s *Store) GetJSON(key string, v interface{}) (bool, error) {
	data, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, errors.Wrapf(err, "decode %s", key)
	}
	return true, nil
}

// PutJSON encodes v and stores it under key.
func (s *Store) PutJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	return s.Set(key, data)
}
