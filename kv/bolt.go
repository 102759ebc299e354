package kv

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var bucketState = []byte("state")

// Bolt implements Store on top of a bbolt database. Every Set is a
// committed write transaction, so values survive process restarts.
type Bolt struct {
	db *bbolt.DB
}

// OpenBolt opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBolt(dbPath string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("kv: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("kv: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("kv: create bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

// Close closes the underlying database.
func (s *Bolt) Close() error { return s.db.Close() }

// Get returns the value for key.
func (s *Bolt) Get(key string) (string, bool, error) {
	var value string
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketState).Get([]byte(key))
		if data != nil {
			value = string(data)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("kv: get %q: %w", key, err)
	}
	return value, found, nil
}

// Set stores value under key.
func (s *Bolt) Set(key, value string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketState).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("kv: set %q: %w", key, err)
	}
	return nil
}
