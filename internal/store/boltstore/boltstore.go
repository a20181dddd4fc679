// Package boltstore keeps the question blob in a bbolt database, for users
// who prefer a single-file database over a loose JSON file.
package boltstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/idilsaglam/sheettracker/internal/store"
	"go.etcd.io/bbolt"
)

const (
	fileName    = "sheettracker.bolt"
	bucketState = "state" // key: StorageKey -> JSON array of questions
)

type Bolt struct {
	db *bbolt.DB
}

// Open opens (or creates) the database under dir.
func Open(dir string) (*Bolt, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return OpenPath(filepath.Join(dir, fileName))
}

func OpenPath(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketState))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Close() error { return b.db.Close() }

func (b *Bolt) Load() ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(bucketState)).Get([]byte(store.StorageKey))
		if v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bolt view: %w", err)
	}
	return out, nil
}

func (b *Bolt) Save(data []byte) error {
	if err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketState)).Put([]byte(store.StorageKey), data)
	}); err != nil {
		return fmt.Errorf("bolt update: %w", err)
	}
	return nil
}
