package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/GregMSThompson/buildboard/internal/errs"
)

const localCacheBucket = "local_cache"

// localStore is the device-local durable key/value cache, one bbolt file per device.
type localStore struct {
	db *bbolt.DB
}

func OpenLocalStore(path string) (*localStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errs.NewValidationError("local cache path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errs.NewDatabaseError("open", "failed to open local cache", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(localCacheBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errs.NewDatabaseError("open", "failed to create local cache bucket", err)
	}
	return &localStore{db: db}, nil
}

func (s *localStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the stored value and whether the key was present.
func (s *localStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(localCacheBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %s is missing", localCacheBucket)
		}
		if raw := bucket.Get([]byte(key)); raw != nil {
			// raw is only valid inside the transaction
			value = string(raw)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, errs.NewDatabaseError("read", "failed to read local cache", err)
	}
	return value, found, nil
}

// Set overwrites the value stored under key.
func (s *localStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(localCacheBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %s is missing", localCacheBucket)
		}
		return bucket.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return errs.NewDatabaseError("write", "failed to write local cache", err)
	}
	return nil
}

// unavailableStore stands in for a local cache that could not be opened. Every read and write
// fails with the open error, so callers fall through to the settings store.
type unavailableStore struct {
	cause error
}

func NewUnavailableStore(cause error) *unavailableStore {
	return &unavailableStore{cause: cause}
}

func (s *unavailableStore) Get(_ context.Context, _ string) (string, bool, error) {
	return "", false, errs.NewDatabaseError("read", "local cache is unavailable", s.cause)
}

func (s *unavailableStore) Set(_ context.Context, _, _ string) error {
	return errs.NewDatabaseError("write", "local cache is unavailable", s.cause)
}

func (s *unavailableStore) Close() error { return nil }
