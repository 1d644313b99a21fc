package store

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names inside the single database file. Two record kinds live here:
// the credential pair and research sessions.
var (
	bucketAPIKeys  = []byte("apiKeys")
	bucketResearch = []byte("researchData")
)

// ErrNotFound is returned when an operation references a session id that
// does not exist. It is never retried and never creates a record.
var ErrNotFound = errors.New("research entry not found")

// Open opens (creating if necessary) the embedded database file and ensures
// both buckets exist.
func Open(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketAPIKeys); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketResearch)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bolt init buckets: %w", err)
	}
	return db, nil
}
