package store

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/tpclabs/research-assistant/internal/models"
)

// Fixed record keys for the two secrets.
var (
	keySearchAPI = []byte("tavily")
	keyModelAPI  = []byte("openai")
)

// CredentialStore persists the API key pair in the embedded database.
// The pair is written and cleared as a unit.
type CredentialStore struct {
	db *bolt.DB
}

func NewCredentialStore(db *bolt.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Get returns the stored pair, with empty-string defaults for unset keys.
func (s *CredentialStore) Get(ctx context.Context) (models.CredentialPair, error) {
	var pair models.CredentialPair
	err := retryOperation(ctx, func() error {
		return s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketAPIKeys)
			pair.SearchAPIKey = string(b.Get(keySearchAPI))
			pair.ModelAPIKey = string(b.Get(keyModelAPI))
			return nil
		})
	})
	if err != nil {
		return models.CredentialPair{}, fmt.Errorf("get api keys: %w", err)
	}
	return pair, nil
}

// Save overwrites both keys in one transaction.
func (s *CredentialStore) Save(ctx context.Context, pair models.CredentialPair) error {
	err := retryOperation(ctx, func() error {
		return s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketAPIKeys)
			if err := b.Put(keySearchAPI, []byte(pair.SearchAPIKey)); err != nil {
				return err
			}
			return b.Put(keyModelAPI, []byte(pair.ModelAPIKey))
		})
	})
	if err != nil {
		return fmt.Errorf("save api keys: %w", err)
	}
	return nil
}

// Delete clears both keys back to the unset state.
func (s *CredentialStore) Delete(ctx context.Context) error {
	err := retryOperation(ctx, func() error {
		return s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketAPIKeys)
			if err := b.Delete(keySearchAPI); err != nil {
				return err
			}
			return b.Delete(keyModelAPI)
		})
	})
	if err != nil {
		return fmt.Errorf("delete api keys: %w", err)
	}
	return nil
}
