package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/tpclabs/research-assistant/internal/models"
)

// ResearchStore handles research session CRUD in the embedded database.
// Sessions are stored as JSON keyed by their generated id. Read-modify-write
// happens inside a single Update transaction, so concurrent appends to the
// same id cannot lose updates.
type ResearchStore struct {
	db *bolt.DB
}

func NewResearchStore(db *bolt.DB) *ResearchStore {
	return &ResearchStore{db: db}
}

// CreateSession persists a new session with a fresh id, both timestamps set
// to now, an empty article list, and page 1.
func (s *ResearchStore) CreateSession(ctx context.Context, originalQuery, refinedQuery string, results []models.SearchResult) (*models.Session, error) {
	now := time.Now().UTC()
	sess := &models.Session{
		ID:            "TPC-" + uuid.NewString(),
		OriginalQuery: originalQuery,
		RefinedQuery:  refinedQuery,
		Results:       results,
		Articles:      []models.Article{},
		Page:          1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if sess.Results == nil {
		sess.Results = []models.SearchResult{}
	}
	err := retryOperation(ctx, func() error {
		return s.db.Update(func(tx *bolt.Tx) error {
			return putSession(tx, sess)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// AppendResults concatenates newResults onto the session's result list,
// preserving order with no de-duplication. Each append corresponds to one
// more fetched page, so the page counter advances by one.
func (s *ResearchStore) AppendResults(ctx context.Context, id string, newResults []models.SearchResult) (*models.Session, error) {
	return s.mutate(ctx, id, func(sess *models.Session) {
		sess.Results = append(sess.Results, newResults...)
		sess.Page++
	})
}

// UpsertArticle stores one generated article on the session. An existing
// article of the same type is replaced in place; otherwise the article is
// appended, so earlier articles keep their position.
func (s *ResearchStore) UpsertArticle(ctx context.Context, id string, article models.Article) (*models.Session, error) {
	return s.mutate(ctx, id, func(sess *models.Session) {
		for i, a := range sess.Articles {
			if a.Type == article.Type {
				sess.Articles[i] = article
				return
			}
		}
		sess.Articles = append(sess.Articles, article)
	})
}

// GetByID returns the session, or (nil, nil) when the id does not exist.
func (s *ResearchStore) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var sess *models.Session
	err := retryOperation(ctx, func() error {
		return s.db.View(func(tx *bolt.Tx) error {
			raw := tx.Bucket(bucketResearch).Get([]byte(id))
			if raw == nil {
				sess = nil
				return nil
			}
			sess = &models.Session{}
			return json.Unmarshal(raw, sess)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// ListAll returns every stored session, newest first.
func (s *ResearchStore) ListAll(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	err := retryOperation(ctx, func() error {
		sessions = sessions[:0]
		return s.db.View(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketResearch).ForEach(func(_, raw []byte) error {
				var sess models.Session
				if err := json.Unmarshal(raw, &sess); err != nil {
					return err
				}
				sessions = append(sessions, sess)
				return nil
			})
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// mutate runs the fetch-update-put cycle for one session inside a single
// write transaction, refreshing updatedAt. Missing ids fail permanently with
// ErrNotFound.
func (s *ResearchStore) mutate(ctx context.Context, id string, update func(*models.Session)) (*models.Session, error) {
	var sess *models.Session
	err := retryOperation(ctx, func() error {
		return s.db.Update(func(tx *bolt.Tx) error {
			raw := tx.Bucket(bucketResearch).Get([]byte(id))
			if raw == nil {
				return backoff.Permanent(ErrNotFound)
			}
			sess = &models.Session{}
			if err := json.Unmarshal(raw, sess); err != nil {
				return err
			}
			update(sess)
			sess.UpdatedAt = time.Now().UTC()
			return putSession(tx, sess)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return sess, nil
}

func putSession(tx *bolt.Tx, sess *models.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return tx.Bucket(bucketResearch).Put([]byte(sess.ID), raw)
}
