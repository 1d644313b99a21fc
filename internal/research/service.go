// Package research orchestrates one research run: optional query
// refinement, web search, and persistence of the resulting session.
package research

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tpclabs/research-assistant/internal/models"
	"github.com/tpclabs/research-assistant/internal/search"
	"github.com/tpclabs/research-assistant/internal/store"
)

// Every search uses a fixed recency window and result-set size.
const (
	searchRecencyDays = 365
	searchMaxResults  = 5
)

// Credentials reads the stored API key pair.
type Credentials interface {
	Get(ctx context.Context) (models.CredentialPair, error)
}

// SessionStore is the slice of the research store the orchestrator needs.
type SessionStore interface {
	CreateSession(ctx context.Context, originalQuery, refinedQuery string, results []models.SearchResult) (*models.Session, error)
	AppendResults(ctx context.Context, id string, newResults []models.SearchResult) (*models.Session, error)
	GetByID(ctx context.Context, id string) (*models.Session, error)
	ListAll(ctx context.Context) ([]models.Session, error)
}

// Searcher is the web-search collaborator.
type Searcher interface {
	Search(ctx context.Context, apiKey, query string, opts search.Options) ([]models.SearchResult, error)
}

// Refiner is the query-refinement collaborator.
type Refiner interface {
	Refine(ctx context.Context, apiKey, query string) (string, error)
}

// Service runs the research pipeline against injected collaborators.
type Service struct {
	creds    Credentials
	sessions SessionStore
	searcher Searcher
	refiner  Refiner
	log      *zap.Logger
}

func NewService(creds Credentials, sessions SessionStore, searcher Searcher, refiner Refiner, log *zap.Logger) *Service {
	return &Service{creds: creds, sessions: sessions, searcher: searcher, refiner: refiner, log: log}
}

// Research runs a fresh research session for the topic. When enhance is set
// the topic is first rewritten by the refinement collaborator; a refinement
// failure fails the whole call, since a failed model call usually means a
// bad credential. Nothing is persisted on failure.
func (s *Service) Research(ctx context.Context, topic string, enhance bool) (*models.Session, error) {
	keys, err := s.creds.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !keys.Complete() {
		return nil, models.ErrCredentialsMissing
	}

	refined := topic
	if enhance {
		refined, err = s.refiner.Refine(ctx, keys.ModelAPIKey, topic)
		if err != nil {
			s.log.Error("query refinement failed", zap.String("topic", topic), zap.Error(err))
			return nil, &models.CollaboratorError{Collaborator: "refine", Err: err}
		}
		s.log.Info("query refined", zap.String("topic", topic), zap.String("refined", refined))
	}

	results, err := s.searcher.Search(ctx, keys.SearchAPIKey, refined, search.Options{
		Days:       searchRecencyDays,
		MaxResults: searchMaxResults,
		Page:       1,
	})
	if err != nil {
		s.log.Error("search failed", zap.String("query", refined), zap.Error(err))
		return nil, &models.CollaboratorError{Collaborator: "search", Err: err}
	}

	sess, err := s.sessions.CreateSession(ctx, topic, refined, results)
	if err != nil {
		return nil, err
	}
	s.log.Info("research session created",
		zap.String("id", sess.ID), zap.Int("results", len(sess.Results)))
	return sess, nil
}

// FetchMore retrieves the next result page for an existing session. The
// search always uses the original query with refinement disabled, and the
// new results are appended to the stored session.
func (s *Service) FetchMore(ctx context.Context, id string) (*models.Session, error) {
	keys, err := s.creds.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !keys.Complete() {
		return nil, models.ErrCredentialsMissing
	}

	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("fetch more: %w", store.ErrNotFound)
	}

	nextPage := sess.Page + 1
	results, err := s.searcher.Search(ctx, keys.SearchAPIKey, sess.OriginalQuery, search.Options{
		Days:       searchRecencyDays,
		MaxResults: searchMaxResults,
		Page:       nextPage,
	})
	if err != nil {
		s.log.Error("search failed", zap.String("query", sess.OriginalQuery),
			zap.Int("page", nextPage), zap.Error(err))
		return nil, &models.CollaboratorError{Collaborator: "search", Err: err}
	}

	updated, err := s.sessions.AppendResults(ctx, id, results)
	if err != nil {
		return nil, err
	}
	s.log.Info("appended result page", zap.String("id", id),
		zap.Int("page", updated.Page), zap.Int("results", len(updated.Results)))
	return updated, nil
}
