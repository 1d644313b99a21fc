// Package content orchestrates derivative-content generation: one job per
// content type per session, dispatched to the matching generation
// collaborator and persisted back onto the session.
package content

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/tpclabs/research-assistant/internal/models"
	"github.com/tpclabs/research-assistant/internal/store"
)

// Finished jobs linger in the registry for a while so the UI can show the
// ready state; loading jobs never expire on their own.
const (
	jobTTL         = 30 * time.Minute
	jobSweepPeriod = 10 * time.Minute
)

// Job is the transient in-memory state of one generation attempt for one
// content type. It mirrors what eventually becomes part of the session's
// article list.
type Job struct {
	Type      models.ArticleType `json:"type"`
	Content   string             `json:"content"`
	IsLoading bool               `json:"isLoading"`

	// gen detects superseded completions: a stale completion discards
	// itself instead of overwriting fresher state.
	gen uint64
}

// Credentials reads the stored API key pair.
type Credentials interface {
	Get(ctx context.Context) (models.CredentialPair, error)
}

// SessionStore is the slice of the research store the orchestrator needs.
type SessionStore interface {
	GetByID(ctx context.Context, id string) (*models.Session, error)
	UpsertArticle(ctx context.Context, id string, article models.Article) (*models.Session, error)
}

// Generator bundles the four generation collaborators, one per content type.
type Generator interface {
	GenerateTweetThread(ctx context.Context, apiKey string, rc models.ResearchContext) (string, error)
	GenerateBlogPost(ctx context.Context, apiKey string, rc models.ResearchContext) (string, error)
	GenerateNewsletter(ctx context.Context, apiKey string, rc models.ResearchContext) (string, error)
	GenerateLinkedInPost(ctx context.Context, apiKey string, rc models.ResearchContext) (string, error)
}

// Service tracks per-type generation jobs and persists finished articles.
type Service struct {
	creds    Credentials
	sessions SessionStore
	gen      Generator
	log      *zap.Logger

	mu      sync.Mutex
	jobs    *cache.Cache
	nextGen uint64
}

func NewService(creds Credentials, sessions SessionStore, gen Generator, log *zap.Logger) *Service {
	return &Service{
		creds:    creds,
		sessions: sessions,
		gen:      gen,
		log:      log,
		jobs:     cache.New(jobTTL, jobSweepPeriod),
	}
}

// Generate produces one article of the requested type for the session and
// persists it. The job slot for (session, type) goes loading -> ready on
// success; on failure it is removed entirely so the user can retry at once.
// Re-invoking for a type that already has a job replaces that job's state.
func (s *Service) Generate(ctx context.Context, sessionID string, t models.ArticleType) (*models.Article, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown content type %q", t)
	}

	keys, err := s.creds.Get(ctx)
	if err != nil {
		return nil, err
	}
	// Generation only talks to the language model.
	if keys.ModelAPIKey == "" {
		return nil, models.ErrCredentialsMissing
	}

	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("generate %s: %w", t, store.ErrNotFound)
	}

	gen := s.beginJob(sessionID, t)
	text, err := s.dispatch(ctx, keys.ModelAPIKey, t, sess.Context())
	if err != nil {
		s.failJob(sessionID, t, gen)
		s.log.Error("content generation failed", zap.String("id", sessionID),
			zap.String("type", string(t)), zap.Error(err))
		return nil, &models.CollaboratorError{Collaborator: "generate/" + string(t), Err: err}
	}

	article := models.Article{Type: t, Content: text}
	if _, err := s.sessions.UpsertArticle(ctx, sessionID, article); err != nil {
		s.failJob(sessionID, t, gen)
		return nil, err
	}

	s.completeJob(sessionID, t, gen, text)
	s.log.Info("article generated", zap.String("id", sessionID), zap.String("type", string(t)))
	return &article, nil
}

// Jobs returns the current job states for a session, keyed by type.
func (s *Service) Jobs(sessionID string) []Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := sessionID + "/"
	var out []Job
	for key, item := range s.jobs.Items() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		out = append(out, item.Object.(Job))
	}
	return out
}

func (s *Service) dispatch(ctx context.Context, apiKey string, t models.ArticleType, rc models.ResearchContext) (string, error) {
	switch t {
	case models.ArticleTweet:
		return s.gen.GenerateTweetThread(ctx, apiKey, rc)
	case models.ArticleBlog:
		return s.gen.GenerateBlogPost(ctx, apiKey, rc)
	case models.ArticleNewsletter:
		return s.gen.GenerateNewsletter(ctx, apiKey, rc)
	case models.ArticleLinkedIn:
		return s.gen.GenerateLinkedInPost(ctx, apiKey, rc)
	}
	return "", fmt.Errorf("unknown content type %q", t)
}

// beginJob claims the (session, type) slot with a fresh generation number,
// replacing any previous job for the same slot.
func (s *Service) beginJob(sessionID string, t models.ArticleType) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextGen++
	s.jobs.Set(jobKey(sessionID, t), Job{Type: t, IsLoading: true, gen: s.nextGen}, cache.NoExpiration)
	return s.nextGen
}

// completeJob marks the slot ready unless a newer job has claimed it.
func (s *Service) completeJob(sessionID string, t models.ArticleType, gen uint64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentGen(sessionID, t) != gen {
		return
	}
	s.jobs.Set(jobKey(sessionID, t), Job{Type: t, Content: text, gen: gen}, cache.DefaultExpiration)
}

// failJob removes the slot, unless a newer job has claimed it. Failed jobs
// never linger in an error state.
func (s *Service) failJob(sessionID string, t models.ArticleType, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentGen(sessionID, t) != gen {
		return
	}
	s.jobs.Delete(jobKey(sessionID, t))
}

func (s *Service) currentGen(sessionID string, t models.ArticleType) uint64 {
	v, ok := s.jobs.Get(jobKey(sessionID, t))
	if !ok {
		return 0
	}
	return v.(Job).gen
}

func jobKey(sessionID string, t models.ArticleType) string {
	return sessionID + "/" + string(t)
}
