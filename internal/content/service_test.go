package content

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tpclabs/research-assistant/internal/models"
	"github.com/tpclabs/research-assistant/internal/store"
)

type fakeCreds struct {
	pair models.CredentialPair
}

func (f *fakeCreds) Get(context.Context) (models.CredentialPair, error) { return f.pair, nil }

// fakeGenerator returns canned text per type, or an error for types listed
// in fail.
type fakeGenerator struct {
	fail map[models.ArticleType]error
}

func (f *fakeGenerator) respond(t models.ArticleType, text string) (string, error) {
	if err, ok := f.fail[t]; ok {
		return "", err
	}
	return text, nil
}

func (f *fakeGenerator) GenerateTweetThread(_ context.Context, _ string, _ models.ResearchContext) (string, error) {
	return f.respond(models.ArticleTweet, "1/ tweet thread")
}

func (f *fakeGenerator) GenerateBlogPost(_ context.Context, _ string, _ models.ResearchContext) (string, error) {
	return f.respond(models.ArticleBlog, "# blog post")
}

func (f *fakeGenerator) GenerateNewsletter(_ context.Context, _ string, _ models.ResearchContext) (string, error) {
	return f.respond(models.ArticleNewsletter, "Subject: newsletter")
}

func (f *fakeGenerator) GenerateLinkedInPost(_ context.Context, _ string, _ models.ResearchContext) (string, error) {
	return f.respond(models.ArticleLinkedIn, "linkedin post")
}

func newTestService(t *testing.T, gen *fakeGenerator) (*Service, *store.ResearchStore, string) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "research.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sessions := store.NewResearchStore(db)
	sess, err := sessions.CreateSession(context.Background(), "topic", "refined topic", []models.SearchResult{
		{Title: "T", URL: "https://example.com", Content: "c"},
	})
	require.NoError(t, err)

	creds := &fakeCreds{pair: models.CredentialPair{SearchAPIKey: "tvly", ModelAPIKey: "sk"}}
	return NewService(creds, sessions, gen, zap.NewNop()), sessions, sess.ID
}

func TestGenerateSuccessPersistsArticleAndMarksJobReady(t *testing.T) {
	svc, sessions, id := newTestService(t, &fakeGenerator{})
	ctx := context.Background()

	article, err := svc.Generate(ctx, id, models.ArticleBlog)
	require.NoError(t, err)
	assert.Equal(t, models.ArticleBlog, article.Type)
	assert.Equal(t, "# blog post", article.Content)

	sess, err := sessions.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, sess.Articles, 1)
	assert.Equal(t, *article, sess.Articles[0])

	jobs := svc.Jobs(id)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.ArticleBlog, jobs[0].Type)
	assert.False(t, jobs[0].IsLoading)
	assert.Equal(t, "# blog post", jobs[0].Content)
}

func TestGeneratePreservesEarlierArticles(t *testing.T) {
	svc, sessions, id := newTestService(t, &fakeGenerator{})
	ctx := context.Background()

	_, err := svc.Generate(ctx, id, models.ArticleTweet)
	require.NoError(t, err)
	_, err = svc.Generate(ctx, id, models.ArticleBlog)
	require.NoError(t, err)

	sess, err := sessions.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, sess.Articles, 2)
	assert.Equal(t, models.ArticleTweet, sess.Articles[0].Type)
	assert.Equal(t, "1/ tweet thread", sess.Articles[0].Content)
	assert.Equal(t, models.ArticleBlog, sess.Articles[1].Type)
}

func TestGenerateFailureRemovesJobAndPersistsNothing(t *testing.T) {
	gen := &fakeGenerator{fail: map[models.ArticleType]error{
		models.ArticleTweet: errors.New("model error"),
	}}
	svc, sessions, id := newTestService(t, gen)
	ctx := context.Background()

	_, err := svc.Generate(ctx, id, models.ArticleTweet)
	var collab *models.CollaboratorError
	require.ErrorAs(t, err, &collab)

	assert.Empty(t, svc.Jobs(id))

	sess, err := sessions.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, sess.Articles)
}

func TestGenerateFailureLeavesOtherTypesUntouched(t *testing.T) {
	gen := &fakeGenerator{fail: map[models.ArticleType]error{
		models.ArticleNewsletter: errors.New("model error"),
	}}
	svc, sessions, id := newTestService(t, gen)
	ctx := context.Background()

	_, err := svc.Generate(ctx, id, models.ArticleBlog)
	require.NoError(t, err)
	_, err = svc.Generate(ctx, id, models.ArticleNewsletter)
	require.Error(t, err)

	sess, err := sessions.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, sess.Articles, 1)
	assert.Equal(t, models.ArticleBlog, sess.Articles[0].Type)

	jobs := svc.Jobs(id)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.ArticleBlog, jobs[0].Type)
}

func TestRegenerationReplacesPersistedArticle(t *testing.T) {
	svc, sessions, id := newTestService(t, &fakeGenerator{})
	ctx := context.Background()

	_, err := svc.Generate(ctx, id, models.ArticleBlog)
	require.NoError(t, err)
	_, err = svc.Generate(ctx, id, models.ArticleBlog)
	require.NoError(t, err)

	sess, err := sessions.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, sess.Articles, 1)
	assert.Len(t, svc.Jobs(id), 1)
}

func TestGenerateUnknownType(t *testing.T) {
	svc, _, id := newTestService(t, &fakeGenerator{})

	_, err := svc.Generate(context.Background(), id, models.ArticleType("podcast"))
	require.Error(t, err)
}

func TestGenerateUnknownSession(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeGenerator{})

	_, err := svc.Generate(context.Background(), "nope", models.ArticleBlog)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGenerateRequiresModelKey(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "research.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	sessions := store.NewResearchStore(db)

	svc := NewService(&fakeCreds{}, sessions, &fakeGenerator{}, zap.NewNop())
	_, err = svc.Generate(context.Background(), "any", models.ArticleBlog)
	require.ErrorIs(t, err, models.ErrCredentialsMissing)
}

func TestStaleCompletionDoesNotOverwriteNewerJob(t *testing.T) {
	svc, _, id := newTestService(t, &fakeGenerator{})

	// First attempt claims the slot, then a second attempt supersedes it
	// before the first completes.
	gen1 := svc.beginJob(id, models.ArticleTweet)
	gen2 := svc.beginJob(id, models.ArticleTweet)

	svc.completeJob(id, models.ArticleTweet, gen1, "stale text")

	jobs := svc.Jobs(id)
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].IsLoading, "newer in-flight job must survive the stale completion")

	svc.completeJob(id, models.ArticleTweet, gen2, "fresh text")
	jobs = svc.Jobs(id)
	require.Len(t, jobs, 1)
	assert.Equal(t, "fresh text", jobs[0].Content)
}

func TestStaleFailureDoesNotRemoveNewerJob(t *testing.T) {
	svc, _, id := newTestService(t, &fakeGenerator{})

	gen1 := svc.beginJob(id, models.ArticleBlog)
	_ = svc.beginJob(id, models.ArticleBlog)

	svc.failJob(id, models.ArticleBlog, gen1)

	jobs := svc.Jobs(id)
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].IsLoading)
}
