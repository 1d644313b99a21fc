package models

import "time"

// SearchResult is a single web search hit attached to a session.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// ArticleType identifies one of the supported content formats.
type ArticleType string

const (
	ArticleTweet      ArticleType = "tweet"
	ArticleBlog       ArticleType = "blog"
	ArticleNewsletter ArticleType = "newsletter"
	ArticleLinkedIn   ArticleType = "linkedin"
)

// ArticleTypes lists every supported content format.
func ArticleTypes() []ArticleType {
	return []ArticleType{ArticleTweet, ArticleBlog, ArticleNewsletter, ArticleLinkedIn}
}

// Valid reports whether t is one of the supported formats.
func (t ArticleType) Valid() bool {
	switch t {
	case ArticleTweet, ArticleBlog, ArticleNewsletter, ArticleLinkedIn:
		return true
	}
	return false
}

// Article is one piece of generated content stored on a session.
// At most one article per type is kept; regeneration replaces it in place.
type Article struct {
	Type    ArticleType `json:"type"`
	Content string      `json:"content"`
}

// Session is one research run: the query pair, the accumulated search
// results, and any generated articles. JSON field names match the schema the
// browser UI reads.
type Session struct {
	ID            string         `json:"id"`
	OriginalQuery string         `json:"originalQuery"`
	RefinedQuery  string         `json:"refinedQuery"`
	Results       []SearchResult `json:"results"`
	Articles      []Article      `json:"articles"`
	Page          int            `json:"currentPage"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// ResearchContext is the input handed to the generation collaborators.
type ResearchContext struct {
	OriginalQuery string         `json:"originalQuery"`
	RefinedQuery  string         `json:"refinedQuery"`
	Results       []SearchResult `json:"results"`
}

// Context extracts the generation input from a session.
func (s *Session) Context() ResearchContext {
	return ResearchContext{
		OriginalQuery: s.OriginalQuery,
		RefinedQuery:  s.RefinedQuery,
		Results:       s.Results,
	}
}

// CredentialPair holds the two API secrets the app needs. Empty string means
// unset; the pair is stored and cleared as a unit.
type CredentialPair struct {
	SearchAPIKey string `json:"searchApiKey"`
	ModelAPIKey  string `json:"modelApiKey"`
}

// Complete reports whether both secrets are set. All research functionality
// is gated on this.
func (c CredentialPair) Complete() bool {
	return c.SearchAPIKey != "" && c.ModelAPIKey != ""
}

// ResearchRequest is the JSON body for POST /api/research.
type ResearchRequest struct {
	Topic   string `json:"topic"`
	Enhance bool   `json:"enhance"`
}

// GenerateRequest is the JSON body for POST /api/research/{id}/articles.
type GenerateRequest struct {
	Type ArticleType `json:"type"`
}
