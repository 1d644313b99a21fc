package llm

import (
	"fmt"
	"strings"

	"github.com/tpclabs/research-assistant/internal/models"
)

// Each result's content is clipped to this many runes when building the
// compact summary used for tweets.
const tweetExcerptRunes = 200

const refinePrompt = `You are a search query optimization expert. Your task is to transform user queries into clear, specific search queries that will yield the most relevant results. Focus on factual and informational aspects. Return only the optimized query without any explanation or additional text.`

const tweetPrompt = `You are a skilled social media writer who creates engaging, informative tweets.
Create a tweet thread (3-5 tweets) based on the research findings.
Each tweet should be numbered and separated by a newline.
Include relevant emojis.
Make it engaging and informative while maintaining accuracy.
Each tweet must be under 280 characters.
Don't include hashtags.`

const blogPrompt = `You are an expert blog writer who creates comprehensive, well-structured articles.
Create a detailed blog post based on the provided research findings.

IMPORTANT: Use proper markdown formatting with clear headings and spacing:
- Use # for the main title
- Use ## for section headings
- Use ### for subsection headings
- Use proper line breaks between sections
- Use bullet points or numbered lists where appropriate
- Use bold and italic text for emphasis
- Include a brief summary at the start

The blog post should include:
- A compelling title
- A brief introduction/summary
- Well-organized sections with clear headings
- Practical insights and takeaways
- A strong conclusion

Make it informative and engaging while maintaining accuracy.
Aim for around 1000-1500 words.
Include relevant examples and explanations.`

const newsletterPrompt = `You are an expert newsletter writer who creates engaging and informative email newsletters.
Create a newsletter based on the provided research findings.

IMPORTANT: Use proper markdown formatting with clear structure:
- Use # for the newsletter title
- Use ## for section headings
- Use proper line breaks between sections
- Use bullet points for key takeaways
- Use bold and italic text for emphasis

The newsletter should include:
- An attention-grabbing subject line (prefixed with "Subject: ")
- A warm greeting
- A brief introduction that hooks the reader
- The main content broken into digestible sections
- Key takeaways or action items
- A call-to-action or engagement prompt
- A professional sign-off

Make it conversational yet professional.
Keep paragraphs short and scannable.
Include relevant examples and insights.
Aim for around 500-800 words.`

const linkedinPrompt = `You are an expert LinkedIn content creator who writes engaging professional posts.
Create a LinkedIn post based on the provided research findings.

IMPORTANT: Format the post for maximum engagement:
- Start with a strong hook (first 2-3 lines are crucial)
- Use line breaks between paragraphs (double space)
- Use emojis strategically at the start of key points
- Use bullet points for key takeaways
- Include relevant hashtags at the end (3-5 maximum)

The post should include:
- An attention-grabbing opening
- Personal insights or professional perspective
- Key findings or lessons learned
- Actionable takeaways
- A conversation starter or question to engage readers
- Relevant hashtags

Make it professional yet conversational.
Focus on providing value to your network.
Keep paragraphs short (2-3 lines max).
Aim for around 200-300 words.
End with a clear call-to-action.`

// tweetContext builds the compact research summary used for the tweet
// thread: one clipped excerpt per result.
func tweetContext(rc models.ResearchContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Original Query: %s\nRefined Query: %s\n\nKey Findings:\n", rc.OriginalQuery, rc.RefinedQuery)
	for _, r := range rc.Results {
		fmt.Fprintf(&b, "- %s...\n", clipRunes(r.Content, tweetExcerptRunes))
	}
	return strings.TrimSpace(b.String())
}

// sourceContext builds the full research summary used for long-form
// content: the query pair plus one source block per result.
func sourceContext(rc models.ResearchContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Original Query: %s\nRefined Query: %s\n\nResearch Findings:\n", rc.OriginalQuery, rc.RefinedQuery)
	blocks := make([]string, 0, len(rc.Results))
	for _, r := range rc.Results {
		blocks = append(blocks, fmt.Sprintf("\nSource: %s\nURL: %s\nContent: %s\n", r.Title, r.URL, r.Content))
	}
	b.WriteString(strings.Join(blocks, "\n---\n"))
	return strings.TrimSpace(b.String())
}

// clipRunes truncates on rune boundaries to keep UTF-8 intact.
func clipRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
