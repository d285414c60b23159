package assistant

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
)

// Service translates authoring intents into prompts for the upstream
// generative-language call. Every operation degrades to a deterministic,
// non-empty fallback when that call fails; upstream errors never reach the
// caller. There are no retries and no caching: identical inputs re-issue
// identical upstream calls.
type Service struct {
	client *Client
}

func NewService(client *Client) *Service {
	return &Service{client: client}
}

var listNumbering = regexp.MustCompile(`^\d+\.\s*`)

// Summarize produces a 2-3 sentence summary of the content, or the leading
// sentences of the content itself when the upstream call fails.
func (s *Service) Summarize(ctx context.Context, content string) string {
	prompt := fmt.Sprintf(`Please create a concise, engaging summary of the following blog post content. The summary should be 2-3 sentences long and capture the main points and value proposition.

Blog content:
%s

Summary:`, content)

	result, err := s.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("assistant: summary call failed, using fallback: %v", err)
		return fallbackSummary(content)
	}
	return strings.TrimSpace(result)
}

// GenerateIdeas produces count post ideas for the topic. If count is not
// positive it defaults to 5.
func (s *Service) GenerateIdeas(ctx context.Context, topic string, count int) []string {
	if count <= 0 {
		count = 5
	}
	prompt := fmt.Sprintf(`Generate %d creative and engaging blog post ideas about "%s". Each idea should be specific, actionable, and appealing to readers. Format as a numbered list.`, count, topic)

	result, err := s.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("assistant: ideas call failed, using fallback: %v", err)
		return fallbackIdeas(topic)
	}

	ideas := make([]string, 0, count)
	for _, line := range strings.Split(strings.TrimSpace(result), "\n") {
		line = strings.TrimSpace(listNumbering.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" {
			continue
		}
		ideas = append(ideas, line)
		if len(ideas) == count {
			break
		}
	}
	if len(ideas) == 0 {
		return fallbackIdeas(topic)
	}
	return ideas
}

// ImproveContent rewrites the content per the instruction, or returns it
// unchanged when the upstream call fails.
func (s *Service) ImproveContent(ctx context.Context, content, instruction string) string {
	prompt := fmt.Sprintf(`Please improve the following blog content based on this request: "%s". Make it more engaging, professional, and well-structured while maintaining the original meaning.

Original content:
%s

Improved content:`, instruction, content)

	result, err := s.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("assistant: improve call failed, returning original: %v", err)
		return content
	}
	return strings.TrimSpace(result)
}

// GenerateKeywords suggests up to 10 SEO keywords for the post, or an empty
// sequence when the upstream call fails.
func (s *Service) GenerateKeywords(ctx context.Context, title, content string) []string {
	prompt := fmt.Sprintf(`Based on this blog post title and content, suggest 10 relevant SEO keywords that would help with search engine optimization. Return only the keywords, one per line.

Title: %s
Content: %s...

Keywords:`, title, truncate(content, 500))

	result, err := s.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("assistant: keywords call failed, using fallback: %v", err)
		return []string{}
	}

	keywords := make([]string, 0, 10)
	for _, line := range strings.Split(strings.TrimSpace(result), "\n") {
		line = strings.TrimSpace(line)
		line = listNumbering.ReplaceAllString(line, "")
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		keywords = append(keywords, line)
		if len(keywords) == 10 {
			break
		}
	}
	return keywords
}

// OptimizeSEO analyzes the post and returns a structured optimization
// result. Missing fields in the upstream response fall back per field; a
// failed call echoes the original title with a content-derived description.
func (s *Service) OptimizeSEO(ctx context.Context, title, content string) SEOResult {
	prompt := fmt.Sprintf(`Analyze this blog post and provide SEO optimization suggestions:

Title: %s
Content: %s...

Please provide:
1. An optimized title (50-60 characters)
2. A meta description (150-160 characters)
3. 5 primary keywords
4. 3 SEO improvement suggestions

Format your response as:
TITLE: [optimized title]
META: [meta description]
KEYWORDS: [keyword1, keyword2, keyword3, keyword4, keyword5]
SUGGESTIONS:
- [suggestion 1]
- [suggestion 2]
- [suggestion 3]`, title, truncate(content, 800))

	result, err := s.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("assistant: seo call failed, using fallback: %v", err)
		return fallbackSEO(title, content)
	}
	return parseSEOResponse(result, title, content)
}

// Chat answers a free-form writing question, optionally grounded in extra
// context, falling back to a canned topic-matched reply on failure.
func (s *Service) Chat(ctx context.Context, message, chatContext string) string {
	var contextLine string
	if chatContext != "" {
		contextLine = "Context: " + chatContext + "\n"
	}
	prompt := fmt.Sprintf(`You are an AI writing assistant for a blogging platform. Help users with writing, editing, SEO, content ideas, and blogging best practices. Be helpful, friendly, and informative.

%s
User message: %s

Response:`, contextLine, message)

	result, err := s.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("assistant: chat call failed, using fallback: %v", err)
		return fallbackChat(message)
	}
	return strings.TrimSpace(result)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
