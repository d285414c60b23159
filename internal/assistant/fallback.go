package assistant

import (
	"fmt"
	"strings"
)

// The functions in this file are the deterministic outputs used whenever the
// upstream call fails. They are pure so the failure path can be tested
// without a network.

// fallbackSummary returns the first two sentences of the content with a
// trailing ellipsis when it was truncated.
func fallbackSummary(content string) string {
	sentences := strings.SplitN(content, ". ", 3)
	if len(sentences) < 2 {
		return content
	}
	return sentences[0] + ". " + sentences[1] + "..."
}

// fallbackIdeas returns five templated post ideas for the topic.
func fallbackIdeas(topic string) []string {
	return []string{
		fmt.Sprintf("How to get started with %s", topic),
		fmt.Sprintf("Top 10 %s tips for beginners", topic),
		fmt.Sprintf("The future of %s", topic),
		fmt.Sprintf("Common %s mistakes to avoid", topic),
		fmt.Sprintf("%s best practices guide", topic),
	}
}

// fallbackSEO echoes the original title and derives a meta description from
// the leading content. Keywords and suggestions stay empty.
func fallbackSEO(title, content string) SEOResult {
	description := content
	if len(description) > 150 {
		description = description[:150]
	}
	return SEOResult{
		OptimizedTitle:  title,
		MetaDescription: description + "...",
		Keywords:        []string{},
		Suggestions:     []string{},
	}
}

// fallbackChat picks a canned reply by keyword-matching the message.
func fallbackChat(message string) string {
	lower := strings.ToLower(message)

	if strings.Contains(lower, "write") || strings.Contains(lower, "writing") {
		return "Here are some writing tips:\n\n" +
			"1. Start with a compelling hook to grab attention\n" +
			"2. Use clear, concise language\n" +
			"3. Break up text with headers and bullet points\n" +
			"4. Tell stories to engage readers\n" +
			"5. End with a strong conclusion or call-to-action\n\n" +
			"What specific aspect of writing would you like help with?"
	}

	if strings.Contains(lower, "seo") || strings.Contains(lower, "search") {
		return "For better SEO:\n\n" +
			"1. Use relevant keywords naturally throughout your content\n" +
			"2. Write descriptive titles (50-60 characters)\n" +
			"3. Create compelling meta descriptions\n" +
			"4. Use header tags (H1, H2, H3) properly\n" +
			"5. Include internal and external links\n" +
			"6. Optimize images with alt text\n" +
			"7. Focus on user intent and valuable content\n\n" +
			"Would you like me to help optimize a specific post?"
	}

	if strings.Contains(lower, "idea") || strings.Contains(lower, "topic") {
		return "Here are some blog post ideas:\n\n" +
			"1. How-to guides in your field\n" +
			"2. Industry trends and predictions\n" +
			"3. Personal experiences and lessons learned\n" +
			"4. Tool reviews and comparisons\n" +
			"5. Behind-the-scenes content\n" +
			"6. Expert interviews\n" +
			"7. Case studies\n" +
			"8. Common mistakes to avoid\n\n" +
			"What niche or topic are you interested in?"
	}

	if strings.Contains(lower, "engagement") || strings.Contains(lower, "engaging") {
		return "To make content more engaging:\n\n" +
			"1. Use storytelling techniques\n" +
			"2. Ask questions to involve readers\n" +
			"3. Include relevant examples and case studies\n" +
			"4. Add visuals, images, or infographics\n" +
			"5. Write in a conversational tone\n" +
			"6. Use bullet points and short paragraphs\n" +
			"7. Include actionable tips\n" +
			"8. End with discussion questions\n\n" +
			"What type of content are you working on?"
	}

	return "I'm here to help with all aspects of blogging! I can assist with:\n\n" +
		"• Writing tips and techniques\n" +
		"• SEO optimization\n" +
		"• Content ideas and planning\n" +
		"• Improving engagement\n" +
		"• Blog structure and formatting\n" +
		"• Keyword research\n" +
		"• Content editing and improvement\n\n" +
		"What would you like help with today?"
}
