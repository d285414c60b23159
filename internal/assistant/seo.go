package assistant

import "strings"

// SEOResult is the structured output of OptimizeSEO.
type SEOResult struct {
	OptimizedTitle  string   `json:"optimized_title"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords"`
	Suggestions     []string `json:"suggestions"`
}

// parseSEOResponse extracts the line-prefixed fields from an upstream SEO
// analysis. Lines without a recognized prefix are ignored, and a missing
// field leaves the corresponding output at its fallback default instead of
// failing the call.
func parseSEOResponse(raw, originalTitle, content string) SEOResult {
	result := fallbackSEO(originalTitle, content)

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		switch {
		case strings.HasPrefix(line, "TITLE:"):
			if title := strings.TrimSpace(strings.TrimPrefix(line, "TITLE:")); title != "" {
				result.OptimizedTitle = title
			}
		case strings.HasPrefix(line, "META:"):
			if meta := strings.TrimSpace(strings.TrimPrefix(line, "META:")); meta != "" {
				result.MetaDescription = meta
			}
		case strings.HasPrefix(line, "KEYWORDS:"):
			result.Keywords = splitKeywords(strings.TrimPrefix(line, "KEYWORDS:"), 5)
		case strings.HasPrefix(line, "- "):
			if len(result.Suggestions) < 3 {
				result.Suggestions = append(result.Suggestions, strings.TrimSpace(strings.TrimPrefix(line, "- ")))
			}
		}
	}
	return result
}

func splitKeywords(raw string, limit int) []string {
	keywords := make([]string, 0, limit)
	for _, k := range strings.Split(raw, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		keywords = append(keywords, k)
		if len(keywords) == limit {
			break
		}
	}
	return keywords
}
