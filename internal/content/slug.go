package content

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// slugify converts a title to its URL-safe base form: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, edge hyphens
// stripped. "Hello World!!" -> "hello-world".
func slugify(title string) string {
	s := strings.ToLower(title)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "post"
	}
	return s
}

// newSlug derives a candidate slug for a title. A random suffix keeps two
// posts with the same title from colliding, even when created within the
// same instant; residual collisions are handled by the caller's retry.
func newSlug(title string) string {
	return slugify(title) + "-" + uuid.NewString()[:8]
}
