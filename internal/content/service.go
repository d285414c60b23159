package content

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Praveenkumarspk1/blog-wise/internal/apperr"
	"github.com/Praveenkumarspk1/blog-wise/internal/models"
)

// slugAttempts bounds the retry loop on the (already unlikely) case of a
// derived slug colliding with an existing one.
const slugAttempts = 5

// Service owns posts and enforces the slug-uniqueness and visibility
// invariants. Concurrent updates to the same post are last-write-wins; the
// store makes no attempt to serialize them.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateInput is the full set of author-supplied fields for a new post.
type CreateInput struct {
	Title      string
	Content    string
	Summary    string
	Visibility models.Visibility
	Tags       []string
	Published  bool
}

// ListFilter narrows the public listing. Both fields are optional and
// AND-combined when both are set.
type ListFilter struct {
	SearchTerm string
	Tag        string
}

// UpdateInput carries partial updates; nil fields are left untouched.
type UpdateInput struct {
	Title      *string
	Content    *string
	Summary    *string
	Visibility *models.Visibility
	Tags       *[]string
	Published  *bool
}

// CreatePost validates and persists a new post for the author, deriving a
// unique slug from the title.
func (s *Service) CreatePost(ctx context.Context, authorID string, in CreateInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Content)
	if title == "" {
		return nil, apperr.Validation("title must not be empty")
	}
	if body == "" {
		return nil, apperr.Validation("content must not be empty")
	}
	visibility := in.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if !visibility.Valid() {
		return nil, apperr.Validation("unknown visibility: " + string(visibility))
	}

	post := models.Post{
		Title:      title,
		Content:    in.Content,
		Summary:    in.Summary,
		Visibility: visibility,
		AuthorID:   authorID,
		Published:  in.Published,
		Tags:       datatypes.NewJSONSlice(in.Tags),
	}

	var err error
	for i := 0; i < slugAttempts; i++ {
		post.Slug = newSlug(title)
		var count int64
		if err = s.db.WithContext(ctx).Model(&models.Post{}).
			Where("slug = ?", post.Slug).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}
		if err = s.db.WithContext(ctx).Create(&post).Error; err == nil {
			return &post, nil
		}
		// The unique index may still reject a race between the check and
		// the insert; re-derive and try again.
	}
	if err == nil {
		err = errors.New("could not allocate a unique slug")
	}
	return nil, err
}

// UpdatePost applies a partial update to the author's own post and bumps
// updated_at. The slug is never touched. The returned bool reports whether
// this update took the post from draft to published, so callers can fan out
// notifications on that transition.
func (s *Service) UpdatePost(ctx context.Context, postID, authorID string, in UpdateInput) (*models.Post, bool, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperr.NotFound("post not found")
		}
		return nil, false, err
	}
	if post.AuthorID != authorID {
		return nil, false, apperr.Authorization("not the author of this post")
	}
	wasPublished := post.Published

	updates := map[string]interface{}{"updated_at": time.Now()}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, false, apperr.Validation("title must not be empty")
		}
		updates["title"] = title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, false, apperr.Validation("content must not be empty")
		}
		updates["content"] = *in.Content
	}
	if in.Summary != nil {
		updates["summary"] = *in.Summary
	}
	if in.Visibility != nil {
		if !in.Visibility.Valid() {
			return nil, false, apperr.Validation("unknown visibility: " + string(*in.Visibility))
		}
		updates["visibility"] = *in.Visibility
	}
	if in.Tags != nil {
		updates["tags"] = datatypes.NewJSONSlice(*in.Tags)
	}
	if in.Published != nil {
		updates["published"] = *in.Published
	}

	if err := s.db.WithContext(ctx).Model(&post).Updates(updates).Error; err != nil {
		return nil, false, err
	}
	if err := s.db.WithContext(ctx).First(&post, "id = ?", postID).Error; err != nil {
		return nil, false, err
	}
	return &post, !wasPublished && post.Published, nil
}

// DeletePost hard-deletes the author's own post.
func (s *Service) DeletePost(ctx context.Context, postID, authorID string) error {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("post not found")
		}
		return err
	}
	if post.AuthorID != authorID {
		return apperr.Authorization("not the author of this post")
	}
	return s.db.WithContext(ctx).Delete(&post).Error
}

// ListPublicPosts returns published public posts, newest first. SearchTerm
// matches the title or summary case-insensitively; Tag restricts to posts
// carrying it. Filtering happens in memory, matching how small these
// listings are expected to stay.
func (s *Service) ListPublicPosts(ctx context.Context, filter ListFilter) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).Preload("Author").
		Where("published = ? AND visibility = ?", true, models.VisibilityPublic).
		Order("created_at desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(filter.SearchTerm))
	tag := strings.TrimSpace(filter.Tag)
	if term == "" && tag == "" {
		return posts, nil
	}

	matched := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Summary), term) {
			continue
		}
		if tag != "" && !hasTag(p.Tags, tag) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ListPostsByAuthor returns the author's posts visible to the viewer, newest
// first. The author sees everything including drafts; everyone else sees
// published public posts, plus published followers-only posts when an
// accepted follow toward the author exists.
func (s *Service) ListPostsByAuthor(ctx context.Context, authorID, viewerID string) ([]models.Post, error) {
	q := s.db.WithContext(ctx).Preload("Author").Where("author_id = ?", authorID).Order("created_at desc")

	if viewerID != authorID {
		if s.isAcceptedFollower(ctx, viewerID, authorID) {
			q = q.Where("published = ? AND visibility IN ?", true,
				[]models.Visibility{models.VisibilityPublic, models.VisibilityFollowers})
		} else {
			q = q.Where("published = ? AND visibility = ?", true, models.VisibilityPublic)
		}
	}

	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostBySlug fetches a post the viewer is allowed to read. A hidden post
// and a missing slug produce the identical not-found error, so existence is
// never leaked.
func (s *Service) GetPostBySlug(ctx context.Context, slug, viewerID string) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Author").First(&post, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	if !s.canView(ctx, &post, viewerID) {
		return nil, apperr.NotFound("post not found")
	}
	return &post, nil
}

func (s *Service) canView(ctx context.Context, post *models.Post, viewerID string) bool {
	if post.AuthorID == viewerID {
		return true
	}
	if !post.Published {
		return false
	}
	switch post.Visibility {
	case models.VisibilityPublic:
		return true
	case models.VisibilityFollowers:
		return s.isAcceptedFollower(ctx, viewerID, post.AuthorID)
	default:
		return false
	}
}

func (s *Service) isAcceptedFollower(ctx context.Context, followerID, followeeID string) bool {
	if followerID == "" {
		return false
	}
	var count int64
	s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ? AND status = ?",
			followerID, followeeID, models.FollowStatusAccepted).
		Count(&count)
	return count > 0
}
